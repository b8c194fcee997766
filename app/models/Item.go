package models

type ItemId string

const (
	ItemAnyDice   ItemId = "any_dice"
	ItemTurtle    ItemId = "turtle"
	ItemOutlaw    ItemId = "outlaw"
	ItemSteal     ItemId = "steal"
	ItemBanish    ItemId = "banish"
	ItemFrame     ItemId = "frame"
	ItemAuction   ItemId = "auction"
	ItemBuild     ItemId = "build"
	ItemEqualPoor ItemId = "equal_poor"
	ItemEqualRich ItemId = "equal_rich"
)

type GodId string

const (
	GodNone    GodId = ""
	GodFortune GodId = "fortune_god"
	GodPoor    GodId = "poor_god"
	GodHoly    GodId = "holy_mary"
	GodLand    GodId = "land_god"
	GodLiu     GodId = "liu_dehua"
)

type FateEventId string

const (
	FateGainCash      FateEventId = "gain_cash"
	FateLoseCash      FateEventId = "lose_cash"
	FateStealFromAll  FateEventId = "steal_from_all"
	FateGiveToAll     FateEventId = "give_to_all"
	FateForcedSale    FateEventId = "forced_sale"
	FateRandomGod     FateEventId = "random_god"
	FateGainItem      FateEventId = "gain_item"
	FateLoseItem      FateEventId = "lose_item"
	FateNanman        FateEventId = "nanman"
	FateJail          FateEventId = "jail"
	FateTeleportStart FateEventId = "teleport_start"
)

// ItemOffer is an item rolled at an item shop.
type ItemOffer struct {
	ItemId      ItemId `json:"itemId"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

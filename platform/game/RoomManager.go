package game

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/pkg"
	"github.com/DedS3t/rich-backend/platform/board"
	"github.com/sirupsen/logrus"
)

const (
	EventRoomState        = "room:state"
	EventDiceRolled       = "game:diceRolled"
	EventLog              = "game:log"
	EventActionRequired   = "game:actionRequired"
	EventItemAnnouncement = "game:itemAnnouncement"
	EventTradeOffer       = "trade:offer"
	EventTradeResult      = "trade:result"
	EventStaticConfig     = "game:staticConfig"
	EventError            = "error"
)

const (
	roomIdLength   = 6
	playerIdLength = 8
	maxNickname    = 20
	maxLogLines    = 50
)

var Characters = []string{
	"caocao", "zhugeliang", "liubei", "taishici", "guanyu", "zhangfei", "zhaoyun", "diaochan",
	"lvbu", "machao", "simayi", "wanglang", "luxun", "hejin", "jiangwei", "pangtong",
}

// Randomizer is the source of dice, fate and shop draws.
type Randomizer interface {
	Intn(n int) int
}

// Broadcaster is the transport boundary: room-scoped broadcast, targeted push and group membership.
type Broadcaster interface {
	BroadcastToRoom(roomId, event string, payload interface{})
	EmitTo(connId, event string, payload interface{})
	Join(connId, roomId string)
	Leave(connId, roomId string)
	Disconnect(connId string)
}

// SnapshotMirror receives the serialized room after every mutation.
type SnapshotMirror interface {
	SaveRoom(roomId string, snapshot []byte) error
	DeleteRoom(roomId string) error
}

// ResultArchive stores finished matches.
type ResultArchive interface {
	SaveResult(result *models.GameResult) error
}

type Config struct {
	ActionTimeout      time.Duration
	EmptyRoomGrace     time.Duration
	IdleTTL            time.Duration
	DefaultInitialCash int
	MinInitialCash     int
	MaxInitialCash     int
	StartBonus         int
	MaxPlayers         int
}

func DefaultConfig() Config {
	return Config{
		ActionTimeout:      20 * time.Second,
		EmptyRoomGrace:     90 * time.Second,
		IdleTTL:            2 * time.Hour,
		DefaultInitialCash: 15000,
		MinInitialCash:     5000,
		MaxInitialCash:     100000,
		StartBonus:         2000,
		MaxPlayers:         6,
	}
}

type roomRecord struct {
	mu         sync.Mutex
	state      *models.Room
	trade      *models.TradeOffer
	timer      *time.Timer
	emptySince time.Time
	destroyed  bool

	dirty bool
	lines []string
	kicks []string
}

// Manager owns every live room and the identity index. Each room is serialized by its own mutex.
type Manager struct {
	cfg      Config
	mu       sync.RWMutex
	rooms    map[string]*roomRecord
	sessions *SessionIndex
	out      Broadcaster
	mirror   SnapshotMirror
	archive  ResultArchive
	rngMu    sync.Mutex
	rng      Randomizer
	now      func() time.Time
	log      *logrus.Entry
}

type Option func(*Manager)

func WithRandomizer(r Randomizer) Option {
	return func(m *Manager) { m.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithMirror(mirror SnapshotMirror) Option {
	return func(m *Manager) { m.mirror = mirror }
}

func WithArchive(archive ResultArchive) Option {
	return func(m *Manager) { m.archive = archive }
}

func WithLogger(entry *logrus.Entry) Option {
	return func(m *Manager) { m.log = entry }
}

func NewManager(cfg Config, out Broadcaster, opts ...Option) *Manager {
	m := &Manager{
		cfg:      cfg,
		rooms:    make(map[string]*roomRecord),
		sessions: NewSessionIndex(),
		out:      out,
		now:      time.Now,
		log:      logrus.WithField("component", "game"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return m
}

func (m *Manager) Sessions() *SessionIndex {
	return m.sessions
}

func (m *Manager) intn(n int) int {
	if n <= 1 {
		return 0
	}
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return m.rng.Intn(n)
}

func (m *Manager) millis() int64 {
	return m.now().UnixNano() / int64(time.Millisecond)
}

func (m *Manager) room(roomId string) *roomRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[roomId]
}

// withRoom runs fn under the room's lock, then flushes logs, the snapshot and any kicks.
func (m *Manager) withRoom(roomId string, fn func(rec *roomRecord) error) error {
	rec := m.room(roomId)
	if rec == nil {
		return errRoomNotFound()
	}
	rec.mu.Lock()
	if rec.destroyed {
		rec.mu.Unlock()
		return errRoomNotFound()
	}
	err := fn(rec)
	if rec.dirty {
		m.commit(rec)
	}
	kicks := rec.kicks
	rec.kicks = nil
	rec.mu.Unlock()

	for _, connId := range kicks {
		m.out.Disconnect(connId)
	}
	return err
}

func (m *Manager) commit(rec *roomRecord) {
	st := rec.state
	st.LastActiveAt = m.millis()
	if len(rec.lines) > 0 {
		m.out.BroadcastToRoom(st.RoomId, EventLog, models.LogEvent{RoomId: st.RoomId, Lines: rec.lines})
		rec.lines = nil
	}
	m.out.BroadcastToRoom(st.RoomId, EventRoomState, st)
	if m.mirror != nil {
		raw, err := json.Marshal(st)
		if err == nil {
			err = m.mirror.SaveRoom(st.RoomId, raw)
		}
		if err != nil {
			m.log.WithError(err).WithField("room_id", st.RoomId).Warn("snapshot mirror failed")
		}
	}
	rec.dirty = false
}

func (m *Manager) touch(rec *roomRecord) {
	rec.dirty = true
}

// logf appends a human-readable line to the room log.
func (m *Manager) logf(rec *roomRecord, format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	st := rec.state
	st.Logs = append(st.Logs, line)
	if len(st.Logs) > maxLogLines {
		st.Logs = st.Logs[len(st.Logs)-maxLogLines:]
	}
	rec.lines = append(rec.lines, line)
	rec.dirty = true
}

// seat resolves the caller's session for roomId.
func (m *Manager) seat(connId, roomId string) (SessionRef, error) {
	ref, ok := m.sessions.Lookup(connId)
	if !ok {
		return SessionRef{}, errRoomNotFound()
	}
	if ref.RoomId != roomId {
		return SessionRef{}, errRoomMismatch()
	}
	return ref, nil
}

// playerSeat resolves the caller's player inside a locked room.
func playerSeat(st *models.Room, ref SessionRef) (*models.Player, error) {
	if ref.Spectator {
		return nil, errRoomMismatch()
	}
	p := st.PlayerById(ref.PlayerId)
	if p == nil || !p.InPlay() {
		return nil, errRoomMismatch()
	}
	return p, nil
}

func NormalizeNickname(raw string) string {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) > maxNickname {
		name = string([]rune(name)[:maxNickname])
	}
	return name
}

func NormalizeRoomId(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (m *Manager) newPlayer(nickname, token string) *models.Player {
	return &models.Player{
		PlayerId:  "P" + pkg.RandString(playerIdLength),
		Nickname:  nickname,
		Cash:      m.cfg.DefaultInitialCash,
		Connected: true,
		Status:    models.PlayerActive,
		Token:     token,
		Items:     map[models.ItemId]int{},
		JoinedAt:  m.millis(),
	}
}

// releaseConn detaches a connection from whatever room it was bound to before it moves elsewhere.
func (m *Manager) releaseConn(connId, nextRoomId string) {
	if ref, ok := m.sessions.Lookup(connId); ok && ref.RoomId != nextRoomId {
		m.Disconnect(connId)
	}
}

func (m *Manager) CreateRoom(connId, nickname, token string) (models.JoinAck, error) {
	nickname = NormalizeNickname(nickname)
	token = strings.TrimSpace(token)
	if nickname == "" {
		return models.JoinAck{}, errInvalidPayload("nickname must not be empty")
	}
	if token == "" {
		return models.JoinAck{}, errInvalidPayload("player token must not be empty")
	}
	m.releaseConn(connId, "")

	player := m.newPlayer(nickname, token)
	now := m.millis()
	st := &models.Room{
		Status:              models.RoomWaiting,
		HostPlayerId:        player.PlayerId,
		InitialCash:         m.cfg.DefaultInitialCash,
		Players:             []*models.Player{player},
		Spectators:          []*models.Spectator{},
		Board:               board.NewBoard(),
		CurrentTurnPlayerId: player.PlayerId,
		Phase:               models.PhaseWaiting,
		Logs:                []string{},
		CreatedAt:           now,
		LastActiveAt:        now,
	}
	rec := &roomRecord{state: st}

	m.mu.Lock()
	roomId := pkg.RandString(roomIdLength)
	for m.rooms[roomId] != nil {
		roomId = pkg.RandString(roomIdLength)
	}
	st.RoomId = roomId
	m.rooms[roomId] = rec
	m.mu.Unlock()

	err := m.withRoom(roomId, func(rec *roomRecord) error {
		m.sessions.Bind(connId, SessionRef{RoomId: roomId, PlayerId: player.PlayerId})
		m.out.Join(connId, roomId)
		m.out.EmitTo(connId, EventStaticConfig, StaticConfig())
		m.logf(rec, "%s created the room", nickname)
		return nil
	})
	if err != nil {
		return models.JoinAck{}, err
	}
	m.log.WithFields(logrus.Fields{"room_id": roomId, "player_id": player.PlayerId, "conn_id": connId}).Info("room created")
	return models.JoinAck{Ok: true, RoomId: roomId, PlayerId: player.PlayerId, Role: models.RolePlayer}, nil
}

func (m *Manager) JoinRoom(connId, roomId, nickname, token string) (models.JoinAck, error) {
	roomId = NormalizeRoomId(roomId)
	nickname = NormalizeNickname(nickname)
	token = strings.TrimSpace(token)
	if roomId == "" || nickname == "" || token == "" {
		return models.JoinAck{}, errInvalidPayload("roomId, nickname and player token are required")
	}
	if m.room(roomId) == nil {
		return models.JoinAck{}, errRoomNotFound()
	}
	m.releaseConn(connId, roomId)

	var ack models.JoinAck
	err := m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		if st.Status == models.RoomEnded {
			return errRoomEnded()
		}

		if p := st.PlayerByToken(token); p != nil && p.InPlay() {
			m.attachPlayer(rec, connId, p)
			ack = models.JoinAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Role: models.RolePlayer, Reconnected: true}
			return nil
		}
		if s := st.SpectatorByToken(token); s != nil {
			m.attachSpectator(rec, connId, s)
			ack = models.JoinAck{Ok: true, RoomId: roomId, PlayerId: s.SpectatorId, Role: models.RoleSpectator, Reconnected: true}
			return nil
		}
		// A seat that left never re-enters; it may only watch.
		if st.Status == models.RoomInGame || st.PlayerByToken(token) != nil {
			s := &models.Spectator{
				SpectatorId: "S" + pkg.RandString(playerIdLength),
				Nickname:    nickname,
				Token:       token,
				JoinedAt:    m.millis(),
			}
			st.Spectators = append(st.Spectators, s)
			m.attachSpectator(rec, connId, s)
			m.logf(rec, "%s is watching", nickname)
			ack = models.JoinAck{Ok: true, RoomId: roomId, PlayerId: s.SpectatorId, Role: models.RoleSpectator}
			return nil
		}
		if len(inPlaySeats(st)) >= m.cfg.MaxPlayers {
			return newError(models.ErrRoomFull, "room is full")
		}
		p := m.newPlayer(nickname, token)
		st.Players = append(st.Players, p)
		if host := st.PlayerById(st.HostPlayerId); host == nil || !host.InPlay() {
			st.HostPlayerId = p.PlayerId
		}
		m.attachPlayer(rec, connId, p)
		m.logf(rec, "%s joined the room", nickname)
		ack = models.JoinAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Role: models.RolePlayer}
		return nil
	})
	if err != nil {
		return models.JoinAck{}, err
	}
	m.log.WithFields(logrus.Fields{"room_id": roomId, "player_id": ack.PlayerId, "role": ack.Role, "reconnected": ack.Reconnected}).Info("room joined")
	return ack, nil
}

func (m *Manager) Reconnect(connId, roomId, playerId string) (models.JoinAck, error) {
	roomId = NormalizeRoomId(roomId)
	playerId = strings.TrimSpace(playerId)
	if roomId == "" || playerId == "" {
		return models.JoinAck{}, errInvalidPayload("roomId and playerId are required")
	}
	if m.room(roomId) == nil {
		return models.JoinAck{}, errRoomNotFound()
	}
	m.releaseConn(connId, roomId)

	var ack models.JoinAck
	err := m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		if p := st.PlayerById(playerId); p != nil && p.InPlay() {
			m.attachPlayer(rec, connId, p)
			ack = models.JoinAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Role: models.RolePlayer, Reconnected: true}
			return nil
		}
		if s := st.SpectatorById(playerId); s != nil {
			m.attachSpectator(rec, connId, s)
			ack = models.JoinAck{Ok: true, RoomId: roomId, PlayerId: s.SpectatorId, Role: models.RoleSpectator, Reconnected: true}
			return nil
		}
		return newError(models.ErrPlayerNotFound, "player does not exist or has left")
	})
	if err != nil {
		return models.JoinAck{}, err
	}
	m.log.WithFields(logrus.Fields{"room_id": roomId, "player_id": playerId, "conn_id": connId}).Info("player reconnected")
	return ack, nil
}

// attachPlayer binds connId to the seat; a previous connection for the seat is kicked.
func (m *Manager) attachPlayer(rec *roomRecord, connId string, p *models.Player) {
	st := rec.state
	previous := m.sessions.Bind(connId, SessionRef{RoomId: st.RoomId, PlayerId: p.PlayerId})
	if previous != "" {
		m.out.Leave(previous, st.RoomId)
		rec.kicks = append(rec.kicks, previous)
		m.log.WithFields(logrus.Fields{"room_id": st.RoomId, "player_id": p.PlayerId, "old_conn": previous, "new_conn": connId}).Warn("duplicate player connection, kicking old connection")
	}
	m.out.Join(connId, st.RoomId)
	m.out.EmitTo(connId, EventStaticConfig, StaticConfig())

	wasConnected := p.Connected
	p.Connected = true
	p.Status = models.PlayerActive
	rec.emptySince = time.Time{}
	if !wasConnected {
		m.logf(rec, "%s reconnected", p.Nickname)
	}
	m.touch(rec)

	if st.Status == models.RoomInGame && st.Phase == models.PhaseWaiting && len(connectedSeats(st)) >= 2 {
		st.Phase = models.PhaseRolling
		if cur := st.PlayerById(st.CurrentTurnPlayerId); cur == nil || !cur.Connected || !cur.InPlay() {
			m.advanceTurn(rec)
		}
	}
	if ga := st.PendingAction; ga != nil && ga.TargetPlayerId == p.PlayerId {
		m.pushActionRequired(rec, ga)
	}
}

func (m *Manager) attachSpectator(rec *roomRecord, connId string, s *models.Spectator) {
	st := rec.state
	previous := m.sessions.Bind(connId, SessionRef{RoomId: st.RoomId, PlayerId: s.SpectatorId, Spectator: true})
	if previous != "" {
		m.out.Leave(previous, st.RoomId)
		rec.kicks = append(rec.kicks, previous)
	}
	m.out.Join(connId, st.RoomId)
	m.out.EmitTo(connId, EventStaticConfig, StaticConfig())
	s.Connected = true
	rec.emptySince = time.Time{}
	m.touch(rec)
}

// Disconnect handles a transport disconnect. A stale connection that was already replaced is ignored.
func (m *Manager) Disconnect(connId string) {
	ref, ok := m.sessions.Lookup(connId)
	if !ok {
		return
	}
	_ = m.withRoom(ref.RoomId, func(rec *roomRecord) error {
		ref, ok := m.sessions.Unbind(connId)
		if !ok {
			return nil
		}
		st := rec.state
		m.out.Leave(connId, st.RoomId)
		if ref.Spectator {
			if s := st.SpectatorById(ref.PlayerId); s != nil {
				s.Connected = false
				m.touch(rec)
			}
			m.markEmpty(rec)
			return nil
		}
		p := st.PlayerById(ref.PlayerId)
		if p == nil || !p.InPlay() {
			return nil
		}
		p.Connected = false
		p.Status = models.PlayerDisconnected
		m.logf(rec, "%s disconnected", p.Nickname)

		if st.Status == models.RoomInGame {
			if len(connectedSeats(st)) < 2 {
				if ga := st.PendingAction; ga != nil {
					m.skipGate(rec, ga, false)
				}
				m.clearGate(rec)
				st.Phase = models.PhaseWaiting
			} else if st.CurrentTurnPlayerId == p.PlayerId && st.PendingAction == nil {
				m.advanceTurn(rec)
			}
		}
		m.markEmpty(rec)
		m.log.WithFields(logrus.Fields{"room_id": st.RoomId, "player_id": p.PlayerId, "conn_id": connId}).Info("player disconnected")
		return nil
	})
}

func (m *Manager) markEmpty(rec *roomRecord) {
	if connectedParticipants(rec.state) == 0 && rec.emptySince.IsZero() {
		rec.emptySince = m.now()
	}
}

func (m *Manager) LeaveRoom(connId, roomId, token string) (models.ActionAck, error) {
	roomId = NormalizeRoomId(roomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.ActionAck{}, err
	}
	var ack models.ActionAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		if ref.Spectator {
			s := st.SpectatorById(ref.PlayerId)
			if s == nil || s.Token != token {
				return errRoomMismatch()
			}
			for i, other := range st.Spectators {
				if other == s {
					st.Spectators = append(st.Spectators[:i], st.Spectators[i+1:]...)
					break
				}
			}
			m.sessions.Unbind(connId)
			m.out.Leave(connId, roomId)
			m.touch(rec)
			m.markEmpty(rec)
			ack = models.ActionAck{Ok: true, RoomId: roomId, PlayerId: s.SpectatorId, Action: "leave"}
			return nil
		}
		p, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		if p.Token != token {
			return errRoomMismatch()
		}
		m.logf(rec, "%s left the room", p.Nickname)
		m.retireSeat(rec, p)
		m.settle(rec)
		m.markEmpty(rec)
		ack = models.ActionAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Action: "leave"}
		return nil
	})
	return ack, err
}

func (m *Manager) SelectCharacter(connId, roomId, characterId string) (models.ActionAck, error) {
	roomId = NormalizeRoomId(roomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.ActionAck{}, err
	}
	if !validCharacter(characterId) {
		return models.ActionAck{}, errInvalidPayload("unknown character %q", characterId)
	}
	var ack models.ActionAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		p, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		if st.Status != models.RoomWaiting {
			return errInvalidAction("characters can only be chosen before the game starts")
		}
		for _, other := range st.Players {
			if other != p && other.InPlay() && other.SelectedCharacterId == characterId {
				return newError(models.ErrCharTaken, "character already taken")
			}
		}
		p.SelectedCharacterId = characterId
		m.logf(rec, "%s picked %s", p.Nickname, characterId)
		ack = models.ActionAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Action: "select_character"}
		return nil
	})
	return ack, err
}

func (m *Manager) ToggleReady(connId, roomId string) (models.ActionAck, error) {
	roomId = NormalizeRoomId(roomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.ActionAck{}, err
	}
	var ack models.ActionAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		p, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		if st.Status != models.RoomWaiting {
			return errInvalidAction("the game has already started")
		}
		if p.SelectedCharacterId == "" {
			return errInvalidAction("choose a character first")
		}
		p.Ready = !p.Ready
		m.touch(rec)
		ack = models.ActionAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Action: "toggle_ready"}
		return nil
	})
	return ack, err
}

func (m *Manager) SetInitialCash(connId, roomId string, amount int) (models.ActionAck, error) {
	roomId = NormalizeRoomId(roomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.ActionAck{}, err
	}
	if amount < m.cfg.MinInitialCash || amount > m.cfg.MaxInitialCash {
		return models.ActionAck{}, errInvalidPayload("initial cash must be between %d and %d", m.cfg.MinInitialCash, m.cfg.MaxInitialCash)
	}
	var ack models.ActionAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		p, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		if p.PlayerId != st.HostPlayerId {
			return errInvalidAction("only the host can change the initial cash")
		}
		if st.Status != models.RoomWaiting {
			return errInvalidAction("the game has already started")
		}
		st.InitialCash = amount
		for _, seat := range st.Players {
			seat.Cash = amount
		}
		m.logf(rec, "initial cash set to %d", amount)
		ack = models.ActionAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Action: "set_initial_cash"}
		return nil
	})
	return ack, err
}

func (m *Manager) StartGame(connId, roomId string) (models.ActionAck, error) {
	roomId = NormalizeRoomId(roomId)
	ref, err := m.seat(connId, roomId)
	if err != nil {
		return models.ActionAck{}, err
	}
	var ack models.ActionAck
	err = m.withRoom(roomId, func(rec *roomRecord) error {
		st := rec.state
		if st.Status == models.RoomEnded {
			return errRoomEnded()
		}
		p, err := playerSeat(st, ref)
		if err != nil {
			return err
		}
		if p.PlayerId != st.HostPlayerId {
			return errInvalidAction("only the host can start the game")
		}
		if st.Status != models.RoomWaiting {
			return errInvalidAction("the game has already started")
		}
		connected := connectedSeats(st)
		if len(connected) < 2 {
			return errGameNotReady()
		}
		for _, seat := range connected {
			if !seat.Ready {
				return newError(models.ErrGameNotReady, "every player must be ready")
			}
		}
		for _, seat := range inPlaySeats(st) {
			if seat.SelectedCharacterId == "" {
				return newError(models.ErrGameNotReady, "every player must choose a character")
			}
		}

		st.Status = models.RoomInGame
		st.TurnSeq = 0
		st.LastRoll = nil
		for _, seat := range inPlaySeats(st) {
			seat.Cash = st.InitialCash
			seat.Position = board.StartIndex
			seat.Effects = models.Effects{}
			seat.Items = map[models.ItemId]int{}
		}
		st.CurrentTurnPlayerId = connected[0].PlayerId
		st.Phase = models.PhaseRolling
		m.logf(rec, "the game has started, %s rolls first", connected[0].Nickname)
		ack = models.ActionAck{Ok: true, RoomId: roomId, PlayerId: p.PlayerId, Action: "start_game"}
		return nil
	})
	if err == nil {
		m.log.WithField("room_id", roomId).Info("game started")
	}
	return ack, err
}

// CloseRoom destroys a room regardless of its participants.
func (m *Manager) CloseRoom(roomId string) error {
	rec := m.room(NormalizeRoomId(roomId))
	if rec == nil {
		return errRoomNotFound()
	}
	rec.mu.Lock()
	m.destroyLocked(rec)
	rec.mu.Unlock()
	m.forget(rec)
	return nil
}

// Snapshot returns a deep copy of a room's state.
func (m *Manager) Snapshot(roomId string) (*models.Room, bool) {
	rec := m.room(NormalizeRoomId(roomId))
	if rec == nil {
		return nil, false
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.destroyed {
		return nil, false
	}
	return cloneRoom(rec.state), true
}

// Rooms lists a summary of every live room.
func (m *Manager) Rooms() []models.RoomSummary {
	m.mu.RLock()
	recs := make([]*roomRecord, 0, len(m.rooms))
	for _, rec := range m.rooms {
		recs = append(recs, rec)
	}
	m.mu.RUnlock()

	out := make([]models.RoomSummary, 0, len(recs))
	for _, rec := range recs {
		rec.mu.Lock()
		if !rec.destroyed {
			st := rec.state
			out = append(out, models.RoomSummary{
				RoomId:      st.RoomId,
				Status:      st.Status,
				Players:     len(inPlaySeats(st)),
				Connected:   len(connectedSeats(st)),
				Spectators:  len(st.Spectators),
				InitialCash: st.InitialCash,
			})
		}
		rec.mu.Unlock()
	}
	return out
}

func StaticConfig() models.StaticConfigEvent {
	return models.StaticConfigEvent{BoardId: board.BoardId, Tiles: board.Properties()}
}

func validCharacter(id string) bool {
	for _, c := range Characters {
		if c == id {
			return true
		}
	}
	return false
}

func inPlaySeats(st *models.Room) []*models.Player {
	var out []*models.Player
	for _, p := range st.Players {
		if p.InPlay() {
			out = append(out, p)
		}
	}
	return out
}

func connectedSeats(st *models.Room) []*models.Player {
	var out []*models.Player
	for _, p := range st.Players {
		if p.InPlay() && p.Connected {
			out = append(out, p)
		}
	}
	return out
}

func connectedParticipants(st *models.Room) int {
	n := len(connectedSeats(st))
	for _, s := range st.Spectators {
		if s.Connected {
			n++
		}
	}
	return n
}

func cloneRoom(st *models.Room) *models.Room {
	c := *st
	c.Players = make([]*models.Player, len(st.Players))
	for i, p := range st.Players {
		cp := *p
		cp.Items = make(map[models.ItemId]int, len(p.Items))
		for k, v := range p.Items {
			cp.Items[k] = v
		}
		c.Players[i] = &cp
	}
	c.Spectators = make([]*models.Spectator, len(st.Spectators))
	for i, s := range st.Spectators {
		cs := *s
		c.Spectators[i] = &cs
	}
	c.Board = make([]*models.Tile, len(st.Board))
	for i, t := range st.Board {
		ct := *t
		c.Board[i] = &ct
	}
	if st.PendingBuyTileIndex != nil {
		idx := *st.PendingBuyTileIndex
		c.PendingBuyTileIndex = &idx
	}
	if st.PendingAction != nil {
		ga := *st.PendingAction
		if ga.Offer != nil {
			offer := *ga.Offer
			ga.Offer = &offer
		}
		c.PendingAction = &ga
	}
	if st.LastRoll != nil {
		lr := *st.LastRoll
		c.LastRoll = &lr
	}
	c.Logs = append([]string(nil), st.Logs...)
	return &c
}

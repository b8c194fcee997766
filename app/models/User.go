package models

// Admin is the operator account allowed to manage rooms over HTTP.
type Admin struct {
	Username     string
	PasswordHash string
}

type UserDto struct {
	Username string `json:"username"`
	Pass     string `json:"pass"`
}

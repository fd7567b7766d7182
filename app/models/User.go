package models

type User struct {
	Id       string
	Email    string
	Password string // bcrypt hash, never the raw password
}

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

package models

// User - модель пользователя в системе.
//
// ID генерируется базой (BIGSERIAL); запись неизменяема после регистрации.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}

package models

// RefreshToken - долгоживущий непрозрачный токен сессии.
//
// Хранится в БД в открытом виде (unique), ссылается на пользователя.
// Ротации и срока действия нет: каждый логин добавляет новую строку,
// строки удаляются только каскадом вместе с пользователем.
type RefreshToken struct {
	ID     int64
	Token  string
	UserID int64
}

// Package models содержит доменные структуры приложения: администратора,
// пакеты обучения, контент лендинга, подписки и события платёжного провайдера.
package models

// User представляет административную учётную запись.
//
// Username уникален и не меняется после создания, мутации допускаются
// только над PasswordHash (ротация пароля).
type User struct {
	ID           int    // Уникальный идентификатор пользователя
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // bcrypt-хэш пароля, наружу никогда не отдаётся
	Role         string // Роль пользователя, сейчас только admin
}

// PublicUser проекция пользователя без чувствительных полей,
// возвращается клиенту после входа.
type PublicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Public возвращает безопасную проекцию пользователя.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

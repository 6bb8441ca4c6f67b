package models

// Package представляет пакет обучения, продаваемый через платёжный провайдер.
//
// DiscordRoleID это идентификатор роли, выдаваемой покупателю в Discord.
// Поле может быть пустым, тогда оплата пакета не ведёт к выдаче роли.
type Package struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
	DiscordRoleID string   `json:"discord_role_id"`
	PaymentLink   string   `json:"payment_link"`
}

// DummyPackage используется для приёма данных из JSON-запроса админки,
// прежде чем конвертировать их в Package.
type DummyPackage struct {
	Name          string   `json:"name" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
	DiscordRoleID string   `json:"discord_role_id"`
	PaymentLink   string   `json:"payment_link"`
}

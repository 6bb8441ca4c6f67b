package models

import "time"

// SubscriptionStatusActive статус подписки, означающий что роль в Discord
// была выдана в момент записи.
const SubscriptionStatusActive = "active"

// Subscription представляет один оплаченный период доступа для одного
// пользователя Discord.
//
// OrderID это бизнес-ключ мерчанта: повторная доставка уведомления по тому же
// заказу обновляет существующую запись, а не создаёт дубликат. ProductID
// слабая ссылка на Package (NULL после удаления пакета).
type Subscription struct {
	ID            int       `json:"id"`
	OrderID       string    `json:"order_id"`
	PaymentID     string    `json:"payment_id"`
	DiscordID     string    `json:"discord_id"`
	WalletAddress string    `json:"wallet_address"`
	ProductID     *int      `json:"product_id"`
	Status        string    `json:"status"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	CreatedAt     time.Time `json:"created_at"`
}

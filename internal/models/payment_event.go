package models

// PaymentStatusFinished единственный статус провайдера, по которому
// выдаётся право доступа. Остальные статусы подтверждаются без побочных эффектов.
const PaymentStatusFinished = "finished"

// PaymentEvent входящее IPN-уведомление NOWPayments.
//
// Поле order_description провайдер просто транслирует из заказа,
// магазин записывает туда Discord ID покупателя.
type PaymentEvent struct {
	PaymentID     string `json:"payment_id"`
	PaymentStatus string `json:"payment_status"`
	PurchaseID    string `json:"purchase_id"`
	OrderDesc     string `json:"order_description"`
	OrderID       string `json:"order_id"`
	PayAddress    string `json:"pay_address"`
}

// DiscordID возвращает идентификатор пользователя Discord, переданный
// через поле order_description.
func (e *PaymentEvent) DiscordID() string {
	return e.OrderDesc
}

package entities

import "time"

type PaymentMethod string

const (
	PaymentMethodMobileMoney PaymentMethod = "mobile-money"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodCash        PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

const DefaultCurrency = "KES"

type PaymentInfo struct {
	Method            PaymentMethod
	TransactionID     string
	MerchantRequestID string
	ReceiptNumber     string
	Status            PaymentStatus
	Amount            float64
	Currency          string
	PayerPhone        string
	FailureReason     string
	InitiatedAt       *time.Time
	PaidAt            *time.Time
}

// PaymentAttempt привязывает заказ к новому STK push.
// PreviousTransactionID - checkout id, который сейчас записан в заказе (пустой, если push еще не было):
// запись проходит, только если заказ за это время не привязали к другому push.
type PaymentAttempt struct {
	TransactionID         string
	PreviousTransactionID string
	MerchantRequestID     string
	PayerPhone            string
	InitiatedAt           time.Time
}

type PaymentCompletion struct {
	ReceiptNumber string
	Amount        float64
	PayerPhone    string
	PaidAt        time.Time
}

type PaymentFailure struct {
	Reason   string
	FailedAt time.Time
}

// PaymentEvent публикуется после каждого изменения статуса платежа
type PaymentEvent struct {
	OrderID           string
	OrderNumber       string
	CheckoutRequestID string
	Status            PaymentStatus
	ReceiptNumber     string
	Amount            float64
	Reason            string
	OccurredAt        time.Time
}

package handler

import (
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
)

// Order представляет заказ
type Order struct {
	ID                string     `json:"id"`
	OrderNumber       string     `json:"order_number"`
	CustomerID        string     `json:"customer_id"`
	Items             []Item     `json:"items"`
	ShippingAddress   Address    `json:"shipping_address"`
	ItemsPrice        float64    `json:"items_price"`
	TaxPrice          float64    `json:"tax_price"`
	ShippingPrice     float64    `json:"shipping_price"`
	TotalPrice        float64    `json:"total_price"`
	Status            string     `json:"status"`
	EstimatedDelivery time.Time  `json:"estimated_delivery"`
	TrackingNumber    string     `json:"tracking_number,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CancelReason      string     `json:"cancel_reason,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	RefundedAt        *time.Time `json:"refunded_at,omitempty"`
	Payment           Payment    `json:"payment"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Item позиция заказа
type Item struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Unit      string  `json:"unit,omitempty"`
	Image     string  `json:"image,omitempty"`
}

// Address адрес доставки
type Address struct {
	FullName   string `json:"full_name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	County     string `json:"county,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Payment информация об оплате
type Payment struct {
	Method            string     `json:"method"`
	TransactionID     string     `json:"transaction_id,omitempty"`
	MerchantRequestID string     `json:"merchant_request_id,omitempty"`
	ReceiptNumber     string     `json:"receipt_number,omitempty"`
	Status            string     `json:"status"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	PayerPhone        string     `json:"payer_phone,omitempty"`
	FailureReason     string     `json:"failure_reason,omitempty"`
	InitiatedAt       *time.Time `json:"initiated_at,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
}

// CreateOrderRequest снимок корзины, из которого создается заказ.
// Тот же формат приходит в топик checkouts.
type CreateOrderRequest struct {
	CustomerID      string  `json:"customer_id" validate:"required"`
	Items           []Item  `json:"items" validate:"required,min=1,dive"`
	ShippingAddress Address `json:"shipping_address" validate:"required"`
	PaymentMethod   string  `json:"payment_method,omitempty" validate:"omitempty,oneof=mobile-money card cash"`
}

// UpdateStatusRequest смена статуса заказа сотрудником
type UpdateStatusRequest struct {
	Status         string `json:"status" validate:"required,oneof=confirmed processing shipped delivered cancelled"`
	TrackingNumber string `json:"tracking_number,omitempty" validate:"required_if=Status shipped"`
}

// CancelOrderRequest отмена заказа
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// InitiatePaymentRequest запуск оплаты через M-Pesa
type InitiatePaymentRequest struct {
	OrderID     string `json:"orderId" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// CallbackAck ответ шлюзу на callback, всегда успешный
type CallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

var callbackAccepted = CallbackAck{ResultCode: 0, ResultDesc: "Accepted"}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Image:     it.Image,
		})
	}

	p := o.Payment
	return Order{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Items:       items,
		ShippingAddress: Address{
			FullName:   o.ShippingAddress.FullName,
			Phone:      o.ShippingAddress.Phone,
			Street:     o.ShippingAddress.Street,
			City:       o.ShippingAddress.City,
			County:     o.ShippingAddress.County,
			PostalCode: o.ShippingAddress.PostalCode,
		},
		ItemsPrice:        o.ItemsPrice,
		TaxPrice:          o.TaxPrice,
		ShippingPrice:     o.ShippingPrice,
		TotalPrice:        o.TotalPrice,
		Status:            o.Status.String(),
		EstimatedDelivery: o.EstimatedDelivery,
		TrackingNumber:    o.TrackingNumber,
		DeliveredAt:       o.DeliveredAt,
		CancelReason:      o.CancelReason,
		CancelledAt:       o.CancelledAt,
		RefundedAt:        o.RefundedAt,
		Payment: Payment{
			Method:            string(p.Method),
			TransactionID:     p.TransactionID,
			MerchantRequestID: p.MerchantRequestID,
			ReceiptNumber:     p.ReceiptNumber,
			Status:            string(p.Status),
			Amount:            p.Amount,
			Currency:          p.Currency,
			PayerPhone:        p.PayerPhone,
			FailureReason:     p.FailureReason,
			InitiatedAt:       p.InitiatedAt,
			PaidAt:            p.PaidAt,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (r CreateOrderRequest) ToEntity() entities.NewOrder {
	items := make([]entities.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Image:     it.Image,
		})
	}

	return entities.NewOrder{
		CustomerID: r.CustomerID,
		Items:      items,
		ShippingAddress: entities.ShippingAddress{
			FullName:   r.ShippingAddress.FullName,
			Phone:      r.ShippingAddress.Phone,
			Street:     r.ShippingAddress.Street,
			City:       r.ShippingAddress.City,
			County:     r.ShippingAddress.County,
			PostalCode: r.ShippingAddress.PostalCode,
		},
		PaymentMethod: entities.PaymentMethod(r.PaymentMethod),
	}
}

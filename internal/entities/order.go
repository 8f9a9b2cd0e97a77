package entities

import (
	"bytes"
	"encoding/gob"
	"time"
)

type ShippingAddress struct {
	FullName   string
	Phone      string
	Street     string
	City       string
	County     string
	PostalCode string
}

type Item struct {
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
	Unit      string
	Image     string
}

type Order struct {
	ID          string
	OrderNumber string
	CustomerID  string

	Items           []Item
	ShippingAddress ShippingAddress

	ItemsPrice    float64
	TaxPrice      float64
	ShippingPrice float64
	TotalPrice    float64

	Status            OrderStatus
	EstimatedDelivery time.Time
	TrackingNumber    string
	DeliveredAt       *time.Time

	CancelReason string
	CancelledAt  *time.Time
	RefundedAt   *time.Time

	// платеж хранится внутри заказа, отдельной коллекции нет
	Payment PaymentInfo

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder данные корзины, из которых создается заказ
type NewOrder struct {
	CustomerID      string
	Items           []Item
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
}

type StatusUpdate struct {
	From           OrderStatus
	To             OrderStatus
	TrackingNumber string
	CancelReason   string
	At             time.Time
	// Refund помечает оплаченный платеж как возвращенный (отмена оплаченного заказа)
	Refund bool
}

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(o); err != nil {
		return ErrInvalidOrder
	}
	return nil
}

func init() {
	gob.Register(Order{})
	gob.Register(ShippingAddress{})
	gob.Register(PaymentInfo{})
	gob.Register(Item{})
}

package repo

import (
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
)

// документ заказа в коллекции orders
type orderDocument struct {
	ID          string `bson:"_id"`
	OrderNumber string `bson:"orderNumber"`
	CustomerID  string `bson:"customerId"`

	Items           []itemDocument  `bson:"items"`
	ShippingAddress addressDocument `bson:"shippingAddress"`

	ItemsPrice    float64 `bson:"itemsPrice"`
	TaxPrice      float64 `bson:"taxPrice"`
	ShippingPrice float64 `bson:"shippingPrice"`
	TotalPrice    float64 `bson:"totalPrice"`

	Status            string     `bson:"status"`
	EstimatedDelivery time.Time  `bson:"estimatedDelivery"`
	TrackingNumber    string     `bson:"trackingNumber,omitempty"`
	DeliveredAt       *time.Time `bson:"deliveredAt,omitempty"`
	CancelReason      string     `bson:"cancelReason,omitempty"`
	CancelledAt       *time.Time `bson:"cancelledAt,omitempty"`
	RefundedAt        *time.Time `bson:"refundedAt,omitempty"`

	PaymentInfo paymentDocument `bson:"paymentInfo"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type itemDocument struct {
	ProductID string  `bson:"product"`
	Name      string  `bson:"name"`
	UnitPrice float64 `bson:"price"`
	Quantity  int     `bson:"quantity"`
	Unit      string  `bson:"unit,omitempty"`
	Image     string  `bson:"image,omitempty"`
}

type addressDocument struct {
	FullName   string `bson:"fullName"`
	Phone      string `bson:"phone"`
	Street     string `bson:"street"`
	City       string `bson:"city"`
	County     string `bson:"county,omitempty"`
	PostalCode string `bson:"postalCode,omitempty"`
}

// transactionId без omitempty сломал бы уникальный sparse индекс
type paymentDocument struct {
	Method            string     `bson:"method"`
	TransactionID     string     `bson:"transactionId,omitempty"`
	MerchantRequestID string     `bson:"merchantRequestId,omitempty"`
	ReceiptNumber     string     `bson:"receiptNumber,omitempty"`
	Status            string     `bson:"status"`
	Amount            float64    `bson:"amount"`
	Currency          string     `bson:"currency"`
	PayerPhone        string     `bson:"payerPhone,omitempty"`
	FailureReason     string     `bson:"failureReason,omitempty"`
	InitiatedAt       *time.Time `bson:"initiatedAt,omitempty"`
	PaidAt            *time.Time `bson:"paidAt,omitempty"`
}

func orderToDocument(o entities.Order) orderDocument {
	items := make([]itemDocument, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemDocument{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Image:     it.Image,
		})
	}

	p := o.Payment
	return orderDocument{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Items:       items,
		ShippingAddress: addressDocument{
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
		Status:            string(o.Status),
		EstimatedDelivery: o.EstimatedDelivery,
		TrackingNumber:    o.TrackingNumber,
		DeliveredAt:       o.DeliveredAt,
		CancelReason:      o.CancelReason,
		CancelledAt:       o.CancelledAt,
		RefundedAt:        o.RefundedAt,
		PaymentInfo: paymentDocument{
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

func documentToEntity(d orderDocument) entities.Order {
	items := make([]entities.Item, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entities.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Image:     it.Image,
		})
	}

	p := d.PaymentInfo
	return entities.Order{
		ID:          d.ID,
		OrderNumber: d.OrderNumber,
		CustomerID:  d.CustomerID,
		Items:       items,
		ShippingAddress: entities.ShippingAddress{
			FullName:   d.ShippingAddress.FullName,
			Phone:      d.ShippingAddress.Phone,
			Street:     d.ShippingAddress.Street,
			City:       d.ShippingAddress.City,
			County:     d.ShippingAddress.County,
			PostalCode: d.ShippingAddress.PostalCode,
		},
		ItemsPrice:        d.ItemsPrice,
		TaxPrice:          d.TaxPrice,
		ShippingPrice:     d.ShippingPrice,
		TotalPrice:        d.TotalPrice,
		Status:            entities.OrderStatus(d.Status),
		EstimatedDelivery: d.EstimatedDelivery,
		TrackingNumber:    d.TrackingNumber,
		DeliveredAt:       d.DeliveredAt,
		CancelReason:      d.CancelReason,
		CancelledAt:       d.CancelledAt,
		RefundedAt:        d.RefundedAt,
		Payment: entities.PaymentInfo{
			Method:            entities.PaymentMethod(p.Method),
			TransactionID:     p.TransactionID,
			MerchantRequestID: p.MerchantRequestID,
			ReceiptNumber:     p.ReceiptNumber,
			Status:            entities.PaymentStatus(p.Status),
			Amount:            p.Amount,
			Currency:          p.Currency,
			PayerPhone:        p.PayerPhone,
			FailureReason:     p.FailureReason,
			InitiatedAt:       p.InitiatedAt,
			PaidAt:            p.PaidAt,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
)

var orderColumns = []string{
	"id", "order_number", "customer_id",
	"full_name", "phone", "street", "city", "county", "postal_code",
	"items_price", "tax_price", "shipping_price", "total_price",
	"status", "estimated_delivery", "tracking_number", "delivered_at",
	"cancel_reason", "cancelled_at", "refunded_at",
	"payment_method", "payment_transaction_id", "payment_merchant_request_id",
	"payment_receipt_number", "payment_status", "payment_amount", "payment_currency",
	"payment_payer_phone", "payment_failure_reason", "payment_initiated_at", "payment_paid_at",
	"created_at", "updated_at",
}

var itemColumns = []string{
	"order_id", "position", "product_id", "name", "unit_price", "quantity", "unit", "image",
}

type Order struct {
	ID          string `db:"id"`
	OrderNumber string `db:"order_number"`
	CustomerID  string `db:"customer_id"`

	FullName   string `db:"full_name"`
	Phone      string `db:"phone"`
	Street     string `db:"street"`
	City       string `db:"city"`
	County     string `db:"county"`
	PostalCode string `db:"postal_code"`

	ItemsPrice    float64 `db:"items_price"`
	TaxPrice      float64 `db:"tax_price"`
	ShippingPrice float64 `db:"shipping_price"`
	TotalPrice    float64 `db:"total_price"`

	Status            string         `db:"status"`
	EstimatedDelivery time.Time      `db:"estimated_delivery"`
	TrackingNumber    sql.NullString `db:"tracking_number"`
	DeliveredAt       sql.NullTime   `db:"delivered_at"`
	CancelReason      sql.NullString `db:"cancel_reason"`
	CancelledAt       sql.NullTime   `db:"cancelled_at"`
	RefundedAt        sql.NullTime   `db:"refunded_at"`

	PaymentMethod            string         `db:"payment_method"`
	PaymentTransactionID     sql.NullString `db:"payment_transaction_id"`
	PaymentMerchantRequestID sql.NullString `db:"payment_merchant_request_id"`
	PaymentReceiptNumber     sql.NullString `db:"payment_receipt_number"`
	PaymentStatus            string         `db:"payment_status"`
	PaymentAmount            float64        `db:"payment_amount"`
	PaymentCurrency          string         `db:"payment_currency"`
	PaymentPayerPhone        sql.NullString `db:"payment_payer_phone"`
	PaymentFailureReason     sql.NullString `db:"payment_failure_reason"`
	PaymentInitiatedAt       sql.NullTime   `db:"payment_initiated_at"`
	PaymentPaidAt            sql.NullTime   `db:"payment_paid_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Item struct {
	OrderID   string  `db:"order_id"`
	Position  int     `db:"position"`
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	UnitPrice float64 `db:"unit_price"`
	Quantity  int     `db:"quantity"`
	Unit      string  `db:"unit"`
	Image     string  `db:"image"`
}

func OrderToEntity(o Order, items []Item) entities.Order {
	order := entities.Order{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		ShippingAddress: entities.ShippingAddress{
			FullName:   o.FullName,
			Phone:      o.Phone,
			Street:     o.Street,
			City:       o.City,
			County:     o.County,
			PostalCode: o.PostalCode,
		},
		ItemsPrice:        o.ItemsPrice,
		TaxPrice:          o.TaxPrice,
		ShippingPrice:     o.ShippingPrice,
		TotalPrice:        o.TotalPrice,
		Status:            entities.OrderStatus(o.Status),
		EstimatedDelivery: o.EstimatedDelivery,
		TrackingNumber:    nullStringToString(o.TrackingNumber),
		DeliveredAt:       nullTimeToPtr(o.DeliveredAt),
		CancelReason:      nullStringToString(o.CancelReason),
		CancelledAt:       nullTimeToPtr(o.CancelledAt),
		RefundedAt:        nullTimeToPtr(o.RefundedAt),
		Payment: entities.PaymentInfo{
			Method:            entities.PaymentMethod(o.PaymentMethod),
			TransactionID:     nullStringToString(o.PaymentTransactionID),
			MerchantRequestID: nullStringToString(o.PaymentMerchantRequestID),
			ReceiptNumber:     nullStringToString(o.PaymentReceiptNumber),
			Status:            entities.PaymentStatus(o.PaymentStatus),
			Amount:            o.PaymentAmount,
			Currency:          o.PaymentCurrency,
			PayerPhone:        nullStringToString(o.PaymentPayerPhone),
			FailureReason:     nullStringToString(o.PaymentFailureReason),
			InitiatedAt:       nullTimeToPtr(o.PaymentInitiatedAt),
			PaidAt:            nullTimeToPtr(o.PaymentPaidAt),
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}

	order.Items = make([]entities.Item, 0, len(items))
	for _, it := range items {
		order.Items = append(order.Items, entities.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Image:     it.Image,
		})
	}

	return order
}

func orderValues(o entities.Order) []any {
	p := o.Payment
	return []any{
		o.ID, o.OrderNumber, o.CustomerID,
		o.ShippingAddress.FullName, o.ShippingAddress.Phone, o.ShippingAddress.Street,
		o.ShippingAddress.City, o.ShippingAddress.County, o.ShippingAddress.PostalCode,
		o.ItemsPrice, o.TaxPrice, o.ShippingPrice, o.TotalPrice,
		string(o.Status), o.EstimatedDelivery, nullString(o.TrackingNumber), nullTime(o.DeliveredAt),
		nullString(o.CancelReason), nullTime(o.CancelledAt), nullTime(o.RefundedAt),
		string(p.Method), nullString(p.TransactionID), nullString(p.MerchantRequestID),
		nullString(p.ReceiptNumber), string(p.Status), p.Amount, p.Currency,
		nullString(p.PayerPhone), nullString(p.FailureReason), nullTime(p.InitiatedAt), nullTime(p.PaidAt),
		o.CreatedAt, o.UpdatedAt,
	}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullTimeToPtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

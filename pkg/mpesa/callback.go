package mpesa

import (
	"strconv"
	"time"
)

// CallbackEnvelope тело запроса, которым шлюз сообщает результат STK push
type CallbackEnvelope struct {
	Body struct {
		StkCallback Callback `json:"stkCallback"`
	} `json:"Body"`
}

type Callback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        ResultCode        `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

type MetadataItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value,omitempty"`
}

// TimeoutNotification приходит, если покупатель не ответил на запрос на телефоне
type TimeoutNotification struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultDesc        string `json:"ResultDesc,omitempty"`
}

type PaymentDetails struct {
	Amount          float64
	ReceiptNumber   string
	TransactionDate time.Time
	PhoneNumber     string
}

func (c Callback) Details() PaymentDetails {
	var d PaymentDetails
	if c.CallbackMetadata == nil {
		return d
	}

	for _, it := range c.CallbackMetadata.Item {
		switch it.Name {
		case "Amount":
			if v, ok := it.Value.(float64); ok {
				d.Amount = v
			}
		case "MpesaReceiptNumber":
			d.ReceiptNumber = valueString(it.Value)
		case "PhoneNumber":
			d.PhoneNumber = valueString(it.Value)
		case "TransactionDate":
			if t, err := time.ParseInLocation(timestampLayout, valueString(it.Value), eat); err == nil {
				d.TransactionDate = t
			}
		}
	}
	return d
}

func valueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

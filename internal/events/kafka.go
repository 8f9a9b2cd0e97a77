package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/config"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"

	"github.com/segmentio/kafka-go"
)

const (
	publishAttempts     = 3
	publishWriteTimeout = time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PaymentMessage формат события в топике платежей
type PaymentMessage struct {
	OrderID           string    `json:"order_id"`
	OrderNumber       string    `json:"order_number"`
	CheckoutRequestID string    `json:"checkout_request_id,omitempty"`
	Status            string    `json:"status"`
	ReceiptNumber     string    `json:"receipt_number,omitempty"`
	Amount            float64   `json:"amount"`
	Reason            string    `json:"reason,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(cfg config.Kafka) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.PaymentsTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: cfg.BatchTimeout,
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  publishAttempts,
			WriteTimeout: publishWriteTimeout,
		},
	}
}

// PublishPaymentEvent пишет событие с ключом order id, чтобы события заказа шли по порядку
func (p *KafkaPublisher) PublishPaymentEvent(ctx context.Context, e entities.PaymentEvent) error {
	value, err := json.Marshal(PaymentMessage{
		OrderID:           e.OrderID,
		OrderNumber:       e.OrderNumber,
		CheckoutRequestID: e.CheckoutRequestID,
		Status:            string(e.Status),
		ReceiptNumber:     e.ReceiptNumber,
		Amount:            e.Amount,
		Reason:            e.Reason,
		OccurredAt:        e.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payment event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("payment." + string(e.Status))},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/trm"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/utils"

	"github.com/google/uuid"
)

const (
	orderNumberAttempts = 3
	publishTimeout      = 3 * time.Second

	DefaultListLimit = 20
	MaxListLimit     = 100
)

type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	GetOrderByTransactionID(ctx context.Context, txID string) (entities.Order, error)
	ListOrders(ctx context.Context, customerID string, limit int) ([]entities.Order, error)
	ListPendingPayments(ctx context.Context, initiatedBefore time.Time, limit int) ([]entities.Order, error)

	// Условные обновления: возвращают false, если платеж уже не в подходящем статусе
	SetPaymentTransaction(ctx context.Context, orderID string, a entities.PaymentAttempt) error
	CompletePayment(ctx context.Context, txID string, c entities.PaymentCompletion) (bool, error)
	FailPayment(ctx context.Context, txID string, f entities.PaymentFailure) (bool, error)

	UpdateOrderStatus(ctx context.Context, orderID string, u entities.StatusUpdate) error
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, e entities.PaymentEvent) error
}

var retryConfig = utils.RetryConfig{
	InitialDelay: 100 * time.Millisecond,
	MaxAttempts:  5,
	Multiplier:   2,
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	events    EventPublisher
	now       func() time.Time
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, cache Cache, events EventPublisher) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
		events:    events,
		now:       time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, n entities.NewOrder) (entities.Order, error) {
	if err := n.Validate(); err != nil {
		return entities.Order{}, err
	}

	now := s.now().UTC()
	prices := entities.ComputePrices(n.Items)

	method := n.PaymentMethod
	if method == "" {
		method = entities.PaymentMethodMobileMoney
	}

	order := entities.Order{
		ID:                uuid.NewString(),
		CustomerID:        n.CustomerID,
		Items:             n.Items,
		ShippingAddress:   n.ShippingAddress,
		ItemsPrice:        prices.Items,
		TaxPrice:          prices.Tax,
		ShippingPrice:     prices.Shipping,
		TotalPrice:        prices.Total,
		Status:            entities.OrderStatusPending,
		EstimatedDelivery: now.Add(entities.DeliveryWindow),
		Payment: entities.PaymentInfo{
			Method:   method,
			Status:   entities.PaymentStatusPending,
			Amount:   prices.Total,
			Currency: entities.DefaultCurrency,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	var err error
	for range orderNumberAttempts {
		order.OrderNumber, err = entities.GenerateOrderNumber(now)
		if err != nil {
			return entities.Order{}, err
		}

		err = utils.Retry(ctx, retryConfig, func() error {
			return s.txManager.Do(ctx, func(ctx context.Context) error {
				return s.repo.CreateOrder(ctx, order)
			})
		}, entities.ErrDuplicateOrder)

		if !errors.Is(err, entities.ErrDuplicateOrder) {
			break
		}
		s.logger.Warn("order number collision, regenerating", slog.String("order_number", order.OrderNumber))
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Debug("order created", slog.String("order_id", order.ID), slog.String("order_number", order.OrderNumber))
	s.cacheOrder(ctx, order)
	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	if data, ok := s.cache.Get(ctx, orderID); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err == nil {
			return order, nil
		}
		s.logger.Warn("broken order in cache", slog.String("order_id", orderID))
		s.cache.Delete(ctx, orderID)
	}

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	}
	if err := utils.Retry(ctx, retryConfig, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}

	s.cacheOrder(ctx, order)
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, customerID string, limit int) ([]entities.Order, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	orders, err := s.repo.ListOrders(ctx, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus переводит заказ в следующий статус по таблице переходов
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, to entities.OrderStatus, trackingNumber string) (entities.Order, error) {
	if to == entities.OrderStatusCancelled {
		return s.CancelOrder(ctx, orderID, "")
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if !order.Status.CanTransitionTo(to) {
		return entities.Order{}, fmt.Errorf("%w: %s -> %s", entities.ErrInvalidTransition, order.Status, to)
	}

	update := entities.StatusUpdate{
		From:           order.Status,
		To:             to,
		TrackingNumber: trackingNumber,
		At:             s.now().UTC(),
	}
	if err := s.repo.UpdateOrderStatus(ctx, orderID, update); err != nil {
		return entities.Order{}, err
	}

	s.logger.Info("order status updated",
		slog.String("order_id", orderID),
		slog.String("from", order.Status.String()),
		slog.String("to", to.String()),
	)
	return s.reload(ctx, orderID)
}

// CancelOrder отменяет заказ; оплаченный платеж помечается возвращенным
func (s *orderService) CancelOrder(ctx context.Context, orderID, reason string) (entities.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if !order.Status.Cancellable() {
		return entities.Order{}, fmt.Errorf("%w: status %s", entities.ErrCannotCancel, order.Status)
	}

	now := s.now().UTC()
	refund := order.Payment.Status == entities.PaymentStatusCompleted

	update := entities.StatusUpdate{
		From:         order.Status,
		To:           entities.OrderStatusCancelled,
		CancelReason: reason,
		At:           now,
		Refund:       refund,
	}
	if err := s.repo.UpdateOrderStatus(ctx, orderID, update); err != nil {
		return entities.Order{}, err
	}

	s.logger.Info("order cancelled", slog.String("order_id", orderID), slog.Bool("refund", refund))

	if refund {
		s.publish(ctx, entities.PaymentEvent{
			OrderID:           order.ID,
			OrderNumber:       order.OrderNumber,
			CheckoutRequestID: order.Payment.TransactionID,
			Status:            entities.PaymentStatusRefunded,
			ReceiptNumber:     order.Payment.ReceiptNumber,
			Amount:            order.Payment.Amount,
			Reason:            reason,
			OccurredAt:        now,
		})
	}

	return s.reload(ctx, orderID)
}

// WarmUpCache загружает последние заказы в кеш при старте
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.repo.ListOrders(ctx, "", count)
	if err != nil {
		return fmt.Errorf("failed to warm up cache: %w", err)
	}
	for _, o := range orders {
		s.cacheOrder(ctx, o)
	}
	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

func (s *orderService) reload(ctx context.Context, orderID string) (entities.Order, error) {
	s.cache.Delete(ctx, orderID)

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	s.cacheOrder(ctx, order)
	return order, nil
}

func (s *orderService) cacheOrder(ctx context.Context, order entities.Order) {
	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.String("order_id", order.ID), slog.Any("error", err))
		return
	}
	s.cache.Set(ctx, order.ID, data)
}

func (s *orderService) publish(ctx context.Context, e entities.PaymentEvent) {
	publishEvent(ctx, s.logger, s.events, e)
}

// publishEvent ждет брокер не дольше publishTimeout, отмена входящего запроса на него не влияет
func publishEvent(ctx context.Context, logger *slog.Logger, events EventPublisher, e entities.PaymentEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := events.PublishPaymentEvent(ctx, e); err != nil {
		logger.Error("failed to publish payment event",
			slog.String("order_id", e.OrderID),
			slog.String("status", string(e.Status)),
			slog.Any("error", err),
		)
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/mpesa"

	"golang.org/x/sync/singleflight"
)

const (
	timeoutReason = "timeout"

	// promptWindow - сколько живет STK push на телефоне покупателя.
	// Пока он не истек, новый push для того же заказа не отправляется.
	promptWindow = 5 * time.Minute
)

type Gateway interface {
	InitiatePush(ctx context.Context, r mpesa.PushRequest) (mpesa.PushResponse, error)
	QueryStatus(ctx context.Context, checkoutRequestID string) (mpesa.StatusResponse, error)
}

type paymentService struct {
	logger      *slog.Logger
	repo        OrderRepo
	gateway     Gateway
	orderCache  Cache
	statusCache Cache
	events      EventPublisher
	queries     singleflight.Group
	now         func() time.Time
}

func NewPaymentService(
	logger *slog.Logger,
	repo OrderRepo,
	gateway Gateway,
	orderCache Cache,
	statusCache Cache,
	events EventPublisher,
) *paymentService {
	return &paymentService{
		logger:      logger.With(slog.String("service", "payment")),
		repo:        repo,
		gateway:     gateway,
		orderCache:  orderCache,
		statusCache: statusCache,
		events:      events,
		now:         time.Now,
	}
}

// Initiate отправляет STK push на телефон покупателя и привязывает его к заказу.
// Заказ меняется только после успешного ответа шлюза.
func (s *paymentService) Initiate(ctx context.Context, orderID, phone string) (mpesa.PushResponse, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return mpesa.PushResponse{}, err
	}

	if !payable(order) {
		return mpesa.PushResponse{}, fmt.Errorf("%w: order %s, payment %s",
			entities.ErrOrderNotPayable, order.Status, order.Payment.Status)
	}

	msisdn, err := mpesa.NormalizePhone(phone)
	if err != nil {
		return mpesa.PushResponse{}, err
	}

	if err := s.settlePreviousPush(ctx, order); err != nil {
		return mpesa.PushResponse{}, err
	}

	resp, err := s.gateway.InitiatePush(ctx, mpesa.PushRequest{
		Phone:       msisdn,
		Amount:      order.TotalPrice,
		Reference:   order.OrderNumber,
		Description: "Payment for order " + order.OrderNumber,
	})
	if err != nil {
		return mpesa.PushResponse{}, fmt.Errorf("failed to initiate stk push: %w", err)
	}

	now := s.now().UTC()
	attempt := entities.PaymentAttempt{
		TransactionID:         resp.CheckoutRequestID,
		PreviousTransactionID: order.Payment.TransactionID,
		MerchantRequestID:     resp.MerchantRequestID,
		PayerPhone:            msisdn,
		InitiatedAt:           now,
	}
	if err := s.repo.SetPaymentTransaction(ctx, order.ID, attempt); err != nil {
		s.logger.Error("stk push sent but not recorded",
			slog.String("order_id", order.ID),
			slog.String("checkout_request_id", resp.CheckoutRequestID),
			slog.Any("error", err),
		)
		return mpesa.PushResponse{}, fmt.Errorf("failed to record payment attempt: %w", err)
	}
	s.orderCache.Delete(ctx, order.ID)

	s.logger.Info("stk push initiated",
		slog.String("order_id", order.ID),
		slog.String("checkout_request_id", resp.CheckoutRequestID),
	)

	s.publish(ctx, entities.PaymentEvent{
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		CheckoutRequestID: resp.CheckoutRequestID,
		Status:            entities.PaymentStatusPending,
		Amount:            order.TotalPrice,
		OccurredAt:        now,
	})

	return resp, nil
}

// settlePreviousPush не дает заменить push, на который покупатель еще может ответить.
// Заменить можно истекший push или push с окончательным статусом у шлюза.
func (s *paymentService) settlePreviousPush(ctx context.Context, order entities.Order) error {
	p := order.Payment
	if p.Status != entities.PaymentStatusPending || p.TransactionID == "" {
		return nil
	}
	if p.InitiatedAt != nil && s.now().Sub(*p.InitiatedAt) >= promptWindow {
		return nil
	}

	logger := s.logger.With(
		slog.String("checkout_request_id", p.TransactionID),
		slog.String("source", "initiate"),
	)

	res, err := s.gateway.QueryStatus(ctx, p.TransactionID)
	if err != nil {
		logger.Warn("failed to query previous stk push", slog.Any("error", err))
		return fmt.Errorf("%w: stk push %s is still awaiting the customer", entities.ErrOrderNotPayable, p.TransactionID)
	}

	switch res.ResultCode.Outcome() {
	case mpesa.OutcomeFailed:
		return s.fail(ctx, logger, order, res.ResultDesc)
	case mpesa.OutcomeSuccess:
		if err := s.complete(ctx, logger, order, mpesa.PaymentDetails{Amount: order.TotalPrice}); err != nil {
			return err
		}
		return fmt.Errorf("%w: order %s is already paid", entities.ErrOrderNotPayable, order.ID)
	default:
		return fmt.Errorf("%w: stk push %s is still awaiting the customer", entities.ErrOrderNotPayable, p.TransactionID)
	}
}

// QueryStatus спрашивает шлюз о статусе STK push. Одновременные запросы
// по одному checkout id схлопываются, ответ коротко кешируется.
func (s *paymentService) QueryStatus(ctx context.Context, checkoutRequestID string) (mpesa.StatusResponse, error) {
	if data, ok := s.statusCache.Get(ctx, checkoutRequestID); ok {
		var res mpesa.StatusResponse
		if err := json.Unmarshal(data, &res); err == nil {
			return res, nil
		}
	}

	v, err, _ := s.queries.Do(checkoutRequestID, func() (any, error) {
		return s.gateway.QueryStatus(ctx, checkoutRequestID)
	})
	if err != nil {
		return mpesa.StatusResponse{}, err
	}

	res := v.(mpesa.StatusResponse)
	if data, err := json.Marshal(res); err == nil {
		s.statusCache.Set(ctx, checkoutRequestID, data)
	}
	return res, nil
}

// HandleCallback применяет результат STK push к заказу.
// Неизвестный checkout id и повторные уведомления не меняют состояние.
func (s *paymentService) HandleCallback(ctx context.Context, cb mpesa.Callback) error {
	logger := s.logger.With(
		slog.String("checkout_request_id", cb.CheckoutRequestID),
		slog.String("result_code", string(cb.ResultCode)),
	)

	if cb.CheckoutRequestID == "" {
		logger.Warn("callback without checkout request id")
		return nil
	}

	order, err := s.repo.GetOrderByTransactionID(ctx, cb.CheckoutRequestID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		logger.Warn("callback for unknown checkout request")
		return nil
	}
	if err != nil {
		return err
	}

	if cb.ResultCode.Outcome() == mpesa.OutcomeSuccess {
		return s.complete(ctx, logger, order, cb.Details())
	}

	reason := cb.ResultDesc
	if reason == "" {
		reason = "result code " + string(cb.ResultCode)
	}
	return s.fail(ctx, logger, order, reason)
}

// HandleTimeout вызывается, когда покупатель не ответил на запрос
func (s *paymentService) HandleTimeout(ctx context.Context, checkoutRequestID string) error {
	logger := s.logger.With(slog.String("checkout_request_id", checkoutRequestID))

	if checkoutRequestID == "" {
		logger.Warn("timeout without checkout request id")
		return nil
	}

	order, err := s.repo.GetOrderByTransactionID(ctx, checkoutRequestID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		logger.Warn("timeout for unknown checkout request")
		return nil
	}
	if err != nil {
		return err
	}

	return s.fail(ctx, logger, order, timeoutReason)
}

// PendingPayments возвращает платежи, по которым нет ответа дольше olderThan
func (s *paymentService) PendingPayments(ctx context.Context, olderThan time.Duration, limit int) ([]entities.Order, error) {
	return s.repo.ListPendingPayments(ctx, s.now().Add(-olderThan), limit)
}

// Reconcile опрашивает шлюз по зависшему платежу и применяет окончательный результат.
// Возвращает false, если шлюз еще не знает итог.
func (s *paymentService) Reconcile(ctx context.Context, order entities.Order) (bool, error) {
	txID := order.Payment.TransactionID
	logger := s.logger.With(
		slog.String("checkout_request_id", txID),
		slog.String("source", "reconciler"),
	)

	res, err := s.gateway.QueryStatus(ctx, txID)
	if err != nil {
		return false, fmt.Errorf("failed to query status of %s: %w", txID, err)
	}

	switch res.ResultCode.Outcome() {
	case mpesa.OutcomeSuccess:
		return true, s.complete(ctx, logger, order, mpesa.PaymentDetails{Amount: order.TotalPrice})
	case mpesa.OutcomeFailed:
		return true, s.fail(ctx, logger, order, res.ResultDesc)
	default:
		return false, nil
	}
}

func (s *paymentService) complete(ctx context.Context, logger *slog.Logger, order entities.Order, d mpesa.PaymentDetails) error {
	txID := order.Payment.TransactionID
	now := s.now().UTC()

	completion := entities.PaymentCompletion{
		ReceiptNumber: d.ReceiptNumber,
		Amount:        d.Amount,
		PayerPhone:    d.PhoneNumber,
		PaidAt:        now,
	}
	if completion.Amount == 0 {
		completion.Amount = order.TotalPrice
	}
	if completion.PayerPhone == "" {
		completion.PayerPhone = order.Payment.PayerPhone
	}

	applied, err := s.repo.CompletePayment(ctx, txID, completion)
	if err != nil {
		return err
	}
	s.invalidate(ctx, order.ID, txID)

	if !applied {
		logger.Info("duplicate callback ignored", slog.String("payment_status", string(order.Payment.Status)))
		return nil
	}

	if math.Ceil(order.TotalPrice) != math.Ceil(completion.Amount) {
		logger.Warn("paid amount differs from order total",
			slog.Float64("paid", completion.Amount),
			slog.Float64("total", order.TotalPrice),
		)
	}
	if order.Status == entities.OrderStatusCancelled {
		logger.Warn("payment completed for cancelled order, refund required", slog.String("order_id", order.ID))
	}

	logger.Info("payment completed", slog.String("order_id", order.ID), slog.String("receipt", completion.ReceiptNumber))

	s.publish(ctx, entities.PaymentEvent{
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		CheckoutRequestID: txID,
		Status:            entities.PaymentStatusCompleted,
		ReceiptNumber:     completion.ReceiptNumber,
		Amount:            completion.Amount,
		OccurredAt:        now,
	})
	return nil
}

func (s *paymentService) fail(ctx context.Context, logger *slog.Logger, order entities.Order, reason string) error {
	txID := order.Payment.TransactionID

	now := s.now().UTC()

	applied, err := s.repo.FailPayment(ctx, txID, entities.PaymentFailure{Reason: reason, FailedAt: now})
	if err != nil {
		return err
	}
	s.invalidate(ctx, order.ID, txID)

	if !applied {
		logger.Info("duplicate callback ignored", slog.String("payment_status", string(order.Payment.Status)))
		return nil
	}

	logger.Info("payment failed", slog.String("order_id", order.ID), slog.String("reason", reason))

	s.publish(ctx, entities.PaymentEvent{
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		CheckoutRequestID: txID,
		Status:            entities.PaymentStatusFailed,
		Amount:            order.TotalPrice,
		Reason:            reason,
		OccurredAt:        now,
	})
	return nil
}

func (s *paymentService) invalidate(ctx context.Context, orderID, txID string) {
	s.orderCache.Delete(ctx, orderID)
	s.statusCache.Delete(ctx, txID)
}

func (s *paymentService) publish(ctx context.Context, e entities.PaymentEvent) {
	publishEvent(ctx, s.logger, s.events, e)
}

func payable(o entities.Order) bool {
	if o.Status == entities.OrderStatusCancelled {
		return false
	}
	switch o.Payment.Status {
	case entities.PaymentStatusCompleted, entities.PaymentStatusRefunded:
		return false
	}
	return true
}

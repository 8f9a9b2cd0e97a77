package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/service"
	mocks "github.com/SergeyBogomolovv/mpesa-checkout/internal/service/mocks"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/mpesa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentService interface {
	Initiate(ctx context.Context, orderID, phone string) (mpesa.PushResponse, error)
	QueryStatus(ctx context.Context, checkoutRequestID string) (mpesa.StatusResponse, error)
	HandleCallback(ctx context.Context, cb mpesa.Callback) error
	HandleTimeout(ctx context.Context, checkoutRequestID string) error
	PendingPayments(ctx context.Context, olderThan time.Duration, limit int) ([]entities.Order, error)
	Reconcile(ctx context.Context, order entities.Order) (bool, error)
}

type paymentDeps struct {
	repo        *mocks.MockOrderRepo
	gateway     *mocks.MockGateway
	orderCache  *mocks.MockCache
	statusCache *mocks.MockCache
	events      *mocks.MockEventPublisher
}

func newPaymentService(t *testing.T) (*paymentDeps, paymentService) {
	t.Helper()

	deps := &paymentDeps{
		repo:        mocks.NewMockOrderRepo(t),
		gateway:     mocks.NewMockGateway(t),
		orderCache:  mocks.NewMockCache(t),
		statusCache: mocks.NewMockCache(t),
		events:      mocks.NewMockEventPublisher(t),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewPaymentService(logger, deps.repo, deps.gateway, deps.orderCache, deps.statusCache, deps.events)
	return deps, svc
}

// expectInvalidate ожидает сброс обоих кешей после изменения платежа
func (d *paymentDeps) expectInvalidate(orderID, txID string) {
	d.orderCache.EXPECT().Delete(mock.Anything, orderID).Return().Once()
	d.statusCache.EXPECT().Delete(mock.Anything, txID).Return().Once()
}

func pendingOrder() entities.Order {
	return entities.Order{
		ID:          "order-1",
		OrderNumber: "ORD260101ABCDEF",
		Status:      entities.OrderStatusPending,
		TotalPrice:  662.6,
		Payment: entities.PaymentInfo{
			Method: entities.PaymentMethodMobileMoney,
			Status: entities.PaymentStatusPending,
			Amount: 662.6,
		},
	}
}

// failure сравнивает причину отказа, время проставляет сервис
func failure(reason string) any {
	return mock.MatchedBy(func(f entities.PaymentFailure) bool {
		return f.Reason == reason && !f.FailedAt.IsZero()
	})
}

func awaitingOrder() entities.Order {
	o := pendingOrder()
	o.Payment.TransactionID = "ws_CO_1"
	o.Payment.PayerPhone = "254712345678"
	return o
}

// promptedOrder ждет ответа покупателя на push, отправленный age назад
func promptedOrder(age time.Duration) entities.Order {
	o := awaitingOrder()
	at := time.Now().Add(-age)
	o.Payment.InitiatedAt = &at
	return o
}

func replacing(prev string) any {
	return mock.MatchedBy(func(a entities.PaymentAttempt) bool {
		return a.TransactionID == "ws_CO_2" && a.PreviousTransactionID == prev
	})
}

func TestPaymentService_Initiate(t *testing.T) {
	type MockBehavior func(d *paymentDeps)

	pushResponse := mpesa.PushResponse{
		MerchantRequestID: "29115-34620561-1",
		CheckoutRequestID: "ws_CO_2",
		ResponseCode:      "0",
		CustomerMessage:   "Success. Request accepted for processing",
	}

	testCases := []struct {
		name         string
		phone        string
		mockBehavior MockBehavior
		wantErr      error
		wantErrAs    any
	}{
		{
			name:  "OK",
			phone: "0712 345 678",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(pendingOrder(), nil).Once()
				d.gateway.EXPECT().
					InitiatePush(mock.Anything, mpesa.PushRequest{
						Phone:       "254712345678",
						Amount:      662.6,
						Reference:   "ORD260101ABCDEF",
						Description: "Payment for order ORD260101ABCDEF",
					}).
					Return(pushResponse, nil).Once()
				d.repo.EXPECT().
					SetPaymentTransaction(mock.Anything, "order-1", mock.MatchedBy(func(a entities.PaymentAttempt) bool {
						return a.TransactionID == "ws_CO_2" && a.PreviousTransactionID == "" && a.MerchantRequestID == "29115-34620561-1" &&
							a.PayerPhone == "254712345678" && !a.InitiatedAt.IsZero()
					})).
					Return(nil).Once()
				d.orderCache.EXPECT().Delete(mock.Anything, "order-1").Return().Once()
				d.events.EXPECT().
					PublishPaymentEvent(mock.Anything, mock.MatchedBy(func(e entities.PaymentEvent) bool {
						return e.Status == entities.PaymentStatusPending && e.CheckoutRequestID == "ws_CO_2" && e.Amount == 662.6
					})).
					Return(nil).Once()
			},
		},
		{
			name:  "retry after failed payment",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				o := awaitingOrder()
				o.Payment.Status = entities.PaymentStatusFailed
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(o, nil).Once()
				d.gateway.EXPECT().InitiatePush(mock.Anything, mock.Anything).Return(pushResponse, nil).Once()
				d.repo.EXPECT().SetPaymentTransaction(mock.Anything, "order-1", replacing("ws_CO_1")).Return(nil).Once()
				d.orderCache.EXPECT().Delete(mock.Anything, "order-1").Return().Once()
				d.events.EXPECT().PublishPaymentEvent(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "previous push still awaiting customer",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(promptedOrder(time.Minute), nil).Once()
				d.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").
					Return(mpesa.StatusResponse{CheckoutRequestID: "ws_CO_1", ResultDesc: "The transaction is being processed"}, nil).Once()
			},
			wantErr: entities.ErrOrderNotPayable,
		},
		{
			name:  "previous push status unavailable",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(promptedOrder(time.Minute), nil).Once()
				d.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").
					Return(mpesa.StatusResponse{}, &mpesa.GatewayError{Op: "query", StatusCode: 503}).Once()
			},
			wantErr: entities.ErrOrderNotPayable,
		},
		{
			name:  "previous push already paid",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(promptedOrder(time.Minute), nil).Once()
				d.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").
					Return(mpesa.StatusResponse{CheckoutRequestID: "ws_CO_1", ResultCode: mpesa.ResultSuccess}, nil).Once()
				d.repo.EXPECT().
					CompletePayment(mock.Anything, "ws_CO_1", mock.MatchedBy(func(c entities.PaymentCompletion) bool {
						return c.Amount == 662.6 && c.PayerPhone == "254712345678"
					})).
					Return(true, nil).Once()
				d.expectInvalidate("order-1", "ws_CO_1")
				d.events.EXPECT().
					PublishPaymentEvent(mock.Anything, mock.MatchedBy(func(e entities.PaymentEvent) bool {
						return e.Status == entities.PaymentStatusCompleted && e.CheckoutRequestID == "ws_CO_1"
					})).
					Return(nil).Once()
			},
			wantErr: entities.ErrOrderNotPayable,
		},
		{
			name:  "previous push failed",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(promptedOrder(time.Minute), nil).Once()
				d.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").
					Return(mpesa.StatusResponse{CheckoutRequestID: "ws_CO_1", ResultCode: "2001", ResultDesc: "Wrong PIN"}, nil).Once()
				d.repo.EXPECT().FailPayment(mock.Anything, "ws_CO_1", failure("Wrong PIN")).Return(true, nil).Once()
				d.expectInvalidate("order-1", "ws_CO_1")
				d.events.EXPECT().
					PublishPaymentEvent(mock.Anything, mock.MatchedBy(func(e entities.PaymentEvent) bool {
						return e.Status == entities.PaymentStatusFailed
					})).
					Return(nil).Once()
				d.gateway.EXPECT().InitiatePush(mock.Anything, mock.Anything).Return(pushResponse, nil).Once()
				d.repo.EXPECT().SetPaymentTransaction(mock.Anything, "order-1", replacing("ws_CO_1")).Return(nil).Once()
				d.orderCache.EXPECT().Delete(mock.Anything, "order-1").Return().Once()
				d.events.EXPECT().
					PublishPaymentEvent(mock.Anything, mock.MatchedBy(func(e entities.PaymentEvent) bool {
						return e.Status == entities.PaymentStatusPending
					})).
					Return(nil).Once()
			},
		},
		{
			name:  "expired push replaced",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(promptedOrder(10*time.Minute), nil).Once()
				d.gateway.EXPECT().InitiatePush(mock.Anything, mock.Anything).Return(pushResponse, nil).Once()
				d.repo.EXPECT().SetPaymentTransaction(mock.Anything, "order-1", replacing("ws_CO_1")).Return(nil).Once()
				d.orderCache.EXPECT().Delete(mock.Anything, "order-1").Return().Once()
				d.events.EXPECT().PublishPaymentEvent(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "order not found",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name:  "already paid",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				o := awaitingOrder()
				o.Payment.Status = entities.PaymentStatusCompleted
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(o, nil).Once()
			},
			wantErr: entities.ErrOrderNotPayable,
		},
		{
			name:  "cancelled order",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				o := pendingOrder()
				o.Status = entities.OrderStatusCancelled
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(o, nil).Once()
			},
			wantErr: entities.ErrOrderNotPayable,
		},
		{
			name:  "invalid phone",
			phone: "12345",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(pendingOrder(), nil).Once()
			},
			wantErr: mpesa.ErrInvalidPhone,
		},
		{
			name:  "gateway rejects push",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(pendingOrder(), nil).Once()
				d.gateway.EXPECT().InitiatePush(mock.Anything, mock.Anything).
					Return(mpesa.PushResponse{}, &mpesa.GatewayError{Op: "push", StatusCode: 500, Message: "Internal error"}).Once()
			},
			wantErrAs: new(*mpesa.GatewayError),
		},
		{
			name:  "gateway auth failure",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(pendingOrder(), nil).Once()
				d.gateway.EXPECT().InitiatePush(mock.Anything, mock.Anything).
					Return(mpesa.PushResponse{}, &mpesa.AuthError{StatusCode: 401, Err: errors.New("bad credentials")}).Once()
			},
			wantErrAs: new(*mpesa.AuthError),
		},
		{
			name:  "order rebound concurrently",
			phone: "254712345678",
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(pendingOrder(), nil).Once()
				d.gateway.EXPECT().InitiatePush(mock.Anything, mock.Anything).Return(pushResponse, nil).Once()
				d.repo.EXPECT().SetPaymentTransaction(mock.Anything, "order-1", mock.Anything).
					Return(entities.ErrOrderNotPayable).Once()
			},
			wantErr: entities.ErrOrderNotPayable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deps, svc := newPaymentService(t)
			tc.mockBehavior(deps)

			res, err := svc.Initiate(context.Background(), "order-1", tc.phone)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.wantErrAs != nil:
				assert.ErrorAs(t, err, tc.wantErrAs)
			default:
				require.NoError(t, err)
				assert.Equal(t, pushResponse, res)
			}
		})
	}
}

func TestPaymentService_QueryStatus(t *testing.T) {
	status := mpesa.StatusResponse{
		ResponseCode:      "0",
		CheckoutRequestID: "ws_CO_1",
		ResultCode:        mpesa.ResultSuccess,
		ResultDesc:        "The service request is processed successfully.",
	}
	cached, err := json.Marshal(status)
	require.NoError(t, err)

	t.Run("from cache", func(t *testing.T) {
		deps, svc := newPaymentService(t)
		deps.statusCache.EXPECT().Get(mock.Anything, "ws_CO_1").Return(cached, true).Once()

		got, err := svc.QueryStatus(context.Background(), "ws_CO_1")
		require.NoError(t, err)
		assert.Equal(t, status, got)
	})

	t.Run("from gateway and cached", func(t *testing.T) {
		deps, svc := newPaymentService(t)
		deps.statusCache.EXPECT().Get(mock.Anything, "ws_CO_1").Return(nil, false).Once()
		deps.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").Return(status, nil).Once()
		deps.statusCache.EXPECT().Set(mock.Anything, "ws_CO_1", cached).Return().Once()

		got, err := svc.QueryStatus(context.Background(), "ws_CO_1")
		require.NoError(t, err)
		assert.Equal(t, status, got)
	})

	t.Run("gateway error is not cached", func(t *testing.T) {
		deps, svc := newPaymentService(t)
		gwErr := &mpesa.GatewayError{Op: "query", StatusCode: 503}
		deps.statusCache.EXPECT().Get(mock.Anything, "ws_CO_1").Return(nil, false).Once()
		deps.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").Return(mpesa.StatusResponse{}, gwErr).Once()

		_, err := svc.QueryStatus(context.Background(), "ws_CO_1")
		assert.ErrorIs(t, err, gwErr)
	})
}

func successCallback() mpesa.Callback {
	return mpesa.Callback{
		MerchantRequestID: "29115-34620561-1",
		CheckoutRequestID: "ws_CO_1",
		ResultCode:        mpesa.ResultSuccess,
		ResultDesc:        "The service request is processed successfully.",
		CallbackMetadata: &mpesa.CallbackMetadata{Item: []mpesa.MetadataItem{
			{Name: "Amount", Value: 663.0},
			{Name: "MpesaReceiptNumber", Value: "NLJ7RT61SV"},
			{Name: "TransactionDate", Value: 20260101120000.0},
			{Name: "PhoneNumber", Value: 254712345678.0},
		}},
	}
}

func TestPaymentService_HandleCallback(t *testing.T) {
	type MockBehavior func(d *paymentDeps)

	dbError := errors.New("db error")

	testCases := []struct {
		name         string
		callback     mpesa.Callback
		mockBehavior MockBehavior
		wantErr      error
	}{
		{
			name:     "success completes payment",
			callback: successCallback(),
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").Return(awaitingOrder(), nil).Once()
				d.repo.EXPECT().
					CompletePayment(mock.Anything, "ws_CO_1", mock.MatchedBy(func(c entities.PaymentCompletion) bool {
						return c.ReceiptNumber == "NLJ7RT61SV" && c.Amount == 663 &&
							c.PayerPhone == "254712345678" && !c.PaidAt.IsZero()
					})).
					Return(true, nil).Once()
				d.expectInvalidate("order-1", "ws_CO_1")
				d.events.EXPECT().
					PublishPaymentEvent(mock.Anything, mock.MatchedBy(func(e entities.PaymentEvent) bool {
						return e.Status == entities.PaymentStatusCompleted && e.ReceiptNumber == "NLJ7RT61SV" && e.OrderID == "order-1"
					})).
					Return(nil).Once()
			},
		},
		{
			name:     "duplicate success is ignored",
			callback: successCallback(),
			mockBehavior: func(d *paymentDeps) {
				o := awaitingOrder()
				o.Payment.Status = entities.PaymentStatusCompleted
				d.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").Return(o, nil).Once()
				d.repo.EXPECT().CompletePayment(mock.Anything, "ws_CO_1", mock.Anything).Return(false, nil).Once()
				d.expectInvalidate("order-1", "ws_CO_1")
			},
		},
		{
			name: "cancelled by user fails payment",
			callback: mpesa.Callback{
				CheckoutRequestID: "ws_CO_1",
				ResultCode:        mpesa.ResultPending,
				ResultDesc:        "Request cancelled by user",
			},
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").Return(awaitingOrder(), nil).Once()
				d.repo.EXPECT().FailPayment(mock.Anything, "ws_CO_1", failure("Request cancelled by user")).Return(true, nil).Once()
				d.expectInvalidate("order-1", "ws_CO_1")
				d.events.EXPECT().
					PublishPaymentEvent(mock.Anything, mock.MatchedBy(func(e entities.PaymentEvent) bool {
						return e.Status == entities.PaymentStatusFailed && e.Reason == "Request cancelled by user"
					})).
					Return(nil).Once()
			},
		},
		{
			name:     "failure without description",
			callback: mpesa.Callback{CheckoutRequestID: "ws_CO_1", ResultCode: "1"},
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").Return(awaitingOrder(), nil).Once()
				d.repo.EXPECT().FailPayment(mock.Anything, "ws_CO_1", failure("result code 1")).Return(true, nil).Once()
				d.expectInvalidate("order-1", "ws_CO_1")
				d.events.EXPECT().PublishPaymentEvent(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:     "late failure after success is ignored",
			callback: mpesa.Callback{CheckoutRequestID: "ws_CO_1", ResultCode: "2001", ResultDesc: "Wrong PIN"},
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").Return(awaitingOrder(), nil).Once()
				d.repo.EXPECT().FailPayment(mock.Anything, "ws_CO_1", failure("Wrong PIN")).Return(false, nil).Once()
				d.expectInvalidate("order-1", "ws_CO_1")
			},
		},
		{
			name:     "unknown checkout request",
			callback: successCallback(),
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
		},
		{
			name:         "empty checkout request id",
			callback:     mpesa.Callback{ResultCode: mpesa.ResultSuccess},
			mockBehavior: func(_ *paymentDeps) {},
		},
		{
			name:     "repo error",
			callback: successCallback(),
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").Return(entities.Order{}, dbError).Once()
			},
			wantErr: dbError,
		},
		{
			name:     "publish failure does not fail callback",
			callback: successCallback(),
			mockBehavior: func(d *paymentDeps) {
				d.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").Return(awaitingOrder(), nil).Once()
				d.repo.EXPECT().CompletePayment(mock.Anything, "ws_CO_1", mock.Anything).Return(true, nil).Once()
				d.expectInvalidate("order-1", "ws_CO_1")
				d.events.EXPECT().PublishPaymentEvent(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deps, svc := newPaymentService(t)
			tc.mockBehavior(deps)

			err := svc.HandleCallback(context.Background(), tc.callback)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPaymentService_HandleCallback_MissingMetadataUsesOrder(t *testing.T) {
	deps, svc := newPaymentService(t)

	deps.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").Return(awaitingOrder(), nil).Once()
	deps.repo.EXPECT().
		CompletePayment(mock.Anything, "ws_CO_1", mock.MatchedBy(func(c entities.PaymentCompletion) bool {
			return c.Amount == 662.6 && c.PayerPhone == "254712345678"
		})).
		Return(true, nil).Once()
	deps.expectInvalidate("order-1", "ws_CO_1")
	deps.events.EXPECT().PublishPaymentEvent(mock.Anything, mock.Anything).Return(nil).Once()

	err := svc.HandleCallback(context.Background(), mpesa.Callback{
		CheckoutRequestID: "ws_CO_1",
		ResultCode:        mpesa.ResultSuccess,
	})
	require.NoError(t, err)
}

func TestPaymentService_HandleCallback_PublishOutlivesRequest(t *testing.T) {
	deps, svc := newPaymentService(t)

	ctx, cancel := context.WithCancel(context.Background())

	deps.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").Return(awaitingOrder(), nil).Once()
	deps.repo.EXPECT().CompletePayment(mock.Anything, "ws_CO_1", mock.Anything).
		RunAndReturn(func(context.Context, string, entities.PaymentCompletion) (bool, error) {
			cancel()
			return true, nil
		}).Once()
	deps.expectInvalidate("order-1", "ws_CO_1")
	deps.events.EXPECT().PublishPaymentEvent(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ entities.PaymentEvent) error {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok, "publish must be bounded")
			assert.WithinDuration(t, time.Now(), deadline, 5*time.Second)
			assert.NoError(t, ctx.Err())
			return context.DeadlineExceeded
		}).Once()

	err := svc.HandleCallback(ctx, mpesa.Callback{
		CheckoutRequestID: "ws_CO_1",
		ResultCode:        mpesa.ResultSuccess,
	})
	require.NoError(t, err)
}

func TestPaymentService_HandleTimeout(t *testing.T) {
	t.Run("marks payment failed", func(t *testing.T) {
		deps, svc := newPaymentService(t)
		deps.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_1").Return(awaitingOrder(), nil).Once()
		deps.repo.EXPECT().FailPayment(mock.Anything, "ws_CO_1", failure("timeout")).Return(true, nil).Once()
		deps.expectInvalidate("order-1", "ws_CO_1")
		deps.events.EXPECT().
			PublishPaymentEvent(mock.Anything, mock.MatchedBy(func(e entities.PaymentEvent) bool {
				return e.Status == entities.PaymentStatusFailed && e.Reason == "timeout"
			})).
			Return(nil).Once()

		require.NoError(t, svc.HandleTimeout(context.Background(), "ws_CO_1"))
	})

	t.Run("unknown checkout request", func(t *testing.T) {
		deps, svc := newPaymentService(t)
		deps.repo.EXPECT().GetOrderByTransactionID(mock.Anything, "ws_CO_404").
			Return(entities.Order{}, entities.ErrOrderNotFound).Once()

		require.NoError(t, svc.HandleTimeout(context.Background(), "ws_CO_404"))
	})

	t.Run("empty checkout request id", func(t *testing.T) {
		_, svc := newPaymentService(t)
		require.NoError(t, svc.HandleTimeout(context.Background(), ""))
	})
}

func TestPaymentService_PendingPayments(t *testing.T) {
	deps, svc := newPaymentService(t)

	before := time.Now()
	orders := []entities.Order{awaitingOrder()}
	deps.repo.EXPECT().
		ListPendingPayments(mock.Anything, mock.MatchedBy(func(ts time.Time) bool {
			return !ts.After(before.Add(-10*time.Minute).Add(time.Second))
		}), 50).
		Return(orders, nil).Once()

	got, err := svc.PendingPayments(context.Background(), 10*time.Minute, 50)
	require.NoError(t, err)
	assert.Equal(t, orders, got)
}

func TestPaymentService_Reconcile(t *testing.T) {
	type MockBehavior func(d *paymentDeps)

	testCases := []struct {
		name         string
		mockBehavior MockBehavior
		wantDone     bool
		wantErr      bool
	}{
		{
			name: "success",
			mockBehavior: func(d *paymentDeps) {
				d.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").
					Return(mpesa.StatusResponse{ResultCode: mpesa.ResultSuccess}, nil).Once()
				d.repo.EXPECT().
					CompletePayment(mock.Anything, "ws_CO_1", mock.MatchedBy(func(c entities.PaymentCompletion) bool {
						return c.Amount == 662.6
					})).
					Return(true, nil).Once()
				d.expectInvalidate("order-1", "ws_CO_1")
				d.events.EXPECT().PublishPaymentEvent(mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantDone: true,
		},
		{
			name: "failed",
			mockBehavior: func(d *paymentDeps) {
				d.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").
					Return(mpesa.StatusResponse{ResultCode: "1037", ResultDesc: "DS timeout user cannot be reached"}, nil).Once()
				d.repo.EXPECT().FailPayment(mock.Anything, "ws_CO_1", failure("DS timeout user cannot be reached")).Return(true, nil).Once()
				d.expectInvalidate("order-1", "ws_CO_1")
				d.events.EXPECT().PublishPaymentEvent(mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantDone: true,
		},
		{
			name: "still processing",
			mockBehavior: func(d *paymentDeps) {
				d.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").
					Return(mpesa.StatusResponse{ResultCode: mpesa.ResultPending}, nil).Once()
			},
		},
		{
			name: "no result yet",
			mockBehavior: func(d *paymentDeps) {
				d.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").
					Return(mpesa.StatusResponse{ResponseCode: "0"}, nil).Once()
			},
		},
		{
			name: "gateway error",
			mockBehavior: func(d *paymentDeps) {
				d.gateway.EXPECT().QueryStatus(mock.Anything, "ws_CO_1").
					Return(mpesa.StatusResponse{}, &mpesa.GatewayError{Op: "query", StatusCode: 500}).Once()
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deps, svc := newPaymentService(t)
			tc.mockBehavior(deps)

			done, err := svc.Reconcile(context.Background(), awaitingOrder())

			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDone, done)
		})
	}
}

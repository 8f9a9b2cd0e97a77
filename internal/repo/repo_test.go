package repo

import (
	"context"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	GetOrderByTransactionID(ctx context.Context, txID string) (entities.Order, error)
	ListOrders(ctx context.Context, customerID string, limit int) ([]entities.Order, error)
	ListPendingPayments(ctx context.Context, initiatedBefore time.Time, limit int) ([]entities.Order, error)
	SetPaymentTransaction(ctx context.Context, orderID string, a entities.PaymentAttempt) error
	CompletePayment(ctx context.Context, txID string, c entities.PaymentCompletion) (bool, error)
	FailPayment(ctx context.Context, txID string, f entities.PaymentFailure) (bool, error)
	UpdateOrderStatus(ctx context.Context, orderID string, u entities.StatusUpdate) error
}

func newTestOrder(customerID, number string, createdAt time.Time) entities.Order {
	items := []entities.Item{
		{ProductID: "p-1", Name: "Sukuma wiki", UnitPrice: 50, Quantity: 4, Unit: "bunch"},
		{ProductID: "p-2", Name: "Milk 500ml", UnitPrice: 65.5, Quantity: 2, Unit: "pack"},
	}
	prices := entities.ComputePrices(items)

	return entities.Order{
		ID:          uuid.NewString(),
		OrderNumber: number,
		CustomerID:  customerID,
		Items:       items,
		ShippingAddress: entities.ShippingAddress{
			FullName: "Jane Wanjiru",
			Phone:    "254712345678",
			Street:   "Moi Avenue 12",
			City:     "Nairobi",
		},
		ItemsPrice:        prices.Items,
		TaxPrice:          prices.Tax,
		ShippingPrice:     prices.Shipping,
		TotalPrice:        prices.Total,
		Status:            entities.OrderStatusPending,
		EstimatedDelivery: createdAt.Add(entities.DeliveryWindow),
		Payment: entities.PaymentInfo{
			Method:   entities.PaymentMethodMobileMoney,
			Status:   entities.PaymentStatusPending,
			Amount:   prices.Total,
			Currency: entities.DefaultCurrency,
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func attempt(txID string, at time.Time) entities.PaymentAttempt {
	return entities.PaymentAttempt{
		TransactionID:     txID,
		MerchantRequestID: "mr-" + txID,
		PayerPhone:        "254712345678",
		InitiatedAt:       at,
	}
}

func runRepoSuite(t *testing.T, newRepo func(t *testing.T) orderRepo) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("create and get", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		order := newTestOrder("cust-1", "ORD250101AAAAA1", now)
		require.NoError(t, r.CreateOrder(ctx, order))

		got, err := r.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.OrderNumber, got.OrderNumber)
		assert.Equal(t, order.Items, got.Items)
		assert.Equal(t, order.TotalPrice, got.TotalPrice)
		assert.Equal(t, entities.PaymentStatusPending, got.Payment.Status)
		assert.True(t, order.CreatedAt.Equal(got.CreatedAt))

		_, err = r.GetOrderByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})

	t.Run("duplicate order number", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.CreateOrder(ctx, newTestOrder("cust-1", "ORD250101DUP001", now)))
		err := r.CreateOrder(ctx, newTestOrder("cust-2", "ORD250101DUP001", now))
		assert.ErrorIs(t, err, entities.ErrDuplicateOrder)
	})

	t.Run("list orders by customer", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		older := newTestOrder("cust-list", "ORD250101LIST01", now.Add(-time.Hour))
		newer := newTestOrder("cust-list", "ORD250101LIST02", now)
		other := newTestOrder("cust-other", "ORD250101LIST03", now)
		for _, o := range []entities.Order{older, newer, other} {
			require.NoError(t, r.CreateOrder(ctx, o))
		}

		orders, err := r.ListOrders(ctx, "cust-list", 10)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, newer.ID, orders[0].ID)
		assert.Equal(t, older.ID, orders[1].ID)
		assert.Len(t, orders[0].Items, 2)
	})

	t.Run("payment success confirms order once", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		order := newTestOrder("cust-1", "ORD250101PAY001", now)
		require.NoError(t, r.CreateOrder(ctx, order))
		require.NoError(t, r.SetPaymentTransaction(ctx, order.ID, attempt("ws_CO_1", now)))

		byTx, err := r.GetOrderByTransactionID(ctx, "ws_CO_1")
		require.NoError(t, err)
		assert.Equal(t, order.ID, byTx.ID)

		completion := entities.PaymentCompletion{
			ReceiptNumber: "NLJ7RT61SV",
			Amount:        order.TotalPrice,
			PayerPhone:    "254712345678",
			PaidAt:        now,
		}
		applied, err := r.CompletePayment(ctx, "ws_CO_1", completion)
		require.NoError(t, err)
		assert.True(t, applied)

		got, err := r.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.OrderStatusConfirmed, got.Status)
		assert.Equal(t, entities.PaymentStatusCompleted, got.Payment.Status)
		assert.Equal(t, "NLJ7RT61SV", got.Payment.ReceiptNumber)
		require.NotNil(t, got.Payment.PaidAt)

		// повторный callback ничего не меняет
		applied, err = r.CompletePayment(ctx, "ws_CO_1", entities.PaymentCompletion{ReceiptNumber: "OTHER", PaidAt: now})
		require.NoError(t, err)
		assert.False(t, applied)

		applied, err = r.FailPayment(ctx, "ws_CO_1", entities.PaymentFailure{Reason: "late failure", FailedAt: now})
		require.NoError(t, err)
		assert.False(t, applied)

		got, err = r.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "NLJ7RT61SV", got.Payment.ReceiptNumber)
		assert.Equal(t, entities.PaymentStatusCompleted, got.Payment.Status)

		err = r.SetPaymentTransaction(ctx, order.ID, attempt("ws_CO_2", now))
		assert.ErrorIs(t, err, entities.ErrOrderNotPayable)
	})

	t.Run("payment failure keeps order pending", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		order := newTestOrder("cust-1", "ORD250101FAIL01", now)
		require.NoError(t, r.CreateOrder(ctx, order))
		require.NoError(t, r.SetPaymentTransaction(ctx, order.ID, attempt("ws_CO_F", now)))

		failedAt := now.Add(time.Minute)
		applied, err := r.FailPayment(ctx, "ws_CO_F", entities.PaymentFailure{Reason: "Request cancelled by user", FailedAt: failedAt})
		require.NoError(t, err)
		assert.True(t, applied)

		got, err := r.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.OrderStatusPending, got.Status)
		assert.Equal(t, entities.PaymentStatusFailed, got.Payment.Status)
		assert.Equal(t, "Request cancelled by user", got.Payment.FailureReason)
		assert.True(t, failedAt.Equal(got.UpdatedAt))

		applied, err = r.FailPayment(ctx, "ws_CO_unknown", entities.PaymentFailure{Reason: "timeout", FailedAt: now})
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("new push replaces only the push it was based on", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		order := newTestOrder("cust-1", "ORD250101PUSH01", now)
		require.NoError(t, r.CreateOrder(ctx, order))
		require.NoError(t, r.SetPaymentTransaction(ctx, order.ID, attempt("ws_CO_A", now)))

		// второй запрос читал заказ до первого push
		err := r.SetPaymentTransaction(ctx, order.ID, attempt("ws_CO_B", now))
		assert.ErrorIs(t, err, entities.ErrOrderNotPayable)

		stale := attempt("ws_CO_C", now)
		stale.PreviousTransactionID = "ws_CO_B"
		err = r.SetPaymentTransaction(ctx, order.ID, stale)
		assert.ErrorIs(t, err, entities.ErrOrderNotPayable)

		got, err := r.GetOrderByTransactionID(ctx, "ws_CO_A")
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)

		next := attempt("ws_CO_D", now.Add(time.Minute))
		next.PreviousTransactionID = "ws_CO_A"
		require.NoError(t, r.SetPaymentTransaction(ctx, order.ID, next))

		got, err = r.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "ws_CO_D", got.Payment.TransactionID)

		_, err = r.GetOrderByTransactionID(ctx, "ws_CO_A")
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})

	t.Run("pending payments", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		stale := newTestOrder("cust-1", "ORD250101PEND01", now)
		fresh := newTestOrder("cust-1", "ORD250101PEND02", now)
		unpaid := newTestOrder("cust-1", "ORD250101PEND03", now)
		for _, o := range []entities.Order{stale, fresh, unpaid} {
			require.NoError(t, r.CreateOrder(ctx, o))
		}
		require.NoError(t, r.SetPaymentTransaction(ctx, stale.ID, attempt("ws_CO_S", now.Add(-time.Hour))))
		require.NoError(t, r.SetPaymentTransaction(ctx, fresh.ID, attempt("ws_CO_N", now)))

		orders, err := r.ListPendingPayments(ctx, now.Add(-10*time.Minute), 10)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, stale.ID, orders[0].ID)
	})

	t.Run("status transitions", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		order := newTestOrder("cust-1", "ORD250101STAT01", now)
		require.NoError(t, r.CreateOrder(ctx, order))

		err := r.UpdateOrderStatus(ctx, order.ID, entities.StatusUpdate{
			From: entities.OrderStatusConfirmed,
			To:   entities.OrderStatusProcessing,
			At:   now,
		})
		assert.ErrorIs(t, err, entities.ErrStatusConflict)

		err = r.UpdateOrderStatus(ctx, order.ID, entities.StatusUpdate{
			From:         entities.OrderStatusPending,
			To:           entities.OrderStatusCancelled,
			CancelReason: "changed my mind",
			At:           now,
		})
		require.NoError(t, err)

		got, err := r.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.OrderStatusCancelled, got.Status)
		assert.Equal(t, "changed my mind", got.CancelReason)
		require.NotNil(t, got.CancelledAt)

		err = r.SetPaymentTransaction(ctx, order.ID, attempt("ws_CO_C", now))
		assert.ErrorIs(t, err, entities.ErrOrderNotPayable)

		err = r.UpdateOrderStatus(ctx, uuid.NewString(), entities.StatusUpdate{
			From: entities.OrderStatusPending,
			To:   entities.OrderStatusConfirmed,
			At:   now,
		})
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})

	t.Run("cancel paid order marks refund", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		order := newTestOrder("cust-1", "ORD250101RFND01", now)
		require.NoError(t, r.CreateOrder(ctx, order))
		require.NoError(t, r.SetPaymentTransaction(ctx, order.ID, attempt("ws_CO_R", now)))
		_, err := r.CompletePayment(ctx, "ws_CO_R", entities.PaymentCompletion{ReceiptNumber: "R1", Amount: order.TotalPrice, PaidAt: now})
		require.NoError(t, err)

		// без пометки возврата оплаченный заказ не отменяется
		err = r.UpdateOrderStatus(ctx, order.ID, entities.StatusUpdate{
			From: entities.OrderStatusConfirmed,
			To:   entities.OrderStatusCancelled,
			At:   now,
		})
		assert.ErrorIs(t, err, entities.ErrStatusConflict)

		err = r.UpdateOrderStatus(ctx, order.ID, entities.StatusUpdate{
			From:   entities.OrderStatusConfirmed,
			To:     entities.OrderStatusCancelled,
			At:     now,
			Refund: true,
		})
		require.NoError(t, err)

		got, err := r.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.PaymentStatusRefunded, got.Payment.Status)
		require.NotNil(t, got.RefundedAt)
	})
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreateOrder пишет заказ и его позиции, вызывать внутри trm.Manager.Do
func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(orderColumns...).
		Values(orderValues(o)...).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entities.ErrDuplicateOrder
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if len(o.Items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").Columns(itemColumns...)
	for i, it := range o.Items {
		q = q.Values(o.ID, i, it.ProductID, it.Name, it.UnitPrice, it.Quantity, it.Unit, it.Image)
	}

	query, args = q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert items: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	return r.getOne(ctx, sq.Eq{"id": orderID})
}

func (r *postgresRepo) GetOrderByTransactionID(ctx context.Context, txID string) (entities.Order, error) {
	return r.getOne(ctx, sq.Eq{"payment_transaction_id": txID})
}

func (r *postgresRepo) getOne(ctx context.Context, where sq.Eq) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(where).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	query, args = r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": order.ID}).
		OrderBy("position").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return entities.Order{}, fmt.Errorf("failed to get items: %w", err)
	}

	return OrderToEntity(order, items), nil
}

func (r *postgresRepo) ListOrders(ctx context.Context, customerID string, limit int) ([]entities.Order, error) {
	q := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	if customerID != "" {
		q = q.Where(sq.Eq{"customer_id": customerID})
	}

	return r.list(ctx, q)
}

func (r *postgresRepo) ListPendingPayments(ctx context.Context, initiatedBefore time.Time, limit int) ([]entities.Order, error) {
	q := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"payment_status": string(entities.PaymentStatusPending)}).
		Where(sq.NotEq{"payment_transaction_id": nil}).
		Where(sq.LtOrEq{"payment_initiated_at": initiatedBefore}).
		OrderBy("payment_initiated_at").
		Limit(uint64(limit))

	return r.list(ctx, q)
}

func (r *postgresRepo) list(ctx context.Context, q sq.SelectBuilder) ([]entities.Order, error) {
	query, args := q.MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	// Получаем позиции одним запросом для всех заказов
	query, args = r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "position").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	itemsMap := make(map[string][]Item, len(ids))
	for _, item := range items {
		itemsMap[item.OrderID] = append(itemsMap[item.OrderID], item)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToEntity(order, itemsMap[order.ID]))
	}
	return result, nil
}

func (r *postgresRepo) SetPaymentTransaction(ctx context.Context, orderID string, a entities.PaymentAttempt) error {
	query, args := r.qb.Update("orders").
		Set("payment_method", string(entities.PaymentMethodMobileMoney)).
		Set("payment_transaction_id", a.TransactionID).
		Set("payment_merchant_request_id", nullString(a.MerchantRequestID)).
		Set("payment_payer_phone", nullString(a.PayerPhone)).
		Set("payment_status", string(entities.PaymentStatusPending)).
		Set("payment_initiated_at", a.InitiatedAt).
		Set("payment_failure_reason", nil).
		Set("updated_at", a.InitiatedAt).
		Where(sq.Eq{"id": orderID}).
		Where(sq.NotEq{"status": string(entities.OrderStatusCancelled)}).
		Where(sq.NotEq{"payment_status": []string{
			string(entities.PaymentStatusCompleted),
			string(entities.PaymentStatusRefunded),
		}}).
		Where(previousTransaction(a.PreviousTransactionID)).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set payment transaction: %w", err)
	}

	return r.checkAffected(ctx, res, orderID, entities.ErrOrderNotPayable)
}

func (r *postgresRepo) CompletePayment(ctx context.Context, txID string, c entities.PaymentCompletion) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("payment_status", string(entities.PaymentStatusCompleted)).
		Set("payment_receipt_number", c.ReceiptNumber).
		Set("payment_amount", c.Amount).
		Set("payment_payer_phone", nullString(c.PayerPhone)).
		Set("payment_paid_at", c.PaidAt).
		Set("payment_failure_reason", nil).
		Set("status", sq.Expr("CASE WHEN status = ? THEN ? ELSE status END",
			string(entities.OrderStatusPending), string(entities.OrderStatusConfirmed))).
		Set("updated_at", c.PaidAt).
		Where(sq.Eq{"payment_transaction_id": txID}).
		Where(sq.Eq{"payment_status": []string{
			string(entities.PaymentStatusPending),
			string(entities.PaymentStatusFailed),
		}}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to complete payment: %w", err)
	}
	return rowsAffected(res)
}

func (r *postgresRepo) FailPayment(ctx context.Context, txID string, f entities.PaymentFailure) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("payment_status", string(entities.PaymentStatusFailed)).
		Set("payment_failure_reason", f.Reason).
		Set("updated_at", f.FailedAt).
		Where(sq.Eq{"payment_transaction_id": txID}).
		Where(sq.Eq{"payment_status": string(entities.PaymentStatusPending)}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to fail payment: %w", err)
	}
	return rowsAffected(res)
}

func (r *postgresRepo) UpdateOrderStatus(ctx context.Context, orderID string, u entities.StatusUpdate) error {
	q := r.qb.Update("orders").
		Set("status", string(u.To)).
		Set("updated_at", u.At).
		Where(sq.Eq{"id": orderID}).
		Where(sq.Eq{"status": string(u.From)})

	switch u.To {
	case entities.OrderStatusShipped:
		if u.TrackingNumber != "" {
			q = q.Set("tracking_number", u.TrackingNumber)
		}
	case entities.OrderStatusDelivered:
		q = q.Set("delivered_at", u.At)
	case entities.OrderStatusCancelled:
		q = q.Set("cancel_reason", nullString(u.CancelReason)).Set("cancelled_at", u.At)
		if u.Refund {
			q = q.Set("payment_status", string(entities.PaymentStatusRefunded)).
				Set("refunded_at", u.At).
				Where(sq.Eq{"payment_status": string(entities.PaymentStatusCompleted)})
		} else {
			q = q.Where(sq.NotEq{"payment_status": string(entities.PaymentStatusCompleted)})
		}
	}

	query, args := q.MustSql()
	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return r.checkAffected(ctx, res, orderID, entities.ErrStatusConflict)
}

func (r *postgresRepo) checkAffected(ctx context.Context, res sql.Result, orderID string, conflict error) error {
	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	query, args := r.qb.Select("1").From("orders").Where(sq.Eq{"id": orderID}).MustSql()
	var one int
	err = r.getContext(ctx, &one, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check order: %w", err)
	}
	return conflict
}

func rowsAffected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return trm.QuerierFrom(ctx, r.db).ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	return trm.QuerierFrom(ctx, r.db).GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	return trm.QuerierFrom(ctx, r.db).SelectContext(ctx, dest, query, args...)
}

func previousTransaction(txID string) sq.Sqlizer {
	if txID == "" {
		return sq.Eq{"payment_transaction_id": nil}
	}
	return sq.Eq{"payment_transaction_id": txID}
}

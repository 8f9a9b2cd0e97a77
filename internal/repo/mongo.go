package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

type mongoRepo struct {
	orders *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *mongoRepo {
	return &mongoRepo{
		orders: db.Collection(ordersCollection),
	}
}

func (r *mongoRepo) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// у заказа без STK push поля нет, sparse пропускает такие документы
			Keys:    bson.D{{Key: "paymentInfo.transactionId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "paymentInfo.status", Value: 1}, {Key: "paymentInfo.initiatedAt", Value: 1}},
		},
	}

	if _, err := r.orders.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	_, err := r.orders.InsertOne(ctx, orderToDocument(o))
	if mongo.IsDuplicateKeyError(err) {
		return entities.ErrDuplicateOrder
	}
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *mongoRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	return r.findOne(ctx, bson.M{"_id": orderID})
}

func (r *mongoRepo) GetOrderByTransactionID(ctx context.Context, txID string) (entities.Order, error) {
	return r.findOne(ctx, bson.M{"paymentInfo.transactionId": txID})
}

func (r *mongoRepo) findOne(ctx context.Context, filter bson.M) (entities.Order, error) {
	var doc orderDocument
	err := r.orders.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to find order: %w", err)
	}
	return documentToEntity(doc), nil
}

func (r *mongoRepo) ListOrders(ctx context.Context, customerID string, limit int) ([]entities.Order, error) {
	filter := bson.M{}
	if customerID != "" {
		filter["customerId"] = customerID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	return r.find(ctx, filter, opts)
}

func (r *mongoRepo) ListPendingPayments(ctx context.Context, initiatedBefore time.Time, limit int) ([]entities.Order, error) {
	filter := bson.M{
		"paymentInfo.status":        string(entities.PaymentStatusPending),
		"paymentInfo.transactionId": bson.M{"$exists": true},
		"paymentInfo.initiatedAt":   bson.M{"$lte": initiatedBefore},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "paymentInfo.initiatedAt", Value: 1}}).
		SetLimit(int64(limit))

	return r.find(ctx, filter, opts)
}

func (r *mongoRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entities.Order, error) {
	cur, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]entities.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, documentToEntity(d))
	}
	return orders, nil
}

func (r *mongoRepo) SetPaymentTransaction(ctx context.Context, orderID string, a entities.PaymentAttempt) error {
	filter := bson.M{
		"_id":                orderID,
		"status":             bson.M{"$ne": string(entities.OrderStatusCancelled)},
		"paymentInfo.status": bson.M{"$nin": bson.A{string(entities.PaymentStatusCompleted), string(entities.PaymentStatusRefunded)}},
	}
	if a.PreviousTransactionID == "" {
		filter["paymentInfo.transactionId"] = bson.M{"$exists": false}
	} else {
		filter["paymentInfo.transactionId"] = a.PreviousTransactionID
	}
	update := bson.M{
		"$set": bson.M{
			"paymentInfo.method":            string(entities.PaymentMethodMobileMoney),
			"paymentInfo.transactionId":     a.TransactionID,
			"paymentInfo.merchantRequestId": a.MerchantRequestID,
			"paymentInfo.payerPhone":        a.PayerPhone,
			"paymentInfo.status":            string(entities.PaymentStatusPending),
			"paymentInfo.initiatedAt":       a.InitiatedAt,
			"updatedAt":                     a.InitiatedAt,
		},
		"$unset": bson.M{"paymentInfo.failureReason": ""},
	}

	res, err := r.orders.UpdateOne(ctx, filter, update)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("checkout request %s already bound to another order: %w", a.TransactionID, err)
	}
	if err != nil {
		return fmt.Errorf("failed to set payment transaction: %w", err)
	}

	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, orderID, entities.ErrOrderNotPayable)
	}
	return nil
}

func (r *mongoRepo) CompletePayment(ctx context.Context, txID string, c entities.PaymentCompletion) (bool, error) {
	// завершенный или возвращенный платеж не перезаписывается
	filter := bson.M{
		"paymentInfo.transactionId": txID,
		"paymentInfo.status": bson.M{"$in": bson.A{
			string(entities.PaymentStatusPending),
			string(entities.PaymentStatusFailed),
		}},
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"paymentInfo.status":        string(entities.PaymentStatusCompleted),
			"paymentInfo.receiptNumber": c.ReceiptNumber,
			"paymentInfo.amount":        c.Amount,
			"paymentInfo.payerPhone":    c.PayerPhone,
			"paymentInfo.paidAt":        c.PaidAt,
			"updatedAt":                 c.PaidAt,
			"status": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", string(entities.OrderStatusPending)}},
				string(entities.OrderStatusConfirmed),
				"$status",
			}},
		}}},
		{{Key: "$unset", Value: "paymentInfo.failureReason"}},
	}

	res, err := r.orders.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to complete payment: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoRepo) FailPayment(ctx context.Context, txID string, f entities.PaymentFailure) (bool, error) {
	filter := bson.M{
		"paymentInfo.transactionId": txID,
		"paymentInfo.status":        string(entities.PaymentStatusPending),
	}
	update := bson.M{
		"$set": bson.M{
			"paymentInfo.status":        string(entities.PaymentStatusFailed),
			"paymentInfo.failureReason": f.Reason,
			"updatedAt":                 f.FailedAt,
		},
	}

	res, err := r.orders.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to fail payment: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoRepo) UpdateOrderStatus(ctx context.Context, orderID string, u entities.StatusUpdate) error {
	filter := bson.M{
		"_id":    orderID,
		"status": string(u.From),
	}

	set := bson.M{
		"status":    string(u.To),
		"updatedAt": u.At,
	}

	switch u.To {
	case entities.OrderStatusShipped:
		if u.TrackingNumber != "" {
			set["trackingNumber"] = u.TrackingNumber
		}
	case entities.OrderStatusDelivered:
		set["deliveredAt"] = u.At
	case entities.OrderStatusCancelled:
		set["cancelReason"] = u.CancelReason
		set["cancelledAt"] = u.At
		if u.Refund {
			filter["paymentInfo.status"] = string(entities.PaymentStatusCompleted)
			set["paymentInfo.status"] = string(entities.PaymentStatusRefunded)
			set["refundedAt"] = u.At
		} else {
			filter["paymentInfo.status"] = bson.M{"$ne": string(entities.PaymentStatusCompleted)}
		}
	}

	res, err := r.orders.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, orderID, entities.ErrStatusConflict)
	}
	return nil
}

// missOrConflict различает отсутствующий заказ и не подошедший под условие
func (r *mongoRepo) missOrConflict(ctx context.Context, orderID string, conflict error) error {
	n, err := r.orders.CountDocuments(ctx, bson.M{"_id": orderID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("failed to check order: %w", err)
	}
	if n == 0 {
		return entities.ErrOrderNotFound
	}
	return conflict
}

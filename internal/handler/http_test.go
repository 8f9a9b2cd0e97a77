package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/handler"
	mocks "github.com/SergeyBogomolovv/mpesa-checkout/internal/handler/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrdersRouter(t *testing.T) (*mocks.MockOrderService, http.Handler) {
	t.Helper()

	svc := mocks.NewMockOrderService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, svc)

	r := chi.NewRouter()
	h.Init(r)
	return svc, r
}

func serve(t *testing.T, r http.Handler, method, target, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	res := rr.Result()
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(data)
}

func testOrder() entities.Order {
	return entities.Order{
		ID:          "order-1",
		OrderNumber: "ORD260101ABCDEF",
		CustomerID:  "cust-1",
		Items: []entities.Item{
			{ProductID: "p-1", Name: "Sugar 2kg", UnitPrice: 242.5, Quantity: 2},
		},
		ItemsPrice:    485,
		TaxPrice:      77.6,
		ShippingPrice: 100,
		TotalPrice:    662.6,
		Status:        entities.OrderStatusPending,
		Payment: entities.PaymentInfo{
			Method:   entities.PaymentMethodMobileMoney,
			Status:   entities.PaymentStatusPending,
			Amount:   662.6,
			Currency: entities.DefaultCurrency,
		},
	}
}

const createOrderBody = `{
	"customer_id": "cust-1",
	"items": [{"product_id": "p-1", "name": "Sugar 2kg", "unit_price": 242.5, "quantity": 2}],
	"shipping_address": {"full_name": "Jane Wanjiku", "phone": "0712345678", "street": "Moi Avenue 1", "city": "Nairobi"}
}`

func TestHTTPHandler_CreateOrder(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "success",
			body: createOrderBody,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CreateOrder(mock.Anything, mock.MatchedBy(func(n entities.NewOrder) bool {
						return n.CustomerID == "cust-1" && len(n.Items) == 1 &&
							n.Items[0].Quantity == 2 && n.ShippingAddress.City == "Nairobi"
					})).
					Return(testOrder(), nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"order_number":"ORD260101ABCDEF"`,
		},
		{
			name:         "malformed body",
			body:         `{"customer_id":`,
			mockBehavior: func(_ *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request body"`,
		},
		{
			name:         "empty cart",
			body:         `{"customer_id":"cust-1","items":[],"shipping_address":{"full_name":"J","phone":"1","street":"s","city":"c"}}`,
			mockBehavior: func(_ *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"Items":"min"`,
		},
		{
			name:         "unknown payment method",
			body:         `{"customer_id":"cust-1","items":[{"product_id":"p","name":"n","unit_price":1,"quantity":1}],"shipping_address":{"full_name":"J","phone":"1","street":"s","city":"c"},"payment_method":"bitcoin"}`,
			mockBehavior: func(_ *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"PaymentMethod":"oneof"`,
		},
		{
			name: "rejected by service",
			body: createOrderBody,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, fmt.Errorf("%w: no items", entities.ErrInvalidOrder)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid order: no items`,
		},
		{
			name: "internal error",
			body: createOrderBody,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, r := newOrdersRouter(t)
			tc.mockBehavior(svc)

			status, body := serve(t, r, http.MethodPost, "/orders", tc.body)

			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestHTTPHandler_GetOrderByID(t *testing.T) {
	testCases := []struct {
		name         string
		orderID      string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:    "success",
			orderID: "order-1",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(testOrder(), nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"id":"order-1"`,
		},
		{
			name:    "not found",
			orderID: "not-exist",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrderByID(mock.Anything, "not-exist").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name:    "internal error",
			orderID: "order-1",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().GetOrderByID(mock.Anything, "order-1").
					Return(entities.Order{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, r := newOrdersRouter(t)
			tc.mockBehavior(svc)

			status, body := serve(t, r, http.MethodGet, "/orders/"+tc.orderID, "")

			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)

			if tc.wantStatus == http.StatusOK {
				var resp handler.Order
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				assert.Equal(t, "order-1", resp.ID)
				assert.Equal(t, 662.6, resp.TotalPrice)
				assert.Equal(t, "pending", resp.Payment.Status)
				assert.Equal(t, "mobile-money", resp.Payment.Method)
			}
		})
	}
}

func TestHTTPHandler_ListOrders(t *testing.T) {
	testCases := []struct {
		name         string
		query        string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:  "defaults",
			query: "",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().ListOrders(mock.Anything, "", 0).Return([]entities.Order{testOrder()}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `[{"id":"order-1"`,
		},
		{
			name:  "by customer with limit",
			query: "?customer_id=cust-1&limit=5",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().ListOrders(mock.Anything, "cust-1", 5).Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:         "invalid limit",
			query:        "?limit=ten",
			mockBehavior: func(_ *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request"`,
		},
		{
			name:  "internal error",
			query: "",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().ListOrders(mock.Anything, "", 0).Return(nil, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, r := newOrdersRouter(t)
			tc.mockBehavior(svc)

			status, body := serve(t, r, http.MethodGet, "/orders"+tc.query, "")

			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestHTTPHandler_UpdateStatus(t *testing.T) {
	shipped := testOrder()
	shipped.Status = entities.OrderStatusShipped
	shipped.TrackingNumber = "KE123"

	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "shipped with tracking number",
			body: `{"status":"shipped","tracking_number":"KE123"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateStatus(mock.Anything, "order-1", entities.OrderStatusShipped, "KE123").
					Return(shipped, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"tracking_number":"KE123"`,
		},
		{
			name:         "shipped without tracking number",
			body:         `{"status":"shipped"}`,
			mockBehavior: func(_ *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"TrackingNumber":"required_if"`,
		},
		{
			name:         "unknown status",
			body:         `{"status":"lost"}`,
			mockBehavior: func(_ *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"Status":"oneof"`,
		},
		{
			name: "invalid transition",
			body: `{"status":"delivered"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateStatus(mock.Anything, "order-1", entities.OrderStatusDelivered, "").
					Return(entities.Order{}, fmt.Errorf("%w: pending -> delivered", entities.ErrInvalidTransition)).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `pending -> delivered`,
		},
		{
			name: "not found",
			body: `{"status":"confirmed"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().UpdateStatus(mock.Anything, "order-1", entities.OrderStatusConfirmed, "").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, r := newOrdersRouter(t)
			tc.mockBehavior(svc)

			status, body := serve(t, r, http.MethodPatch, "/orders/order-1/status", tc.body)

			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

func TestHTTPHandler_CancelOrder(t *testing.T) {
	cancelled := testOrder()
	cancelled.Status = entities.OrderStatusCancelled
	cancelled.CancelReason = "changed my mind"

	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "with reason",
			body: `{"reason":"changed my mind"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().CancelOrder(mock.Anything, "order-1", "changed my mind").Return(cancelled, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"cancelled"`,
		},
		{
			name: "without body",
			body: "",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().CancelOrder(mock.Anything, "order-1", "").Return(cancelled, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"cancel_reason":"changed my mind"`,
		},
		{
			name:         "malformed body",
			body:         `{"reason":`,
			mockBehavior: func(_ *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request body"`,
		},
		{
			name: "already shipped",
			body: "",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().CancelOrder(mock.Anything, "order-1", "").
					Return(entities.Order{}, fmt.Errorf("%w: status shipped", entities.ErrCannotCancel)).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `order can no longer be cancelled`,
		},
		{
			name: "concurrent change",
			body: "",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().CancelOrder(mock.Anything, "order-1", "").
					Return(entities.Order{}, entities.ErrStatusConflict).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `order status changed concurrently`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, r := newOrdersRouter(t)
			tc.mockBehavior(svc)

			status, body := serve(t, r, http.MethodPost, "/orders/order-1/cancel", tc.body)

			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, tc.wantBody)
		})
	}
}

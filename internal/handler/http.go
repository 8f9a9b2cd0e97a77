package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	CreateOrder(ctx context.Context, n entities.NewOrder) (entities.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListOrders(ctx context.Context, customerID string, limit int) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, to entities.OrderStatus, trackingNumber string) (entities.Order, error)
	CancelOrder(ctx context.Context, orderID, reason string) (entities.Order, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
}

func NewHTTPHandler(logger *slog.Logger, svc OrderService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "orders")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{order_id}", h.GetOrderByID)
		r.Patch("/{order_id}/status", h.UpdateStatus)
		r.Post("/{order_id}/cancel", h.CancelOrder)
	})
}

// CreateOrder создает заказ из корзины.
// @Summary      Создать заказ
// @Description  Считает суммы заказа, присваивает номер и сохраняет заказ со статусом pending
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body      CreateOrderRequest  true  "Содержимое корзины"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.CreateOrder(ctx, req.ToEntity())
	if err != nil {
		h.writeError(ctx, w, err, "failed to create order", slog.String("customer_id", req.CustomerID))
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// GetOrderByID возвращает заказ по ID.
// @Summary      Получить заказ по ID
// @Description  Возвращает информацию о заказе и его оплате
// @Tags         orders
// @Produce      json
// @Param        order_id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id} [get]
func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	order, err := h.svc.GetOrderByID(ctx, orderID)
	if err != nil {
		h.writeError(ctx, w, err, "failed to get order", slog.String("order_id", orderID))
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ListOrders возвращает последние заказы.
// @Summary      Список заказов
// @Description  Последние заказы, новые первыми. Можно отфильтровать по покупателю
// @Tags         orders
// @Produce      json
// @Param        customer_id  query     string  false  "Идентификатор покупателя"
// @Param        limit        query     int     false  "Количество заказов (по умолчанию 20, максимум 100)"
// @Success      200  {array}   Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := r.URL.Query().Get("customer_id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if err := h.validate.Var(raw, "numeric"); err != nil {
			utils.WriteValidationError(w, err)
			return
		}
		limit, _ = strconv.Atoi(raw)
	}

	orders, err := h.svc.ListOrders(ctx, customerID, limit)
	if err != nil {
		h.writeError(ctx, w, err, "failed to list orders", slog.String("customer_id", customerID))
		return
	}

	res := make([]Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, OrderEntityToJSON(o))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}

// UpdateStatus меняет статус заказа.
// @Summary      Сменить статус заказа
// @Description  Допустимые переходы: pending→confirmed, confirmed→processing, processing→shipped, shipped→delivered, pending/confirmed→cancelled
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order_id  path      string               true  "Идентификатор заказа"
// @Param        request   body      UpdateStatusRequest  true  "Новый статус"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Недопустимый переход"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id}/status [patch]
func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	var req UpdateStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.UpdateStatus(ctx, orderID, entities.OrderStatus(req.Status), req.TrackingNumber)
	if err != nil {
		h.writeError(ctx, w, err, "failed to update order status", slog.String("order_id", orderID))
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CancelOrder отменяет заказ.
// @Summary      Отменить заказ
// @Description  Отмена возможна в статусах pending и confirmed. Оплаченный платеж помечается возвращенным
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order_id  path      string              true   "Идентификатор заказа"
// @Param        request   body      CancelOrderRequest  false  "Причина отмены"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Заказ уже нельзя отменить"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id}/cancel [post]
func (h *HTTPHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	// тело необязательно
	var req CancelOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.CancelOrder(ctx, orderID, req.Reason)
	if err != nil {
		h.writeError(ctx, w, err, "failed to cancel order", slog.String("order_id", orderID))
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *HTTPHandler) writeError(ctx context.Context, w http.ResponseWriter, err error, msg string, attrs ...any) {
	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidOrder):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrCannotCancel),
		errors.Is(err, entities.ErrStatusConflict):
		utils.WriteError(w, err.Error(), http.StatusConflict)
	default:
		h.logger.ErrorContext(ctx, msg, append(attrs, slog.Any("error", err))...)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

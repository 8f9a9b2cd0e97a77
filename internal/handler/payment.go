package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/mpesa"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type PaymentService interface {
	Initiate(ctx context.Context, orderID, phone string) (mpesa.PushResponse, error)
	QueryStatus(ctx context.Context, checkoutRequestID string) (mpesa.StatusResponse, error)
	HandleCallback(ctx context.Context, cb mpesa.Callback) error
	HandleTimeout(ctx context.Context, checkoutRequestID string) error
}

type PaymentHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      PaymentService
}

func NewPaymentHandler(logger *slog.Logger, svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		logger:   logger.With(slog.String("handler", "payments")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *PaymentHandler) Init(r chi.Router) {
	r.Route("/payments/mpesa", func(r chi.Router) {
		r.Post("/initiate", h.Initiate)
		r.Post("/callback", h.Callback)
		r.Post("/timeout", h.Timeout)
		r.Get("/status/{checkout_request_id}", h.Status)
	})
}

// Initiate запускает оплату заказа через STK push.
// @Summary      Оплатить заказ через M-Pesa
// @Description  Отправляет запрос на оплату на телефон покупателя. CheckoutRequestID из ответа используется для опроса статуса
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      InitiatePaymentRequest  true  "Заказ и номер телефона"
// @Success      200  {object}  utils.Envelope{data=mpesa.PushResponse}
// @Failure      400  {object}  utils.Envelope "Ошибка валидации"
// @Failure      404  {object}  utils.Envelope "Заказ не найден"
// @Failure      409  {object}  utils.Envelope "Заказ нельзя оплатить"
// @Failure      502  {object}  utils.Envelope "Ошибка платежного шлюза"
// @Failure      500  {object}  utils.Envelope "Внутренняя ошибка сервера"
// @Router       /payments/mpesa/initiate [post]
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req InitiatePaymentRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteFailure(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationFailure(w, err)
		return
	}

	res, err := h.svc.Initiate(ctx, req.OrderID, req.PhoneNumber)
	initiationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		code, msg := paymentErrorStatus(err)
		initiationsTotal.WithLabelValues(strings.ToLower(http.StatusText(code))).Inc()
		if code >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "failed to initiate payment", slog.String("order_id", req.OrderID), slog.Any("error", err))
		}
		utils.WriteFailure(w, msg, code)
		return
	}

	initiationsTotal.WithLabelValues("ok").Inc()
	utils.WriteSuccess(w, res, http.StatusOK)
}

// Callback принимает результат STK push от шлюза.
// @Summary      Callback M-Pesa
// @Description  Вызывается шлюзом. Всегда отвечает 200, иначе шлюз будет повторять запрос
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      mpesa.CallbackEnvelope  true  "Результат STK push"
// @Success      200  {object}  CallbackAck
// @Router       /payments/mpesa/callback [post]
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var env mpesa.CallbackEnvelope
	if err := utils.DecodeBody(r, &env); err != nil {
		h.logger.WarnContext(ctx, "malformed callback", slog.Any("error", err))
		callbacksTotal.WithLabelValues("malformed").Inc()
		utils.WriteJSON(w, callbackAccepted, http.StatusOK)
		return
	}

	cb := env.Body.StkCallback
	callbacksTotal.WithLabelValues(cb.ResultCode.Outcome().String()).Inc()

	if err := h.svc.HandleCallback(ctx, cb); err != nil {
		h.logger.ErrorContext(ctx, "failed to handle callback",
			slog.String("checkout_request_id", cb.CheckoutRequestID),
			slog.Any("error", err),
		)
	}

	utils.WriteJSON(w, callbackAccepted, http.StatusOK)
}

// Timeout принимает уведомление о том, что покупатель не ответил.
// @Summary      Timeout M-Pesa
// @Description  Вызывается шлюзом, платеж помечается неуспешным с причиной timeout. Всегда отвечает 200
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      mpesa.TimeoutNotification  true  "Уведомление"
// @Success      200  {object}  CallbackAck
// @Router       /payments/mpesa/timeout [post]
func (h *PaymentHandler) Timeout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var n mpesa.TimeoutNotification
	if err := utils.DecodeBody(r, &n); err != nil {
		h.logger.WarnContext(ctx, "malformed timeout notification", slog.Any("error", err))
		callbacksTotal.WithLabelValues("malformed").Inc()
		utils.WriteJSON(w, callbackAccepted, http.StatusOK)
		return
	}

	callbacksTotal.WithLabelValues("timeout").Inc()
	if err := h.svc.HandleTimeout(ctx, n.CheckoutRequestID); err != nil {
		h.logger.ErrorContext(ctx, "failed to handle timeout",
			slog.String("checkout_request_id", n.CheckoutRequestID),
			slog.Any("error", err),
		)
	}

	utils.WriteJSON(w, callbackAccepted, http.StatusOK)
}

// Status возвращает статус STK push.
// @Summary      Статус оплаты
// @Description  Запрашивает статус у шлюза. ResultCode "0" - успех, "1032" - отменено покупателем, пустой - еще обрабатывается
// @Tags         payments
// @Produce      json
// @Param        checkout_request_id  path      string  true  "CheckoutRequestID"
// @Success      200  {object}  utils.Envelope{data=mpesa.StatusResponse}
// @Failure      502  {object}  utils.Envelope "Ошибка платежного шлюза"
// @Failure      500  {object}  utils.Envelope "Внутренняя ошибка сервера"
// @Router       /payments/mpesa/status/{checkout_request_id} [get]
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	checkoutRequestID := chi.URLParam(r, "checkout_request_id")

	res, err := h.svc.QueryStatus(ctx, checkoutRequestID)
	if err != nil {
		code, msg := paymentErrorStatus(err)
		statusQueriesTotal.WithLabelValues("error").Inc()
		h.logger.WarnContext(ctx, "failed to query payment status",
			slog.String("checkout_request_id", checkoutRequestID),
			slog.Any("error", err),
		)
		utils.WriteFailure(w, msg, code)
		return
	}

	statusQueriesTotal.WithLabelValues(res.ResultCode.Outcome().String()).Inc()
	utils.WriteSuccess(w, res, http.StatusOK)
}

func paymentErrorStatus(err error) (int, string) {
	var authErr *mpesa.AuthError
	var gwErr *mpesa.GatewayError

	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, mpesa.ErrInvalidPhone):
		return http.StatusBadRequest, "Invalid phone number"
	case errors.Is(err, mpesa.ErrInvalidAmount):
		return http.StatusBadRequest, "Invalid amount"
	case errors.Is(err, entities.ErrOrderNotPayable):
		return http.StatusConflict, "Order cannot be paid"
	case errors.As(err, &authErr):
		return http.StatusBadGateway, "Payment gateway authentication failed"
	case errors.As(err, &gwErr):
		if gwErr.Message != "" {
			return http.StatusBadGateway, "Payment gateway error: " + gwErr.Message
		}
		return http.StatusBadGateway, "Payment gateway unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

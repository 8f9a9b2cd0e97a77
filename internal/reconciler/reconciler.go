package reconciler

import (
	"context"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/config"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
)

type PaymentReconciler interface {
	PendingPayments(ctx context.Context, olderThan time.Duration, limit int) ([]entities.Order, error)
	Reconcile(ctx context.Context, order entities.Order) (bool, error)
}

// Reconciler дозапрашивает статус платежей, по которым не пришел callback.
// Включается явно через RECONCILER_ENABLED.
type Reconciler struct {
	logger *slog.Logger
	svc    PaymentReconciler
	cfg    config.Reconciler
}

func New(logger *slog.Logger, cfg config.Reconciler, svc PaymentReconciler) *Reconciler {
	return &Reconciler{
		logger: logger.With(slog.String("component", "reconciler")),
		svc:    svc,
		cfg:    cfg,
	}
}

func (r *Reconciler) Start(ctx context.Context) error {
	if !r.cfg.Enabled {
		r.logger.Warn("reconciler disabled, payments without callback stay pending")
		return nil
	}

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", slog.Duration("interval", r.cfg.Interval))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce обрабатывает одну пачку зависших платежей
func (r *Reconciler) RunOnce(ctx context.Context) {
	start := time.Now()
	defer func() { runDuration.Observe(time.Since(start).Seconds()) }()

	orders, err := r.svc.PendingPayments(ctx, r.cfg.PendingAfter, r.cfg.BatchSize)
	if err != nil {
		r.logger.Error("failed to list pending payments", slog.Any("error", err))
		runsTotal.WithLabelValues("error").Inc()
		return
	}

	resolved := 0
	for _, o := range orders {
		if ctx.Err() != nil {
			return
		}

		done, err := r.svc.Reconcile(ctx, o)
		if err != nil {
			r.logger.Error("failed to reconcile payment",
				slog.String("order_id", o.ID),
				slog.String("checkout_request_id", o.Payment.TransactionID),
				slog.Any("error", err),
			)
			paymentsTotal.WithLabelValues("error").Inc()
			continue
		}
		if done {
			resolved++
			paymentsTotal.WithLabelValues("resolved").Inc()
		} else {
			paymentsTotal.WithLabelValues("pending").Inc()
		}
	}

	runsTotal.WithLabelValues("ok").Inc()
	if len(orders) > 0 {
		r.logger.Info("reconciliation finished", slog.Int("checked", len(orders)), slog.Int("resolved", resolved))
	}
}

// Package poller ожидает подтверждения STK push, периодически опрашивая статус платежа.
//
// Опрос живет только в процессе вызывающего: если процесс завершился, ожидание
// нужно запустить заново.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/mpesa"
)

type State string

const (
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateTimeout    State = "timeout"
	StateError      State = "error"
	StateCancelled  State = "cancelled"
)

func (s State) Terminal() bool {
	return s != StateProcessing
}

// Message текст для покупателя
func (s State) Message() string {
	switch s {
	case StateProcessing:
		return "Waiting for you to confirm the payment on your phone..."
	case StateCompleted:
		return "Payment received. Thank you for your order!"
	case StateFailed:
		return "Payment was not completed. You can try again."
	case StateTimeout:
		return "We did not receive a confirmation in time. Check your order status before paying again."
	case StateError:
		return "We could not check the payment status. Please check your order later."
	case StateCancelled:
		return "Stopped waiting for the payment confirmation."
	default:
		return ""
	}
}

type StatusQuerier interface {
	QueryStatus(ctx context.Context, checkoutRequestID string) (mpesa.StatusResponse, error)
}

type Config struct {
	Interval             time.Duration
	MaxAttempts          int
	// опрос завершается с StateError на MaxConsecutiveErrors-й ошибке подряд
	MaxConsecutiveErrors int
}

func DefaultConfig() Config {
	return Config{
		Interval:             10 * time.Second,
		MaxAttempts:          30,
		MaxConsecutiveErrors: 3,
	}
}

type Update struct {
	State             State
	Attempt           int
	ConsecutiveErrors int
	Response          mpesa.StatusResponse
	Err               error
}

type Option func(*Task)

// WithOnUpdate вызывается после каждого опроса и при переходе в конечное состояние
func WithOnUpdate(fn func(Update)) Option {
	return func(t *Task) { t.onUpdate = fn }
}

var ErrNotFinished = errors.New("polling not finished")

// Task одна задача ожидания платежа со своим счетчиком попыток и таймером
type Task struct {
	checkoutRequestID string
	querier           StatusQuerier
	cfg               Config
	onUpdate          func(Update)

	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	last   Update
	result *Update
}

func Start(ctx context.Context, q StatusQuerier, checkoutRequestID string, cfg Config, opts ...Option) *Task {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.MaxConsecutiveErrors <= 0 {
		cfg.MaxConsecutiveErrors = def.MaxConsecutiveErrors
	}

	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		checkoutRequestID: checkoutRequestID,
		querier:           q,
		cfg:               cfg,
		cancel:            cancel,
		done:              make(chan struct{}),
		last:              Update{State: StateProcessing},
	}
	for _, opt := range opts {
		opt(t)
	}

	go t.run(ctx)
	return t
}

func (t *Task) CheckoutRequestID() string {
	return t.checkoutRequestID
}

// Cancel останавливает опрос. После конечного состояния ничего не делает.
func (t *Task) Cancel() {
	t.cancel()
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait блокируется до конечного состояния задачи или отмены ctx
func (t *Task) Wait(ctx context.Context) (Update, error) {
	select {
	case <-t.done:
		res, _ := t.Result()
		return res, nil
	case <-ctx.Done():
		return t.Last(), ctx.Err()
	}
}

func (t *Task) Result() (Update, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.result == nil {
		return t.last, ErrNotFinished
	}
	return *t.result, nil
}

func (t *Task) Last() Update {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

func (t *Task) State() State {
	return t.Last().State
}

func (t *Task) run(ctx context.Context) {
	defer close(t.done)
	defer t.cancel()

	var (
		attempt           int
		consecutiveErrors int
	)

	timer := time.NewTimer(t.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			t.finish(Update{State: StateCancelled, Attempt: attempt, ConsecutiveErrors: consecutiveErrors, Err: ctx.Err()})
			return
		case <-timer.C:
		}

		attempt++
		res, err := t.querier.QueryStatus(ctx, t.checkoutRequestID)
		if err != nil {
			if ctx.Err() != nil {
				t.finish(Update{State: StateCancelled, Attempt: attempt, ConsecutiveErrors: consecutiveErrors, Err: ctx.Err()})
				return
			}

			consecutiveErrors++
			upd := Update{State: StateProcessing, Attempt: attempt, ConsecutiveErrors: consecutiveErrors, Err: err}
			switch {
			case consecutiveErrors >= t.cfg.MaxConsecutiveErrors:
				upd.State = StateError
			case attempt >= t.cfg.MaxAttempts:
				upd.State = StateTimeout
			}
			if upd.State.Terminal() {
				t.finish(upd)
				return
			}

			t.publish(upd)
			// линейный backoff: чем больше ошибок подряд, тем реже опрашиваем
			timer.Reset(t.cfg.Interval * time.Duration(1+consecutiveErrors))
			continue
		}

		consecutiveErrors = 0
		upd := Update{State: StateProcessing, Attempt: attempt, Response: res}
		switch res.ResultCode.Outcome() {
		case mpesa.OutcomeSuccess:
			upd.State = StateCompleted
		case mpesa.OutcomeFailed:
			upd.State = StateFailed
		default:
			if attempt >= t.cfg.MaxAttempts {
				upd.State = StateTimeout
			}
		}
		if upd.State.Terminal() {
			t.finish(upd)
			return
		}

		t.publish(upd)
		timer.Reset(t.cfg.Interval)
	}
}

func (t *Task) publish(u Update) {
	t.mu.Lock()
	t.last = u
	t.mu.Unlock()

	if t.onUpdate != nil {
		t.onUpdate(u)
	}
}

func (t *Task) finish(u Update) {
	t.mu.Lock()
	t.last = u
	t.result = &u
	t.mu.Unlock()

	if t.onUpdate != nil {
		t.onUpdate(u)
	}
}

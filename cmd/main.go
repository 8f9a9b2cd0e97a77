package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/app"
	rediscache "github.com/SergeyBogomolovv/mpesa-checkout/internal/cache"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/config"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/events"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/handler"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/mongodb"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/postgres"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/reconciler"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/repo"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/service"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/cache"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/mpesa"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           Checkout Service API
// @version         1.0
// @description     Заказы и оплата через M-Pesa STK push
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	orderRepo, txManager, closeStorage := newStorage(ctx, logger, conf)
	defer closeStorage()

	var starters []app.Starter
	var orderCache, statusCache service.Cache
	switch conf.Cache.Driver {
	case "redis":
		client, err := rediscache.NewRedisClient(ctx, conf.Redis)
		panicIfErr("failed to connect to redis", err)
		defer client.Close()
		logger.Info("redis connected")

		orderCache = rediscache.NewRedisCache(logger, client, "order", conf.Cache.TTL)
		statusCache = rediscache.NewRedisCache(logger, client, "stk-status", conf.Cache.StatusTTL)
	default:
		orders := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
		statuses := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.StatusTTL)
		orderCache, statusCache = orders, statuses
		starters = append(starters, orders, statuses)
	}

	publisher := events.NewKafkaPublisher(conf.Kafka)
	defer publisher.Close()

	gateway := mpesa.New(mpesa.Config{
		BaseURL:            conf.Mpesa.BaseURL,
		ConsumerKey:        conf.Mpesa.ConsumerKey,
		ConsumerSecret:     conf.Mpesa.ConsumerSecret,
		ShortCode:          conf.Mpesa.ShortCode,
		Passkey:            conf.Mpesa.Passkey,
		CallbackURL:        conf.Mpesa.CallbackURL,
		TransactionType:    conf.Mpesa.TransactionType,
		Timeout:            conf.Mpesa.Timeout,
		BreakerMaxFailures: uint32(conf.Mpesa.BreakerMaxFailures),
		BreakerOpenTimeout: conf.Mpesa.BreakerOpenTimeout,
	})

	orderService := service.NewOrderService(logger, txManager, orderRepo, orderCache, publisher)
	paymentService := service.NewPaymentService(logger, orderRepo, gateway, orderCache, statusCache, publisher)

	handler.RegisterMetrics()
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService)
	httpHandler := handler.NewHTTPHandler(logger, orderService)
	paymentHandler := handler.NewPaymentHandler(logger, paymentService)

	starters = append(starters,
		reconciler.New(logger, conf.Reconciler, paymentService),
		cacheWarmUpAdapter{logger: logger, svc: orderService, count: conf.Cache.Capacity},
	)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler, paymentHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(starters...)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newStorage(ctx context.Context, logger *slog.Logger, conf config.Config) (service.OrderRepo, trm.Manager, func()) {
	switch conf.Storage.Driver {
	case "postgres":
		db, err := postgres.New(conf.Postgres)
		panicIfErr("failed to connect to db", err)
		panicIfErr("failed to migrate db", postgres.Migrate(db))
		logger.Info("postgres connected")

		return repo.NewPostgresRepo(db), trm.NewManager(db, trm.WithIsolation(sql.LevelReadCommitted)), func() { db.Close() }
	default:
		db, err := mongodb.New(ctx, conf.Mongo)
		panicIfErr("failed to connect to mongo", err)
		logger.Info("mongo connected")

		orderRepo := repo.NewMongoRepo(db)
		panicIfErr("failed to create indexes", orderRepo.CreateIndexes(ctx))

		// заказ пишется одним документом, транзакция не нужна
		return orderRepo, trm.NewNopManager(), func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				logger.Error("failed to disconnect mongo", slog.Any("error", err))
			}
		}
	}
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	logger *slog.Logger
	svc    warmUpper
	count  int
}

// Start не останавливает приложение: без прогрева кеш заполнится по запросам
func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	if err := a.svc.WarmUpCache(ctx, a.count); err != nil {
		a.logger.Warn("cache warm up skipped", slog.Any("error", err))
	}
	return nil
}

// paywatch запускает оплату заказа и ждет ее подтверждения, опрашивая статус
// так же, как это делает витрина магазина.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/poller"
)

func main() {
	var (
		baseURL    = flag.String("api", "http://localhost:8080", "адрес HTTP API сервиса")
		orderID    = flag.String("order", "", "идентификатор заказа")
		phone      = flag.String("phone", "", "номер телефона покупателя")
		checkoutID = flag.String("checkout", "", "CheckoutRequestID уже отправленного запроса, оплата не запускается повторно")
		interval   = flag.Duration("interval", 10*time.Second, "интервал опроса")
		attempts   = flag.Int("attempts", 30, "максимальное число опросов")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *checkoutID == "" && (*orderID == "" || *phone == "") {
		fmt.Fprintln(os.Stderr, "usage: paywatch -order <id> -phone <msisdn> | -checkout <checkout request id>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	client := poller.NewAPIClient(*baseURL, nil)

	id := *checkoutID
	if id == "" {
		res, err := client.Initiate(ctx, *orderID, *phone)
		if err != nil {
			logger.Error("failed to initiate payment", slog.Any("error", err))
			os.Exit(1)
		}
		id = res.CheckoutRequestID
		fmt.Println(res.CustomerMessage)
	}

	task := poller.Start(ctx, client, id, poller.Config{
		Interval:    *interval,
		MaxAttempts: *attempts,
	}, poller.WithOnUpdate(func(u poller.Update) {
		logger.Info("payment status",
			slog.String("checkout_request_id", id),
			slog.String("state", string(u.State)),
			slog.Int("attempt", u.Attempt),
		)
	}))

	res, err := task.Wait(context.Background())
	if err != nil {
		logger.Error("failed to wait for payment", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(res.State.Message())
	if res.State != poller.StateCompleted {
		os.Exit(1)
	}
}

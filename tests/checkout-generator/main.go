package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/handler"
	"github.com/segmentio/kafka-go"
)

var products = []handler.Item{
	{ProductID: "sukuma-wiki", Name: "Sukuma wiki", UnitPrice: 30, Unit: "bunch"},
	{ProductID: "maize-flour-2kg", Name: "Maize flour 2kg", UnitPrice: 210, Unit: "pack"},
	{ProductID: "tomatoes", Name: "Tomatoes", UnitPrice: 120, Unit: "kg"},
	{ProductID: "milk-500ml", Name: "Fresh milk 500ml", UnitPrice: 65, Unit: "packet"},
	{ProductID: "eggs-tray", Name: "Eggs tray", UnitPrice: 450, Unit: "tray"},
	{ProductID: "bananas", Name: "Bananas", UnitPrice: 15, Unit: "piece"},
}

var cities = []string{"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Eldoret"}

func randomString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func generateCheckout() handler.CreateOrderRequest {
	items := make([]handler.Item, 0, 3)
	for _, i := range rand.Perm(len(products))[:1+rand.Intn(3)] {
		it := products[i]
		it.Quantity = 1 + rand.Intn(5)
		items = append(items, it)
	}

	return handler.CreateOrderRequest{
		CustomerID: "customer_" + randomString(5),
		Items:      items,
		ShippingAddress: handler.Address{
			FullName: "Jane Wanjiku",
			Phone:    fmt.Sprintf("07%08d", rand.Intn(100000000)),
			Street:   fmt.Sprintf("Moi Avenue %d", 1+rand.Intn(200)),
			City:     cities[rand.Intn(len(cities))],
		},
		PaymentMethod: "mobile-money",
	}
}

func main() {
	brokers := flag.String("brokers", "localhost:9092", "kafka brokers через запятую")
	topic := flag.String("topic", "checkouts", "топик корзин")
	interval := flag.Duration("interval", 2*time.Second, "интервал отправки")
	flag.Parse()

	writer := &kafka.Writer{
		Addr:  kafka.TCP(strings.Split(*brokers, ",")...),
		Topic: *topic,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			checkout := generateCheckout()
			data, _ := json.Marshal(checkout)
			if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(checkout.CustomerID), Value: data}); err != nil {
				log.Println("failed to write checkout:", err)
				continue
			}
			log.Println("checkout generated", checkout.CustomerID)
		case <-ctx.Done():
			return
		}
	}
}

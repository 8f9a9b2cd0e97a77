// callback-simulator шлет сервису callback и timeout так, как их шлет шлюз
// после STK push. Нужен для локальной проверки без sandbox.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/mpesa"
)

func successCallback(checkoutID string, amount float64, phone string) mpesa.CallbackEnvelope {
	var env mpesa.CallbackEnvelope
	env.Body.StkCallback = mpesa.Callback{
		MerchantRequestID: "sim-" + checkoutID,
		CheckoutRequestID: checkoutID,
		ResultCode:        mpesa.ResultSuccess,
		ResultDesc:        "The service request is processed successfully.",
		CallbackMetadata: &mpesa.CallbackMetadata{Item: []mpesa.MetadataItem{
			{Name: "Amount", Value: amount},
			{Name: "MpesaReceiptNumber", Value: fmt.Sprintf("SIM%07d", rand.Intn(10000000))},
			{Name: "TransactionDate", Value: time.Now().Format("20060102150405")},
			{Name: "PhoneNumber", Value: phone},
		}},
	}
	return env
}

func failedCallback(checkoutID string, code mpesa.ResultCode, desc string) mpesa.CallbackEnvelope {
	var env mpesa.CallbackEnvelope
	env.Body.StkCallback = mpesa.Callback{
		MerchantRequestID: "sim-" + checkoutID,
		CheckoutRequestID: checkoutID,
		ResultCode:        code,
		ResultDesc:        desc,
	}
	return env
}

func post(url string, payload any) {
	body, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Println("Ошибка запроса:", err)
		return
	}
	resp.Body.Close()
	log.Println("POST", url, "->", resp.Status)
}

func main() {
	baseURL := flag.String("api", "http://localhost:8080", "адрес HTTP API сервиса")
	checkoutID := flag.String("checkout", "", "CheckoutRequestID")
	amount := flag.Float64("amount", 1, "сумма платежа")
	phone := flag.String("phone", "254708374149", "номер плательщика")
	outcome := flag.String("outcome", "success", "success | cancelled | insufficient | timeout | random")
	duplicates := flag.Int("duplicates", 1, "сколько раз отправить одно и то же уведомление")
	flag.Parse()

	if *checkoutID == "" {
		log.Fatal("checkout request id is required")
	}

	kind := *outcome
	if kind == "random" {
		kind = []string{"success", "cancelled", "insufficient", "timeout"}[rand.Intn(4)]
	}

	callbackURL := *baseURL + "/payments/mpesa/callback"
	var (
		url     string
		payload any
	)
	switch kind {
	case "success":
		url, payload = callbackURL, successCallback(*checkoutID, *amount, *phone)
	case "cancelled":
		url, payload = callbackURL, failedCallback(*checkoutID, "1032", "Request cancelled by user")
	case "insufficient":
		url, payload = callbackURL, failedCallback(*checkoutID, "1", "The balance is insufficient for the transaction")
	case "timeout":
		url = *baseURL + "/payments/mpesa/timeout"
		payload = mpesa.TimeoutNotification{MerchantRequestID: "sim-" + *checkoutID, CheckoutRequestID: *checkoutID}
	default:
		log.Fatalf("unknown outcome %q", kind)
	}

	// повторные уведомления уходят параллельно, как это бывает у шлюза
	var wg sync.WaitGroup
	for range *duplicates {
		wg.Go(func() { post(url, payload) })
	}
	wg.Wait()
}

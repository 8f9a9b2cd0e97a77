package entities

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	taxRate               = decimal.RequireFromString("0.16")
	freeShippingThreshold = decimal.NewFromInt(2000)
	shippingFee           = decimal.NewFromInt(100)
)

const (
	orderNumberPrefix = "ORD"
	orderNumberSuffix = 6

	DeliveryWindow = 72 * time.Hour
)

type Prices struct {
	Items    float64
	Tax      float64
	Shipping float64
	Total    float64
}

// ComputePrices считает итоговые суммы заказа.
// Total всегда равен Items + Tax + Shipping, налог 16% округляется до копеек.
func ComputePrices(items []Item) Prices {
	itemsPrice := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity)))
		itemsPrice = itemsPrice.Add(line)
	}
	itemsPrice = itemsPrice.Round(2)

	tax := itemsPrice.Mul(taxRate).Round(2)

	shipping := shippingFee
	if itemsPrice.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	total := itemsPrice.Add(tax).Add(shipping)

	return Prices{
		Items:    itemsPrice.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

func (n NewOrder) Validate() error {
	if len(n.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	for _, it := range n.Items {
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: quantity of %q must be positive", ErrInvalidOrder, it.ProductID)
		}
		if it.UnitPrice < 0 {
			return fmt.Errorf("%w: price of %q must not be negative", ErrInvalidOrder, it.ProductID)
		}
	}
	return nil
}

var suffixSpace = big.NewInt(36 * 36 * 36 * 36 * 36 * 36)

// GenerateOrderNumber возвращает номер вида ORD<YYMMDD><6 символов base36>
func GenerateOrderNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, suffixSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}

	suffix := strings.ToUpper(strconv.FormatInt(n.Int64(), 36))
	if len(suffix) < orderNumberSuffix {
		suffix = strings.Repeat("0", orderNumberSuffix-len(suffix)) + suffix
	}

	return orderNumberPrefix + now.Format("060102") + suffix, nil
}

package service

import (
	"context"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// MaxPrice is the largest charge, in dollars, the processor accepts.
const MaxPrice = 999999.99

// StripePayments creates card payment intents in US dollars.
type StripePayments struct {
	api      *client.API
	currency string
}

func NewStripePayments(secretKey string) *StripePayments {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripePayments{api: api, currency: string(stripe.CurrencyUSD)}
}

// CreateIntent creates a payment intent for amount minor units and returns
// the client secret the browser confirms with.
func (s *StripePayments) CreateIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(s.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}

// MinorUnits converts a major-unit price (dollars) to minor units (cents).
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

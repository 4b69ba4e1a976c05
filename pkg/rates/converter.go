package rates

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
)

type Config struct {
	URL     string
	Timeout time.Duration
}

// Table holds USD "sell" prices keyed by upper-case symbol: NGN per USD,
// and crypto units per USD for native assets.
type Table map[string]decimal.Decimal

type Converter struct {
	client *resty.Client
	url    string
}

func NewConverter(cfg Config) *Converter {
	client := resty.New().SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &Converter{client: client, url: cfg.URL}
}

type rateResponse struct {
	Data *struct {
		Sell map[string]decimal.Decimal `json:"sell"`
	} `json:"data"`
}

// FetchRates always goes to the feed; there is no cached fallback.
func (c *Converter) FetchRates(ctx context.Context) (Table, error) {
	if c.url == "" {
		return nil, errors.Wrap(models.ErrRateUnavailable, "rate url not configured")
	}

	var out rateResponse
	resp, err := c.client.R().SetContext(ctx).SetResult(&out).Get(c.url)
	if err != nil {
		return nil, errors.Wrapf(models.ErrRateUnavailable, "rate request: %v", err)
	}
	if resp.IsError() {
		return nil, errors.Wrapf(models.ErrRateUnavailable, "rate feed returned %d", resp.StatusCode())
	}
	if out.Data == nil || len(out.Data.Sell) == 0 {
		return nil, errors.Wrap(models.ErrRateUnavailable, "rate feed returned no sell rates")
	}

	table := make(Table, len(out.Data.Sell))
	for k, v := range out.Data.Sell {
		table[strings.ToUpper(k)] = v
	}
	return table, nil
}

// Convert turns a naira amount into the amount of currency to send.
func (c *Converter) Convert(ctx context.Context, amountNGN decimal.Decimal, currency models.Currency) (decimal.Decimal, error) {
	table, err := c.FetchRates(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := table.Convert(amountNGN, currency)
	if err != nil {
		return decimal.Zero, err
	}
	logrus.WithFields(logrus.Fields{
		"amount_ngn": amountNGN.String(),
		"currency":   currency,
		"amount":     amount.String(),
	}).Info("converted naira amount")
	return amount, nil
}

// Convert applies usd = ngn / NGN, then multiplies by the asset's per-USD
// rate for native assets. Stablecoins are taken 1:1 with USD.
func (t Table) Convert(amountNGN decimal.Decimal, currency models.Currency) (decimal.Decimal, error) {
	ngn, err := t.rate("NGN")
	if err != nil {
		return decimal.Zero, err
	}
	usd := amountNGN.Div(ngn)

	switch currency {
	case models.CurrencyUSDC, models.CurrencyUSDT:
		return usd, nil
	case models.CurrencySOL, models.CurrencyETH:
		r, err := t.rate(string(currency))
		if err != nil {
			return decimal.Zero, err
		}
		return usd.Mul(r), nil
	}
	return decimal.Zero, errors.Wrapf(models.ErrRateUnavailable, "unsupported currency %s", currency)
}

func (t Table) rate(symbol string) (decimal.Decimal, error) {
	r, ok := t[symbol]
	if !ok || !r.IsPositive() {
		return decimal.Zero, errors.Wrapf(models.ErrRateUnavailable, "no usable %s rate", symbol)
	}
	return r, nil
}

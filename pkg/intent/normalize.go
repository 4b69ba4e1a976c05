package intent

import (
	"strings"

	"github.com/shopspring/decimal"

	"jumpa_withdrawal_back/models"
)

var amountSuffix = map[string]decimal.Decimal{
	"k": decimal.NewFromInt(1_000),
	"m": decimal.NewFromInt(1_000_000),
	"b": decimal.NewFromInt(1_000_000_000),
}

// ParseAmount reads "2k", "1.5k", "5m", "₦10,000" or "10000" as a naira amount.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "₦")
	s = strings.TrimPrefix(s, "ngn")
	s = strings.TrimSuffix(s, "naira")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	mult := decimal.NewFromInt(1)
	if m, ok := amountSuffix[s[len(s)-1:]]; ok {
		mult = m
		s = strings.TrimSpace(s[:len(s)-1])
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d.Mul(mult), true
}

var currencySynonyms = map[string]models.Currency{
	"usdt":     models.CurrencyUSDT,
	"tether":   models.CurrencyUSDT,
	"usdc":     models.CurrencyUSDC,
	"usd coin": models.CurrencyUSDC,
	"sol":      models.CurrencySOL,
	"solana":   models.CurrencySOL,
	"eth":      models.CurrencyETH,
	"ethereum": models.CurrencyETH,
	"ether":    models.CurrencyETH,
}

var chainSynonyms = map[string]models.Chain{
	"sol":    models.ChainSolana,
	"solana": models.ChainSolana,
	"base":   models.ChainBase,
	"celo":   models.ChainCelo,
}

// ParseCurrency recognises an asset name. Anything else is "not specified".
func ParseCurrency(raw string) (models.Currency, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := currencySynonyms[s]; ok {
		return c, true
	}
	return "", false
}

// ParseChain recognises "solana", "base chain", "celo network" and the like.
func ParseChain(raw string) (models.Chain, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, suffix := range []string{" chain", " network", " mainnet"} {
		s = strings.TrimSuffix(s, suffix)
	}
	if c, ok := chainSynonyms[s]; ok {
		return c, true
	}
	return "", false
}

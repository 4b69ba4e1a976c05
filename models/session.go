package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Step string

const (
	StepCollectingBankName Step = "collecting_bank_name"
	StepCollectingChain    Step = "collecting_chain"
	StepCollectingCurrency Step = "collecting_currency"
	StepAwaitingPIN        Step = "awaiting_pin"
	StepTerminal           Step = "terminal"
)

type Chain string

const (
	ChainSolana Chain = "SOLANA"
	ChainBase   Chain = "BASE"
	ChainCelo   Chain = "CELO"
)

type Currency string

const (
	CurrencySOL  Currency = "SOL"
	CurrencyUSDC Currency = "USDC"
	CurrencyUSDT Currency = "USDT"
	CurrencyETH  Currency = "ETH"
)

// ChainFamily groups chains that share key material and transfer mechanics.
type ChainFamily string

const (
	FamilySolana ChainFamily = "solana"
	FamilyEVM    ChainFamily = "evm"
)

var Chains = []Chain{ChainSolana, ChainBase, ChainCelo}

func ParseChain(s string) (Chain, bool) {
	for _, c := range Chains {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func ParseCurrency(s string) (Currency, bool) {
	switch Currency(s) {
	case CurrencySOL, CurrencyUSDC, CurrencyUSDT, CurrencyETH:
		return Currency(s), true
	}
	return "", false
}

func (c Chain) Family() ChainFamily {
	if c == ChainSolana {
		return FamilySolana
	}
	return FamilyEVM
}

// Currencies lists the assets that can be withdrawn on the chain, native asset first.
func (c Chain) Currencies() []Currency {
	switch c {
	case ChainSolana:
		return []Currency{CurrencySOL, CurrencyUSDC, CurrencyUSDT}
	case ChainBase, ChainCelo:
		return []Currency{CurrencyETH, CurrencyUSDC, CurrencyUSDT}
	}
	return nil
}

func (c Chain) Supports(cur Currency) bool {
	for _, v := range c.Currencies() {
		if v == cur {
			return true
		}
	}
	return false
}

// IsStable reports whether the asset is pegged 1:1 to USD.
func (c Currency) IsStable() bool {
	return c == CurrencyUSDC || c == CurrencyUSDT
}

// WithdrawalSession is the in-flight state of one user's withdrawal request.
type WithdrawalSession struct {
	ID                     string          `json:"id"`
	UserID                 int64           `json:"user_id"`
	Step                   Step            `json:"step"`
	AmountNGN              decimal.Decimal `json:"amount_ngn"`
	RecipientAccountNumber string          `json:"recipient_account_number"`
	BankName               string          `json:"bank_name,omitempty"`
	ValidationBankCode     string          `json:"validation_bank_code,omitempty"`
	PayoutBankCode         string          `json:"payout_bank_code,omitempty"`
	AccountName            string          `json:"account_name,omitempty"`
	Chain                  Chain           `json:"chain,omitempty"`
	Currency               Currency        `json:"currency,omitempty"`
	CryptoAmount           decimal.Decimal `json:"crypto_amount"`
	PinAttempts            int             `json:"pin_attempts"`
	CreatedAt              time.Time       `json:"created_at"`
	ExpiresAt              time.Time       `json:"expires_at"`
}

// NextMissing returns the first unfilled slot in prompt order, or "" when
// bank name, chain and currency are all present.
func (s *WithdrawalSession) NextMissing() Step {
	switch {
	case s.BankName == "":
		return StepCollectingBankName
	case s.Chain == "":
		return StepCollectingChain
	case s.Currency == "":
		return StepCollectingCurrency
	}
	return ""
}

func (s *WithdrawalSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRecord is written once per confirmed payout initiation and never updated.
type LedgerRecord struct {
	ID                  int64           `db:"id" json:"id"`
	TelegramID          int64           `db:"telegram_id" json:"telegram_id"`
	TransactionID       string          `db:"transaction_id" json:"transaction_id"`
	FiatPayoutAmount    decimal.Decimal `db:"fiat_payout_amount" json:"fiat_payout_amount"`
	DepositAmount       decimal.Decimal `db:"deposit_amount" json:"deposit_amount"`
	PayoutWalletAddress string          `db:"payout_wallet_address" json:"payout_wallet_address"`
	Chain               Chain           `db:"chain" json:"chain"`
	Currency            Currency        `db:"currency" json:"currency"`
	Status              string          `db:"status" json:"status"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
}

type DispatchRecord struct {
	ID            int64     `db:"id" json:"id"`
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	Success       bool      `db:"success" json:"success"`
	Signature     *string   `db:"signature" json:"signature,omitempty"`
	Error         *string   `db:"error" json:"error,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type PayoutRequest struct {
	TelegramID    int64
	Username      string
	AccountNumber string
	BankCode      string
	Amount        decimal.Decimal
	Currency      Currency
	Chain         Chain
}

// PayoutInstruction is the widget's answer: where to send, how much, and what the bank account receives.
type PayoutInstruction struct {
	TransactionID    string
	DepositAddress   string
	DepositAmount    decimal.Decimal
	FiatPayoutAmount decimal.Decimal
	Status           string
}

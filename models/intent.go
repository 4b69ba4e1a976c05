package models

import "github.com/shopspring/decimal"

// WithdrawalDraft is what the intent extractor could read from a message.
// Nil pointers mean the user did not say; nothing is defaulted.
type WithdrawalDraft struct {
	IsWithdrawal  bool             `json:"isWithdrawal"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      *Currency        `json:"currency,omitempty"`
	Chain         *Chain           `json:"chain,omitempty"`
	Recipient     *string          `json:"recipient,omitempty"`
	BankName      *string          `json:"bankName,omitempty"`
	CryptoAddress *string          `json:"cryptoAddress,omitempty"`
}

package models

import "github.com/shopspring/decimal"

// TransferResult has the same shape for every chain and asset.
type TransferResult struct {
	Success     bool            `json:"success"`
	Signature   string          `json:"signature,omitempty"`
	Error       string          `json:"error,omitempty"`
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`
	Amount      decimal.Decimal `json:"amount"`
	ExplorerURL string          `json:"explorer_url,omitempty"`
}

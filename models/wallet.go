package models

import "time"

type Wallet struct {
	ID                  int64       `db:"id" json:"id"`
	TelegramID          int64       `db:"telegram_id" json:"telegram_id"`
	Family              ChainFamily `db:"family" json:"family"`
	Address             string      `db:"address" json:"address"`
	EncryptedPrivateKey string      `db:"encrypted_private_key" json:"-"`
	CreatedAt           time.Time   `db:"created_at" json:"created_at"`
}

package models

import "time"

type User struct {
	ID         int64     `json:"id" db:"id"`
	TelegramID int64     `json:"telegram_id" db:"telegram_id"`
	Username   string    `json:"username" db:"username"`
	PinHash    string    `json:"-" db:"withdrawal_pin_hash"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	Wallets    []Wallet  `json:"wallets" db:"-"`
}

// Wallet returns the user's custodial wallet for the family, if any.
func (u *User) Wallet(family ChainFamily) (Wallet, bool) {
	for _, w := range u.Wallets {
		if w.Family == family {
			return w, true
		}
	}
	return Wallet{}, false
}

package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"jumpa_withdrawal_back/models"
)

const pgUniqueViolation = "23505"

type Users interface {
	// GetUserByTelegramID returns the user with wallets loaded, or models.ErrUserNotFound.
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	CreateUser(ctx context.Context, u models.User) (int64, error)
	AddWallet(ctx context.Context, w models.Wallet) (int64, error)
	SetPinHash(ctx context.Context, telegramID int64, hash string) error
}

type Ledger interface {
	// Record inserts the payout once; a repeated transaction id returns
	// models.ErrDuplicateTransaction and writes nothing.
	Record(ctx context.Context, rec models.LedgerRecord) (int64, error)
	RecordDispatch(ctx context.Context, d models.DispatchRecord) error
	// ListUndispatched returns recorded payouts that have no dispatch outcome.
	ListUndispatched(ctx context.Context) ([]models.LedgerRecord, error)
}

type Repository struct {
	Users
	Ledger
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users:  NewUsersPostgres(db),
		Ledger: NewLedgerPostgres(db),
	}
}

func NewMemoryRepository() *Repository {
	return &Repository{
		Users:  NewMemoryUsers(),
		Ledger: NewMemoryLedger(),
	}
}

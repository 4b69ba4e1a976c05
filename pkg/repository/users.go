package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"jumpa_withdrawal_back/models"
)

type UsersPostgres struct {
	db *sqlx.DB
}

func NewUsersPostgres(db *sqlx.DB) *UsersPostgres {
	return &UsersPostgres{db: db}
}

func (r *UsersPostgres) GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, telegram_id, username, withdrawal_pin_hash, created_at FROM users WHERE telegram_id = $1`
	if err := r.db.GetContext(ctx, &user, query, telegramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "get user")
	}

	query = `SELECT id, telegram_id, family, address, encrypted_private_key, created_at FROM wallets WHERE telegram_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &user.Wallets, query, telegramID); err != nil {
		return nil, errors.Wrap(err, "get wallets")
	}
	return &user, nil
}

func (r *UsersPostgres) CreateUser(ctx context.Context, u models.User) (int64, error) {
	var id int64
	query := `
        INSERT INTO users (telegram_id, username, withdrawal_pin_hash)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	err := r.db.QueryRowContext(ctx, query, u.TelegramID, u.Username, u.PinHash).Scan(&id)
	if isUniqueViolation(err) {
		return 0, errors.Wrapf(models.ErrUserExists, "user %d", u.TelegramID)
	}
	if err != nil {
		return 0, errors.Wrap(err, "create user")
	}
	return id, nil
}

func (r *UsersPostgres) AddWallet(ctx context.Context, w models.Wallet) (int64, error) {
	var id int64
	query := `
        INSERT INTO wallets (telegram_id, family, address, encrypted_private_key)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err := r.db.QueryRowContext(ctx, query, w.TelegramID, w.Family, w.Address, w.EncryptedPrivateKey).Scan(&id)
	if isUniqueViolation(err) {
		return 0, errors.Wrapf(models.ErrWalletExists, "user %d %s wallet", w.TelegramID, w.Family)
	}
	if err != nil {
		return 0, errors.Wrap(err, "add wallet")
	}
	return id, nil
}

func (r *UsersPostgres) SetPinHash(ctx context.Context, telegramID int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET withdrawal_pin_hash = $1 WHERE telegram_id = $2`, hash, telegramID)
	if err != nil {
		return errors.Wrap(err, "set pin hash")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "set pin hash rows affected")
	}
	if n == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

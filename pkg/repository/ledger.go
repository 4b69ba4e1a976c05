package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"jumpa_withdrawal_back/models"
)

type LedgerPostgres struct {
	db *sqlx.DB
}

func NewLedgerPostgres(db *sqlx.DB) *LedgerPostgres {
	return &LedgerPostgres{db: db}
}

func (r *LedgerPostgres) Record(ctx context.Context, rec models.LedgerRecord) (int64, error) {
	var id int64
	query := `
        INSERT INTO withdrawals (telegram_id, transaction_id, fiat_payout_amount, deposit_amount,
                                 payout_wallet_address, chain, currency, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (transaction_id) DO NOTHING
        RETURNING id
    `
	err := r.db.QueryRowContext(ctx, query,
		rec.TelegramID,
		rec.TransactionID,
		rec.FiatPayoutAmount,
		rec.DepositAmount,
		rec.PayoutWalletAddress,
		rec.Chain,
		rec.Currency,
		rec.Status,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
		return 0, errors.Wrapf(models.ErrDuplicateTransaction, "transaction %s", rec.TransactionID)
	}
	if err != nil {
		return 0, errors.Wrap(err, "insert withdrawal")
	}
	return id, nil
}

func (r *LedgerPostgres) RecordDispatch(ctx context.Context, d models.DispatchRecord) error {
	query := `
        INSERT INTO withdrawal_dispatches (transaction_id, success, signature, error)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.db.ExecContext(ctx, query, d.TransactionID, d.Success, d.Signature, d.Error)
	return errors.Wrap(err, "insert dispatch")
}

func (r *LedgerPostgres) ListUndispatched(ctx context.Context) ([]models.LedgerRecord, error) {
	var out []models.LedgerRecord
	query := `
        SELECT w.id, w.telegram_id, w.transaction_id, w.fiat_payout_amount, w.deposit_amount,
               w.payout_wallet_address, w.chain, w.currency, w.status, w.created_at
        FROM withdrawals w
        LEFT JOIN withdrawal_dispatches d ON d.transaction_id = w.transaction_id
        WHERE d.id IS NULL
        ORDER BY w.created_at
    `
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, errors.Wrap(err, "list undispatched")
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"jumpa_withdrawal_back/models"
)

func testDB(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return NewRepository(db)
}

func TestPostgresLedgerLifecycle(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()
	txID := fmt.Sprintf("test_%d", time.Now().UnixNano())

	if _, err := repo.Record(ctx, ledgerRecord(txID)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := repo.Record(ctx, ledgerRecord(txID)); !errors.Is(err, models.ErrDuplicateTransaction) {
		t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
	}

	pending, err := repo.ListUndispatched(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !containsTx(pending, txID) {
		t.Fatal("new withdrawal should be undispatched")
	}

	msg := "insufficient balance"
	if err := repo.RecordDispatch(ctx, models.DispatchRecord{TransactionID: txID, Success: false, Error: &msg}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	pending, err = repo.ListUndispatched(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if containsTx(pending, txID) {
		t.Fatal("dispatched withdrawal still listed")
	}
}

func TestPostgresUsers(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()
	tgID := time.Now().UnixNano()

	if _, err := repo.GetUserByTelegramID(ctx, tgID); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.CreateUser(ctx, models.User{TelegramID: tgID, Username: "ada"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.AddWallet(ctx, models.Wallet{TelegramID: tgID, Family: models.FamilyEVM, Address: "0xabc", EncryptedPrivateKey: "enc"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateUser(ctx, models.User{TelegramID: tgID}); !errors.Is(err, models.ErrUserExists) {
		t.Fatalf("duplicate user: %v", err)
	}
	if _, err := repo.AddWallet(ctx, models.Wallet{TelegramID: tgID, Family: models.FamilyEVM, Address: "0xdef", EncryptedPrivateKey: "enc2"}); !errors.Is(err, models.ErrWalletExists) {
		t.Fatalf("duplicate wallet family: %v", err)
	}
	if err := repo.SetPinHash(ctx, tgID, "hash"); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetPinHash(ctx, tgID+1, "hash"); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("pin for unknown user: %v", err)
	}
	u, err := repo.GetUserByTelegramID(ctx, tgID)
	if err != nil {
		t.Fatal(err)
	}
	if w, ok := u.Wallet(models.FamilyEVM); !ok || w.EncryptedPrivateKey != "enc" || u.PinHash != "hash" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func containsTx(recs []models.LedgerRecord, txID string) bool {
	for _, r := range recs {
		if r.TransactionID == txID {
			return true
		}
	}
	return false
}

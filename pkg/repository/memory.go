package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"jumpa_withdrawal_back/models"
)

// MemoryLedger is mostly for testing.
type MemoryLedger struct {
	mu         sync.RWMutex
	nextID     int64
	records    map[string]models.LedgerRecord
	dispatches map[string][]models.DispatchRecord
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		records:    make(map[string]models.LedgerRecord),
		dispatches: make(map[string][]models.DispatchRecord),
	}
}

func (m *MemoryLedger) Record(_ context.Context, rec models.LedgerRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.TransactionID]; ok {
		return 0, errors.Wrapf(models.ErrDuplicateTransaction, "transaction %s", rec.TransactionID)
	}
	m.nextID++
	rec.ID = m.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	m.records[rec.TransactionID] = rec
	return rec.ID, nil
}

func (m *MemoryLedger) RecordDispatch(_ context.Context, d models.DispatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[d.TransactionID]; !ok {
		return errors.Errorf("no withdrawal %s", d.TransactionID)
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	m.dispatches[d.TransactionID] = append(m.dispatches[d.TransactionID], d)
	return nil
}

func (m *MemoryLedger) ListUndispatched(_ context.Context) ([]models.LedgerRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.LedgerRecord
	for id, rec := range m.records {
		if len(m.dispatches[id]) == 0 {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Records returns every ledger row ordered by insertion.
func (m *MemoryLedger) Records() []models.LedgerRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.LedgerRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MemoryLedger) Dispatches(transactionID string) []models.DispatchRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.DispatchRecord(nil), m.dispatches[transactionID]...)
}

type MemoryUsers struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]models.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[int64]models.User)}
}

func (m *MemoryUsers) GetUserByTelegramID(_ context.Context, telegramID int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[telegramID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	u.Wallets = append([]models.Wallet(nil), u.Wallets...)
	return &u, nil
}

func (m *MemoryUsers) CreateUser(_ context.Context, u models.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.TelegramID]; ok {
		return 0, errors.Wrapf(models.ErrUserExists, "user %d", u.TelegramID)
	}
	m.nextID++
	u.ID = m.nextID
	u.Wallets = nil
	m.users[u.TelegramID] = u
	return u.ID, nil
}

func (m *MemoryUsers) AddWallet(_ context.Context, w models.Wallet) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[w.TelegramID]
	if !ok {
		return 0, models.ErrUserNotFound
	}
	for _, existing := range u.Wallets {
		if existing.Family == w.Family {
			return 0, errors.Wrapf(models.ErrWalletExists, "user %d %s wallet", w.TelegramID, w.Family)
		}
	}
	m.nextID++
	w.ID = m.nextID
	u.Wallets = append(u.Wallets, w)
	m.users[w.TelegramID] = u
	return w.ID, nil
}

func (m *MemoryUsers) SetPinHash(_ context.Context, telegramID int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[telegramID]
	if !ok {
		return models.ErrUserNotFound
	}
	u.PinHash = hash
	m.users[telegramID] = u
	return nil
}

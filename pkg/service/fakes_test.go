package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"jumpa_withdrawal_back/models"
	"jumpa_withdrawal_back/pkg/banks"
	"jumpa_withdrawal_back/pkg/cache"
	"jumpa_withdrawal_back/pkg/notify"
	"jumpa_withdrawal_back/pkg/repository"
)

const (
	testUser    int64 = 42
	testPIN           = "1234"
	testAccount       = "8058509303"
)

type fakeExtractor struct {
	drafts map[string]*models.WithdrawalDraft
}

func (f *fakeExtractor) Extract(_ context.Context, message string) *models.WithdrawalDraft {
	return f.drafts[message]
}

type fakeValidator struct {
	name  string
	err   error
	calls int32
}

func (f *fakeValidator) ValidateAccount(_ context.Context, accountNumber, _ string) (models.AccountResolution, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return models.AccountResolution{}, f.err
	}
	return models.AccountResolution{AccountNumber: accountNumber, AccountName: f.name}, nil
}

type fakeConverter struct {
	amount decimal.Decimal
	err    error
}

func (f *fakeConverter) Convert(_ context.Context, _ decimal.Decimal, _ models.Currency) (decimal.Decimal, error) {
	return f.amount, f.err
}

type fakeInitiator struct {
	mu    sync.Mutex
	instr models.PayoutInstruction
	err   error
	reqs  []models.PayoutRequest
}

func (f *fakeInitiator) Initiate(_ context.Context, req models.PayoutRequest) (models.PayoutInstruction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return models.PayoutInstruction{}, f.err
	}
	return f.instr, nil
}

func (f *fakeInitiator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

type dispatchCall struct {
	chain    models.Chain
	currency models.Currency
	to       string
	amount   decimal.Decimal
}

type fakeDispatcher struct {
	mu   sync.Mutex
	res  models.TransferResult
	err  error
	sent []dispatchCall
}

func (f *fakeDispatcher) Dispatch(_ context.Context, _ *models.User, chain models.Chain, currency models.Currency, to string, amount decimal.Decimal) (models.TransferResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, dispatchCall{chain: chain, currency: currency, to: to, amount: amount})
	return f.res, f.err
}

func (f *fakeDispatcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeNotifier struct {
	mu     sync.Mutex
	alerts []notify.Alert
}

func (f *fakeNotifier) DispatchFailed(_ context.Context, a notify.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, a)
	return nil
}

type fixture struct {
	svc        *WithdrawalService
	extractor  *fakeExtractor
	validator  *fakeValidator
	converter  *fakeConverter
	initiator  *fakeInitiator
	dispatcher *fakeDispatcher
	notifier   *fakeNotifier
	sessions   *cache.MemoryStore
	locks      *cache.UserLocks
	users      *repository.MemoryUsers
	ledger     *repository.MemoryLedger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		extractor: &fakeExtractor{drafts: map[string]*models.WithdrawalDraft{}},
		validator: &fakeValidator{name: "ADA OBI"},
		converter: &fakeConverter{amount: decimal.RequireFromString("1.3333")},
		initiator: &fakeInitiator{instr: models.PayoutInstruction{
			TransactionID:    "tx-1",
			DepositAddress:   "DepositAddr1111111111111111111111111111111",
			DepositAmount:    decimal.RequireFromString("1.34"),
			FiatPayoutAmount: decimal.NewFromInt(2000),
			Status:           "pending",
		}},
		dispatcher: &fakeDispatcher{res: models.TransferResult{
			Success:     true,
			Signature:   "sig-1",
			ExplorerURL: "https://solscan.io/tx/sig-1",
		}},
		notifier: &fakeNotifier{},
		sessions: cache.NewMemoryStore(cache.DefaultSessionTTL),
		locks:    cache.NewUserLocks(),
		users:    repository.NewMemoryUsers(),
		ledger:   repository.NewMemoryLedger(),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPIN), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if _, err := f.users.CreateUser(ctx, models.User{TelegramID: testUser, Username: "ada", PinHash: string(hash)}); err != nil {
		t.Fatal(err)
	}

	f.svc = NewWithdrawalService(Deps{
		Extractor:  f.extractor,
		Banks:      banks.NewDefaultResolver(),
		Accounts:   f.validator,
		Rates:      f.converter,
		Payouts:    f.initiator,
		Dispatcher: f.dispatcher,
		Sessions:   f.sessions,
		Users:      f.users,
		Ledger:     f.ledger,
		Notifier:   f.notifier,
		Locks:      f.locks,
	})
	return f
}

func (f *fixture) session(t *testing.T) *models.WithdrawalSession {
	t.Helper()
	s, ok, err := f.sessions.Get(context.Background(), testUser)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		return nil
	}
	return s
}

func ptr[T any](v T) *T { return &v }

func fullDraft() *models.WithdrawalDraft {
	return &models.WithdrawalDraft{
		IsWithdrawal: true,
		Amount:       ptr(decimal.NewFromInt(2000)),
		Currency:     ptr(models.CurrencyUSDT),
		Chain:        ptr(models.ChainSolana),
		Recipient:    ptr(testAccount),
		BankName:     ptr("GT bank"),
	}
}

package service

import (
	"context"

	"github.com/shopspring/decimal"

	"jumpa_withdrawal_back/models"
	"jumpa_withdrawal_back/pkg/banks"
)

type IntentExtractor interface {
	Extract(ctx context.Context, message string) *models.WithdrawalDraft
}

type BankResolver interface {
	Resolve(bankName string) (banks.Codes, error)
}

type AccountValidator interface {
	ValidateAccount(ctx context.Context, accountNumber, bankCode string) (models.AccountResolution, error)
}

type CurrencyConverter interface {
	Convert(ctx context.Context, amountNGN decimal.Decimal, currency models.Currency) (decimal.Decimal, error)
}

type PayoutInitiator interface {
	Initiate(ctx context.Context, req models.PayoutRequest) (models.PayoutInstruction, error)
}

type TransferDispatcher interface {
	Dispatch(ctx context.Context, user *models.User, chain models.Chain, currency models.Currency, to string, amount decimal.Decimal) (models.TransferResult, error)
}

type Withdrawal interface {
	HandleText(ctx context.Context, userID int64, text string) (*models.Outcome, error)
	Start(ctx context.Context, userID int64, draft *models.WithdrawalDraft) (*models.Outcome, error)
	ProvideBankName(ctx context.Context, userID int64, bankName string) (*models.Outcome, error)
	SelectChain(ctx context.Context, userID int64, chain string) (*models.Outcome, error)
	SelectCurrency(ctx context.Context, userID int64, currency string) (*models.Outcome, error)
	SubmitPIN(ctx context.Context, userID int64, pin string) (*models.Outcome, error)
	Cancel(ctx context.Context, userID int64) (*models.Outcome, error)
	Session(ctx context.Context, userID int64) (*models.WithdrawalSession, bool, error)
}

type Reconciliation interface {
	Undispatched(ctx context.Context) ([]models.LedgerRecord, error)
}

type Account interface {
	Provision(ctx context.Context, telegramID int64, username string) (*models.User, error)
	SetPIN(ctx context.Context, telegramID int64, currentPIN, newPIN string) error
}

type Service struct {
	Withdrawal
	Reconciliation
	Account
}

func NewService(w *WithdrawalService, a *AccountService) *Service {
	return &Service{
		Withdrawal:     w,
		Reconciliation: w,
		Account:        a,
	}
}

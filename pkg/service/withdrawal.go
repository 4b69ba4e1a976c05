package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
	"jumpa_withdrawal_back/pkg/cache"
	"jumpa_withdrawal_back/pkg/metrics"
	"jumpa_withdrawal_back/pkg/notify"
	"jumpa_withdrawal_back/pkg/pin"
	"jumpa_withdrawal_back/pkg/repository"
)

// Deps are WithdrawalService's collaborators. Locks must be the instance
// given to AccountService so PIN changes and PIN checks never interleave.
type Deps struct {
	Extractor  IntentExtractor
	Banks      BankResolver
	Accounts   AccountValidator
	Rates      CurrencyConverter
	Payouts    PayoutInitiator
	Dispatcher TransferDispatcher
	Sessions   cache.SessionStore
	Users      repository.Users
	Ledger     repository.Ledger
	Notifier   notify.Notifier
	Metrics    *metrics.Registry
	Locks      *cache.UserLocks
}

// WithdrawalService drives one withdrawal per user from free text to a
// confirmed chain transfer.
type WithdrawalService struct {
	Deps
	guard *pin.Guard
}

func NewWithdrawalService(d Deps) *WithdrawalService {
	if d.Notifier == nil {
		d.Notifier = notify.LogNotifier{}
	}
	if d.Locks == nil {
		d.Locks = cache.NewUserLocks()
	}
	return &WithdrawalService{Deps: d, guard: pin.NewGuard()}
}

func (s *WithdrawalService) HandleText(ctx context.Context, userID int64, text string) (*models.Outcome, error) {
	sess, ok, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	if ok {
		switch sess.Step {
		case models.StepCollectingBankName:
			return s.ProvideBankName(ctx, userID, text)
		case models.StepAwaitingPIN:
			return s.SubmitPIN(ctx, userID, text)
		case models.StepTerminal:
			if pin.WellFormed(strings.TrimSpace(text)) {
				return s.SubmitPIN(ctx, userID, text)
			}
		}
	}
	return s.Start(ctx, userID, s.Extractor.Extract(ctx, text))
}

// Start begins a new withdrawal from an extracted draft, replacing any
// session the user already had.
func (s *WithdrawalService) Start(ctx context.Context, userID int64, draft *models.WithdrawalDraft) (*models.Outcome, error) {
	log := logrus.WithField("telegram_id", userID)
	out := &models.Outcome{}

	if draft == nil || !draft.IsWithdrawal {
		log.WithError(models.ErrNonWithdrawal).Debug("ignoring message")
		out.Ignored = true
		return out, nil
	}
	if draft.CryptoAddress != nil {
		log.Info("crypto-to-crypto transfer requested")
		return out.Say(msgCryptoComingSoon), nil
	}
	if draft.Amount == nil || !draft.Amount.IsPositive() || draft.Recipient == nil {
		log.Info("withdrawal intent without amount or account number, ignoring")
		out.Ignored = true
		return out, nil
	}

	sess := &models.WithdrawalSession{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		AmountNGN:              *draft.Amount,
		RecipientAccountNumber: strings.TrimSpace(*draft.Recipient),
	}
	if draft.BankName != nil {
		sess.BankName = strings.TrimSpace(*draft.BankName)
	}
	if draft.Chain != nil {
		sess.Chain = *draft.Chain
	}
	if draft.Currency != nil {
		if sess.Chain != "" && !sess.Chain.Supports(*draft.Currency) {
			log.WithFields(logrus.Fields{"chain": sess.Chain, "currency": *draft.Currency}).Info("currency not available on chain, asking again")
		} else {
			sess.Currency = *draft.Currency
		}
	}

	log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"amount_ngn": sess.AmountNGN.String(),
		"chain":      sess.Chain,
		"currency":   sess.Currency,
	}).Info("withdrawal session started")
	s.Metrics.IncSession("started")
	return s.advance(ctx, sess, out)
}

func (s *WithdrawalService) ProvideBankName(ctx context.Context, userID int64, bankName string) (*models.Outcome, error) {
	out := &models.Outcome{}
	sess, err := s.sessionAt(ctx, userID, models.StepCollectingBankName)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return out.Say(msgSessionExpired), nil
	}
	name := strings.TrimSpace(bankName)
	if name == "" {
		return s.advance(ctx, sess, out)
	}
	if sess.BankName == "" {
		sess.BankName = name
	}
	return s.advance(ctx, sess, out)
}

func (s *WithdrawalService) SelectChain(ctx context.Context, userID int64, chain string) (*models.Outcome, error) {
	out := &models.Outcome{}
	sess, err := s.sessionAt(ctx, userID, models.StepCollectingChain)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return out.Say(msgSessionExpired), nil
	}
	c, ok := models.ParseChain(strings.ToUpper(strings.TrimSpace(chain)))
	if !ok || (sess.Currency != "" && !c.Supports(sess.Currency)) {
		return s.advance(ctx, sess, out)
	}
	if sess.Chain == "" {
		sess.Chain = c
	}
	return s.advance(ctx, sess, out)
}

func (s *WithdrawalService) SelectCurrency(ctx context.Context, userID int64, currency string) (*models.Outcome, error) {
	out := &models.Outcome{}
	sess, err := s.sessionAt(ctx, userID, models.StepCollectingCurrency)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return out.Say(msgSessionExpired), nil
	}
	cur, ok := models.ParseCurrency(strings.ToUpper(strings.TrimSpace(currency)))
	if !ok || !sess.Chain.Supports(cur) {
		return s.advance(ctx, sess, out)
	}
	if sess.Currency == "" {
		sess.Currency = cur
	}
	return s.advance(ctx, sess, out)
}

func (s *WithdrawalService) Cancel(ctx context.Context, userID int64) (*models.Outcome, error) {
	removed, err := s.Sessions.Delete(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "delete session")
	}
	if removed {
		s.Metrics.IncSession("cancelled")
		logrus.WithField("telegram_id", userID).Info("withdrawal cancelled")
	}
	out := &models.Outcome{DeleteInbound: true}
	return out.Say(msgCancelled), nil
}

// Session returns the user's live session. A session destroyed by PIN
// lockout is reported as absent.
func (s *WithdrawalService) Session(ctx context.Context, userID int64) (*models.WithdrawalSession, bool, error) {
	sess, ok, err := s.Sessions.Get(ctx, userID)
	if err != nil || !ok || sess.Step == models.StepTerminal {
		return nil, false, err
	}
	return sess, true, nil
}

// sessionAt returns the user's session if it is waiting at step, or nil.
func (s *WithdrawalService) sessionAt(ctx context.Context, userID int64, step models.Step) (*models.WithdrawalSession, error) {
	sess, ok, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	if !ok || sess.Step != step {
		return nil, nil
	}
	return sess, nil
}

// advance prompts for the first missing slot, or validates and moves to the
// PIN prompt once every slot is filled.
func (s *WithdrawalService) advance(ctx context.Context, sess *models.WithdrawalSession, out *models.Outcome) (*models.Outcome, error) {
	next := sess.NextMissing()
	if next == "" {
		return s.finalize(ctx, sess, out)
	}
	sess.Step = next
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "save session")
	}

	switch next {
	case models.StepCollectingBankName:
		out.Ask(bankNamePrompt(sess), cancelKeyboard())
	case models.StepCollectingChain:
		out.Ask(chainPrompt(sess), chainKeyboard(sess.Currency))
	case models.StepCollectingCurrency:
		out.Ask(currencyPrompt(sess), currencyKeyboard(sess.Chain))
	}
	return out, nil
}

// finalize resolves both bank codes, validates the account and converts the
// amount. Any failure ends the session before a PIN is asked for.
func (s *WithdrawalService) finalize(ctx context.Context, sess *models.WithdrawalSession, out *models.Outcome) (*models.Outcome, error) {
	log := logrus.WithFields(logrus.Fields{"telegram_id": sess.UserID, "session_id": sess.ID})

	codes, err := s.Banks.Resolve(sess.BankName)
	if err != nil {
		log.WithError(err).Warn("bank lookup failed")
		return s.abort(ctx, sess.UserID, "bank_not_found", out.Say(bankNotFoundText(sess.BankName)))
	}
	sess.ValidationBankCode = codes.Validation.Code
	sess.PayoutBankCode = codes.Payout.Code

	acct, err := s.Accounts.ValidateAccount(ctx, sess.RecipientAccountNumber, sess.ValidationBankCode)
	if err != nil {
		log.WithError(err).Warn("account validation failed")
		return s.abort(ctx, sess.UserID, "account_invalid", out.Say(accountInvalidText(sess)))
	}
	sess.AccountName = acct.AccountName

	amount, err := s.Rates.Convert(ctx, sess.AmountNGN, sess.Currency)
	if err != nil {
		log.WithError(err).Error("rate conversion failed")
		return s.abort(ctx, sess.UserID, "rate_unavailable", out.Say(msgRateUnavailable))
	}
	sess.CryptoAmount = amount
	sess.PinAttempts = 0
	sess.Step = models.StepAwaitingPIN
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "save session")
	}

	log.WithFields(logrus.Fields{
		"chain":         sess.Chain,
		"currency":      sess.Currency,
		"crypto_amount": sess.CryptoAmount.String(),
	}).Info("withdrawal ready for pin")
	return out.Ask(pinPrompt(sess), [][]models.Button{{cancelButton}}), nil
}

func (s *WithdrawalService) abort(ctx context.Context, userID int64, reason string, out *models.Outcome) (*models.Outcome, error) {
	if _, err := s.Sessions.Delete(ctx, userID); err != nil {
		return nil, errors.Wrap(err, "delete session")
	}
	s.Metrics.IncSession(reason)
	return out, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
	"jumpa_withdrawal_back/pkg/notify"
	"jumpa_withdrawal_back/pkg/pin"
)

// SubmitPIN authorizes the prepared withdrawal. The inbound message always
// carries a PIN so it is always flagged for deletion.
func (s *WithdrawalService) SubmitPIN(ctx context.Context, userID int64, candidate string) (*models.Outcome, error) {
	out := &models.Outcome{DeleteInbound: true}
	user, sess, err := s.authorize(ctx, userID, strings.TrimSpace(candidate), out)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return out, nil
	}
	return s.execute(ctx, user, sess, out), nil
}

// authorize runs the PIN check under the user's lock so attempts are
// evaluated one at a time. It returns the taken session only on success;
// otherwise the reply is already on out.
func (s *WithdrawalService) authorize(ctx context.Context, userID int64, candidate string, out *models.Outcome) (*models.User, *models.WithdrawalSession, error) {
	unlock := s.Locks.Lock(userID)
	defer unlock()

	log := logrus.WithField("telegram_id", userID)

	sess, err := s.sessionAt(ctx, userID, models.StepAwaitingPIN)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		s.Metrics.IncPin("expired")
		out.Say(msgSessionExpired)
		return nil, nil, nil
	}
	log = log.WithField("session_id", sess.ID)

	if !pin.WellFormed(candidate) {
		s.Metrics.IncPin("malformed")
		out.Say(msgPinFormat)
		return nil, nil, nil
	}

	user, err := s.Users.GetUserByTelegramID(ctx, userID)
	if err != nil {
		log.WithError(err).Error("load user for pin check")
		_, err := s.abort(ctx, userID, "user_missing", out.Say(msgAccountMissing))
		return nil, nil, err
	}

	verdict, err := s.guard.Check(sess, user.PinHash, candidate)
	switch verdict {
	case pin.Retry:
		s.Metrics.IncPin("mismatch")
		kept, err := s.Sessions.Replace(ctx, sess)
		if err != nil {
			return nil, nil, errors.Wrap(err, "save session")
		}
		if !kept {
			out.Say(msgSessionExpired)
			return nil, nil, nil
		}
		log.WithField("pin_attempts", sess.PinAttempts).Warn("incorrect withdrawal pin")
		out.Say(pinRetryText(s.guard.Remaining(sess)))
		return nil, nil, nil

	case pin.Locked:
		if errors.Is(err, models.ErrPinNotSet) {
			log.Warn("withdrawal pin not set")
			_, err := s.abort(ctx, userID, "pin_not_set", out.Say(msgPinNotSet))
			return nil, nil, err
		}
		s.Metrics.IncPin("locked")
		log.Warn("withdrawal pin attempts exhausted, session destroyed")
		tomb := &models.WithdrawalSession{ID: sess.ID, UserID: userID, Step: models.StepTerminal}
		if _, err := s.Sessions.Replace(ctx, tomb); err != nil {
			return nil, nil, errors.Wrap(err, "save session")
		}
		s.Metrics.IncSession("pin_locked")
		out.SayMarkdown(msgPinLocked)
		return nil, nil, nil

	case pin.Malformed:
		s.Metrics.IncPin("malformed")
		out.Say(msgPinFormat)
		return nil, nil, nil
	}

	// Only the caller that removes the live session may execute it.
	taken, err := s.Sessions.Delete(ctx, userID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "take session")
	}
	if !taken {
		s.Metrics.IncPin("expired")
		out.Say(msgSessionExpired)
		return nil, nil, nil
	}
	s.Metrics.IncPin("authorized")
	log.Info("withdrawal pin accepted")
	return user, sess, nil
}

// execute runs payout initiation, the ledger write and the chain transfer
// for an authorized session. It never returns an error: every failure is
// reported to the user on the outcome.
func (s *WithdrawalService) execute(ctx context.Context, user *models.User, sess *models.WithdrawalSession, out *models.Outcome) *models.Outcome {
	log := logrus.WithFields(logrus.Fields{
		"telegram_id": sess.UserID,
		"session_id":  sess.ID,
		"chain":       sess.Chain,
		"currency":    sess.Currency,
	})

	instr, err := s.Payouts.Initiate(ctx, models.PayoutRequest{
		TelegramID:    sess.UserID,
		Username:      user.Username,
		AccountNumber: sess.RecipientAccountNumber,
		BankCode:      sess.PayoutBankCode,
		Amount:        sess.CryptoAmount,
		Currency:      sess.Currency,
		Chain:         sess.Chain,
	})
	if err != nil {
		s.Metrics.IncPayout("failed")
		s.Metrics.IncSession("payout_failed")
		log.WithError(err).Error("payout initiation failed")
		return out.Say(failureText(err))
	}
	s.Metrics.IncPayout("initiated")
	log = log.WithField("transaction_id", instr.TransactionID)

	_, err = s.Ledger.Record(ctx, models.LedgerRecord{
		TelegramID:          sess.UserID,
		TransactionID:       instr.TransactionID,
		FiatPayoutAmount:    instr.FiatPayoutAmount,
		DepositAmount:       instr.DepositAmount,
		PayoutWalletAddress: instr.DepositAddress,
		Chain:               sess.Chain,
		Currency:            sess.Currency,
		Status:              instr.Status,
	})
	if err != nil {
		s.Metrics.IncSession("ledger_refused")
		log.WithError(err).Error("ledger write refused, transfer not dispatched")
		return out.Say(failureText(err))
	}

	res, err := s.Dispatcher.Dispatch(ctx, user, sess.Chain, sess.Currency, instr.DepositAddress, instr.DepositAmount)
	if err == nil && !res.Success {
		err = errors.Wrap(models.ErrChainSubmission, res.Error)
	}
	s.recordDispatch(ctx, instr.TransactionID, res, err)
	s.Metrics.IncDispatch(sess.Chain, sess.Currency, err == nil)

	if err != nil {
		s.Metrics.IncSession("dispatch_failed")
		log.WithError(err).Error("chain transfer failed after payout was recorded")
		alert := notify.Alert{
			TelegramID:       sess.UserID,
			TransactionID:    instr.TransactionID,
			Chain:            sess.Chain,
			Currency:         sess.Currency,
			DepositAddress:   instr.DepositAddress,
			DepositAmount:    instr.DepositAmount,
			FiatPayoutAmount: instr.FiatPayoutAmount,
			Signature:        res.Signature,
			Error:            err.Error(),
		}
		if nerr := s.Notifier.DispatchFailed(ctx, alert); nerr != nil {
			log.WithError(nerr).Error("ops alert not delivered")
		}
		text := failureText(err)
		if res.ExplorerURL != "" {
			text += "\n\n" + res.ExplorerURL
		}
		return out.Say(text)
	}

	s.Metrics.IncSession("completed")
	log.WithField("signature", res.Signature).Info("withdrawal completed")
	return out.Say(successText(sess, instr, res))
}

func (s *WithdrawalService) recordDispatch(ctx context.Context, txID string, res models.TransferResult, err error) {
	d := models.DispatchRecord{TransactionID: txID, Success: err == nil}
	if res.Signature != "" {
		sig := res.Signature
		d.Signature = &sig
	}
	if err != nil {
		msg := err.Error()
		d.Error = &msg
	}
	if rerr := s.Ledger.RecordDispatch(ctx, d); rerr != nil {
		logrus.WithError(rerr).WithField("transaction_id", txID).Error("dispatch outcome not recorded")
	}
}

// Undispatched lists recorded payouts that never received a dispatch outcome.
func (s *WithdrawalService) Undispatched(ctx context.Context) ([]models.LedgerRecord, error) {
	recs, err := s.Ledger.ListUndispatched(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list undispatched")
	}
	s.Metrics.SetUndispatched(len(recs))
	return recs, nil
}

func failureText(err error) string {
	return fmt.Sprintf("❌ Withdrawal failed: %s", err.Error())
}

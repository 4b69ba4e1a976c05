package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
)

// Alert describes a payout that was recorded in the ledger but whose chain
// transfer did not go through.
type Alert struct {
	TelegramID       int64
	TransactionID    string
	Chain            models.Chain
	Currency         models.Currency
	DepositAddress   string
	DepositAmount    decimal.Decimal
	FiatPayoutAmount decimal.Decimal
	Signature        string
	Error            string
}

type Notifier interface {
	DispatchFailed(ctx context.Context, a Alert) error
}

type Config struct {
	// Provider is "mailjet", "smtp" or empty for log-only.
	Provider string
	From     string
	FromName string
	To       string

	MailjetAPIKey    string
	MailjetSecretKey string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}

func New(cfg Config) Notifier {
	switch cfg.Provider {
	case "mailjet":
		if cfg.MailjetAPIKey == "" || cfg.MailjetSecretKey == "" {
			logrus.Warn("MAILJET_API_KEY or MAILJET_SECRET_KEY not set, ops alerts go to the log only")
			return LogNotifier{}
		}
		return NewMailjet(cfg)
	case "smtp":
		return NewSMTP(cfg)
	}
	return LogNotifier{}
}

type LogNotifier struct{}

func (LogNotifier) DispatchFailed(_ context.Context, a Alert) error {
	logrus.WithFields(logrus.Fields{
		"telegram_id":    a.TelegramID,
		"transaction_id": a.TransactionID,
		"chain":          a.Chain,
		"currency":       a.Currency,
		"signature":      a.Signature,
		"error":          a.Error,
	}).Error("recorded payout was not dispatched")
	return nil
}

func subject(a Alert) string {
	return fmt.Sprintf("Withdrawal %s needs attention", a.TransactionID)
}

func body(a Alert) string {
	row := func(k, v string) string {
		return fmt.Sprintf(`<tr><td style="color:#555;padding:4px 12px 4px 0;">%s</td><td style="font-weight:bold;">%s</td></tr>`, k, html.EscapeString(v))
	}
	return `<body style="font-family:Arial,sans-serif;">` +
		`<h2>Recorded payout not dispatched</h2><table>` +
		row("Telegram ID", fmt.Sprint(a.TelegramID)) +
		row("Transaction", a.TransactionID) +
		row("Route", fmt.Sprintf("%s on %s", a.Currency, a.Chain)) +
		row("Deposit", fmt.Sprintf("%s %s to %s", a.DepositAmount.String(), a.Currency, a.DepositAddress)) +
		row("Payout", "NGN "+a.FiatPayoutAmount.StringFixed(2)) +
		row("Signature", a.Signature) +
		row("Error", a.Error) +
		`</table></body>`
}

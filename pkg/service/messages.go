package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"jumpa_withdrawal_back/models"
)

const (
	CallbackChainPrefix    = "ai_withdraw_chain:"
	CallbackCurrencyPrefix = "ai_withdraw_currency:"
	CallbackCancel         = "ai_withdraw_cancel"
)

const (
	msgCryptoComingSoon = "🔄 Crypto-to-crypto transfers are coming soon!\n\nFor now, you can only withdraw to Nigerian bank accounts."
	msgSessionExpired   = "Session expired. Please start a new withdrawal request."
	msgCancelled        = "Withdrawal cancelled."
	msgRateUnavailable  = "❌ Unable to fetch exchange rates right now. Please try again later."
	msgPinFormat        = "❌ Invalid PIN format. Please enter a 4-digit numeric PIN."
	msgAccountMissing   = "❌ User does not exist."
	msgPinNotSet        = "❌ You have not set a withdrawal PIN yet. Please set one before withdrawing."
	msgPinLocked        = "❌ *Withdrawal Cancelled*\n\nYou have entered an incorrect PIN twice. For security reasons, this withdrawal has been cancelled.\n\nPlease start a new withdrawal request."
)

var cancelButton = models.Button{Label: "❌ Cancel", Data: CallbackCancel}

var chainLabels = map[models.Chain]string{
	models.ChainSolana: "🟣 Solana",
	models.ChainBase:   "🔵 Base",
	models.ChainCelo:   "🟢 Celo",
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func md(s string) string {
	return markdownEscaper.Replace(s)
}

func header(s *models.WithdrawalSession) string {
	var b strings.Builder
	b.WriteString("💰 Withdrawal Request\n\n")
	fmt.Fprintf(&b, "Amount: *%s*\n", formatNaira(s.AmountNGN))
	if s.Chain != "" && s.BankName != "" {
		fmt.Fprintf(&b, "Chain: *%s*\n", s.Chain)
	}
	if s.BankName == "" {
		fmt.Fprintf(&b, "Account: %s\n\n", md(s.RecipientAccountNumber))
	} else {
		fmt.Fprintf(&b, "To: %s - %s\n\n", md(s.BankName), md(s.RecipientAccountNumber))
	}
	return b.String()
}

func bankNamePrompt(s *models.WithdrawalSession) string {
	return header(s) + `Please specify the bank name (e.g., "Access Bank", "GT Bank", "Zenith Bank"):`
}

func chainPrompt(s *models.WithdrawalSession) string {
	return header(s) + "Which blockchain would you like to use?"
}

func currencyPrompt(s *models.WithdrawalSession) string {
	return header(s) + fmt.Sprintf("Which currency on %s?", s.Chain)
}

func pinPrompt(s *models.WithdrawalSession) string {
	return fmt.Sprintf("🔐 *Please enter your 4-digit withdrawal PIN to confirm sending %s using %s on %s*\n\n", formatNaira(s.AmountNGN), s.Currency, s.Chain) +
		fmt.Sprintf("👤 Name: *%s*\n", md(s.AccountName)) +
		fmt.Sprintf("📱 Account: `%s`\n", md(s.RecipientAccountNumber)) +
		fmt.Sprintf("🏦 Bank: *%s*\n", md(s.BankName))
}

func pinRetryText(remaining int) string {
	return fmt.Sprintf("❌ Incorrect withdrawal PIN. You have %d attempt(s) remaining.\n\nPlease enter your 4-digit withdrawal PIN:", remaining)
}

func bankNotFoundText(bankName string) string {
	return fmt.Sprintf("❌ Sorry, I couldn't find the bank code for %q.\n\nPlease use the full bank name (e.g., \"Access Bank\", \"GT Bank\", \"Zenith Bank\").", bankName)
}

func accountInvalidText(s *models.WithdrawalSession) string {
	return fmt.Sprintf("❌ Unable to validate account number %s for %s.\n\nPlease double check the account number and bank name, then try again.", s.RecipientAccountNumber, s.BankName)
}

func successText(s *models.WithdrawalSession, in models.PayoutInstruction, res models.TransferResult) string {
	fiat := in.FiatPayoutAmount
	if !fiat.IsPositive() {
		fiat = s.AmountNGN
	}
	text := fmt.Sprintf("✅ Withdrawal successful!\n\n%s %s sent to %s\n%s will be credited to the account shortly.",
		in.DepositAmount.String(), s.Currency, s.AccountName, formatNaira(fiat))
	if res.ExplorerURL != "" {
		text += "\n\n" + res.ExplorerURL
	}
	return text
}

// chainKeyboard offers the chains that can carry currency, or every chain
// when the currency is still unknown.
func chainKeyboard(currency models.Currency) [][]models.Button {
	var row []models.Button
	for _, c := range models.Chains {
		if currency != "" && !c.Supports(currency) {
			continue
		}
		row = append(row, models.Button{Label: chainLabels[c], Data: CallbackChainPrefix + string(c)})
	}
	return [][]models.Button{row, {cancelButton}}
}

func currencyKeyboard(chain models.Chain) [][]models.Button {
	var row []models.Button
	for _, cur := range chain.Currencies() {
		row = append(row, models.Button{Label: string(cur), Data: CallbackCurrencyPrefix + string(cur)})
	}
	return [][]models.Button{row, {cancelButton}}
}

func cancelKeyboard() [][]models.Button {
	return [][]models.Button{{cancelButton}}
}

// formatNaira renders 2000 as ₦2,000 and 2500.5 as ₦2,500.50.
func formatNaira(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "₦" + b.String()
	if frac != "00" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

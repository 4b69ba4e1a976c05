package payout

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
)

type Config struct {
	URL string
	// APIKey goes in the x-yara-public-key header.
	APIKey          string
	WidgetPublicKey string
	DeveloperFee    string
	ContactEmail    string
	ContactPhone    string
	Address         string
	Timeout         time.Duration
}

type Initiator struct {
	client *resty.Client
	cfg    Config
}

func NewInitiator(cfg Config) *Initiator {
	if cfg.DeveloperFee == "" {
		cfg.DeveloperFee = "1"
	}
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("x-yara-public-key", cfg.APIKey)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &Initiator{client: client, cfg: cfg}
}

type bankAccount struct {
	AccountNumber string `json:"accountNumber"`
	BankCode      string `json:"bankCode"`
}

type recipient struct {
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Email       string      `json:"email,omitempty"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	BankAccount bankAccount `json:"bankAccount"`
	Address     string      `json:"address,omitempty"`
	City        string      `json:"city,omitempty"`
	Country     string      `json:"country,omitempty"`
}

type widgetRequest struct {
	Sender         struct{}        `json:"sender"`
	Recipient      recipient       `json:"recipient"`
	Amount         json.Number     `json:"amount"`
	PaymentRemarks string          `json:"paymentRemarks"`
	FromCurrency   models.Currency `json:"fromCurrency"`
	PayoutCurrency string          `json:"payoutCurrency"`
	PublicKey      string          `json:"publicKey"`
	DeveloperFee   string          `json:"developerFee"`
	PayoutType     string          `json:"payoutType"`
}

type widgetResponse struct {
	Error string `json:"error"`
	Data  *struct {
		ID               string          `json:"id"`
		SolAddress       string          `json:"solAddress"`
		EthAddress       string          `json:"ethAddress"`
		DepositAmount    decimal.Decimal `json:"depositAmount"`
		FiatPayoutAmount decimal.Decimal `json:"fiatPayoutAmount"`
		Status           string          `json:"status"`
	} `json:"data"`
}

// Initiate asks the widget for a deposit address. Nothing is sent on chain
// here; any error means the withdrawal must stop before a transfer.
func (i *Initiator) Initiate(ctx context.Context, req models.PayoutRequest) (models.PayoutInstruction, error) {
	if i.cfg.URL == "" {
		return models.PayoutInstruction{}, errors.Wrap(models.ErrPayoutInit, "payment widget url not configured")
	}

	body := widgetRequest{
		Recipient: recipient{
			FirstName:   strconv.FormatInt(req.TelegramID, 10),
			LastName:    req.Username,
			Email:       i.cfg.ContactEmail,
			PhoneNumber: i.cfg.ContactPhone,
			BankAccount: bankAccount{AccountNumber: req.AccountNumber, BankCode: req.BankCode},
			Address:     i.cfg.Address,
			City:        i.cfg.Address,
			Country:     i.cfg.Address,
		},
		Amount:         json.Number(req.Amount.String()),
		PaymentRemarks: "AI Withdrawal",
		FromCurrency:   req.Currency,
		PayoutCurrency: "NGN",
		PublicKey:      i.cfg.WidgetPublicKey,
		DeveloperFee:   i.cfg.DeveloperFee,
		PayoutType:     "DIRECT_DEPOSIT",
	}

	var out widgetResponse
	resp, err := i.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post(i.cfg.URL)
	if err != nil {
		return models.PayoutInstruction{}, errors.Wrapf(models.ErrPayoutInit, "widget request: %v", err)
	}
	if resp.IsError() {
		return models.PayoutInstruction{}, errors.Wrapf(models.ErrPayoutInit, "payment widget API error: %d - %s", resp.StatusCode(), resp.String())
	}
	if out.Error != "" {
		return models.PayoutInstruction{}, errors.Wrap(models.ErrPayoutInit, out.Error)
	}
	if out.Data == nil {
		return models.PayoutInstruction{}, errors.Wrap(models.ErrPayoutInit, "widget response has no data")
	}

	d := out.Data
	address := d.EthAddress
	if req.Chain.Family() == models.FamilySolana {
		address = d.SolAddress
	}
	switch {
	case d.ID == "":
		return models.PayoutInstruction{}, errors.Wrap(models.ErrPayoutInit, "widget response has no transaction id")
	case address == "":
		return models.PayoutInstruction{}, errors.Wrapf(models.ErrPayoutInit, "widget response has no deposit address for %s", req.Chain)
	case !d.DepositAmount.IsPositive():
		return models.PayoutInstruction{}, errors.Wrap(models.ErrPayoutInit, "widget response has no deposit amount")
	}

	logrus.WithFields(logrus.Fields{
		"telegram_id":    req.TelegramID,
		"transaction_id": d.ID,
		"chain":          req.Chain,
		"currency":       req.Currency,
		"deposit_amount": d.DepositAmount.String(),
	}).Info("payment widget created")

	return models.PayoutInstruction{
		TransactionID:    d.ID,
		DepositAddress:   address,
		DepositAmount:    d.DepositAmount,
		FiatPayoutAmount: d.FiatPayoutAmount,
		Status:           d.Status,
	}, nil
}

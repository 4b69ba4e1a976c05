package paystack

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
)

const defaultBaseURL = "https://api.paystack.co"

type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Validator resolves account numbers through Paystack's bank resolve API.
type Validator struct {
	client *resty.Client
}

func NewValidator(cfg Config) *Validator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &Validator{client: client}
}

type resolveResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		AccountNumber string `json:"account_number"`
		AccountName   string `json:"account_name"`
	} `json:"data"`
}

// ValidateAccount returns the account holder's name. Every failure, including
// transport errors, wraps models.ErrAccountValidation.
func (v *Validator) ValidateAccount(ctx context.Context, accountNumber, bankCode string) (models.AccountResolution, error) {
	var out resolveResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"account_number": accountNumber,
			"bank_code":      bankCode,
		}).
		SetResult(&out).
		SetError(&out).
		Get("/bank/resolve")
	if err != nil {
		return models.AccountResolution{}, errors.Wrapf(models.ErrAccountValidation, "paystack request: %v", err)
	}

	log := logrus.WithFields(logrus.Fields{
		"account_number": accountNumber,
		"bank_code":      bankCode,
		"status_code":    resp.StatusCode(),
	})

	if resp.IsError() || !out.Status {
		log.WithField("message", out.Message).Warn("account resolution rejected")
		return models.AccountResolution{}, errors.Wrapf(models.ErrAccountValidation, "paystack: %s", out.Message)
	}
	if out.Data == nil || strings.TrimSpace(out.Data.AccountName) == "" {
		log.Warn("account resolution returned no account name")
		return models.AccountResolution{}, errors.Wrap(models.ErrAccountValidation, "paystack: empty account name")
	}

	log.WithField("account_name", out.Data.AccountName).Info("account resolved")
	return models.AccountResolution{
		AccountNumber: accountNumber,
		AccountName:   strings.TrimSpace(out.Data.AccountName),
	}, nil
}

package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
)

const defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta"

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Extractor struct {
	client *resty.Client
	cfg    Config
}

func NewExtractor(cfg Config) *Extractor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeminiURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &Extractor{client: client, cfg: cfg}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction content   `json:"systemInstruction"`
	Contents          []content `json:"contents"`
	GenerationConfig  struct {
		ResponseMimeType string  `json:"responseMimeType"`
		Temperature      float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Extract never fails: any problem is logged and reported as a nil draft,
// which callers treat as "not a withdrawal".
func (e *Extractor) Extract(ctx context.Context, message string) *models.WithdrawalDraft {
	draft, err := e.extract(ctx, message)
	if err != nil {
		logrus.WithError(err).Warn("intent extraction failed")
		return nil
	}
	return draft
}

func (e *Extractor) extract(ctx context.Context, message string) (*models.WithdrawalDraft, error) {
	if e.cfg.APIKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("message is empty")
	}

	var body generateRequest
	body.SystemInstruction = content{Parts: []part{{Text: systemPrompt}}}
	body.Contents = []content{{
		Role:  "user",
		Parts: []part{{Text: fmt.Sprintf("Analyze this message and determine if it's a withdrawal/send money request: %q", message)}},
	}}
	body.GenerationConfig.ResponseMimeType = "application/json"

	var out generateResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetQueryParam("key", e.cfg.APIKey).
		SetBody(body).
		SetResult(&out).
		Post("/models/" + e.cfg.Model + ":generateContent")
	if err != nil {
		return nil, errors.Wrap(err, "gemini request")
	}
	if resp.IsError() {
		return nil, errors.Errorf("gemini returned %d: %s", resp.StatusCode(), resp.String())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini returned no candidates")
	}

	text := out.Candidates[0].Content.Parts[0].Text
	logrus.WithField("response", text).Debug("intent detection response")
	return ParseDraft(text)
}

type wireDraft struct {
	IsWithdrawal  bool            `json:"isWithdrawal"`
	Amount        json.RawMessage `json:"amount"`
	Currency      *string         `json:"currency"`
	Chain         *string         `json:"chain"`
	Recipient     *string         `json:"recipient"`
	BankName      *string         `json:"bankName"`
	CryptoAddress *string         `json:"cryptoAddress"`
}

// ParseDraft decodes the model's JSON answer, tolerating markdown fences and
// amounts given either as numbers or as shorthand strings.
func ParseDraft(text string) (*models.WithdrawalDraft, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil, errors.New("empty ai response")
	}

	var w wireDraft
	if err := json.Unmarshal([]byte(cleaned), &w); err != nil {
		return nil, errors.Wrap(err, "decode ai response")
	}

	draft := &models.WithdrawalDraft{IsWithdrawal: w.IsWithdrawal}
	if !w.IsWithdrawal {
		return draft, nil
	}

	if amount, ok := parseRawAmount(w.Amount); ok {
		draft.Amount = &amount
	}
	if w.Currency != nil {
		if c, ok := ParseCurrency(*w.Currency); ok {
			draft.Currency = &c
		}
	}
	if w.Chain != nil {
		if c, ok := ParseChain(*w.Chain); ok {
			draft.Chain = &c
		}
	}
	draft.Recipient = nonEmpty(w.Recipient)
	draft.BankName = nonEmpty(w.BankName)
	draft.CryptoAddress = nonEmpty(w.CryptoAddress)
	return draft, nil
}

func parseRawAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseAmount(s)
	}
	return ParseAmount(string(raw))
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

package intent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"jumpa_withdrawal_back/models"
)

func TestParseAmountShorthand(t *testing.T) {
	cases := map[string]int64{
		"2k":      2000,
		"1.5k":    1500,
		"5m":      5_000_000,
		"10000":   10000,
		"₦10,000": 10000,
		" 3K ":    3000,
	}
	for in, want := range cases {
		got, ok := ParseAmount(in)
		if !ok {
			t.Fatalf("%q: not parsed", in)
		}
		if !got.Equal(decimal.NewFromInt(want)) {
			t.Fatalf("%q: got %s want %d", in, got, want)
		}
	}

	for _, in := range []string{"", "k", "abc", "-5k", "0"} {
		if _, ok := ParseAmount(in); ok {
			t.Fatalf("%q: expected rejection", in)
		}
	}
}

func TestParseDraftDoesNotGuessChainOrCurrency(t *testing.T) {
	draft, err := ParseDraft("```json\n{\"isWithdrawal\": true, \"amount\": \"3k\", \"currency\": null, \"chain\": \"dogechain\", \"recipient\": \"0801234567\", \"bankName\": \"UBA\", \"cryptoAddress\": \"\"}\n```")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !draft.IsWithdrawal {
		t.Fatalf("expected withdrawal")
	}
	if draft.Amount == nil || !draft.Amount.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("amount: %v", draft.Amount)
	}
	if draft.Chain != nil || draft.Currency != nil {
		t.Fatalf("chain and currency must stay nil, got %v %v", draft.Chain, draft.Currency)
	}
	if draft.CryptoAddress != nil {
		t.Fatalf("blank crypto address must be nil")
	}
	if draft.BankName == nil || *draft.BankName != "UBA" {
		t.Fatalf("bank name: %v", draft.BankName)
	}
}

func TestParseDraftNormalisesSynonyms(t *testing.T) {
	draft, err := ParseDraft(`{"isWithdrawal": true, "amount": 2000, "currency": "tether", "chain": "Solana chain", "recipient": "8058509303", "bankName": "GT bank"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if draft.Currency == nil || *draft.Currency != models.CurrencyUSDT {
		t.Fatalf("currency: %v", draft.Currency)
	}
	if draft.Chain == nil || *draft.Chain != models.ChainSolana {
		t.Fatalf("chain: %v", draft.Chain)
	}
}

func TestParseDraftRejectsGarbage(t *testing.T) {
	if _, err := ParseDraft("sure! here is the json you asked for"); err == nil {
		t.Fatalf("expected error")
	}
}

func geminiServer(t *testing.T, status int, answer string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{map[string]any{"text": answer}}},
			}},
		})
	}))
}

func TestExtractFullySpecifiedMessage(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, `{"isWithdrawal": true, "amount": 2000, "currency": "USDT", "chain": "SOLANA", "recipient": "8058509303", "bankName": "GT bank", "cryptoAddress": null}`)
	defer srv.Close()

	e := NewExtractor(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "test"})
	draft := e.Extract(context.Background(), "send 2k to 8058509303 GT bank using USDT on solana")
	if draft == nil {
		t.Fatalf("expected draft")
	}
	if *draft.Recipient != "8058509303" || *draft.Chain != models.ChainSolana || *draft.Currency != models.CurrencyUSDT {
		t.Fatalf("unexpected draft %+v", draft)
	}
}

func TestExtractSwallowsFailures(t *testing.T) {
	srv := geminiServer(t, http.StatusInternalServerError, "boom")
	defer srv.Close()

	e := NewExtractor(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "test"})
	if d := e.Extract(context.Background(), "send 2k"); d != nil {
		t.Fatalf("expected nil on upstream error, got %+v", d)
	}
	if d := e.Extract(context.Background(), "   "); d != nil {
		t.Fatalf("expected nil on empty input")
	}

	noKey := NewExtractor(Config{BaseURL: srv.URL})
	if d := noKey.Extract(context.Background(), "send 2k"); d != nil {
		t.Fatalf("expected nil without api key")
	}
}

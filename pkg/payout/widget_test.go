package payout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"jumpa_withdrawal_back/models"
)

func widgetServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-yara-public-key") != "yara-key" {
			t.Errorf("missing public key header")
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func request(chain models.Chain, cur models.Currency) models.PayoutRequest {
	return models.PayoutRequest{
		TelegramID:    42,
		Username:      "ada",
		AccountNumber: "8058509303",
		BankCode:      "000013",
		Amount:        decimal.RequireFromString("1.3333"),
		Currency:      cur,
		Chain:         chain,
	}
}

const okBody = `{"data": {"id": "tx_1", "solAddress": "SoLdEpOsIt", "ethAddress": "0xabc", "depositAmount": 1.34, "fiatPayoutAmount": 2000, "status": "pending"}}`

func TestInitiatePicksAddressByChain(t *testing.T) {
	var seen map[string]any
	srv := widgetServer(t, http.StatusOK, okBody, &seen)
	defer srv.Close()

	in := NewInitiator(Config{URL: srv.URL, APIKey: "yara-key", WidgetPublicKey: "pk_test"})
	got, err := in.Initiate(context.Background(), request(models.ChainSolana, models.CurrencyUSDT))
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if got.TransactionID != "tx_1" || got.DepositAddress != "SoLdEpOsIt" {
		t.Fatalf("unexpected instruction %+v", got)
	}
	if !got.DepositAmount.Equal(decimal.RequireFromString("1.34")) || !got.FiatPayoutAmount.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("unexpected amounts %+v", got)
	}

	rcp := seen["recipient"].(map[string]any)
	acct := rcp["bankAccount"].(map[string]any)
	if acct["bankCode"] != "000013" || acct["accountNumber"] != "8058509303" {
		t.Fatalf("bank account not forwarded: %v", acct)
	}
	if rcp["firstName"] != "42" || rcp["lastName"] != "ada" {
		t.Fatalf("recipient names: %v", rcp)
	}
	if seen["amount"] != 1.3333 || seen["payoutCurrency"] != "NGN" || seen["payoutType"] != "DIRECT_DEPOSIT" || seen["developerFee"] != "1" {
		t.Fatalf("unexpected body %v", seen)
	}

	srv2 := widgetServer(t, http.StatusOK, okBody, nil)
	defer srv2.Close()
	evm := NewInitiator(Config{URL: srv2.URL, APIKey: "yara-key"})
	got, err = evm.Initiate(context.Background(), request(models.ChainBase, models.CurrencyUSDC))
	if err != nil || got.DepositAddress != "0xabc" {
		t.Fatalf("evm address: %+v %v", got, err)
	}
}

func TestInitiateFailures(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"non-2xx":        {http.StatusInternalServerError, `{"error": "boom"}`},
		"embedded error": {http.StatusOK, `{"error": "bank not supported"}`},
		"no data":        {http.StatusOK, `{}`},
		"no id":          {http.StatusOK, `{"data": {"solAddress": "x", "depositAmount": 1}}`},
		"no address":     {http.StatusOK, `{"data": {"id": "t", "ethAddress": "0x1", "depositAmount": 1}}`},
		"zero deposit":   {http.StatusOK, `{"data": {"id": "t", "solAddress": "x", "depositAmount": 0}}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := widgetServer(t, tc.status, tc.body, nil)
			defer srv.Close()
			in := NewInitiator(Config{URL: srv.URL, APIKey: "yara-key"})
			if _, err := in.Initiate(context.Background(), request(models.ChainSolana, models.CurrencySOL)); !errors.Is(err, models.ErrPayoutInit) {
				t.Fatalf("expected ErrPayoutInit, got %v", err)
			}
		})
	}
}

func TestInitiateWithoutURL(t *testing.T) {
	in := NewInitiator(Config{})
	if _, err := in.Initiate(context.Background(), request(models.ChainSolana, models.CurrencySOL)); !errors.Is(err, models.ErrPayoutInit) {
		t.Fatalf("expected ErrPayoutInit, got %v", err)
	}
}

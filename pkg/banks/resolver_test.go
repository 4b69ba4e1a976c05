package banks

import (
	"errors"
	"testing"

	"jumpa_withdrawal_back/models"
)

func TestExactAndAliasShareCode(t *testing.T) {
	r := NewDefaultResolver()

	for _, name := range []string{"Guaranty Trust Bank", "GTB", "gt bank", "  GTBank "} {
		codes, err := r.Resolve(name)
		if err != nil {
			t.Fatalf("resolve %q: %v", name, err)
		}
		if codes.Validation.Code != "058" {
			t.Fatalf("validation code for %q: got %s", name, codes.Validation.Code)
		}
		if codes.Payout.Code != "058" {
			t.Fatalf("payout code for %q: got %s", name, codes.Payout.Code)
		}
	}
}

func TestLookupOrder(t *testing.T) {
	d := NewDirectory("test", []models.BankDirectoryEntry{
		{Name: "Alpha Bank", Code: "1"},
		{Name: "Alpha Bank Mobile", Code: "2"},
		{Name: "Beta", Code: "3"},
		{Name: "Gamma Trust Bank", Code: "4"},
	}, map[string]string{"gtb": "Gamma Trust Bank"})

	cases := []struct {
		input string
		code  string
	}{
		{"alpha bank mobile", "2"}, // exact beats partial
		{"alpha", "1"},             // entry contains input, first entry wins
		{"beta microfinance", "3"}, // input contains entry
		{"GTB", "4"},               // alias
	}
	for _, c := range cases {
		e, ok := d.Lookup(c.input)
		if !ok {
			t.Fatalf("lookup %q: not found", c.input)
		}
		if e.Code != c.code {
			t.Fatalf("lookup %q: got %s want %s", c.input, e.Code, c.code)
		}
	}

	if _, ok := d.Lookup("   "); ok {
		t.Fatalf("blank input must not match")
	}
}

func TestDirectoriesAreIndependent(t *testing.T) {
	r := NewDefaultResolver()

	v, err := r.ValidationCode("kuda")
	if err != nil {
		t.Fatalf("validation: %v", err)
	}
	p, err := r.PayoutCode("kuda")
	if err != nil {
		t.Fatalf("payout: %v", err)
	}
	if v.Code == p.Code {
		t.Fatalf("expected different codes per provider, both %s", v.Code)
	}
}

func TestUnknownBankFailsClosed(t *testing.T) {
	r := NewDefaultResolver()
	_, err := r.Resolve("Bank of Atlantis")
	if !errors.Is(err, models.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestPayoutOnlyMissFailsResolve(t *testing.T) {
	r := NewResolver(
		NewDirectory("v", []models.BankDirectoryEntry{{Name: "Citibank Nigeria", Code: "023"}}, nil),
		NewDirectory("p", []models.BankDirectoryEntry{{Name: "Zenith Bank PLC", Code: "057"}}, nil),
	)
	if _, err := r.Resolve("Citibank Nigeria"); !errors.Is(err, models.ErrBankNotFound) {
		t.Fatalf("expected payout miss to fail, got %v", err)
	}
}

package wallet

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"jumpa_withdrawal_back/models"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestKeyringRoundTrip(t *testing.T) {
	k, err := NewKeyring(testKey)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := k.Encrypt("secret")
	if err != nil {
		t.Fatal(err)
	}
	got, err := k.Decrypt(enc)
	if err != nil || got != "secret" {
		t.Fatalf("got %q err %v", got, err)
	}

	other, _ := NewKeyring(strings.Repeat("ff", 32))
	if _, err := other.Decrypt(enc); err == nil {
		t.Fatal("decrypt with wrong key should fail")
	}
}

func TestNewKeyringRejectsShortKey(t *testing.T) {
	if _, err := NewKeyring("abcd"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := NewKeyring("zz"); err == nil {
		t.Fatal("expected error")
	}
}

func TestEVMKey(t *testing.T) {
	k, _ := NewKeyring(testKey)
	w, err := GenerateEVMWallet()
	if err != nil {
		t.Fatal(err)
	}
	enc, _ := k.Encrypt(w.PrivateKey)

	priv, err := k.EVMKey(models.Wallet{Family: models.FamilyEVM, Address: strings.ToLower(w.Address), EncryptedPrivateKey: enc})
	if err != nil {
		t.Fatalf("evm key: %v", err)
	}
	if crypto.PubkeyToAddress(priv.PublicKey).Hex() != w.Address {
		t.Fatal("wrong key")
	}

	if _, err := k.EVMKey(models.Wallet{Family: models.FamilyEVM, Address: "0x0000000000000000000000000000000000000001", EncryptedPrivateKey: enc}); err == nil {
		t.Fatal("address mismatch should fail")
	}
	if _, err := k.EVMKey(models.Wallet{Family: models.FamilyEVM}); !errors.Is(err, models.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestSolanaKey(t *testing.T) {
	k, _ := NewKeyring(testKey)
	w, err := GenerateSolanaWallet()
	if err != nil {
		t.Fatal(err)
	}
	enc, _ := k.Encrypt(w.PrivateKey)

	priv, err := k.SolanaKey(models.Wallet{Family: models.FamilySolana, Address: w.Address, EncryptedPrivateKey: enc})
	if err != nil {
		t.Fatalf("solana key: %v", err)
	}
	if priv.PublicKey().String() != w.Address {
		t.Fatal("wrong key")
	}
	if _, err := k.SolanaKey(models.Wallet{Family: models.FamilyEVM, EncryptedPrivateKey: enc}); !errors.Is(err, models.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestAddressValidation(t *testing.T) {
	if !ValidSolanaAddress("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v") {
		t.Fatal("usdc mint should be a valid solana address")
	}
	for _, bad := range []string{"", "0xabc", "not-base58-0OIl", "3yZe7d"} {
		if ValidSolanaAddress(bad) {
			t.Fatalf("%q accepted", bad)
		}
	}
	if !ValidEVMAddress("0x833589fcd6edb6e08f4c7c32d4f71b54bda02913") {
		t.Fatal("base usdc should be valid")
	}
	if ValidEVMAddress("0x1234") || ValidEVMAddress("SoLaNa") {
		t.Fatal("short or non-hex address accepted")
	}
}

package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"jumpa_withdrawal_back/models"
)

// Wallet is a freshly generated key pair before encryption.
type Wallet struct {
	PrivateKey string
	Address    string
}

// Keyring decrypts custodial private keys stored as hex(nonce || AES-GCM ciphertext).
type Keyring struct {
	aead cipher.AEAD
}

// NewKeyring takes the 32-byte encryption key as 64 hex characters.
func NewKeyring(hexKey string) (*Keyring, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, errors.Wrap(err, "decode wallet encryption key")
	}
	if len(key) != 32 {
		return nil, errors.Errorf("wallet encryption key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "init cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "init gcm")
	}
	return &Keyring{aead: aead}, nil
}

func (k *Keyring) Encrypt(plain string) (string, error) {
	nonce := make([]byte, k.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "nonce")
	}
	sealed := k.aead.Seal(nonce, nonce, []byte(plain), nil)
	return hex.EncodeToString(sealed), nil
}

func (k *Keyring) Decrypt(enc string) (string, error) {
	raw, err := hex.DecodeString(enc)
	if err != nil {
		return "", errors.Wrap(err, "decode encrypted key")
	}
	ns := k.aead.NonceSize()
	if len(raw) <= ns {
		return "", errors.New("encrypted key too short")
	}
	plain, err := k.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", errors.Wrap(err, "decrypt key")
	}
	return string(plain), nil
}

// EVMKey returns the signing key for an evm wallet, checking that it
// derives the stored address.
func (k *Keyring) EVMKey(w models.Wallet) (*ecdsa.PrivateKey, error) {
	if w.Family != models.FamilyEVM || w.EncryptedPrivateKey == "" {
		return nil, errors.Wrap(models.ErrWalletNotFound, "no evm key")
	}
	plain, err := k.Decrypt(w.EncryptedPrivateKey)
	if err != nil {
		return nil, err
	}
	priv, err := crypto.HexToECDSA(strings.TrimPrefix(plain, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "parse evm key")
	}
	if addr := crypto.PubkeyToAddress(priv.PublicKey); !strings.EqualFold(addr.Hex(), w.Address) {
		return nil, errors.Errorf("evm key derives %s, wallet says %s", addr.Hex(), w.Address)
	}
	return priv, nil
}

func (k *Keyring) SolanaKey(w models.Wallet) (solana.PrivateKey, error) {
	if w.Family != models.FamilySolana || w.EncryptedPrivateKey == "" {
		return nil, errors.Wrap(models.ErrWalletNotFound, "no solana key")
	}
	plain, err := k.Decrypt(w.EncryptedPrivateKey)
	if err != nil {
		return nil, err
	}
	priv, err := solana.PrivateKeyFromBase58(plain)
	if err != nil {
		return nil, errors.Wrap(err, "parse solana key")
	}
	if pub := priv.PublicKey().String(); pub != w.Address {
		return nil, errors.Errorf("solana key derives %s, wallet says %s", pub, w.Address)
	}
	return priv, nil
}

func GenerateEVMWallet() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &Wallet{
		PrivateKey: hex.EncodeToString(crypto.FromECDSA(privateKey)),
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey).Hex(),
	}, nil
}

func GenerateSolanaWallet() (*Wallet, error) {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, err
	}
	return &Wallet{
		PrivateKey: priv.String(),
		Address:    priv.PublicKey().String(),
	}, nil
}

// ValidSolanaAddress accepts any base58 string decoding to a 32-byte key.
func ValidSolanaAddress(addr string) bool {
	b, err := base58.Decode(addr)
	return err == nil && len(b) == 32
}

func ValidEVMAddress(addr string) bool {
	return common.IsHexAddress(addr)
}

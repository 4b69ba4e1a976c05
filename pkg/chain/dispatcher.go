package chain

import (
	"context"
	"crypto/ecdsa"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
)

// Executor moves one asset on one chain out of a custodial wallet.
type Executor interface {
	Transfer(ctx context.Context, from models.Wallet, to string, amount decimal.Decimal) (models.TransferResult, error)
}

// Keys decrypts custodial keys. *wallet.Keyring implements it.
type Keys interface {
	EVMKey(w models.Wallet) (*ecdsa.PrivateKey, error)
	SolanaKey(w models.Wallet) (solana.PrivateKey, error)
}

type Route struct {
	Chain    models.Chain
	Currency models.Currency
}

// Confirm bounds how long an executor waits for a submitted transaction.
type Confirm struct {
	Timeout  time.Duration
	Interval time.Duration
}

func (c Confirm) withDefaults() Confirm {
	if c.Timeout <= 0 {
		c.Timeout = 90 * time.Second
	}
	if c.Interval <= 0 {
		c.Interval = 2 * time.Second
	}
	return c
}

type Dispatcher struct {
	executors map[Route]Executor
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{executors: make(map[Route]Executor)}
}

func (d *Dispatcher) Register(chain models.Chain, currency models.Currency, exec Executor) {
	d.executors[Route{Chain: chain, Currency: currency}] = exec
}

func (d *Dispatcher) Supports(chain models.Chain, currency models.Currency) bool {
	_, ok := d.executors[Route{Chain: chain, Currency: currency}]
	return ok
}

// Dispatch picks the executor for (chain, currency) and the user's wallet for
// the chain family. The returned result is always populated; on failure
// Success is false and Error carries the reason.
func (d *Dispatcher) Dispatch(ctx context.Context, user *models.User, chain models.Chain, currency models.Currency, to string, amount decimal.Decimal) (models.TransferResult, error) {
	res := models.TransferResult{ToAddress: to, Amount: amount}
	log := logrus.WithFields(logrus.Fields{
		"telegram_id": user.TelegramID,
		"chain":       chain,
		"currency":    currency,
		"to":          to,
		"amount":      amount.String(),
	})

	exec, ok := d.executors[Route{Chain: chain, Currency: currency}]
	if !ok {
		err := errors.Wrapf(models.ErrUnsupportedRoute, "%s on %s", currency, chain)
		res.Error = err.Error()
		return res, err
	}
	from, ok := user.Wallet(chain.Family())
	if !ok {
		err := errors.Wrapf(models.ErrWalletNotFound, "no %s wallet", chain.Family())
		res.Error = err.Error()
		return res, err
	}
	res.FromAddress = from.Address

	out, err := exec.Transfer(ctx, from, to, amount)
	if err != nil {
		if out.FromAddress == "" {
			out.FromAddress = from.Address
		}
		out.ToAddress, out.Amount = to, amount
		out.Success = false
		out.Error = err.Error()
		log.WithError(err).WithField("signature", out.Signature).Error("transfer failed")
		return out, err
	}
	log.WithField("signature", out.Signature).Info("transfer confirmed")
	return out, nil
}

package banks

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/models"
)

// Codes carries the two provider-specific codes for one physical bank.
type Codes struct {
	Validation models.BankDirectoryEntry
	Payout     models.BankDirectoryEntry
}

type Resolver struct {
	validation *Directory
	payout     *Directory
}

func NewResolver(validation, payout *Directory) *Resolver {
	return &Resolver{validation: validation, payout: payout}
}

// NewDefaultResolver uses the built-in Paystack and Yara directories.
func NewDefaultResolver() *Resolver {
	return NewResolver(PaystackDirectory, YaraDirectory)
}

func (r *Resolver) ValidationCode(bankName string) (models.BankDirectoryEntry, error) {
	return r.lookup(r.validation, bankName)
}

func (r *Resolver) PayoutCode(bankName string) (models.BankDirectoryEntry, error) {
	return r.lookup(r.payout, bankName)
}

// Resolve looks the bank up in both directories. A miss in either fails the whole lookup.
func (r *Resolver) Resolve(bankName string) (Codes, error) {
	v, err := r.ValidationCode(bankName)
	if err != nil {
		return Codes{}, err
	}
	p, err := r.PayoutCode(bankName)
	if err != nil {
		return Codes{}, err
	}
	return Codes{Validation: v, Payout: p}, nil
}

func (r *Resolver) lookup(d *Directory, bankName string) (models.BankDirectoryEntry, error) {
	entry, ok := d.Lookup(bankName)
	if !ok {
		logrus.WithFields(logrus.Fields{"directory": d.Name(), "bank": bankName}).Warn("bank code not found")
		return models.BankDirectoryEntry{}, errors.Wrapf(models.ErrBankNotFound, "%s: %q", d.Name(), bankName)
	}
	logrus.WithFields(logrus.Fields{"directory": d.Name(), "bank": bankName, "match": entry.Name, "code": entry.Code}).Debug("bank code resolved")
	return entry, nil
}

package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"jumpa_withdrawal_back/internal/wallet"
	"jumpa_withdrawal_back/models"
	"jumpa_withdrawal_back/pkg/cache"
	"jumpa_withdrawal_back/pkg/pin"
	"jumpa_withdrawal_back/pkg/repository"
)

// PinChangeCooldown is how long SetPIN refuses a user after pin.MaxAttempts
// wrong current PINs.
const PinChangeCooldown = 15 * time.Minute

// KeySealer encrypts a private key for storage. *wallet.Keyring implements it.
type KeySealer interface {
	Encrypt(plain string) (string, error)
}

var walletGenerators = map[models.ChainFamily]func() (*wallet.Wallet, error){
	models.FamilyEVM:    wallet.GenerateEVMWallet,
	models.FamilySolana: wallet.GenerateSolanaWallet,
}

type pinChangeFailures struct {
	count int
	until time.Time
}

type AccountService struct {
	users    repository.Users
	keys     KeySealer
	sessions cache.SessionStore
	locks    *cache.UserLocks

	mu       sync.Mutex
	failures map[int64]pinChangeFailures
	now      func() time.Time
}

// NewAccountService takes the session store and locks used by the
// WithdrawalService so a PIN cannot change under a pending withdrawal.
func NewAccountService(users repository.Users, keys KeySealer, sessions cache.SessionStore, locks *cache.UserLocks) *AccountService {
	if locks == nil {
		locks = cache.NewUserLocks()
	}
	return &AccountService{
		users:    users,
		keys:     keys,
		sessions: sessions,
		locks:    locks,
		failures: make(map[int64]pinChangeFailures),
		now:      time.Now,
	}
}

// Provision creates the user on first contact and makes sure it holds one
// custodial wallet per chain family. Calling it again, or concurrently, is harmless.
func (s *AccountService) Provision(ctx context.Context, telegramID int64, username string) (*models.User, error) {
	log := logrus.WithField("telegram_id", telegramID)

	user, err := s.users.GetUserByTelegramID(ctx, telegramID)
	if errors.Is(err, models.ErrUserNotFound) {
		_, err = s.users.CreateUser(ctx, models.User{TelegramID: telegramID, Username: strings.TrimSpace(username)})
		switch {
		case err == nil:
			log.Info("user created")
		case errors.Is(err, models.ErrUserExists):
			log.Debug("user created by a concurrent request")
		default:
			return nil, errors.Wrap(err, "create user")
		}
		user, err = s.users.GetUserByTelegramID(ctx, telegramID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}

	for _, family := range []models.ChainFamily{models.FamilySolana, models.FamilyEVM} {
		if _, ok := user.Wallet(family); ok {
			continue
		}
		w, err := walletGenerators[family]()
		if err != nil {
			return nil, errors.Wrapf(err, "generate %s wallet", family)
		}
		sealed, err := s.keys.Encrypt(w.PrivateKey)
		if err != nil {
			return nil, errors.Wrapf(err, "seal %s key", family)
		}
		_, err = s.users.AddWallet(ctx, models.Wallet{
			TelegramID:          telegramID,
			Family:              family,
			Address:             w.Address,
			EncryptedPrivateKey: sealed,
		})
		if errors.Is(err, models.ErrWalletExists) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "store %s wallet", family)
		}
		log.WithFields(logrus.Fields{"family": family, "address": w.Address}).Info("custodial wallet created")
	}

	return s.users.GetUserByTelegramID(ctx, telegramID)
}

// SetPIN stores a new withdrawal PIN. Once a PIN exists the current one is
// required, and no change is allowed while a withdrawal waits for a PIN.
func (s *AccountService) SetPIN(ctx context.Context, telegramID int64, currentPIN, newPIN string) error {
	unlock := s.locks.Lock(telegramID)
	defer unlock()
	log := logrus.WithField("telegram_id", telegramID)

	hash, err := pin.Hash(strings.TrimSpace(newPIN))
	if err != nil {
		return err
	}
	user, err := s.users.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return errors.Wrap(err, "get user")
	}

	if s.sessions != nil {
		sess, ok, err := s.sessions.Get(ctx, telegramID)
		if err != nil {
			return errors.Wrap(err, "load session")
		}
		if ok && sess.Step == models.StepAwaitingPIN {
			log.WithField("session_id", sess.ID).Warn("pin change refused during pending withdrawal")
			return models.ErrPinChangeBlocked
		}
	}

	if user.PinHash != "" {
		if err := s.checkCurrent(telegramID, user.PinHash, strings.TrimSpace(currentPIN)); err != nil {
			log.WithError(err).Warn("pin change refused")
			return err
		}
	}

	if err := s.users.SetPinHash(ctx, telegramID, hash); err != nil {
		return errors.Wrap(err, "store pin")
	}
	log.Info("withdrawal pin updated")
	return nil
}

func (s *AccountService) checkCurrent(telegramID int64, hash, current string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	f := s.failures[telegramID]
	if now.Before(f.until) {
		return models.ErrPinChangeLocked
	}
	if !f.until.IsZero() {
		f = pinChangeFailures{}
	}

	if !pin.WellFormed(current) || bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
		f.count++
		if f.count >= pin.MaxAttempts {
			f.until = now.Add(PinChangeCooldown)
		}
		s.failures[telegramID] = f
		return models.ErrPinMismatch
	}
	delete(s.failures, telegramID)
	return nil
}

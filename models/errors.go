package models

import "errors"

var (
	ErrNonWithdrawal           = errors.New("not a withdrawal request")
	ErrBankNotFound            = errors.New("bank not found")
	ErrAccountValidation       = errors.New("account validation failed")
	ErrRateUnavailable         = errors.New("exchange rate unavailable")
	ErrPayoutInit              = errors.New("payout initiation failed")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrInvalidRecipientAddress = errors.New("invalid recipient address")
	ErrPinMismatch             = errors.New("incorrect withdrawal pin")
	ErrPinFormat               = errors.New("pin must be 4 digits")
	ErrSessionExpired          = errors.New("session expired")
	ErrChainSubmission         = errors.New("chain submission failed")
	ErrWalletNotFound          = errors.New("wallet not found")
	ErrUnsupportedRoute        = errors.New("unsupported chain and currency")
	ErrDuplicateTransaction    = errors.New("transaction already recorded")
	ErrUserNotFound            = errors.New("user not found")
	ErrPinNotSet               = errors.New("withdrawal pin not set")
	ErrPinChangeBlocked        = errors.New("a withdrawal is waiting for the current pin")
	ErrPinChangeLocked         = errors.New("too many incorrect pins, try again later")
	ErrUserExists              = errors.New("user already exists")
	ErrWalletExists            = errors.New("wallet already exists")
)

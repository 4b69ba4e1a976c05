package chain

import (
	"context"
	"encoding/base64"
	"math/big"
	"time"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"jumpa_withdrawal_back/internal/wallet"
	"jumpa_withdrawal_back/models"
)

const (
	lamportDecimals = 9
	// Used when the node cannot price the message.
	fallbackFeeLamports = 5000
	tokenAccountSize    = 165
)

// SolanaRPC is the subset of *rpc.Client the executors use.
type SolanaRPC interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	GetFeeForMessage(ctx context.Context, message string, commitment rpc.CommitmentType) (*rpc.GetFeeForMessageResult, error)
	GetTokenSupply(ctx context.Context, mint solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenSupplyResult, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment rpc.CommitmentType) (uint64, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
}

type SolanaExecutor struct {
	rpc      SolanaRPC
	keys     Keys
	symbol   models.Currency
	mint     *solana.PublicKey
	explorer string
	confirm  Confirm
}

func NewSolanaNative(client SolanaRPC, keys Keys, explorer string, confirm Confirm) *SolanaExecutor {
	return &SolanaExecutor{rpc: client, keys: keys, symbol: models.CurrencySOL, explorer: explorer, confirm: confirm.withDefaults()}
}

func NewSolanaToken(client SolanaRPC, keys Keys, symbol models.Currency, mint solana.PublicKey, explorer string, confirm Confirm) *SolanaExecutor {
	return &SolanaExecutor{rpc: client, keys: keys, symbol: symbol, mint: &mint, explorer: explorer, confirm: confirm.withDefaults()}
}

func (e *SolanaExecutor) Transfer(ctx context.Context, from models.Wallet, to string, amount decimal.Decimal) (models.TransferResult, error) {
	res := models.TransferResult{FromAddress: from.Address, ToAddress: to, Amount: amount}

	priv, err := e.keys.SolanaKey(from)
	if err != nil {
		return res, err
	}
	owner := priv.PublicKey()
	res.FromAddress = owner.String()

	if !wallet.ValidSolanaAddress(to) {
		return res, errors.Wrapf(models.ErrInvalidRecipientAddress, "%q is not a solana address", to)
	}
	recipient, err := solana.PublicKeyFromBase58(to)
	if err != nil {
		return res, errors.Wrapf(models.ErrInvalidRecipientAddress, "%q: %v", to, err)
	}

	var instructions []solana.Instruction
	var lamportsNeeded uint64
	if e.mint == nil {
		instructions, lamportsNeeded, err = e.nativeInstructions(owner, recipient, amount)
	} else {
		instructions, lamportsNeeded, err = e.tokenInstructions(ctx, owner, recipient, amount)
	}
	if err != nil {
		return res, err
	}

	blockhash, err := e.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return res, errors.Wrap(err, "get latest blockhash")
	}
	if blockhash == nil || blockhash.Value == nil {
		return res, errors.New("node returned no blockhash")
	}
	tx, err := solana.NewTransaction(instructions, blockhash.Value.Blockhash, solana.TransactionPayer(owner))
	if err != nil {
		return res, errors.Wrap(err, "build transaction")
	}

	fee := e.estimateFee(ctx, tx)
	balance, err := e.rpc.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		return res, errors.Wrap(err, "get sol balance")
	}
	if required := lamportsNeeded + fee; balance.Value < required {
		held := fromBaseUnits(new(big.Int).SetUint64(balance.Value), lamportDecimals)
		need := fromBaseUnits(new(big.Int).SetUint64(required), lamportDecimals)
		return res, errors.Wrapf(models.ErrInsufficientBalance,
			"you have %s SOL, you need %s SOL (including network fee)", held.String(), need.String())
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(owner) {
			return &priv
		}
		return nil
	}); err != nil {
		return res, errors.Wrap(err, "sign transaction")
	}

	sig, err := e.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{PreflightCommitment: rpc.CommitmentConfirmed})
	if err != nil {
		return res, errors.Wrapf(models.ErrChainSubmission, "send transaction: %v", err)
	}
	res.Signature = sig.String()
	res.ExplorerURL = e.explorer + "/tx/" + res.Signature

	if err := e.waitConfirmed(ctx, sig); err != nil {
		return res, err
	}
	res.Success = true
	return res, nil
}

// nativeInstructions returns the transfer and the lamports it moves.
func (e *SolanaExecutor) nativeInstructions(owner, recipient solana.PublicKey, amount decimal.Decimal) ([]solana.Instruction, uint64, error) {
	lamports, err := toBaseUnits(amount, lamportDecimals)
	if err != nil {
		return nil, 0, err
	}
	if !lamports.IsUint64() {
		return nil, 0, errors.Errorf("amount %s SOL out of range", amount)
	}
	ix := system.NewTransferInstruction(lamports.Uint64(), owner, recipient).Build()
	return []solana.Instruction{ix}, lamports.Uint64(), nil
}

// tokenInstructions checks the token balance and returns the instructions
// plus any lamports spent on rent for a new recipient token account.
func (e *SolanaExecutor) tokenInstructions(ctx context.Context, owner, recipient solana.PublicKey, amount decimal.Decimal) ([]solana.Instruction, uint64, error) {
	mint := *e.mint
	source, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, 0, errors.Wrap(err, "derive source token account")
	}
	dest, _, err := solana.FindAssociatedTokenAddress(recipient, mint)
	if err != nil {
		return nil, 0, errors.Wrap(err, "derive recipient token account")
	}

	supply, err := e.rpc.GetTokenSupply(ctx, mint, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "get %s mint info", e.symbol)
	}
	if supply == nil || supply.Value == nil {
		return nil, 0, errors.Errorf("mint %s returned no supply", mint)
	}
	decimals := supply.Value.Decimals
	units, err := toBaseUnits(amount, decimals)
	if err != nil {
		return nil, 0, err
	}
	if !units.IsUint64() {
		return nil, 0, errors.Errorf("amount %s %s out of range", amount, e.symbol)
	}

	held := new(big.Int)
	exists, err := e.accountExists(ctx, source)
	if err != nil {
		return nil, 0, err
	}
	if exists {
		bal, err := e.rpc.GetTokenAccountBalance(ctx, source, rpc.CommitmentConfirmed)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "get %s balance", e.symbol)
		}
		if bal == nil || bal.Value == nil {
			return nil, 0, errors.Errorf("token account %s returned no balance", source)
		}
		if _, ok := held.SetString(bal.Value.Amount, 10); !ok {
			return nil, 0, errors.Errorf("bad token balance %q", bal.Value.Amount)
		}
	}
	if held.Cmp(units) < 0 {
		return nil, 0, errors.Wrapf(models.ErrInsufficientBalance,
			"you have %s %s, you need %s %s", fromBaseUnits(held, decimals).String(), e.symbol, amount.String(), e.symbol)
	}

	var instructions []solana.Instruction
	var rent uint64
	destExists, err := e.accountExists(ctx, dest)
	if err != nil {
		return nil, 0, err
	}
	if !destExists {
		rent, err = e.rpc.GetMinimumBalanceForRentExemption(ctx, tokenAccountSize, rpc.CommitmentConfirmed)
		if err != nil {
			return nil, 0, errors.Wrap(err, "get token account rent")
		}
		instructions = append(instructions, associatedtokenaccount.NewCreateInstruction(owner, recipient, mint).Build())
	}
	instructions = append(instructions,
		token.NewTransferCheckedInstruction(units.Uint64(), decimals, source, mint, dest, owner, []solana.PublicKey{}).Build())
	return instructions, rent, nil
}

func (e *SolanaExecutor) accountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	info, err := e.rpc.GetAccountInfo(ctx, account)
	if errors.Is(err, rpc.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "get account %s", account)
	}
	return info != nil && info.Value != nil, nil
}

func (e *SolanaExecutor) estimateFee(ctx context.Context, tx *solana.Transaction) uint64 {
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return fallbackFeeLamports
	}
	out, err := e.rpc.GetFeeForMessage(ctx, base64.StdEncoding.EncodeToString(msg), rpc.CommitmentConfirmed)
	if err != nil || out == nil || out.Value == nil {
		logrus.WithError(err).Warn("fee estimate unavailable, using fallback")
		return fallbackFeeLamports
	}
	return *out.Value
}

func (e *SolanaExecutor) waitConfirmed(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, e.confirm.Timeout)
	defer cancel()

	ticker := time.NewTicker(e.confirm.Interval)
	defer ticker.Stop()
	for {
		out, err := e.rpc.GetSignatureStatuses(ctx, true, sig)
		if err == nil && out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			st := out.Value[0]
			if st.Err != nil {
				return errors.Wrapf(models.ErrChainSubmission, "transaction %s failed: %v", sig, st.Err)
			}
			if st.ConfirmationStatus == rpc.ConfirmationStatusConfirmed || st.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrapf(models.ErrChainSubmission, "transaction %s not confirmed within %s, check the explorer", sig, e.confirm.Timeout)
		case <-ticker.C:
		}
	}
}

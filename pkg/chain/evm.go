package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"jumpa_withdrawal_back/internal/wallet"
	"jumpa_withdrawal_back/models"
)

const etherDecimals = 18

var fallbackGasPrice = big.NewInt(20_000_000_000)

// EVMRPC is the subset of *ethclient.Client the executors use.
type EVMRPC interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type EVMExecutor struct {
	rpc      EVMRPC
	keys     Keys
	chain    models.Chain
	symbol   models.Currency
	token    *common.Address
	explorer string
	confirm  Confirm
}

func NewEVMNative(client EVMRPC, keys Keys, chain models.Chain, explorer string, confirm Confirm) *EVMExecutor {
	return &EVMExecutor{rpc: client, keys: keys, chain: chain, symbol: models.CurrencyETH, explorer: explorer, confirm: confirm.withDefaults()}
}

func NewEVMToken(client EVMRPC, keys Keys, chain models.Chain, symbol models.Currency, contract common.Address, explorer string, confirm Confirm) *EVMExecutor {
	return &EVMExecutor{rpc: client, keys: keys, chain: chain, symbol: symbol, token: &contract, explorer: explorer, confirm: confirm.withDefaults()}
}

func (e *EVMExecutor) Transfer(ctx context.Context, from models.Wallet, to string, amount decimal.Decimal) (models.TransferResult, error) {
	res := models.TransferResult{FromAddress: from.Address, ToAddress: to, Amount: amount}

	priv, err := e.keys.EVMKey(from)
	if err != nil {
		return res, err
	}
	sender := crypto.PubkeyToAddress(priv.PublicKey)
	res.FromAddress = sender.Hex()

	if !wallet.ValidEVMAddress(to) {
		return res, errors.Wrapf(models.ErrInvalidRecipientAddress, "%q is not an evm address", to)
	}
	recipient := common.HexToAddress(to)

	native, err := e.rpc.BalanceAt(ctx, sender, nil)
	if err != nil {
		return res, errors.Wrap(err, "get native balance")
	}

	var call ethereum.CallMsg
	var value *big.Int
	if e.token == nil {
		value, err = toBaseUnits(amount, etherDecimals)
		if err != nil {
			return res, err
		}
		call = ethereum.CallMsg{From: sender, To: &recipient, Value: value}
	} else {
		value = new(big.Int)
		call, err = e.tokenCall(ctx, sender, recipient, amount)
		if err != nil {
			return res, err
		}
	}

	gas, err := e.rpc.EstimateGas(ctx, call)
	if err != nil {
		return res, errors.Wrap(err, "estimate gas")
	}
	gasPrice, err := e.rpc.SuggestGasPrice(ctx)
	if err != nil || gasPrice == nil || gasPrice.Sign() == 0 {
		gasPrice = fallbackGasPrice
	}
	fee := new(big.Int).Mul(new(big.Int).SetUint64(gas), gasPrice)

	if required := new(big.Int).Add(value, fee); native.Cmp(required) < 0 {
		sym := nativeSymbol(e.chain)
		return res, errors.Wrapf(models.ErrInsufficientBalance,
			"you have %s %s, you need %s %s (including gas: %s)",
			fromBaseUnits(native, etherDecimals).String(), sym,
			fromBaseUnits(required, etherDecimals).String(), sym,
			fromBaseUnits(fee, etherDecimals).String())
	}

	chainID, err := e.rpc.ChainID(ctx)
	if err != nil {
		return res, errors.Wrap(err, "get chain id")
	}
	nonce, err := e.rpc.PendingNonceAt(ctx, sender)
	if err != nil {
		return res, errors.Wrap(err, "get nonce")
	}
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       call.To,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     call.Data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), priv)
	if err != nil {
		return res, errors.Wrap(err, "sign transaction")
	}
	if err := e.rpc.SendTransaction(ctx, signed); err != nil {
		return res, errors.Wrapf(models.ErrChainSubmission, "send transaction: %v", err)
	}
	res.Signature = signed.Hash().Hex()
	res.ExplorerURL = fmt.Sprintf("%s/tx/%s", e.explorer, res.Signature)

	if err := e.waitReceipt(ctx, signed.Hash()); err != nil {
		return res, err
	}
	res.Success = true
	return res, nil
}

// tokenCall checks the token balance and builds the transfer call.
func (e *EVMExecutor) tokenCall(ctx context.Context, sender, recipient common.Address, amount decimal.Decimal) (ethereum.CallMsg, error) {
	decimals, err := e.tokenDecimals(ctx)
	if err != nil {
		return ethereum.CallMsg{}, err
	}
	units, err := toBaseUnits(amount, decimals)
	if err != nil {
		return ethereum.CallMsg{}, err
	}
	held, err := e.tokenBalance(ctx, sender)
	if err != nil {
		return ethereum.CallMsg{}, err
	}
	if held.Cmp(units) < 0 {
		return ethereum.CallMsg{}, errors.Wrapf(models.ErrInsufficientBalance,
			"you have %s %s, you need %s %s", fromBaseUnits(held, decimals).String(), e.symbol, amount.String(), e.symbol)
	}
	data, err := erc20ABI.Pack("transfer", recipient, units)
	if err != nil {
		return ethereum.CallMsg{}, errors.Wrap(err, "pack transfer")
	}
	return ethereum.CallMsg{From: sender, To: e.token, Data: data}, nil
}

func (e *EVMExecutor) tokenDecimals(ctx context.Context) (uint8, error) {
	out, err := e.callToken(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	d, ok := out[0].(uint8)
	if !ok {
		return 0, errors.Errorf("unexpected decimals type %T", out[0])
	}
	return d, nil
}

func (e *EVMExecutor) tokenBalance(ctx context.Context, owner common.Address) (*big.Int, error) {
	out, err := e.callToken(ctx, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	b, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("unexpected balance type %T", out[0])
	}
	return b, nil
}

func (e *EVMExecutor) callToken(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := erc20ABI.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "pack %s", method)
	}
	raw, err := e.rpc.CallContract(ctx, ethereum.CallMsg{To: e.token, Data: data}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "call %s.%s", e.symbol, method)
	}
	out, err := erc20ABI.Unpack(method, raw)
	if err != nil {
		return nil, errors.Wrapf(err, "unpack %s", method)
	}
	if len(out) == 0 {
		return nil, errors.Errorf("%s returned nothing", method)
	}
	return out, nil
}

// nativeSymbol names the gas asset for balance messages.
func nativeSymbol(c models.Chain) string {
	if c == models.ChainCelo {
		return "CELO"
	}
	return "ETH"
}

func (e *EVMExecutor) waitReceipt(ctx context.Context, hash common.Hash) error {
	ctx, cancel := context.WithTimeout(ctx, e.confirm.Timeout)
	defer cancel()

	ticker := time.NewTicker(e.confirm.Interval)
	defer ticker.Stop()
	for {
		receipt, err := e.rpc.TransactionReceipt(ctx, hash)
		if receipt != nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return errors.Wrapf(models.ErrChainSubmission, "transaction %s reverted", hash.Hex())
			}
			return nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) && ctx.Err() == nil {
			return errors.Wrapf(models.ErrChainSubmission, "receipt %s: %v", hash.Hex(), err)
		}
		select {
		case <-ctx.Done():
			return errors.Wrapf(models.ErrChainSubmission, "transaction %s not confirmed within %s, check the explorer", hash.Hex(), e.confirm.Timeout)
		case <-ticker.C:
		}
	}
}

package chain

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"jumpa_withdrawal_back/models"
)

type fakeKeys struct {
	evm *ecdsa.PrivateKey
	sol solana.PrivateKey
}

func (k fakeKeys) EVMKey(models.Wallet) (*ecdsa.PrivateKey, error) {
	if k.evm == nil {
		return nil, models.ErrWalletNotFound
	}
	return k.evm, nil
}

func (k fakeKeys) SolanaKey(models.Wallet) (solana.PrivateKey, error) {
	if k.sol == nil {
		return nil, models.ErrWalletNotFound
	}
	return k.sol, nil
}

type fakeSolana struct {
	mu           sync.Mutex
	lamports     uint64
	fee          *uint64
	decimals     uint8
	tokenBalance string
	rent         uint64
	existing     map[solana.PublicKey]bool
	status       rpc.ConfirmationStatusType
	statusErr    interface{}
	sent         []*solana.Transaction
}

func (f *fakeSolana) GetBalance(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	return &rpc.GetBalanceResult{Value: f.lamports}, nil
}

func (f *fakeSolana) GetLatestBlockhash(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return &rpc.GetLatestBlockhashResult{Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash{1}}}, nil
}

func (f *fakeSolana) GetFeeForMessage(context.Context, string, rpc.CommitmentType) (*rpc.GetFeeForMessageResult, error) {
	if f.fee == nil {
		return nil, errors.New("method not found")
	}
	return &rpc.GetFeeForMessageResult{Value: f.fee}, nil
}

func (f *fakeSolana) GetTokenSupply(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetTokenSupplyResult, error) {
	return &rpc.GetTokenSupplyResult{Value: &rpc.UiTokenAmount{Decimals: f.decimals}}, nil
}

func (f *fakeSolana) GetTokenAccountBalance(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	return &rpc.GetTokenAccountBalanceResult{Value: &rpc.UiTokenAmount{Amount: f.tokenBalance, Decimals: f.decimals}}, nil
}

func (f *fakeSolana) GetAccountInfo(_ context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	if f.existing[account] {
		return &rpc.GetAccountInfoResult{Value: &rpc.Account{}}, nil
	}
	return nil, rpc.ErrNotFound
}

func (f *fakeSolana) GetMinimumBalanceForRentExemption(context.Context, uint64, rpc.CommitmentType) (uint64, error) {
	return f.rent, nil
}

func (f *fakeSolana) SendTransactionWithOpts(_ context.Context, tx *solana.Transaction, _ rpc.TransactionOpts) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return tx.Signatures[0], nil
}

func (f *fakeSolana) GetSignatureStatuses(context.Context, bool, ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	return &rpc.GetSignatureStatusesResult{Value: []*rpc.SignatureStatusesResult{{ConfirmationStatus: f.status, Err: f.statusErr}}}, nil
}

func (f *fakeSolana) programs(tx *solana.Transaction) []solana.PublicKey {
	var out []solana.PublicKey
	for _, ix := range tx.Message.Instructions {
		out = append(out, tx.Message.AccountKeys[ix.ProgramIDIndex])
	}
	return out
}

type fakeEVM struct {
	mu            sync.Mutex
	chainID       *big.Int
	native        *big.Int
	gas           uint64
	gasPrice      *big.Int
	decimals      uint8
	tokenBalance  *big.Int
	receiptStatus uint64
	noReceipt     bool
	sent          []*types.Transaction
}

func (f *fakeEVM) ChainID(context.Context) (*big.Int, error) { return f.chainID, nil }

func (f *fakeEVM) BalanceAt(context.Context, common.Address, *big.Int) (*big.Int, error) {
	return f.native, nil
}

func (f *fakeEVM) PendingNonceAt(context.Context, common.Address) (uint64, error) { return 7, nil }

func (f *fakeEVM) SuggestGasPrice(context.Context) (*big.Int, error) { return f.gasPrice, nil }

func (f *fakeEVM) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) { return f.gas, nil }

func (f *fakeEVM) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	switch {
	case bytes.Equal(call.Data[:4], erc20ABI.Methods["decimals"].ID):
		return erc20ABI.Methods["decimals"].Outputs.Pack(f.decimals)
	case bytes.Equal(call.Data[:4], erc20ABI.Methods["balanceOf"].ID):
		return erc20ABI.Methods["balanceOf"].Outputs.Pack(f.tokenBalance)
	}
	return nil, errors.New("execution reverted")
}

func (f *fakeEVM) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeEVM) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	if f.noReceipt {
		return nil, ethereum.NotFound
	}
	return &types.Receipt{Status: f.receiptStatus}, nil
}

type stubExecutor struct {
	calls int
	res   models.TransferResult
	err   error
}

func (s *stubExecutor) Transfer(_ context.Context, from models.Wallet, to string, amount decimal.Decimal) (models.TransferResult, error) {
	s.calls++
	return s.res, s.err
}

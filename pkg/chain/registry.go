package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"

	"jumpa_withdrawal_back/models"
)

type NetworkConfig struct {
	RPCURL   string
	Explorer string
	// Tokens maps USDC/USDT to a mint (Solana) or contract (EVM) address.
	Tokens map[models.Currency]string
}

type Config struct {
	Networks map[models.Chain]NetworkConfig
	Confirm  Confirm
}

// DefaultNetworks are mainnet endpoints and token addresses.
func DefaultNetworks() map[models.Chain]NetworkConfig {
	return map[models.Chain]NetworkConfig{
		models.ChainSolana: {
			RPCURL:   rpc.MainNetBeta_RPC,
			Explorer: "https://solscan.io",
			Tokens: map[models.Currency]string{
				models.CurrencyUSDC: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
				models.CurrencyUSDT: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
			},
		},
		models.ChainBase: {
			RPCURL:   "https://base-rpc.publicnode.com",
			Explorer: "https://basescan.org",
			Tokens: map[models.Currency]string{
				models.CurrencyUSDC: "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913",
				models.CurrencyUSDT: "0xfde4C96c8593536E31F229EA8f37b2ADa2699bb2",
			},
		},
		models.ChainCelo: {
			RPCURL:   "https://forno.celo.org",
			Explorer: "https://celoscan.io",
			Tokens: map[models.Currency]string{
				models.CurrencyUSDC: "0xcebA9300f2b948710d2653dD7B07f33A8B32118C",
				models.CurrencyUSDT: "0x48065fbbe25f71c9282ddf5e1cd6d6a887483d5e",
			},
		},
	}
}

// NewDispatcherFromConfig dials every configured network and registers the
// native and token executors for it.
func NewDispatcherFromConfig(ctx context.Context, cfg Config, keys Keys) (*Dispatcher, error) {
	d := NewDispatcher()
	for chain, n := range cfg.Networks {
		if n.RPCURL == "" {
			return nil, errors.Errorf("%s: rpc url is required", chain)
		}
		switch chain.Family() {
		case models.FamilySolana:
			if err := registerSolana(d, rpc.New(n.RPCURL), keys, n, cfg.Confirm); err != nil {
				return nil, err
			}
		case models.FamilyEVM:
			cli, err := ethclient.DialContext(ctx, n.RPCURL)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: dial rpc", chain)
			}
			if err := registerEVM(d, cli, keys, chain, n, cfg.Confirm); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

func registerSolana(d *Dispatcher, client SolanaRPC, keys Keys, n NetworkConfig, confirm Confirm) error {
	d.Register(models.ChainSolana, models.CurrencySOL, NewSolanaNative(client, keys, n.Explorer, confirm))
	for cur, addr := range n.Tokens {
		mint, err := solana.PublicKeyFromBase58(addr)
		if err != nil {
			return errors.Wrapf(err, "SOLANA %s mint", cur)
		}
		d.Register(models.ChainSolana, cur, NewSolanaToken(client, keys, cur, mint, n.Explorer, confirm))
	}
	return nil
}

func registerEVM(d *Dispatcher, client EVMRPC, keys Keys, chain models.Chain, n NetworkConfig, confirm Confirm) error {
	d.Register(chain, models.CurrencyETH, NewEVMNative(client, keys, chain, n.Explorer, confirm))
	for cur, addr := range n.Tokens {
		if !common.IsHexAddress(addr) {
			return errors.Errorf("%s %s contract %q is not an address", chain, cur, addr)
		}
		d.Register(chain, cur, NewEVMToken(client, keys, chain, cur, common.HexToAddress(addr), n.Explorer, confirm))
	}
	return nil
}

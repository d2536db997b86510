// Package chains provides blockchain interaction implementations
package chains

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"

	"github.com/sljivkov/foodsync/contract"
	"github.com/sljivkov/foodsync/domain"
)

// confirmTimeout bounds the wait for transaction confirmation. The
// underlying RPC has no deadline of its own.
const confirmTimeout = 2 * time.Minute

// priceContract is the slice of the generated binding the oracle uses,
// extracted so tests can substitute a mock.
type priceContract interface {
	CurrentEthPriceE18(opts *bind.CallOpts) (*big.Int, error)
	CurrentTokenPriceE18(opts *bind.CallOpts, token common.Address) (*big.Int, error)
	SetEthPrice(opts *bind.TransactOpts, priceE18 *big.Int) (*types.Transaction, error)
	SetTokenPrice(opts *bind.TransactOpts, token common.Address, priceE18 *big.Int) (*types.Transaction, error)
	WatchPriceUpdated(opts *bind.WatchOpts, sink chan<- *contract.ContractPriceUpdated, token []common.Address) (event.Subscription, error)
}

// FoodOracle wraps the on-chain FoodOracle contract with a keyed
// transactor. Writes block until the transaction is mined.
type FoodOracle struct {
	backend  bind.DeployBackend
	contract priceContract
	auth     *bind.TransactOpts
	signer   common.Address
	logger   *zap.Logger
}

// NewFoodOracle dials the RPC endpoint and binds the oracle contract.
func NewFoodOracle(privateKey, rpcURL, contractAddress string, logger *zap.Logger) (*FoodOracle, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}

	ecdsaKey, err := crypto.HexToECDSA(privateKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	chainID, err := client.NetworkID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("network id: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(ecdsaKey, chainID)
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}

	addr := common.HexToAddress(contractAddress)
	bound, err := contract.NewContract(addr, client)
	if err != nil {
		return nil, fmt.Errorf("bind contract: %w", err)
	}

	return &FoodOracle{
		backend:  client,
		contract: bound,
		auth:     auth,
		signer:   crypto.PubkeyToAddress(ecdsaKey.PublicKey),
		logger:   logger,
	}, nil
}

// SignerAddress identifies the transacting account.
func (o *FoodOracle) SignerAddress() common.Address {
	return o.signer
}

// CurrentEthPriceE18 reads the base-asset price from the contract.
func (o *FoodOracle) CurrentEthPriceE18(ctx context.Context) (*big.Int, error) {
	return o.contract.CurrentEthPriceE18(&bind.CallOpts{Context: ctx})
}

// CurrentTokenPriceE18 reads one token's price from the contract.
func (o *FoodOracle) CurrentTokenPriceE18(ctx context.Context, token common.Address) (*big.Int, error) {
	return o.contract.CurrentTokenPriceE18(&bind.CallOpts{Context: ctx}, token)
}

// SetEthPrice writes the base-asset price and waits for mining.
func (o *FoodOracle) SetEthPrice(ctx context.Context, priceE18 *big.Int) error {
	tx, err := o.contract.SetEthPrice(o.txOpts(ctx), priceE18)
	if err != nil {
		return fmt.Errorf("setEthPrice: %w", err)
	}

	return o.waitMined(ctx, tx)
}

// SetTokenPrice writes one token's price and waits for mining.
func (o *FoodOracle) SetTokenPrice(ctx context.Context, token common.Address, priceE18 *big.Int) error {
	tx, err := o.contract.SetTokenPrice(o.txOpts(ctx), token, priceE18)
	if err != nil {
		return fmt.Errorf("setTokenPrice: %w", err)
	}

	return o.waitMined(ctx, tx)
}

func (o *FoodOracle) txOpts(ctx context.Context) *bind.TransactOpts {
	opts := *o.auth
	opts.Context = ctx

	return &opts
}

func (o *FoodOracle) waitMined(ctx context.Context, tx *types.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(ctx, o.backend, tx)
	if err != nil {
		return fmt.Errorf("wait mined %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}

	o.logger.Info("transaction mined",
		zap.String("tx", tx.Hash().Hex()),
		zap.Uint64("block", receipt.BlockNumber.Uint64()),
	)

	return nil
}

// OraclePriceEvent is one decoded PriceUpdated event. Token is nil for
// the base asset (the contract emits the zero address for it).
type OraclePriceEvent struct {
	Token    *common.Address
	PriceUSD float64
	At       time.Time
}

// WatchPriceUpdates subscribes to PriceUpdated events and forwards
// decoded updates until the context is cancelled.
func (o *FoodOracle) WatchPriceUpdates(ctx context.Context, out chan<- OraclePriceEvent) error {
	logs := make(chan *contract.ContractPriceUpdated)
	sub, err := o.contract.WatchPriceUpdated(&bind.WatchOpts{Context: ctx}, logs, nil)
	if err != nil {
		return fmt.Errorf("subscribe PriceUpdated: %w", err)
	}

	o.logger.Info("listening for PriceUpdated events")

	go func() {
		defer close(out)

		for {
			select {
			case err := <-sub.Err():
				o.logger.Warn("subscription error", zap.Error(err))
				return
			case ev := <-logs:
				var token *common.Address
				if ev.Token != (common.Address{}) {
					t := ev.Token
					token = &t
				}

				price, _ := domain.FromFixedPoint18(ev.NewPrice).Float64()
				out <- OraclePriceEvent{
					Token:    token,
					PriceUSD: price,
					At:       time.Unix(ev.Timestamp.Int64(), 0).UTC(),
				}
			case <-ctx.Done():
				sub.Unsubscribe()
				return
			}
		}
	}()

	return nil
}

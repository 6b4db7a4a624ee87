// Package txExecutor implements the transaction lifecycle of the Jasmine SDK:
// it takes a transaction intent, completes the fields the caller left unset
// (gas limit, gas price, nonce), signs the result, broadcasts it, and waits
// for the receipt, exposing the whole pipeline to the caller as a single
// asynchronous handle.
package txExecutor

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/jasmine-eth/go-sdk/pkg/chainClient"
	"github.com/jasmine-eth/go-sdk/pkg/txSigner"
)

// GasPriceStrategy decides the gas price for intents that do not set one.
// It is fixed at executor construction; there is no process-global strategy.
type GasPriceStrategy func(ctx context.Context, client *chainClient.Client) (*big.Int, error)

// SuggestedGasPrice is the default strategy: the node's own suggested price.
func SuggestedGasPrice(ctx context.Context, client *chainClient.Client) (*big.Int, error) {
	return client.SuggestGasPrice(ctx)
}

// FixedGasPrice returns a strategy that always prices transactions at the
// given wei value, without asking the node.
func FixedGasPrice(price *big.Int) GasPriceStrategy {
	fixed := new(big.Int).Set(price)
	return func(context.Context, *chainClient.Client) (*big.Int, error) {
		return new(big.Int).Set(fixed), nil
	}
}

// Config holds the configuration for executor construction.
type Config struct {
	// GasPricer prices intents that carry no gas price. Nil selects
	// SuggestedGasPrice.
	GasPricer GasPriceStrategy
}

// Executor orchestrates field completion, signing, submission and
// confirmation of transactions. It holds no mutable state across Submit
// calls: no queue, no nonce cache. Sequencing of same-sender submissions is
// the caller's responsibility (see Submit).
type Executor struct {
	client    *chainClient.Client
	chainID   *big.Int
	gasPricer GasPriceStrategy
	logger    *zap.Logger
}

// NewExecutor creates a new Executor bound to one chain connection.
//
// Parameters:
//   - cfg: Executor configuration; nil uses defaults
//   - client: The chain connection used for all network round-trips
//   - chainID: The chain ID transactions are signed for
//   - l: Logger for lifecycle events
//
// Returns:
//   - *Executor: A new executor instance
func NewExecutor(cfg *Config, client *chainClient.Client, chainID *big.Int, l *zap.Logger) *Executor {
	gasPricer := SuggestedGasPrice
	if cfg != nil && cfg.GasPricer != nil {
		gasPricer = cfg.GasPricer
	}
	return &Executor{
		client:    client,
		chainID:   new(big.Int).Set(chainID),
		gasPricer: gasPricer,
		logger:    l,
	}
}

// Submit runs the transaction lifecycle for one intent and returns a handle
// that resolves exactly once, to the confirmed receipt or to a *StageError
// identifying the failed stage.
//
// The intent is copied before any completion; the caller's value is never
// mutated. Missing fields are completed from chain state in order: gas limit
// (estimation), gas price (the configured strategy), nonce (pending count of
// the sender). Fields already set pass through untouched.
//
// Nonces are fetched fresh from the chain with no local reservation, so two
// concurrent Submit calls for the same sender can obtain the same nonce and
// collide; callers that need same-sender concurrency must either sequence
// their submissions or assign nonces explicitly.
//
// Cancelling ctx before the transaction is broadcast aborts the lifecycle
// cheaply. Once broadcast, the transaction cannot be recalled; cancellation
// then only abandons the confirmation wait, and the handle still exposes the
// transaction hash.
func (e *Executor) Submit(ctx context.Context, intent *TxIntent, signer txSigner.ITransactionSigner) *PendingTx {
	pending := newPendingTx()
	go e.run(ctx, intent.clone(), signer, pending)
	return pending
}

func (e *Executor) run(ctx context.Context, intent *TxIntent, signer txSigner.ITransactionSigner, pending *PendingTx) {
	if err := e.checkIntent(intent, signer); err != nil {
		pending.complete(nil, &StageError{Stage: StageConfiguration, Err: err})
		return
	}

	if err := e.completeFields(ctx, intent); err != nil {
		pending.complete(nil, err)
		return
	}

	signedTx, err := signer.SignTx(ctx, intent.buildTransaction(), e.chainID)
	if err != nil {
		pending.complete(nil, &StageError{Stage: StageSign, Err: err})
		return
	}

	hash, err := e.client.SendRawTransaction(ctx, signedTx)
	if err != nil {
		pending.complete(nil, &StageError{Stage: StageSubmit, Err: err})
		return
	}
	pending.setTxHash(hash)

	e.logger.Info("transaction submitted, awaiting confirmation",
		zap.String("hash", hash.Hex()),
		zap.String("from", intent.From.Hex()),
	)

	receipt, err := e.client.WaitForReceipt(ctx, hash)
	if err != nil {
		pending.complete(nil, &StageError{Stage: StageConfirm, TxHash: hash, Err: err})
		return
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		e.logger.Error("transaction reverted", zap.String("hash", hash.Hex()))
		pending.complete(receipt, &StageError{Stage: StageConfirm, TxHash: hash, Err: ErrTransactionReverted})
		return
	}

	e.logger.Info("transaction confirmed",
		zap.String("hash", hash.Hex()),
		zap.Uint64("block", receipt.BlockNumber.Uint64()),
		zap.Uint64("gasUsed", receipt.GasUsed),
	)
	pending.complete(receipt, nil)
}

func (e *Executor) checkIntent(intent *TxIntent, signer txSigner.ITransactionSigner) error {
	if intent.From == (common.Address{}) {
		return ErrMissingSender
	}
	if addr := signer.Address(); addr != intent.From {
		return &mismatchError{signer: addr, from: intent.From}
	}
	return nil
}

// completeFields fills only the fields the intent left unset. Each lookup
// fails fast with its own stage tag.
func (e *Executor) completeFields(ctx context.Context, intent *TxIntent) error {
	if intent.GasLimit == 0 {
		gas, err := e.client.EstimateGas(ctx, intent.callMsg())
		if err != nil {
			return &StageError{Stage: StageEstimateGas, Err: err}
		}
		intent.GasLimit = gas
	}

	if intent.GasPrice == nil {
		price, err := e.gasPricer(ctx, e.client)
		if err != nil {
			return &StageError{Stage: StageGasPrice, Err: err}
		}
		intent.GasPrice = price
	}

	if intent.Nonce == nil {
		nonce, err := e.client.PendingNonceAt(ctx, intent.From)
		if err != nil {
			return &StageError{Stage: StageNonce, Err: err}
		}
		intent.Nonce = new(big.Int).SetUint64(nonce)
	}

	e.logger.Sugar().Debugw("intent fields completed",
		zap.String("from", intent.From.Hex()),
		zap.Uint64("gasLimit", intent.GasLimit),
		zap.String("gasPrice", intent.GasPrice.String()),
		zap.String("nonce", intent.Nonce.String()),
	)
	return nil
}

type mismatchError struct {
	signer common.Address
	from   common.Address
}

func (m *mismatchError) Error() string {
	return ErrSignerMismatch.Error() + ": signer " + m.signer.Hex() + ", sender " + m.from.Hex()
}

func (m *mismatchError) Unwrap() error {
	return ErrSignerMismatch
}

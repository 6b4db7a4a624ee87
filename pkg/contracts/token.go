package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/jasmine-eth/go-sdk/pkg/chainClient"
	"github.com/jasmine-eth/go-sdk/pkg/txExecutor"
	"github.com/jasmine-eth/go-sdk/pkg/txSigner"
)

// Token binds a deployed TFC token contract. The binding itself is
// stateless: it holds only the contract address and the parsed ABI, and all
// mutable state lives on-chain.
type Token struct {
	address  common.Address
	tokenABI abi.ABI
	client   *chainClient.Client
	executor *txExecutor.Executor
	logger   *zap.Logger
}

// NewToken creates a Token binding for the contract at the given address.
//
// Parameters:
//   - address: The deployed token contract address
//   - client: The shared chain connection for read-only calls
//   - executor: The executor used for state-mutating calls
//   - l: Logger for contract operations
//
// Returns:
//   - *Token: The token binding
//   - error: An error if the embedded ABI cannot be parsed
func NewToken(address common.Address, client *chainClient.Client, executor *txExecutor.Executor, l *zap.Logger) (*Token, error) {
	tokenABI, err := TFCTokenABI()
	if err != nil {
		return nil, err
	}
	return &Token{
		address:  address,
		tokenABI: tokenABI,
		client:   client,
		executor: executor,
		logger:   l,
	}, nil
}

// Address returns the bound contract address.
func (t *Token) Address() common.Address {
	return t.address
}

// Name returns the token name.
func (t *Token) Name(ctx context.Context) (string, error) {
	var name string
	if err := t.read(ctx, "name", &name); err != nil {
		return "", err
	}
	return name, nil
}

// Symbol returns the token symbol.
func (t *Token) Symbol(ctx context.Context) (string, error) {
	var symbol string
	if err := t.read(ctx, "symbol", &symbol); err != nil {
		return "", err
	}
	return symbol, nil
}

// Decimals returns the token's decimal count.
func (t *Token) Decimals(ctx context.Context) (uint8, error) {
	var decimals uint8
	if err := t.read(ctx, "decimals", &decimals); err != nil {
		return 0, err
	}
	return decimals, nil
}

// TotalSupply returns the total token supply.
func (t *Token) TotalSupply(ctx context.Context) (*big.Int, error) {
	var supply *big.Int
	if err := t.read(ctx, "totalSupply", &supply); err != nil {
		return nil, err
	}
	return supply, nil
}

// BalanceOf returns the token balance of an address.
func (t *Token) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	var balance *big.Int
	if err := t.read(ctx, "balanceOf", &balance, owner); err != nil {
		return nil, err
	}
	return balance, nil
}

// Allowance returns the amount spender may transfer on behalf of owner.
func (t *Token) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	var allowance *big.Int
	if err := t.read(ctx, "allowance", &allowance, owner, spender); err != nil {
		return nil, err
	}
	return allowance, nil
}

// Transfer moves amount tokens from the sender's balance to recipient.
// It returns the executor's asynchronous handle.
func (t *Token) Transfer(ctx context.Context, recipient common.Address, amount *big.Int, sender txSigner.ITransactionSigner) (*txExecutor.PendingTx, error) {
	return t.write(ctx, sender, "transfer", recipient, amount)
}

// TransferFrom moves amount tokens from one address to another using the
// spender's allowance.
func (t *Token) TransferFrom(ctx context.Context, from, recipient common.Address, amount *big.Int, spender txSigner.ITransactionSigner) (*txExecutor.PendingTx, error) {
	return t.write(ctx, spender, "transferFrom", from, recipient, amount)
}

// Approve grants spender the right to transfer up to amount tokens on the
// owner's behalf.
func (t *Token) Approve(ctx context.Context, spender common.Address, amount *big.Int, owner txSigner.ITransactionSigner) (*txExecutor.PendingTx, error) {
	return t.write(ctx, owner, "approve", spender, amount)
}

// read issues an eth_call for a view method and decodes its single return
// value into result.
func (t *Token) read(ctx context.Context, method string, result interface{}, args ...interface{}) error {
	data, err := t.tokenABI.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack %s call: %w", method, err)
	}
	out, err := t.client.CallContract(ctx, t.address, data)
	if err != nil {
		return err
	}
	if err := t.tokenABI.UnpackIntoInterface(result, method, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

// write packs a state-mutating call and hands the resulting intent to the
// executor.
func (t *Token) write(ctx context.Context, signer txSigner.ITransactionSigner, method string, args ...interface{}) (*txExecutor.PendingTx, error) {
	data, err := t.tokenABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}
	to := t.address
	intent := &txExecutor.TxIntent{
		From: signer.Address(),
		To:   &to,
		Data: data,
	}
	t.logger.Sugar().Debugw("submitting token transaction",
		zap.String("method", method),
		zap.String("contract", t.address.Hex()),
		zap.String("from", intent.From.Hex()),
	)
	return t.executor.Submit(ctx, intent, signer), nil
}

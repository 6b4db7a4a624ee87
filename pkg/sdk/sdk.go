// Package sdk is the user-facing facade of the Jasmine Ethereum SDK. It
// composes the chain connection, the transaction executor and the contract
// bindings into the operations an application needs: account management,
// ETH transfers, unit conversion, manager deployment and token claims.
package sdk

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/jasmine-eth/go-sdk/pkg/chainClient"
	"github.com/jasmine-eth/go-sdk/pkg/contracts"
	"github.com/jasmine-eth/go-sdk/pkg/txExecutor"
	"github.com/jasmine-eth/go-sdk/pkg/txSigner"
)

// Config holds the configuration for SDK construction.
type Config struct {
	// Endpoint is the chain RPC URL. Must be http(s) or ws(s).
	Endpoint string
	// ReceiptPollInterval overrides the receipt polling cadence. Zero keeps
	// the chainClient default.
	ReceiptPollInterval time.Duration
	// GasPricer overrides the executor's gas pricing strategy. Nil keeps the
	// node-suggested price.
	GasPricer txExecutor.GasPriceStrategy
}

// SDK is the composed entry point. All components share one chain connection;
// concurrency safety follows the underlying transport's.
type SDK struct {
	client   *chainClient.Client
	executor *txExecutor.Executor
	chainID  *big.Int
	logger   *zap.Logger
}

// New connects to the configured endpoint and builds the SDK around the
// resulting connection.
//
// Parameters:
//   - ctx: Context for the connection handshake
//   - cfg: SDK configuration
//   - l: Logger shared by all components
//
// Returns:
//   - *SDK: The composed SDK
//   - error: chainClient.ErrUnsupportedEndpoint for malformed endpoints, or
//     the connection/chain-ID error
func New(ctx context.Context, cfg *Config, l *zap.Logger) (*SDK, error) {
	client, err := chainClient.Dial(ctx, &chainClient.Config{
		Endpoint:            cfg.Endpoint,
		ReceiptPollInterval: cfg.ReceiptPollInterval,
	}, l)
	if err != nil {
		return nil, err
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}

	return NewWithClient(client, chainID, cfg.GasPricer, l), nil
}

// NewWithClient builds the SDK around an existing chain connection. Used by
// New and by tests that inject a mocked connection.
func NewWithClient(client *chainClient.Client, chainID *big.Int, gasPricer txExecutor.GasPriceStrategy, l *zap.Logger) *SDK {
	executor := txExecutor.NewExecutor(&txExecutor.Config{GasPricer: gasPricer}, client, chainID, l)
	return &SDK{
		client:   client,
		executor: executor,
		chainID:  new(big.Int).Set(chainID),
		logger:   l,
	}
}

// ChainID returns the chain ID the SDK is connected to.
func (s *SDK) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

// Client returns the shared chain connection.
func (s *SDK) Client() *chainClient.Client {
	return s.client
}

// Executor returns the transaction executor.
func (s *SDK) Executor() *txExecutor.Executor {
	return s.executor
}

// CreateAccount generates a fresh keypair and returns a signer for it.
func (s *SDK) CreateAccount() (*txSigner.PrivateKeySigner, error) {
	account, err := txSigner.GeneratePrivateKeySigner()
	if err != nil {
		return nil, err
	}
	s.logger.Info("created account", zap.String("address", account.Address().Hex()))
	return account, nil
}

// RetrieveAccount imports an existing hex-encoded private key.
func (s *SDK) RetrieveAccount(privateKeyHex string) (*txSigner.PrivateKeySigner, error) {
	return txSigner.NewPrivateKeySigner(privateKeyHex)
}

// BalanceOf returns the ETH balance of an address in wei.
func (s *SDK) BalanceOf(ctx context.Context, addr common.Address) (*big.Int, error) {
	return s.client.BalanceAt(ctx, addr)
}

// Transfer sends amountWei of ETH from the sender's account to recipient and
// returns the executor's asynchronous handle.
func (s *SDK) Transfer(ctx context.Context, recipient common.Address, amountWei *big.Int, sender txSigner.ITransactionSigner) *txExecutor.PendingTx {
	to := recipient
	intent := &txExecutor.TxIntent{
		From:  sender.Address(),
		To:    &to,
		Value: amountWei,
	}
	return s.executor.Submit(ctx, intent, sender)
}

// DeployManager deploys a new TFC manager contract and blocks until the
// deployment is confirmed. It returns the deployed contract address together
// with the receipt.
func (s *SDK) DeployManager(ctx context.Context, deployer txSigner.ITransactionSigner) (common.Address, *types.Receipt, error) {
	intent, err := contracts.DeployManagerIntent(deployer.Address())
	if err != nil {
		return common.Address{}, nil, err
	}

	s.logger.Info("deploying TFC manager", zap.String("deployer", deployer.Address().Hex()))
	receipt, err := s.executor.Submit(ctx, intent, deployer).Wait(ctx)
	if err != nil {
		return common.Address{}, nil, err
	}
	if receipt.ContractAddress == (common.Address{}) {
		return common.Address{}, receipt, fmt.Errorf("deployment receipt %s carries no contract address", receipt.TxHash.Hex())
	}

	s.logger.Info("TFC manager deployed",
		zap.String("address", receipt.ContractAddress.Hex()),
		zap.String("hash", receipt.TxHash.Hex()),
	)
	return receipt.ContractAddress, receipt, nil
}

// Manager returns a binding for the TFC manager at the given address.
func (s *SDK) Manager(address common.Address) (*contracts.Manager, error) {
	return contracts.NewManager(address, s.client, s.executor, s.logger)
}

// Token returns a binding for the TFC token at the given address.
func (s *SDK) Token(address common.Address) (*contracts.Token, error) {
	return contracts.NewToken(address, s.client, s.executor, s.logger)
}

// Close closes the underlying chain connection.
func (s *SDK) Close() {
	s.client.Close()
}

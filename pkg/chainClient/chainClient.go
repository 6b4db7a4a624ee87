// Package chainClient provides the blockchain connection used by the Jasmine SDK.
// It wraps a single ethclient connection behind a small set of primitives
// (gas estimation, gas pricing, nonce lookup, raw submission, receipt
// polling, contract reads) that the rest of the SDK composes.
package chainClient

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedEndpoint is returned when the configured endpoint is not
	// an http(s) or ws(s) URL.
	ErrUnsupportedEndpoint = errors.New("unsupported Ethereum endpoint")
)

// DefaultReceiptPollInterval is the receipt polling cadence used when the
// config does not specify one.
const DefaultReceiptPollInterval = 2 * time.Second

// Config holds the configuration for connecting to a blockchain.
type Config struct {
	// Endpoint is the RPC URL of the chain node. Must be http(s) or ws(s).
	Endpoint string
	// ReceiptPollInterval is the delay between receipt lookups while waiting
	// for a transaction to be mined. Zero selects DefaultReceiptPollInterval.
	ReceiptPollInterval time.Duration
}

// Client is an active connection to a blockchain node.
// It is safe for concurrent use to the extent the underlying backend is;
// ethclient.Client is.
type Client struct {
	backend      EthBackend
	pollInterval time.Duration
	logger       *zap.Logger
}

// Dial validates the endpoint and establishes a connection to the chain node.
//
// Parameters:
//   - ctx: Context for the connection attempt
//   - cfg: The chain configuration containing the endpoint URL
//   - l: Logger for connection events
//
// Returns:
//   - *Client: The connected client
//   - error: ErrUnsupportedEndpoint for malformed endpoints, or the dial error
func Dial(ctx context.Context, cfg *Config, l *zap.Logger) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if !isSupportedEndpoint(endpoint) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEndpoint, cfg.Endpoint)
	}

	backend, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}
	l.Info("connected to Ethereum node", zap.String("endpoint", endpoint))

	return NewClientWithBackend(backend, cfg, l), nil
}

// NewClientWithBackend wraps an already-constructed backend. Used by Dial and
// by tests that inject a mock backend.
func NewClientWithBackend(backend EthBackend, cfg *Config, l *zap.Logger) *Client {
	interval := cfg.ReceiptPollInterval
	if interval <= 0 {
		interval = DefaultReceiptPollInterval
	}
	return &Client{
		backend:      backend,
		pollInterval: interval,
		logger:       l,
	}
}

// ChainID returns the chain ID reported by the connected node.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return id, nil
}

// BalanceAt returns the current wei balance of an address.
func (c *Client) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	balance, err := c.backend.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance of %s: %w", addr.Hex(), err)
	}
	return balance, nil
}

// PendingNonceAt returns the transaction count of an address including
// pending transactions. There is no local caching: every call asks the node.
func (c *Client) PendingNonceAt(ctx context.Context, addr common.Address) (uint64, error) {
	nonce, err := c.backend.PendingNonceAt(ctx, addr)
	if err != nil {
		return 0, fmt.Errorf("failed to get nonce for %s: %w", addr.Hex(), err)
	}
	return nonce, nil
}

// EstimateGas asks the node for a gas estimate of the given call.
func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	gas, err := c.backend.EstimateGas(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas: %w", err)
	}
	return gas, nil
}

// SuggestGasPrice returns the node's suggested gas price.
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	price, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	return price, nil
}

// SendRawTransaction broadcasts a signed transaction and returns its hash.
// It returns as soon as the node accepts the transaction; it does not wait
// for mining.
func (c *Client) SendRawTransaction(ctx context.Context, signedTx *types.Transaction) (common.Hash, error) {
	if err := c.backend.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	hash := signedTx.Hash()
	c.logger.Info("transaction sent", zap.String("hash", hash.Hex()))
	return hash, nil
}

// WaitForReceipt polls the node until a receipt exists for the given hash.
// The poll interval comes from the client config; the only bound on total
// wait time is the caller's context.
func (c *Client) WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := retry.Do(
		func() error {
			r, err := c.backend.TransactionReceipt(ctx, hash)
			if err != nil {
				return err
			}
			receipt = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(c.pollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for receipt of %s: %w", hash.Hex(), err)
	}
	c.logger.Sugar().Debugw("receipt obtained",
		zap.String("hash", hash.Hex()),
		zap.Uint64("status", receipt.Status),
	)
	return receipt, nil
}

// CallContract executes a read-only contract call against current chain state.
func (c *Client) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("contract call to %s failed: %w", to.Hex(), err)
	}
	return out, nil
}

// Close closes the underlying connection.
func (c *Client) Close() {
	c.backend.Close()
}

func isSupportedEndpoint(endpoint string) bool {
	for _, scheme := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(endpoint, scheme) {
			return true
		}
	}
	return false
}

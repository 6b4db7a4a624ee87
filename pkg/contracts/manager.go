package contracts

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/jasmine-eth/go-sdk/pkg/chainClient"
	"github.com/jasmine-eth/go-sdk/pkg/txExecutor"
	"github.com/jasmine-eth/go-sdk/pkg/txSigner"
)

// ErrMalformedSignature is returned when a voucher signature hex string
// cannot be decoded (odd length or invalid characters).
var ErrMalformedSignature = errors.New("malformed voucher signature hex")

// Manager binds a deployed TFC manager contract, which mints tokens against
// off-chain-issued vouchers. The voucher signature is opaque to the SDK: it
// is decoded from hex and passed through verbatim, and only the on-chain
// logic verifies it.
type Manager struct {
	address    common.Address
	managerABI abi.ABI
	client     *chainClient.Client
	executor   *txExecutor.Executor
	logger     *zap.Logger
}

// NewManager creates a Manager binding for the contract at the given address.
func NewManager(address common.Address, client *chainClient.Client, executor *txExecutor.Executor, l *zap.Logger) (*Manager, error) {
	managerABI, err := TFCManagerABI()
	if err != nil {
		return nil, err
	}
	return &Manager{
		address:    address,
		managerABI: managerABI,
		client:     client,
		executor:   executor,
		logger:     l,
	}, nil
}

// Address returns the bound contract address.
func (m *Manager) Address() common.Address {
	return m.address
}

// TFCTokenAddress returns the address of the token contract this manager mints.
func (m *Manager) TFCTokenAddress(ctx context.Context) (common.Address, error) {
	data, err := m.managerABI.Pack("tfcToken")
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to pack tfcToken call: %w", err)
	}
	out, err := m.client.CallContract(ctx, m.address, data)
	if err != nil {
		return common.Address{}, err
	}
	var token common.Address
	if err := m.managerABI.UnpackIntoInterface(&token, "tfcToken", out); err != nil {
		return common.Address{}, fmt.Errorf("failed to decode tfcToken result: %w", err)
	}
	return token, nil
}

// ClaimTFC mints amount tokens to the claimer using an off-chain voucher.
// sigHex is the voucher signature as a hex string (0x prefix optional); it is
// decoded strictly and rejected with ErrMalformedSignature if it is not valid
// hex. The claimer pays the gas and must match the voucher the issuer signed.
func (m *Manager) ClaimTFC(ctx context.Context, amount, nonce *big.Int, sigHex string, claimer txSigner.ITransactionSigner) (*txExecutor.PendingTx, error) {
	sig, err := DecodeVoucherSignature(sigHex)
	if err != nil {
		return nil, err
	}

	data, err := m.managerABI.Pack("claimTFC", amount, nonce, sig)
	if err != nil {
		return nil, fmt.Errorf("failed to pack claimTFC call: %w", err)
	}

	to := m.address
	intent := &txExecutor.TxIntent{
		From: claimer.Address(),
		To:   &to,
		Data: data,
	}
	m.logger.Info("submitting TFC claim",
		zap.String("claimer", intent.From.Hex()),
		zap.String("amount", amount.String()),
		zap.String("nonce", nonce.String()),
	)
	return m.executor.Submit(ctx, intent, claimer), nil
}

// DeployManagerIntent builds the contract-creation intent for a new TFC
// manager: no recipient, data set to the embedded init bytecode. The deployed
// address is available from the resulting receipt.
func DeployManagerIntent(from common.Address) (*txExecutor.TxIntent, error) {
	bytecode, err := TFCManagerBytecode()
	if err != nil {
		return nil, err
	}
	return &txExecutor.TxIntent{
		From: from,
		Data: bytecode,
	}, nil
}

// DecodeVoucherSignature decodes a voucher signature from its external hex
// representation into raw bytes. The 0x prefix is optional; odd-length or
// non-hex input is rejected.
func DecodeVoucherSignature(sigHex string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(sigHex), "0x")
	sig, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedSignature, sigHex)
	}
	return sig, nil
}

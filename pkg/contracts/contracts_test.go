package contracts

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jasmine-eth/go-sdk/pkg/chainClient"
	"github.com/jasmine-eth/go-sdk/pkg/txExecutor"
	"github.com/jasmine-eth/go-sdk/pkg/txSigner"
)

var (
	tokenAddress   = common.HexToAddress("0x1000000000000000000000000000000000000001")
	managerAddress = common.HexToAddress("0x2000000000000000000000000000000000000002")
)

func setupTestBindings(t *testing.T) (*Token, *Manager, *chainClient.MockEthBackend) {
	backend := chainClient.NewMockEthBackend(t)
	client := chainClient.NewClientWithBackend(backend, &chainClient.Config{
		Endpoint:            "http://localhost:8545",
		ReceiptPollInterval: time.Millisecond,
	}, zap.NewNop())
	executor := txExecutor.NewExecutor(nil, client, big.NewInt(1337), zap.NewNop())

	token, err := NewToken(tokenAddress, client, executor, zap.NewNop())
	require.NoError(t, err)
	manager, err := NewManager(managerAddress, client, executor, zap.NewNop())
	require.NoError(t, err)

	return token, manager, backend
}

func newTestSigner(t *testing.T) *txSigner.PrivateKeySigner {
	signer, err := txSigner.GeneratePrivateKeySigner()
	require.NoError(t, err)
	return signer
}

// expectRead wires an eth_call expectation for one view method, returning the
// ABI-encoded values.
func expectRead(t *testing.T, backend *chainClient.MockEthBackend, contract common.Address, callData, results []byte) {
	t.Helper()
	backend.On("CallContract", mock.Anything, ethereum.CallMsg{To: &contract, Data: callData}, (*big.Int)(nil)).
		Return(results, nil).Once()
}

func TestArtifacts(t *testing.T) {
	tokenABI, err := TFCTokenABI()
	require.NoError(t, err)
	for _, method := range []string{
		"name", "symbol", "decimals", "totalSupply",
		"balanceOf", "allowance", "transfer", "transferFrom", "approve",
	} {
		_, ok := tokenABI.Methods[method]
		assert.True(t, ok, "token ABI missing %s", method)
	}

	managerABI, err := TFCManagerABI()
	require.NoError(t, err)
	for _, method := range []string{"tfcToken", "claimTFC"} {
		_, ok := managerABI.Methods[method]
		assert.True(t, ok, "manager ABI missing %s", method)
	}

	bytecode, err := TFCManagerBytecode()
	require.NoError(t, err)
	assert.NotEmpty(t, bytecode)
}

func TestToken_BalanceOf(t *testing.T) {
	token, _, backend := setupTestBindings(t)
	owner := common.HexToAddress("0x3000000000000000000000000000000000000003")

	callData, err := token.tokenABI.Pack("balanceOf", owner)
	require.NoError(t, err)
	results, err := token.tokenABI.Methods["balanceOf"].Outputs.Pack(big.NewInt(42))
	require.NoError(t, err)
	expectRead(t, backend, tokenAddress, callData, results)

	balance, err := token.BalanceOf(context.Background(), owner)

	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), balance)
}

func TestToken_Metadata(t *testing.T) {
	token, _, backend := setupTestBindings(t)

	nameData, _ := token.tokenABI.Pack("name")
	nameOut, err := token.tokenABI.Methods["name"].Outputs.Pack("TFCToken")
	require.NoError(t, err)
	expectRead(t, backend, tokenAddress, nameData, nameOut)

	symbolData, _ := token.tokenABI.Pack("symbol")
	symbolOut, err := token.tokenABI.Methods["symbol"].Outputs.Pack("TFC")
	require.NoError(t, err)
	expectRead(t, backend, tokenAddress, symbolData, symbolOut)

	decimalsData, _ := token.tokenABI.Pack("decimals")
	decimalsOut, err := token.tokenABI.Methods["decimals"].Outputs.Pack(uint8(18))
	require.NoError(t, err)
	expectRead(t, backend, tokenAddress, decimalsData, decimalsOut)

	name, err := token.Name(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TFCToken", name)

	symbol, err := token.Symbol(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TFC", symbol)

	decimals, err := token.Decimals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint8(18), decimals)
}

func TestToken_Transfer_BuildsContractCallIntent(t *testing.T) {
	token, _, backend := setupTestBindings(t)
	sender := newTestSigner(t)
	recipient := common.HexToAddress("0x4000000000000000000000000000000000000004")
	amount := big.NewInt(1_000_000)

	backend.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(60000), nil)
	backend.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(1), nil)
	backend.On("PendingNonceAt", mock.Anything, sender.Address()).Return(uint64(0), nil)

	var sentTx *types.Transaction
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}
	backend.On("SendTransaction", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sentTx = args.Get(1).(*types.Transaction) }).
		Return(nil)
	backend.On("TransactionReceipt", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { receipt.TxHash = args.Get(1).(common.Hash) }).
		Return(receipt, nil)

	pending, err := token.Transfer(context.Background(), recipient, amount, sender)
	require.NoError(t, err)
	_, err = pending.Wait(context.Background())
	require.NoError(t, err)

	wantData, err := token.tokenABI.Pack("transfer", recipient, amount)
	require.NoError(t, err)
	assert.Equal(t, tokenAddress, *sentTx.To())
	assert.Equal(t, wantData, sentTx.Data())
	assert.Zero(t, sentTx.Value().Sign())
}

func TestManager_TFCTokenAddress(t *testing.T) {
	_, manager, backend := setupTestBindings(t)

	callData, err := manager.managerABI.Pack("tfcToken")
	require.NoError(t, err)
	results, err := manager.managerABI.Methods["tfcToken"].Outputs.Pack(tokenAddress)
	require.NoError(t, err)
	expectRead(t, backend, managerAddress, callData, results)

	got, err := manager.TFCTokenAddress(context.Background())

	require.NoError(t, err)
	assert.Equal(t, tokenAddress, got)
	assert.NotEqual(t, common.Address{}, got)
}

func TestManager_ClaimTFC_EncodesDecodedVoucher(t *testing.T) {
	_, manager, backend := setupTestBindings(t)
	claimer := newTestSigner(t)
	amount := big.NewInt(500)
	nonce := big.NewInt(3)

	backend.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(90000), nil)
	backend.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(1), nil)
	backend.On("PendingNonceAt", mock.Anything, claimer.Address()).Return(uint64(0), nil)

	var sentTx *types.Transaction
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}
	backend.On("SendTransaction", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sentTx = args.Get(1).(*types.Transaction) }).
		Return(nil)
	backend.On("TransactionReceipt", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { receipt.TxHash = args.Get(1).(common.Hash) }).
		Return(receipt, nil)

	pending, err := manager.ClaimTFC(context.Background(), amount, nonce, "0xabc123", claimer)
	require.NoError(t, err)
	_, err = pending.Wait(context.Background())
	require.NoError(t, err)

	// "0xabc123" must reach the chain as the raw bytes 0xab 0xc1 0x23
	wantData, err := manager.managerABI.Pack("claimTFC", amount, nonce, []byte{0xab, 0xc1, 0x23})
	require.NoError(t, err)
	assert.Equal(t, managerAddress, *sentTx.To())
	assert.Equal(t, wantData, sentTx.Data())
}

func TestManager_ClaimTFC_RejectsMalformedSignature(t *testing.T) {
	_, manager, _ := setupTestBindings(t)
	claimer := newTestSigner(t)

	for _, sig := range []string{"0xabc", "0xzz12", "not hex at all"} {
		pending, err := manager.ClaimTFC(context.Background(), big.NewInt(1), big.NewInt(1), sig, claimer)
		assert.Nil(t, pending, "signature %q", sig)
		assert.ErrorIs(t, err, ErrMalformedSignature, "signature %q", sig)
	}
}

func TestDecodeVoucherSignature(t *testing.T) {
	tests := []struct {
		name    string
		sigHex  string
		want    []byte
		wantErr bool
	}{
		{name: "with prefix", sigHex: "0xabc123", want: []byte{0xab, 0xc1, 0x23}},
		{name: "without prefix", sigHex: "abc123", want: []byte{0xab, 0xc1, 0x23}},
		{name: "surrounding whitespace", sigHex: "  0xff00  ", want: []byte{0xff, 0x00}},
		{name: "empty", sigHex: "", want: []byte{}},
		{name: "odd length", sigHex: "0xabc", wantErr: true},
		{name: "invalid characters", sigHex: "0xgg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeVoucherSignature(tt.sigHex)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSignature)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeployManagerIntent(t *testing.T) {
	deployer := common.HexToAddress("0x5000000000000000000000000000000000000005")

	intent, err := DeployManagerIntent(deployer)

	require.NoError(t, err)
	assert.Equal(t, deployer, intent.From)
	assert.Nil(t, intent.To)
	assert.NotEmpty(t, intent.Data)
}

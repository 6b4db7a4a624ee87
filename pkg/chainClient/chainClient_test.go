package chainClient

import (
	"context"
	"errors"
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
)

func setupTestClient(t *testing.T) (*Client, *MockEthBackend) {
	backend := NewMockEthBackend(t)
	client := NewClientWithBackend(backend, &Config{
		Endpoint:            "http://localhost:8545",
		ReceiptPollInterval: time.Millisecond,
	}, zap.NewNop())
	return client, backend
}

func TestDial_RejectsUnsupportedEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{name: "empty", endpoint: ""},
		{name: "whitespace only", endpoint: "   "},
		{name: "no scheme", endpoint: "localhost:8545"},
		{name: "wrong scheme", endpoint: "ftp://localhost:8545"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := Dial(context.Background(), &Config{Endpoint: tt.endpoint}, zap.NewNop())
			assert.Nil(t, client)
			assert.ErrorIs(t, err, ErrUnsupportedEndpoint)
		})
	}
}

func TestIsSupportedEndpoint(t *testing.T) {
	assert.True(t, isSupportedEndpoint("http://localhost:8545"))
	assert.True(t, isSupportedEndpoint("https://mainnet.example.org"))
	assert.True(t, isSupportedEndpoint("ws://localhost:8546"))
	assert.True(t, isSupportedEndpoint("wss://mainnet.example.org"))
	assert.False(t, isSupportedEndpoint("ipc:///var/geth.ipc"))
}

func TestClient_SendRawTransaction_ReturnsTransactionHash(t *testing.T) {
	client, backend := setupTestClient(t)

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    1,
		GasPrice: big.NewInt(1),
		Gas:      21000,
		Value:    big.NewInt(0),
	})
	backend.On("SendTransaction", mock.Anything, tx).Return(nil)

	hash, err := client.SendRawTransaction(context.Background(), tx)

	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), hash)
}

func TestClient_SendRawTransaction_SurfacesRejection(t *testing.T) {
	client, backend := setupTestClient(t)

	rejection := errors.New("insufficient funds for gas * price + value")
	tx := types.NewTx(&types.LegacyTx{Nonce: 0, GasPrice: big.NewInt(1), Gas: 21000})
	backend.On("SendTransaction", mock.Anything, tx).Return(rejection)

	_, err := client.SendRawTransaction(context.Background(), tx)

	assert.ErrorIs(t, err, rejection)
}

func TestClient_WaitForReceipt_PollsUntilMined(t *testing.T) {
	client, backend := setupTestClient(t)

	hash := common.HexToHash("0xdeadbeef")
	receipt := &types.Receipt{
		TxHash:      hash,
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(100),
	}

	// Pending for two polls, then mined
	backend.On("TransactionReceipt", mock.Anything, hash).Return(nil, ethereum.NotFound).Twice()
	backend.On("TransactionReceipt", mock.Anything, hash).Return(receipt, nil).Once()

	got, err := client.WaitForReceipt(context.Background(), hash)

	require.NoError(t, err)
	assert.Same(t, receipt, got)
	backend.AssertNumberOfCalls(t, "TransactionReceipt", 3)
}

func TestClient_WaitForReceipt_StopsOnContextCancel(t *testing.T) {
	client, backend := setupTestClient(t)

	hash := common.HexToHash("0x01")
	backend.On("TransactionReceipt", mock.Anything, hash).Return(nil, ethereum.NotFound)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.WaitForReceipt(ctx, hash)

	assert.Error(t, err)
}

func TestClient_CallContract(t *testing.T) {
	client, backend := setupTestClient(t)

	to := common.HexToAddress("0x1234567890123456789012345678901234567890")
	data := []byte{0x06, 0xfd, 0xde, 0x03}
	want := []byte{0x01}

	backend.On("CallContract", mock.Anything, ethereum.CallMsg{To: &to, Data: data}, (*big.Int)(nil)).
		Return(want, nil)

	out, err := client.CallContract(context.Background(), to, data)

	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestClient_BalanceAt(t *testing.T) {
	client, backend := setupTestClient(t)

	addr := common.HexToAddress("0x1234567890123456789012345678901234567890")
	backend.On("BalanceAt", mock.Anything, addr, (*big.Int)(nil)).Return(big.NewInt(1_000_000), nil)

	balance, err := client.BalanceAt(context.Background(), addr)

	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000), balance)
}

func TestNewClientWithBackend_DefaultsPollInterval(t *testing.T) {
	backend := NewMockEthBackend(t)
	client := NewClientWithBackend(backend, &Config{Endpoint: "http://localhost:8545"}, zap.NewNop())
	assert.Equal(t, DefaultReceiptPollInterval, client.pollInterval)
}

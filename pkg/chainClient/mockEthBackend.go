package chainClient

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
)

// MockEthBackend is a testify mock of EthBackend for use in tests.
// Return values may be plain values or functions matching the mocked
// method's signature, which are invoked with the call's arguments.
type MockEthBackend struct {
	mock.Mock
}

// NewMockEthBackend creates a new MockEthBackend and registers cleanup-time
// expectation assertion on t.
func NewMockEthBackend(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEthBackend {
	m := &MockEthBackend{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEthBackend) ChainID(ctx context.Context) (*big.Int, error) {
	ret := m.Called(ctx)
	if rf, ok := ret.Get(0).(func(context.Context) (*big.Int, error)); ok {
		return rf(ctx)
	}
	id, _ := ret.Get(0).(*big.Int)
	return id, ret.Error(1)
}

func (m *MockEthBackend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	ret := m.Called(ctx, account, blockNumber)
	if rf, ok := ret.Get(0).(func(context.Context, common.Address, *big.Int) (*big.Int, error)); ok {
		return rf(ctx, account, blockNumber)
	}
	balance, _ := ret.Get(0).(*big.Int)
	return balance, ret.Error(1)
}

func (m *MockEthBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	ret := m.Called(ctx, account)
	if rf, ok := ret.Get(0).(func(context.Context, common.Address) (uint64, error)); ok {
		return rf(ctx, account)
	}
	return ret.Get(0).(uint64), ret.Error(1)
}

func (m *MockEthBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	ret := m.Called(ctx, msg)
	if rf, ok := ret.Get(0).(func(context.Context, ethereum.CallMsg) (uint64, error)); ok {
		return rf(ctx, msg)
	}
	return ret.Get(0).(uint64), ret.Error(1)
}

func (m *MockEthBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	ret := m.Called(ctx)
	if rf, ok := ret.Get(0).(func(context.Context) (*big.Int, error)); ok {
		return rf(ctx)
	}
	price, _ := ret.Get(0).(*big.Int)
	return price, ret.Error(1)
}

func (m *MockEthBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	ret := m.Called(ctx, tx)
	if rf, ok := ret.Get(0).(func(context.Context, *types.Transaction) error); ok {
		return rf(ctx, tx)
	}
	return ret.Error(0)
}

func (m *MockEthBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ret := m.Called(ctx, txHash)
	if rf, ok := ret.Get(0).(func(context.Context, common.Hash) (*types.Receipt, error)); ok {
		return rf(ctx, txHash)
	}
	receipt, _ := ret.Get(0).(*types.Receipt)
	return receipt, ret.Error(1)
}

func (m *MockEthBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	ret := m.Called(ctx, msg, blockNumber)
	if rf, ok := ret.Get(0).(func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error)); ok {
		return rf(ctx, msg, blockNumber)
	}
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

func (m *MockEthBackend) Close() {
	m.Called()
}

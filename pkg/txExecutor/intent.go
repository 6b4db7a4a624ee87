package txExecutor

import (
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxIntent describes a transaction to be executed. Fields left at their zero
// value (GasLimit 0, GasPrice nil, Nonce nil) are completed from chain state
// at submission time; fields the caller sets are never overwritten.
//
// A submitted intent is never mutated by the executor: completion happens on
// an internal copy, so an intent value can be inspected (or reused as a new
// attempt) after Submit returns.
type TxIntent struct {
	// From is the sender address. Required; must match the signer.
	From common.Address
	// To is the recipient. Nil means contract creation.
	To *common.Address
	// Value is the wei amount to transfer. Nil means 0.
	Value *big.Int
	// Data is the call data or, for contract creation, the init bytecode.
	Data []byte
	// GasLimit is the gas limit. 0 means estimate from the chain.
	GasLimit uint64
	// GasPrice is the gas price in wei. Nil means use the executor's
	// pricing strategy.
	GasPrice *big.Int
	// Nonce is the sender's transaction sequence number. Nil means fetch the
	// pending count from the chain.
	Nonce *big.Int
}

// clone returns a deep copy so the executor never mutates the caller's intent.
func (i *TxIntent) clone() *TxIntent {
	c := &TxIntent{
		From:     i.From,
		GasLimit: i.GasLimit,
	}
	if i.To != nil {
		to := *i.To
		c.To = &to
	}
	if i.Value != nil {
		c.Value = new(big.Int).Set(i.Value)
	}
	if len(i.Data) > 0 {
		c.Data = make([]byte, len(i.Data))
		copy(c.Data, i.Data)
	}
	if i.GasPrice != nil {
		c.GasPrice = new(big.Int).Set(i.GasPrice)
	}
	if i.Nonce != nil {
		c.Nonce = new(big.Int).Set(i.Nonce)
	}
	return c
}

// callMsg renders the intent as an estimation/call message.
func (i *TxIntent) callMsg() ethereum.CallMsg {
	return ethereum.CallMsg{
		From:     i.From,
		To:       i.To,
		Value:    i.Value,
		Data:     i.Data,
		GasPrice: i.GasPrice,
	}
}

// buildTransaction renders a fully-completed intent as an unsigned legacy
// transaction. All completion must have happened already.
func (i *TxIntent) buildTransaction() *types.Transaction {
	value := i.Value
	if value == nil {
		value = new(big.Int)
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    i.Nonce.Uint64(),
		GasPrice: i.GasPrice,
		Gas:      i.GasLimit,
		To:       i.To,
		Value:    value,
		Data:     i.Data,
	})
}

// Package txSigner provides Ethereum transaction signing for the Jasmine SDK.
// This package defines the signer interface and implementations backed by raw
// private keys and AWS KMS. A signer owns exactly one address, derived
// deterministically from its key; the key material itself is never logged or
// serialized.
package txSigner

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ITransactionSigner defines the interface for signing Ethereum transactions.
// Implementations provide the ability to sign fully-populated transactions
// using different signing backends like private keys and hardware security
// modules.
type ITransactionSigner interface {
	// SignTx signs the given unsigned transaction for the given chain.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - tx: The fully-populated unsigned transaction
	//   - chainID: The chain ID for the target blockchain
	//
	// Returns:
	//   - *types.Transaction: The signed transaction
	//   - error: An error if signing fails
	SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)

	// Address returns the Ethereum address associated with this signer.
	// This address will be used as the 'from' field in transactions.
	Address() common.Address
}

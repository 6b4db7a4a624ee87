package txExecutor

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PendingTx is the asynchronous handle returned by Executor.Submit. It
// resolves exactly once, to either a receipt or an error, and is safe for
// concurrent use.
//
// The transaction hash becomes observable through TxHash as soon as the
// transaction has been broadcast, even if confirmation later fails, so the
// caller can always recover an in-flight transaction.
type PendingTx struct {
	once sync.Once
	done chan struct{}

	mu        sync.RWMutex
	hash      common.Hash
	hashKnown bool
	receipt   *types.Receipt
	err       error
}

func newPendingTx() *PendingTx {
	return &PendingTx{done: make(chan struct{})}
}

// Done returns a channel that is closed when the handle resolves.
func (p *PendingTx) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the handle resolves or ctx expires. On resolution it
// returns the receipt or the failure; the transaction itself keeps running
// on-chain regardless of ctx.
func (p *PendingTx) Wait(ctx context.Context) (*types.Receipt, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.Receipt(), p.Err()
	}
}

// TxHash returns the transaction hash and whether it is known yet. The hash
// is known from the moment the transaction was accepted by the node.
func (p *PendingTx) TxHash() (common.Hash, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.hash, p.hashKnown
}

// Receipt returns the confirmed receipt, or nil if the handle has not
// resolved successfully. For reverted transactions the receipt is available
// alongside the confirmation error.
func (p *PendingTx) Receipt() *types.Receipt {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.receipt
}

// Err returns the resolution error, or nil before resolution and on success.
func (p *PendingTx) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

func (p *PendingTx) setTxHash(hash common.Hash) {
	p.mu.Lock()
	p.hash = hash
	p.hashKnown = true
	p.mu.Unlock()
}

// complete resolves the handle. Calls after the first are no-ops.
func (p *PendingTx) complete(receipt *types.Receipt, err error) {
	p.once.Do(func() {
		p.mu.Lock()
		p.receipt = receipt
		p.err = err
		p.mu.Unlock()
		close(p.done)
	})
}

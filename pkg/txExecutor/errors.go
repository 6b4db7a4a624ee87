package txExecutor

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Stage identifies the step of the transaction lifecycle that produced a failure.
type Stage string

const (
	// StageConfiguration covers caller errors detected before any network
	// round-trip, such as a signer that does not match the intent's sender.
	StageConfiguration Stage = "configuration"
	// StageEstimateGas covers gas estimation failures.
	StageEstimateGas Stage = "estimate_gas"
	// StageGasPrice covers gas pricing failures.
	StageGasPrice Stage = "gas_price"
	// StageNonce covers nonce lookup failures.
	StageNonce Stage = "nonce"
	// StageSign covers signing failures.
	StageSign Stage = "sign"
	// StageSubmit covers chain-level submission rejections, e.g. insufficient
	// funds, nonce too low, underpriced.
	StageSubmit Stage = "submit"
	// StageConfirm covers confirmation failures: the transaction reverted,
	// was dropped, or the wait was cancelled.
	StageConfirm Stage = "confirm"
)

var (
	// ErrSignerMismatch is returned when the signer's address differs from the
	// intent's From field.
	ErrSignerMismatch = errors.New("signer address does not match intent sender")
	// ErrMissingSender is returned when an intent has no From address.
	ErrMissingSender = errors.New("intent has no sender address")
	// ErrTransactionReverted is returned when a mined transaction has a failed
	// receipt status.
	ErrTransactionReverted = errors.New("transaction reverted")
)

// StageError is the failure type resolved through a PendingTx. It records
// which lifecycle stage failed and, once the transaction has been broadcast,
// the transaction hash so the caller can inspect the transaction manually.
type StageError struct {
	Stage  Stage
	TxHash common.Hash
	Err    error
}

func (e *StageError) Error() string {
	if e.TxHash != (common.Hash{}) {
		return fmt.Sprintf("transaction stage %s failed (tx %s): %v", e.Stage, e.TxHash.Hex(), e.Err)
	}
	return fmt.Sprintf("transaction stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage reports the lifecycle stage an error originated from.
// The second return is false if err does not carry stage information.
func FailedStage(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}

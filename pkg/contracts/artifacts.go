// Package contracts provides typed bindings for the TFC token and TFC
// manager contracts. Contract artifacts (ABI definitions and the manager's
// init bytecode) are embedded in the package; bindings reach the chain
// through the shared chainClient connection and execute writes through the
// transaction executor.
package contracts

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed artifacts/TFCToken.abi.json
var tfcTokenABIJSON []byte

//go:embed artifacts/TFCManager.abi.json
var tfcManagerABIJSON []byte

//go:embed artifacts/TFCManager.bin
var tfcManagerBinHex string

// TFCTokenABI parses and returns the embedded TFC token ABI definition.
func TFCTokenABI() (abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(tfcTokenABIJSON))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse TFCToken ABI: %w", err)
	}
	return parsed, nil
}

// TFCManagerABI parses and returns the embedded TFC manager ABI definition.
func TFCManagerABI() (abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(tfcManagerABIJSON))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse TFCManager ABI: %w", err)
	}
	return parsed, nil
}

// TFCManagerBytecode decodes and returns the embedded TFC manager init bytecode.
func TFCManagerBytecode() ([]byte, error) {
	code, err := hex.DecodeString(strings.TrimSpace(tfcManagerBinHex))
	if err != nil {
		return nil, fmt.Errorf("failed to decode TFCManager bytecode: %w", err)
	}
	return code, nil
}

package sdk

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

var weiPerEther = big.NewInt(params.Ether)

// WeiToEther converts a wei amount to ether exactly. The result is a
// rational, so no precision is lost for amounts that are not whole ether.
func WeiToEther(wei *big.Int) *big.Rat {
	return new(big.Rat).SetFrac(new(big.Int).Set(wei), weiPerEther)
}

// EtherToWei converts an ether amount to wei. Amounts finer than one wei
// cannot exist on-chain; any sub-wei remainder is truncated toward zero.
func EtherToWei(ether *big.Rat) *big.Int {
	wei := new(big.Rat).Mul(ether, new(big.Rat).SetInt(weiPerEther))
	return new(big.Int).Quo(wei.Num(), wei.Denom())
}

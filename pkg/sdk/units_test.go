package sdk

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeiToEther(t *testing.T) {
	assert.Equal(t, "1", WeiToEther(big.NewInt(params.Ether)).RatString())
	assert.Equal(t, "0", WeiToEther(big.NewInt(0)).RatString())
	assert.Equal(t, "3/2", WeiToEther(big.NewInt(params.Ether*3/2)).RatString())
	assert.Equal(t, "1/1000000000000000000", WeiToEther(big.NewInt(1)).RatString())
}

func TestEtherToWei(t *testing.T) {
	one := new(big.Rat).SetInt64(1)
	assert.Equal(t, big.NewInt(params.Ether), EtherToWei(one))

	half := new(big.Rat).SetFrac64(1, 2)
	assert.Equal(t, big.NewInt(params.Ether/2), EtherToWei(half))

	zero := new(big.Rat)
	assert.Zero(t, EtherToWei(zero).Sign())
}

func TestUnitConversion_RoundTripIsExactForWholeEther(t *testing.T) {
	for _, ether := range []int64{0, 1, 7, 1000, 123456789} {
		wei := new(big.Int).Mul(big.NewInt(ether), big.NewInt(params.Ether))
		assert.Equal(t, wei, EtherToWei(WeiToEther(wei)), "ether=%d", ether)
	}
}

func TestUnitConversion_RoundTripIsExactForAnyWei(t *testing.T) {
	// WeiToEther is lossless, so the round trip is exact even for amounts
	// that are not whole ether
	for _, wei := range []int64{1, 999, params.Ether - 1, params.Ether + 1} {
		w := big.NewInt(wei)
		assert.Equal(t, w, EtherToWei(WeiToEther(w)), "wei=%d", wei)
	}
}

func TestEtherToWei_TruncatesSubWeiTowardZero(t *testing.T) {
	// 1/3 ether is not a whole number of wei: 10^18/3 = 333...333 remainder 1
	third := new(big.Rat).SetFrac64(1, 3)
	want, rem := new(big.Int).QuoRem(
		big.NewInt(params.Ether), big.NewInt(3), new(big.Int),
	)
	require.NotZero(t, rem.Sign())
	assert.Equal(t, want, EtherToWei(third))

	// Anything below one wei truncates to zero
	subWei := new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Mul(big.NewInt(2), big.NewInt(params.Ether)))
	assert.Zero(t, EtherToWei(subWei).Sign())
}

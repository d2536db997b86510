package domain

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedPoint18RoundTrip(t *testing.T) {
	cases := map[string]string{
		"2000":     "2000000000000000000000",
		"0.5":      "500000000000000000",
		"1999.99":  "1999990000000000000000",
		"0.000001": "1000000000000",
	}

	for usd, wantE18 := range cases {
		d := decimal.RequireFromString(usd)

		e18 := ToFixedPoint18(d)
		assert.Equal(t, wantE18, e18.String(), "usd %s", usd)

		back := FromFixedPoint18(e18)
		assert.True(t, d.Equal(back), "round trip %s came back as %s", usd, back)
	}
}

func TestFromFixedPoint18(t *testing.T) {
	v, ok := new(big.Int).SetString("1234500000000000000000", 10)
	require.True(t, ok)

	assert.True(t, decimal.RequireFromString("1234.5").Equal(FromFixedPoint18(v)))
}

func TestAssetBucket(t *testing.T) {
	assert.Equal(t, "ETH", AssetBucket(nil))

	addr := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	assert.Equal(t, addr.Hex(), AssetBucket(&addr))
}

func TestSameAsset(t *testing.T) {
	a := common.HexToAddress("0xaa00000000000000000000000000000000000000")
	b := common.HexToAddress("0xbb00000000000000000000000000000000000000")
	a2 := a

	assert.True(t, SameAsset(nil, nil))
	assert.True(t, SameAsset(&a, &a2))
	assert.False(t, SameAsset(&a, &b))
	assert.False(t, SameAsset(nil, &a))
	assert.False(t, SameAsset(&a, nil))
}

func TestPriceUpdateValidate(t *testing.T) {
	valid := PriceUpdate{PriceUSD: decimal.NewFromInt(10), Source: "manual"}
	assert.NoError(t, valid.Validate())

	negative := PriceUpdate{PriceUSD: decimal.NewFromInt(-1), Source: "manual"}
	assert.Error(t, negative.Validate())

	zero := PriceUpdate{PriceUSD: decimal.Zero, Source: "manual"}
	assert.Error(t, zero.Validate())

	noSource := PriceUpdate{PriceUSD: decimal.NewFromInt(10)}
	assert.Error(t, noSource.Validate())
}

func TestNewRecordID(t *testing.T) {
	now := time.Now()

	first := NewRecordID(now)
	second := NewRecordID(now)

	assert.NotEqual(t, first, second)
	assert.Contains(t, first, "-")
}

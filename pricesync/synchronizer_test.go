package pricesync

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sljivkov/foodsync/domain"
	"github.com/sljivkov/foodsync/kvstore"
	"github.com/sljivkov/foodsync/pricehistory"
)

type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) CurrentEthPriceE18(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *mockOracle) CurrentTokenPriceE18(ctx context.Context, token common.Address) (*big.Int, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *mockOracle) SetEthPrice(ctx context.Context, priceE18 *big.Int) error {
	args := m.Called(ctx, priceE18)

	return args.Error(0)
}

func (m *mockOracle) SetTokenPrice(ctx context.Context, token common.Address, priceE18 *big.Int) error {
	args := m.Called(ctx, token, priceE18)

	return args.Error(0)
}

func (m *mockOracle) SignerAddress() common.Address {
	args := m.Called()

	return args.Get(0).(common.Address)
}

type stubFeed struct {
	name  string
	price float64
	err   error
}

func (f stubFeed) Name() string { return f.name }

func (f stubFeed) FetchPrice(context.Context) (float64, error) {
	return f.price, f.err
}

type failingAudit struct{}

func (failingAudit) Append(context.Context, domain.PriceUpdateRecord) error {
	return errors.New("audit backend down")
}

func e18(usd int64) *big.Int {
	return domain.ToFixedPoint18(decimal.NewFromInt(usd))
}

func newHistory() *pricehistory.Store {
	return pricehistory.New(kvstore.NewMemory())
}

func TestFallbackModeFixedAtConstruction(t *testing.T) {
	assert.True(t, New(nil, newHistory(), nil, zap.NewNop()).FallbackMode())
	assert.False(t, New(new(mockOracle), newHistory(), nil, zap.NewNop()).FallbackMode())
}

func TestUpdateAssetPriceFallback(t *testing.T) {
	ctx := context.Background()
	history := newHistory()
	s := New(nil, history, nil, zap.NewNop())

	ok, err := s.UpdateAssetPrice(ctx, nil, decimal.NewFromInt(1950), "manual")
	require.NoError(t, err)
	assert.True(t, ok)

	record, err := history.Latest(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, domain.FallbackUpdatedBy, record.UpdatedBy)
	assert.True(t, record.OldPriceUSD.IsZero())
	assert.True(t, decimal.NewFromInt(1950).Equal(record.NewPriceUSD))
	assert.Equal(t, "manual", record.Source)
}

func TestUpdateAssetPriceRejectsNonPositive(t *testing.T) {
	s := New(nil, newHistory(), nil, zap.NewNop())

	ok, err := s.UpdateAssetPrice(context.Background(), nil, decimal.Zero, "manual")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestUpdateAssetPriceSwallowsAuditFailure(t *testing.T) {
	s := New(nil, failingAudit{}, nil, zap.NewNop())

	ok, err := s.UpdateAssetPrice(context.Background(), nil, decimal.NewFromInt(2100), "manual")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateAssetPriceChainWrite(t *testing.T) {
	ctx := context.Background()
	signer := common.HexToAddress("0x00000000000000000000000000000000000000ee")

	oracle := new(mockOracle)
	oracle.On("CurrentEthPriceE18", mock.Anything).Return(e18(1900), nil)
	oracle.On("SetEthPrice", mock.Anything, e18(2000)).Return(nil)
	oracle.On("SignerAddress").Return(signer)

	history := newHistory()
	s := New(oracle, history, nil, zap.NewNop())

	ok, err := s.UpdateAssetPrice(ctx, nil, decimal.NewFromInt(2000), "coingecko")
	require.NoError(t, err)
	assert.True(t, ok)
	oracle.AssertExpectations(t)

	record, err := history.Latest(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, signer.Hex(), record.UpdatedBy)
	assert.True(t, decimal.NewFromInt(1900).Equal(record.OldPriceUSD))
	assert.True(t, decimal.NewFromInt(2000).Equal(record.NewPriceUSD))
}

func TestUpdateAssetPriceTokenPath(t *testing.T) {
	ctx := context.Background()
	token := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	oracle := new(mockOracle)
	oracle.On("CurrentTokenPriceE18", mock.Anything, token).Return(e18(1), nil)
	oracle.On("SetTokenPrice", mock.Anything, token, e18(2)).Return(nil)
	oracle.On("SignerAddress").Return(common.Address{})

	s := New(oracle, newHistory(), nil, zap.NewNop())

	ok, err := s.UpdateAssetPrice(ctx, &token, decimal.NewFromInt(2), "manual")
	require.NoError(t, err)
	assert.True(t, ok)
	oracle.AssertExpectations(t)
}

func TestUpdateAssetPriceChainFailure(t *testing.T) {
	ctx := context.Background()

	oracle := new(mockOracle)
	oracle.On("CurrentEthPriceE18", mock.Anything).Return(e18(1900), nil)
	oracle.On("SetEthPrice", mock.Anything, mock.Anything).Return(errors.New("tx reverted"))

	history := newHistory()
	s := New(oracle, history, nil, zap.NewNop())

	ok, err := s.UpdateAssetPrice(ctx, nil, decimal.NewFromInt(2000), "manual")
	assert.Error(t, err)
	assert.False(t, ok)

	// Failed writes leave no audit trace.
	record, err := history.Latest(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestBatchUpdatePricesPartialFailure(t *testing.T) {
	ctx := context.Background()
	s := New(nil, newHistory(), nil, zap.NewNop())

	results, summary := s.BatchUpdatePrices(ctx, []domain.PriceUpdate{
		{PriceUSD: decimal.NewFromInt(2000), Source: "manual"},
		{PriceUSD: decimal.NewFromInt(-5), Source: "manual"},
	})

	assert.Equal(t, []bool{true, false}, results)
	assert.Equal(t, domain.BatchResult{Total: 2, Succeeded: 1, Failed: 1}, summary)
}

func TestBatchUpdatePricesEmpty(t *testing.T) {
	s := New(nil, newHistory(), nil, zap.NewNop())

	results, summary := s.BatchUpdatePrices(context.Background(), nil)
	assert.Empty(t, results)
	assert.Equal(t, domain.BatchResult{}, summary)
}

func TestGetCurrentPriceFallbackDefaults(t *testing.T) {
	ctx := context.Background()
	token := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	s := New(nil, newHistory(), nil, zap.NewNop())

	quote, err := s.GetCurrentPrice(ctx, nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2000).Equal(quote.PriceUSD))
	assert.Equal(t, domain.SourceFallback, quote.Source)

	tokenQuote, err := s.GetCurrentPrice(ctx, &token)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(tokenQuote.PriceUSD))
	assert.Equal(t, domain.SourceFallback, tokenQuote.Source)
}

func TestGetCurrentPriceChainRead(t *testing.T) {
	oracle := new(mockOracle)
	oracle.On("CurrentEthPriceE18", mock.Anything).Return(e18(1850), nil)

	s := New(oracle, newHistory(), nil, zap.NewNop())

	quote, err := s.GetCurrentPrice(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1850).Equal(quote.PriceUSD))
	assert.Equal(t, e18(1850), quote.PriceFixedPoint18)
	assert.Equal(t, domain.SourceChain, quote.Source)
}

func TestPollExternalSourcesLastProviderWins(t *testing.T) {
	ctx := context.Background()
	history := newHistory()
	feeds := []domain.ReferenceFeed{
		stubFeed{name: "coingecko", price: 1990},
		stubFeed{name: "diadata", err: errors.New("timeout")},
		stubFeed{name: "backup", price: 2010},
	}
	s := New(nil, history, feeds, zap.NewNop())

	tick := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Second)

		return tick
	}

	s.PollExternalSources(ctx)

	records, err := history.History(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	record, err := history.Latest(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "backup", record.Source)
	assert.True(t, decimal.NewFromInt(2010).Equal(record.NewPriceUSD))
}

func TestCheckHealth(t *testing.T) {
	ctx := context.Background()

	assert.True(t, New(nil, newHistory(), nil, zap.NewNop()).CheckHealth(ctx))

	oracle := new(mockOracle)
	oracle.On("CurrentEthPriceE18", mock.Anything).Return(nil, errors.New("rpc unreachable"))
	assert.False(t, New(oracle, newHistory(), nil, zap.NewNop()).CheckHealth(ctx))
}

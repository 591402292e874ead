package reactor_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
	"github.com/calperin/fuelcycle-go/internal/domain/reactor"
)

func productRequest(qty int64) *exchange.Request {
	return exchange.NewRequest("consumer", "spent_fuel", "spent_uox", decimal.NewFromInt(qty))
}

// Storage 15 against a request for 20: the bid is capped at 15, as is the
// portfolio constraint.
func TestBids_CappedByStorage(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{Storage: 2})
	// draw storage down to a partial 15
	_, err := f.FillTrades(context.Background(), []*exchange.Trade{
		exchange.NewTrade("spent_fuel", "spent_uox", decimal.NewFromInt(5)),
	})
	require.NoError(t, err)

	portfolio := f.Bids([]*exchange.Request{productRequest(20)})

	require.NotNil(t, portfolio)
	require.Len(t, portfolio.Bids, 1)
	assert.True(t, portfolio.Bids[0].Offer.Quantity().Equal(decimal.NewFromInt(15)))
	assert.False(t, portfolio.Bids[0].Offer.IsTracked(), "offers are proposals, not inventory")
	assert.True(t, portfolio.Constraint.Equal(decimal.NewFromInt(15)))
}

func TestBids_SmallRequestOfferedInFull(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{Storage: 2})

	portfolio := f.Bids([]*exchange.Request{productRequest(8)})

	require.NotNil(t, portfolio)
	assert.True(t, portfolio.Bids[0].Offer.Quantity().Equal(decimal.NewFromInt(8)))
	assert.True(t, portfolio.Constraint.Equal(decimal.NewFromInt(20)))
}

func TestBids_OneBidPerRequest(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{Storage: 2})

	portfolio := f.Bids([]*exchange.Request{productRequest(8), productRequest(30)})

	require.NotNil(t, portfolio)
	require.Len(t, portfolio.Bids, 2)
	assert.True(t, portfolio.Bids[0].Offer.Quantity().Equal(decimal.NewFromInt(8)))
	assert.True(t, portfolio.Bids[1].Offer.Quantity().Equal(decimal.NewFromInt(20)))
}

// Bidding reserves nothing: storage is untouched until settlement.
func TestBids_DoNotReserveStorage(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{Storage: 1})

	_ = f.Bids([]*exchange.Request{productRequest(10)})

	assert.True(t, f.StorageQuantity().Equal(decimal.NewFromInt(10)))
}

func TestBids_EmptyStorage_NoBid(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{})

	assert.Nil(t, f.Bids([]*exchange.Request{productRequest(10)}))
}

func TestBids_NoMatchingCommodity_NoBid(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{Storage: 1})
	fuelRequest := exchange.NewRequest("other", "enriched_u", "uox", decimal.NewFromInt(10))

	assert.Nil(t, f.Bids([]*exchange.Request{fuelRequest}))
}

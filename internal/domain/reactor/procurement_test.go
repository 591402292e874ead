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

// INITIAL with zero look-ahead: the order covers a full core plus the
// standing reserve target. 3x10 (core) + 1x10 (reserve) = 40.
func TestRequests_InitialZeroLookahead(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{})

	portfolio := f.Requests(0)

	require.NotNil(t, portfolio)
	require.Len(t, portfolio.Requests, 1)
	req := portfolio.Requests[0]
	assert.True(t, req.Quantity.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "enriched_u", req.Commodity)
	assert.Equal(t, "uox", req.Recipe)
	assert.True(t, portfolio.Constraint.Equal(decimal.NewFromInt(40)))
}

// With a non-zero look-ahead the initial order covers only the core.
func TestRequests_InitialWithLookahead_CoreOnly(t *testing.T) {
	params := testParams()
	params.PreorderTime = 2
	f := newTestFacility(t, params, reactor.InitCond{})

	portfolio := f.Requests(0)

	require.NotNil(t, portfolio)
	assert.True(t, portfolio.Requests[0].Quantity.Equal(decimal.NewFromInt(30)))
}

func TestRequests_InitialSubtractsHoldings(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{Reserves: 1, Core: 1})

	portfolio := f.Requests(0)

	// 30 (core) - 10 (core held) - 10 (reserves) + 10 (standing) = 20
	require.NotNil(t, portfolio)
	assert.True(t, portfolio.Requests[0].Quantity.Equal(decimal.NewFromInt(20)))
}

func TestRequests_InitialFullyStocked_NoRequest(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{Reserves: 1, Core: 3})

	assert.Nil(t, f.Requests(0))
}

func TestRequests_ProcessPhase_GatedByOrderTime(t *testing.T) {
	params := testParams()
	params.PreorderTime = 2
	f := newTestFacility(t, params, reactor.InitCond{Core: 3})
	ctx := context.Background()
	require.NoError(t, f.Tick(ctx, 0)) // PROCESS, end=5, order time=3

	assert.Nil(t, f.Requests(1), "before the order window")
	assert.Nil(t, f.Requests(2), "before the order window")

	portfolio := f.Requests(3)
	require.NotNil(t, portfolio)
	assert.True(t, portfolio.Requests[0].Quantity.Equal(decimal.NewFromInt(10)))
}

func TestRequests_ProcessPhase_TargetsStandingReserves(t *testing.T) {
	params := testParams()
	params.NReserves = 2
	f := newTestFacility(t, params, reactor.InitCond{Core: 3})
	ctx := context.Background()
	require.NoError(t, f.Tick(ctx, 0)) // PROCESS, end=5, order time=5

	portfolio := f.Requests(5)

	require.NotNil(t, portfolio)
	assert.True(t, portfolio.Requests[0].Quantity.Equal(decimal.NewFromInt(20)))
}

func TestRequests_ReservesAlreadyMet_NoRequest(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{Reserves: 1, Core: 3})
	ctx := context.Background()
	require.NoError(t, f.Tick(ctx, 0))

	assert.Nil(t, f.Requests(5))
}

// Spillover counts toward the reserve target, so a fractional remainder
// shrinks the next order.
func TestRequests_SpilloverReducesOrder(t *testing.T) {
	f := newTestFacility(t, testParams(), reactor.InitCond{Core: 3})
	ctx := context.Background()
	require.NoError(t, f.Tick(ctx, 0))

	// deliver 4: below batch size, all of it lands in spillover
	trade := exchange.NewTrade("enriched_u", "uox", decimal.NewFromInt(4))
	mat := newDeliveryMaterial(t, 4)
	require.NoError(t, f.AcceptDeliveries(ctx, []*exchange.Delivery{{Trade: trade, Material: mat}}))

	portfolio := f.Requests(5)
	require.NotNil(t, portfolio)
	assert.True(t, portfolio.Requests[0].Quantity.Equal(decimal.NewFromInt(6)))
}

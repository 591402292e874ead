package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calperin/fuelcycle-go/internal/adapters/persistence"
	"github.com/calperin/fuelcycle-go/internal/application/simulation"
	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
	"github.com/calperin/fuelcycle-go/test/helpers"
)

func TestRecordTrade_AndGetTrades(t *testing.T) {
	db := helpers.NewTestDB(t)
	ledger := persistence.NewGormTradeLedger(db)
	ctx := context.Background()

	require.NoError(t, ledger.RecordTrade(ctx, 0, "unit-1", simulation.DirectionIncoming, "enriched_u", decimal.NewFromInt(40)))
	require.NoError(t, ledger.RecordTrade(ctx, 5, "unit-1", simulation.DirectionOutgoing, "spent_fuel", decimal.NewFromInt(10)))
	require.NoError(t, ledger.RecordTrade(ctx, 1, "other", simulation.DirectionIncoming, "enriched_u", decimal.NewFromInt(99)))

	records, err := ledger.GetTrades(ctx, "unit-1")

	require.NoError(t, err)
	require.Len(t, records, 2, "only the requested trader's trades")
	assert.Equal(t, 0, records[0].Step)
	assert.Equal(t, simulation.DirectionIncoming, records[0].Direction)
	assert.True(t, records[0].Quantity.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 5, records[1].Step)
	assert.Equal(t, "spent_fuel", records[1].Commodity)
}

func TestRecordTrade_PreservesFractionalQuantities(t *testing.T) {
	db := helpers.NewTestDB(t)
	ledger := persistence.NewGormTradeLedger(db)
	ctx := context.Background()

	qty := decimal.RequireFromString("3.333333333333")
	require.NoError(t, ledger.RecordTrade(ctx, 0, "unit-1", simulation.DirectionIncoming, "enriched_u", qty))

	records, err := ledger.GetTrades(ctx, "unit-1")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Quantity.Equal(qty), "decimal round-trips exactly")
}

func TestTradedTotal_SumsOneDirection(t *testing.T) {
	db := helpers.NewTestDB(t)
	ledger := persistence.NewGormTradeLedger(db)
	ctx := context.Background()

	require.NoError(t, ledger.RecordTrade(ctx, 0, "unit-1", simulation.DirectionIncoming, "enriched_u", decimal.NewFromInt(30)))
	require.NoError(t, ledger.RecordTrade(ctx, 1, "unit-1", simulation.DirectionIncoming, "enriched_u", decimal.NewFromInt(10)))
	require.NoError(t, ledger.RecordTrade(ctx, 5, "unit-1", simulation.DirectionOutgoing, "spent_fuel", decimal.NewFromInt(10)))

	incoming, err := ledger.TradedTotal(ctx, "unit-1", simulation.DirectionIncoming)
	require.NoError(t, err)
	assert.True(t, incoming.Equal(decimal.NewFromInt(40)))

	outgoing, err := ledger.TradedTotal(ctx, "unit-1", simulation.DirectionOutgoing)
	require.NoError(t, err)
	assert.True(t, outgoing.Equal(decimal.NewFromInt(10)))
}

func TestRecordSnapshot_AndGetSnapshots(t *testing.T) {
	db := helpers.NewTestDB(t)
	ledger := persistence.NewGormTradeLedger(db)
	ctx := context.Background()

	report := exchange.InventoryReport{
		Phase:     "PROCESS",
		Reserves:  decimal.NewFromInt(10),
		Core:      decimal.NewFromInt(30),
		Storage:   decimal.Zero,
		Spillover: decimal.RequireFromString("2.5"),
	}
	require.NoError(t, ledger.RecordSnapshot(ctx, 3, "unit-1", report))

	snapshots, err := ledger.GetSnapshots(ctx, "unit-1")

	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	snap := snapshots[0]
	assert.Equal(t, 3, snap.Step)
	assert.Equal(t, "PROCESS", snap.Phase)
	assert.True(t, snap.Reserves.Equal(decimal.NewFromInt(10)))
	assert.True(t, snap.Core.Equal(decimal.NewFromInt(30)))
	assert.True(t, snap.Storage.IsZero())
	assert.True(t, snap.Spillover.Equal(decimal.RequireFromString("2.5")))
}

func TestGetSnapshots_OrderedByStep(t *testing.T) {
	db := helpers.NewTestDB(t)
	ledger := persistence.NewGormTradeLedger(db)
	ctx := context.Background()

	empty := exchange.InventoryReport{
		Reserves: decimal.Zero, Core: decimal.Zero, Storage: decimal.Zero, Spillover: decimal.Zero,
	}
	for _, step := range []int{2, 0, 1} {
		require.NoError(t, ledger.RecordSnapshot(ctx, step, "unit-1", empty))
	}

	snapshots, err := ledger.GetSnapshots(ctx, "unit-1")

	require.NoError(t, err)
	require.Len(t, snapshots, 3)
	for i, snap := range snapshots {
		assert.Equal(t, i, snap.Step)
	}
}

func TestGetTrades_UnknownTrader_Empty(t *testing.T) {
	db := helpers.NewTestDB(t)
	ledger := persistence.NewGormTradeLedger(db)

	records, err := ledger.GetTrades(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Empty(t, records)
}

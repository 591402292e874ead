package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calperin/fuelcycle-go/internal/adapters/metrics"
	"github.com/calperin/fuelcycle-go/internal/application/simulation"
	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
)

// the collector must satisfy the runner's observer port
var _ simulation.Observer = (*metrics.SimulationCollector)(nil)

func TestObserveTrade_AccumulatesQuantity(t *testing.T) {
	c := metrics.NewSimulationCollector()

	c.ObserveTrade(0, "unit-1", simulation.DirectionIncoming, "enriched_u", decimal.NewFromInt(30))
	c.ObserveTrade(1, "unit-1", simulation.DirectionIncoming, "enriched_u", decimal.NewFromInt(10))
	c.ObserveStep(0)
	c.ObserveStep(1)

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	found := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() != nil {
				found[mf.GetName()] += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, float64(2), found["fuelcycle_simulation_steps_total"])
	assert.Equal(t, float64(2), found["fuelcycle_simulation_trades_settled_total"])
	assert.Equal(t, float64(40), found["fuelcycle_simulation_traded_quantity_total"])
}

func TestObserveSnapshot_TracksInventoryAndPhase(t *testing.T) {
	c := metrics.NewSimulationCollector()

	c.ObserveSnapshot(0, "unit-1", exchange.InventoryReport{
		Phase:     "INITIAL",
		Reserves:  decimal.NewFromInt(10),
		Core:      decimal.NewFromInt(30),
		Storage:   decimal.Zero,
		Spillover: decimal.Zero,
	})
	c.ObserveSnapshot(1, "unit-1", exchange.InventoryReport{
		Phase:     "PROCESS",
		Reserves:  decimal.NewFromInt(10),
		Core:      decimal.NewFromInt(30),
		Storage:   decimal.Zero,
		Spillover: decimal.Zero,
	})

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	var phaseSeries int
	for _, mf := range families {
		if mf.GetName() != "fuelcycle_simulation_facility_phase" {
			continue
		}
		phaseSeries = len(mf.GetMetric())
	}
	assert.Equal(t, 1, phaseSeries, "only the current phase series survives")

	gathered, err := testutil.GatherAndCount(c.Registry(), "fuelcycle_simulation_inventory_quantity")
	require.NoError(t, err)
	assert.Equal(t, 4, gathered, "one series per buffer")
}

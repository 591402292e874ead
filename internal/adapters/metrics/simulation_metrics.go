package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
)

const (
	// Namespace for all metrics
	namespace = "fuelcycle"
	// Subsystem for simulation metrics
	subsystem = "simulation"
)

// SimulationCollector exposes simulation progress and facility inventory as
// Prometheus metrics. It implements the runner's Observer port.
type SimulationCollector struct {
	registry *prometheus.Registry

	stepsTotal prometheus.Counter

	tradesTotal    *prometheus.CounterVec
	tradedQuantity *prometheus.CounterVec

	inventoryQuantity *prometheus.GaugeVec
	phaseInfo         *prometheus.GaugeVec
}

// NewSimulationCollector creates a collector with its own registry
func NewSimulationCollector() *SimulationCollector {
	c := &SimulationCollector{
		registry: prometheus.NewRegistry(),

		stepsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "steps_total",
				Help:      "Total number of completed simulation steps",
			},
		),

		// Settled trade count by trader, direction and commodity
		tradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trades_settled_total",
				Help:      "Total number of settled trades",
			},
			[]string{"trader", "direction", "commodity"},
		),

		// Settled quantity by trader, direction and commodity
		tradedQuantity: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "traded_quantity_total",
				Help:      "Total settled material quantity",
			},
			[]string{"trader", "direction", "commodity"},
		),

		// End-of-step inventory levels per buffer
		inventoryQuantity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "inventory_quantity",
				Help:      "End-of-step material quantity held per buffer",
			},
			[]string{"trader", "buffer"},
		),

		// Current operating phase, 1 for the active phase
		phaseInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "facility_phase",
				Help:      "Current operating phase of each facility (1 = active)",
			},
			[]string{"trader", "phase"},
		),
	}

	c.registry.MustRegister(
		c.stepsTotal,
		c.tradesTotal,
		c.tradedQuantity,
		c.inventoryQuantity,
		c.phaseInfo,
	)
	return c
}

// Registry returns the registry backing this collector, for the HTTP exporter
func (c *SimulationCollector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveStep records one completed simulation step
func (c *SimulationCollector) ObserveStep(step int) {
	c.stepsTotal.Inc()
}

// ObserveTrade records one settled trade
func (c *SimulationCollector) ObserveTrade(step int, trader, direction, commodity string, quantity decimal.Decimal) {
	c.tradesTotal.WithLabelValues(trader, direction, commodity).Inc()
	c.tradedQuantity.WithLabelValues(trader, direction, commodity).Add(quantity.InexactFloat64())
}

// ObserveSnapshot records a trader's end-of-step inventory levels and phase
func (c *SimulationCollector) ObserveSnapshot(step int, trader string, report exchange.InventoryReport) {
	c.inventoryQuantity.WithLabelValues(trader, "reserves").Set(report.Reserves.InexactFloat64())
	c.inventoryQuantity.WithLabelValues(trader, "core").Set(report.Core.InexactFloat64())
	c.inventoryQuantity.WithLabelValues(trader, "storage").Set(report.Storage.InexactFloat64())
	c.inventoryQuantity.WithLabelValues(trader, "spillover").Set(report.Spillover.InexactFloat64())

	// one active phase series per trader
	c.phaseInfo.DeletePartialMatch(prometheus.Labels{"trader": trader})
	c.phaseInfo.WithLabelValues(trader, report.Phase).Set(1)
}

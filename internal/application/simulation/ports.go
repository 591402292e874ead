package simulation

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
)

// ClearingResult is what the market hands back after matching a step's
// requests and bids: fuel deliveries destined to each trader, and product
// trades awarded against each trader's bids.
type ClearingResult struct {
	Deliveries map[string][]*exchange.Delivery
	Awards     map[string][]*exchange.Trade
}

// Market is the external clearing mechanism. The runner collects portfolios
// from all traders and hands them over in one call; the matching algorithm
// itself is outside this module.
type Market interface {
	// ExogenousRequests returns demand originating outside the registered
	// traders, merged into the request set before bids are collected
	ExogenousRequests(step int) []*exchange.Request

	Clear(
		ctx context.Context,
		step int,
		requests map[string]*exchange.RequestPortfolio,
		bids map[string]*exchange.BidPortfolio,
	) (*ClearingResult, error)
}

// Ledger records settled trades and per-step inventory snapshots for
// diagnostics. Implementations must tolerate being nil-checked away: the
// runner works without one.
type Ledger interface {
	RecordTrade(ctx context.Context, step int, trader, direction, commodity string, quantity decimal.Decimal) error
	RecordSnapshot(ctx context.Context, step int, trader string, report exchange.InventoryReport) error
}

// Observer receives step events for live instrumentation. Unlike the ledger
// it never fails; implementations swallow their own errors.
type Observer interface {
	ObserveStep(step int)
	ObserveTrade(step int, trader, direction, commodity string, quantity decimal.Decimal)
	ObserveSnapshot(step int, trader string, report exchange.InventoryReport)
}

// Trade directions recorded in the ledger
const (
	DirectionIncoming = "INCOMING"
	DirectionOutgoing = "OUTGOING"
)

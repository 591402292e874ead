package exchange

import "context"

// Trader is the narrow interface the simulation scheduler drives once per
// step. The call order within a step is fixed: Tick on every trader, then
// Requests, then Bids, then the market clears, then AcceptDeliveries and
// FillTrades, then Tock. Violating this order breaks trader-side accounting.
type Trader interface {
	// Tick advances the trader's internal state at simulated time t
	Tick(ctx context.Context, t int) error

	// Tock runs the trader's end-of-step actions at simulated time t
	Tock(ctx context.Context, t int) error

	// Requests returns the trader's procurement portfolio for this step,
	// or nil if it requests nothing
	Requests(t int) *RequestPortfolio

	// Bids returns the trader's supply portfolio given all requests
	// collected this step, or nil if it offers nothing
	Bids(requests []*Request) *BidPortfolio

	// AcceptDeliveries settles awarded incoming trades
	AcceptDeliveries(ctx context.Context, deliveries []*Delivery) error

	// FillTrades produces exactly one delivery per awarded outgoing trade,
	// matching each traded quantity exactly
	FillTrades(ctx context.Context, trades []*Trade) ([]*Delivery, error)
}

// Reporter is implemented by traders that expose inventory diagnostics
type Reporter interface {
	Report() InventoryReport
}

package simulation

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/time/rate"

	"github.com/calperin/fuelcycle-go/internal/application/common"
	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
	"github.com/calperin/fuelcycle-go/internal/domain/shared"
)

// Runner drives registered traders through discrete simulation steps,
// enforcing the per-step ordering the trade protocol requires:
//
//	1. every trader ticks
//	2. requests are collected from every trader
//	3. bids are collected from every trader, given all requests
//	4. the market clears
//	5. incoming then outgoing settlement runs for every trader
//	6. every trader tocks
//
// Everything is synchronous and single-threaded; a step runs to completion or
// fails with the first error.
type Runner struct {
	traders  map[string]exchange.Trader
	order    []string
	market   Market
	ledger   Ledger
	observer Observer
	clock    *shared.StepClock
	limiter  *rate.Limiter
}

// NewRunner creates a runner around a market. The ledger is optional.
func NewRunner(market Market, ledger Ledger) (*Runner, error) {
	if market == nil {
		return nil, fmt.Errorf("market is required")
	}
	return &Runner{
		traders: make(map[string]exchange.Trader),
		market:  market,
		ledger:  ledger,
		clock:   shared.NewStepClock(),
	}, nil
}

// SetPacing limits wall-clock step rate (steps per second). Zero disables
// pacing.
func (r *Runner) SetPacing(stepsPerSecond float64) {
	if stepsPerSecond <= 0 {
		r.limiter = nil
		return
	}
	r.limiter = rate.NewLimiter(rate.Limit(stepsPerSecond), 1)
}

// SetObserver attaches a step observer, nil detaches it
func (r *Runner) SetObserver(observer Observer) {
	r.observer = observer
}

// Register adds a trader under a unique id. Traders are stepped in
// registration-id order to keep runs deterministic.
func (r *Runner) Register(id string, trader exchange.Trader) error {
	if id == "" {
		return fmt.Errorf("trader id cannot be empty")
	}
	if trader == nil {
		return fmt.Errorf("trader cannot be nil")
	}
	if _, exists := r.traders[id]; exists {
		return fmt.Errorf("trader %s already registered", id)
	}
	r.traders[id] = trader
	r.order = append(r.order, id)
	sort.Strings(r.order)
	return nil
}

// Time returns the current simulated step
func (r *Runner) Time() int {
	return r.clock.Time()
}

// Run executes the given number of steps
func (r *Runner) Run(ctx context.Context, steps int) error {
	for i := 0; i < steps; i++ {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		if err := r.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Step executes one full simulation step at the clock's current time, then
// advances the clock.
func (r *Runner) Step(ctx context.Context) error {
	t := r.clock.Time()
	logger := common.LoggerFromContext(ctx)
	logger.Log("DEBUG", "simulation step starting", map[string]interface{}{"step": t})

	// 1. tick phase
	for _, id := range r.order {
		if err := r.traders[id].Tick(ctx, t); err != nil {
			return fmt.Errorf("step %d: tick %s: %w", t, id, err)
		}
	}

	// 2. collect requests
	requests := make(map[string]*exchange.RequestPortfolio)
	var allRequests []*exchange.Request
	for _, id := range r.order {
		if p := r.traders[id].Requests(t); p != nil {
			requests[id] = p
			allRequests = append(allRequests, p.Requests...)
		}
	}

	// 3. collect bids against the full request set, external demand included
	allRequests = append(allRequests, r.market.ExogenousRequests(t)...)
	bids := make(map[string]*exchange.BidPortfolio)
	for _, id := range r.order {
		if p := r.traders[id].Bids(allRequests); p != nil {
			bids[id] = p
		}
	}

	// 4. market clears
	result, err := r.market.Clear(ctx, t, requests, bids)
	if err != nil {
		return fmt.Errorf("step %d: market clearing: %w", t, err)
	}
	if result == nil {
		result = &ClearingResult{}
	}

	// 5. settlement, incoming before outgoing
	for _, id := range r.order {
		deliveries := result.Deliveries[id]
		if len(deliveries) == 0 {
			continue
		}
		if err := r.traders[id].AcceptDeliveries(ctx, deliveries); err != nil {
			return fmt.Errorf("step %d: incoming settlement %s: %w", t, id, err)
		}
		if err := r.recordDeliveries(ctx, t, id, DirectionIncoming, deliveries); err != nil {
			return err
		}
	}
	for _, id := range r.order {
		awards := result.Awards[id]
		if len(awards) == 0 {
			continue
		}
		deliveries, err := r.traders[id].FillTrades(ctx, awards)
		if err != nil {
			return fmt.Errorf("step %d: outgoing settlement %s: %w", t, id, err)
		}
		if err := r.recordDeliveries(ctx, t, id, DirectionOutgoing, deliveries); err != nil {
			return err
		}
	}

	// 6. tock phase
	for _, id := range r.order {
		if err := r.traders[id].Tock(ctx, t); err != nil {
			return fmt.Errorf("step %d: tock %s: %w", t, id, err)
		}
	}

	if r.ledger != nil || r.observer != nil {
		for _, id := range r.order {
			reporter, ok := r.traders[id].(exchange.Reporter)
			if !ok {
				continue
			}
			report := reporter.Report()
			if r.observer != nil {
				r.observer.ObserveSnapshot(t, id, report)
			}
			if r.ledger == nil {
				continue
			}
			if err := r.ledger.RecordSnapshot(ctx, t, id, report); err != nil {
				return fmt.Errorf("step %d: snapshot %s: %w", t, id, err)
			}
		}
	}
	if r.observer != nil {
		r.observer.ObserveStep(t)
	}

	r.clock.Advance()
	return nil
}

func (r *Runner) recordDeliveries(ctx context.Context, t int, id, direction string, deliveries []*exchange.Delivery) error {
	for _, d := range deliveries {
		if r.observer != nil {
			r.observer.ObserveTrade(t, id, direction, d.Trade.Commodity, d.Trade.Quantity)
		}
		if r.ledger == nil {
			continue
		}
		err := r.ledger.RecordTrade(ctx, t, id, direction, d.Trade.Commodity, d.Trade.Quantity)
		if err != nil {
			return fmt.Errorf("step %d: ledger %s: %w", t, id, err)
		}
	}
	return nil
}

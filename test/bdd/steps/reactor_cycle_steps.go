package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
	"github.com/calperin/fuelcycle-go/internal/domain/material"
	"github.com/calperin/fuelcycle-go/internal/domain/reactor"
)

type reactorContext struct {
	params   reactor.Params
	initCond reactor.InitCond
	facility *reactor.Facility

	requests   *exchange.RequestPortfolio
	bids       *exchange.BidPortfolio
	deliveries []*exchange.Delivery
	err        error
}

func (rc *reactorContext) reset() {
	rc.params = reactor.Params{}
	rc.initCond = reactor.InitCond{}
	rc.facility = nil
	rc.requests = nil
	rc.bids = nil
	rc.deliveries = nil
	rc.err = nil
}

func (rc *reactorContext) registry() (*material.Registry, error) {
	reg := material.NewRegistry()
	if err := reg.Register(rc.params.InRecipe, material.Composition{}); err != nil {
		return nil, err
	}
	if err := reg.Register(rc.params.OutRecipe, material.Composition{}); err != nil {
		return nil, err
	}
	return reg, nil
}

// ensureDeployed builds the facility from the accumulated givens on the first
// action or assertion that needs it.
func (rc *reactorContext) ensureDeployed() error {
	if rc.facility != nil {
		return nil
	}
	reg, err := rc.registry()
	if err != nil {
		return err
	}
	facility, err := reactor.NewFacility("bdd-reactor", rc.params, reg)
	if err != nil {
		return err
	}
	if err := facility.Deploy(rc.initCond); err != nil {
		return err
	}
	rc.facility = facility
	return nil
}

// Given steps

func (rc *reactorContext) aReactorWithReloadBatches(processTime, nBatches, batchSize, nLoad int) error {
	rc.reset()
	rc.params = reactor.Params{
		ProcessTime:  processTime,
		NBatches:     nBatches,
		NLoad:        nLoad,
		NReserves:    1,
		BatchSize:    decimal.NewFromInt(int64(batchSize)),
		InCommodity:  "enriched_u",
		InRecipe:     "uox",
		OutCommodity: "spent_fuel",
		OutRecipe:    "spent_uox",
	}
	return nil
}

func (rc *reactorContext) aReactorWithRefuelTime(processTime, nBatches, batchSize, refuelTime int) error {
	if err := rc.aReactorWithReloadBatches(processTime, nBatches, batchSize, 1); err != nil {
		return err
	}
	rc.params.RefuelTime = refuelTime
	return nil
}

func (rc *reactorContext) theCoreIsPreloadedWithBatches(n int) error {
	rc.initCond.Core = n
	return nil
}

func (rc *reactorContext) theReservesHoldBatches(n int) error {
	rc.initCond.Reserves = n
	return nil
}

func (rc *reactorContext) theStorageHoldsBatches(n int) error {
	rc.initCond.Storage = n
	return nil
}

// When steps

func (rc *reactorContext) theReactorTicksAtStep(t int) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	return rc.facility.Tick(context.Background(), t)
}

func (rc *reactorContext) theReactorTocksAtStep(t int) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	return rc.facility.Tock(context.Background(), t)
}

func (rc *reactorContext) theReactorComputesItsFuelRequestAtStep(t int) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	rc.requests = rc.facility.Requests(t)
	return nil
}

func (rc *reactorContext) theReactorAcceptsAFuelDeliveryOf(qty int) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	mat, err := material.New(decimal.NewFromInt(int64(qty)), rc.params.InRecipe)
	if err != nil {
		return err
	}
	delivery := &exchange.Delivery{
		Trade:    exchange.NewTrade(rc.params.InCommodity, rc.params.InRecipe, mat.Quantity()),
		Material: mat,
	}
	return rc.facility.AcceptDeliveries(context.Background(), []*exchange.Delivery{delivery})
}

func (rc *reactorContext) theReactorBidsOnAProductRequestFor(qty int) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	req := exchange.NewRequest("consumer", rc.params.OutCommodity, rc.params.OutRecipe, decimal.NewFromInt(int64(qty)))
	rc.bids = rc.facility.Bids([]*exchange.Request{req})
	return nil
}

func (rc *reactorContext) theReactorFillsAProductTradeFor(qty int) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	trade := exchange.NewTrade(rc.params.OutCommodity, rc.params.OutRecipe, decimal.NewFromInt(int64(qty)))
	rc.deliveries, rc.err = rc.facility.FillTrades(context.Background(), []*exchange.Trade{trade})
	return rc.err
}

// Then steps

func (rc *reactorContext) theReactorPhaseShouldBe(expected string) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	if string(rc.facility.Phase()) != expected {
		return fmt.Errorf("expected phase %s, got %s", expected, rc.facility.Phase())
	}
	return nil
}

func (rc *reactorContext) thePhaseShouldDisplayAs(expected string) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	if rc.facility.Phase().String() != expected {
		return fmt.Errorf("expected phase display %q, got %q", expected, rc.facility.Phase().String())
	}
	return nil
}

func (rc *reactorContext) theCoreShouldHoldBatches(n int) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	if rc.facility.CoreCount() != n {
		return fmt.Errorf("expected %d core batches, got %d", n, rc.facility.CoreCount())
	}
	return nil
}

func (rc *reactorContext) theReservesShouldHoldBatches(n int) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	if rc.facility.ReserveCount() != n {
		return fmt.Errorf("expected %d reserve batches, got %d", n, rc.facility.ReserveCount())
	}
	return nil
}

func (rc *reactorContext) theStorageQuantityShouldBe(qty int) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	expected := decimal.NewFromInt(int64(qty))
	if !rc.facility.StorageQuantity().Equal(expected) {
		return fmt.Errorf("expected storage quantity %s, got %s", expected, rc.facility.StorageQuantity())
	}
	return nil
}

func (rc *reactorContext) theStorageRecipeShouldBe(expected string) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	// draw one batch out and inspect it
	trade := exchange.NewTrade(rc.params.OutCommodity, rc.params.OutRecipe, rc.params.BatchSize)
	deliveries, err := rc.facility.FillTrades(context.Background(), []*exchange.Trade{trade})
	if err != nil {
		return err
	}
	if got := deliveries[0].Material.Recipe(); got != expected {
		return fmt.Errorf("expected storage recipe %q, got %q", expected, got)
	}
	return nil
}

func (rc *reactorContext) theSpilloverQuantityShouldBe(qty int) error {
	if err := rc.ensureDeployed(); err != nil {
		return err
	}
	expected := decimal.NewFromInt(int64(qty))
	if !rc.facility.SpilloverQuantity().Equal(expected) {
		return fmt.Errorf("expected spillover quantity %s, got %s", expected, rc.facility.SpilloverQuantity())
	}
	return nil
}

func (rc *reactorContext) theRequestedQuantityShouldBe(qty int) error {
	if rc.requests == nil {
		return fmt.Errorf("no fuel request was made")
	}
	if len(rc.requests.Requests) != 1 {
		return fmt.Errorf("expected one request, got %d", len(rc.requests.Requests))
	}
	expected := decimal.NewFromInt(int64(qty))
	got := rc.requests.Requests[0].Quantity
	if !got.Equal(expected) {
		return fmt.Errorf("expected requested quantity %s, got %s", expected, got)
	}
	return nil
}

func (rc *reactorContext) noFuelShouldBeRequested() error {
	if rc.requests != nil {
		return fmt.Errorf("expected no fuel request, got one for %s", rc.requests.Requests[0].Quantity)
	}
	return nil
}

func (rc *reactorContext) theOfferedQuantityShouldBe(qty int) error {
	if rc.bids == nil {
		return fmt.Errorf("no product was offered")
	}
	if len(rc.bids.Bids) != 1 {
		return fmt.Errorf("expected one bid, got %d", len(rc.bids.Bids))
	}
	expected := decimal.NewFromInt(int64(qty))
	got := rc.bids.Bids[0].Offer.Quantity()
	if !got.Equal(expected) {
		return fmt.Errorf("expected offered quantity %s, got %s", expected, got)
	}
	return nil
}

func (rc *reactorContext) noProductShouldBeOffered() error {
	if rc.bids != nil {
		return fmt.Errorf("expected no bid, got %d", len(rc.bids.Bids))
	}
	return nil
}

func (rc *reactorContext) theDeliveredQuantityShouldBe(qty int) error {
	if len(rc.deliveries) != 1 {
		return fmt.Errorf("expected one delivery, got %d", len(rc.deliveries))
	}
	expected := decimal.NewFromInt(int64(qty))
	got := rc.deliveries[0].Material.Quantity()
	if !got.Equal(expected) {
		return fmt.Errorf("expected delivered quantity %s, got %s", expected, got)
	}
	return nil
}

func InitializeReactorCycleScenario(ctx *godog.ScenarioContext) {
	rc := &reactorContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		rc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a reactor with process time (\d+), (\d+) batches of size (\d+), and (\d+) reload batch(?:es)?$`, rc.aReactorWithReloadBatches)
	ctx.Step(`^a reactor with process time (\d+), (\d+) batches of size (\d+), and refuel time (\d+)$`, rc.aReactorWithRefuelTime)
	ctx.Step(`^the core is pre-loaded with (\d+) batches$`, rc.theCoreIsPreloadedWithBatches)
	ctx.Step(`^the reserves hold (\d+) batch(?:es)?$`, rc.theReservesHoldBatches)
	ctx.Step(`^the storage holds (\d+) batch(?:es)?$`, rc.theStorageHoldsBatches)

	// When steps
	ctx.Step(`^the reactor ticks at step (\d+)$`, rc.theReactorTicksAtStep)
	ctx.Step(`^the reactor tocks at step (\d+)$`, rc.theReactorTocksAtStep)
	ctx.Step(`^the reactor computes its fuel request at step (\d+)$`, rc.theReactorComputesItsFuelRequestAtStep)
	ctx.Step(`^the reactor accepts a fuel delivery of (\d+)$`, rc.theReactorAcceptsAFuelDeliveryOf)
	ctx.Step(`^the reactor bids on a product request for (\d+)$`, rc.theReactorBidsOnAProductRequestFor)
	ctx.Step(`^the reactor fills a product trade for (\d+)$`, rc.theReactorFillsAProductTradeFor)

	// Then steps
	ctx.Step(`^the reactor phase should be "([^"]*)"$`, rc.theReactorPhaseShouldBe)
	ctx.Step(`^the phase should display as "([^"]*)"$`, rc.thePhaseShouldDisplayAs)
	ctx.Step(`^the core should hold (\d+) batches$`, rc.theCoreShouldHoldBatches)
	ctx.Step(`^the reserves should hold (\d+) batch(?:es)?$`, rc.theReservesShouldHoldBatches)
	ctx.Step(`^the storage quantity should be (\d+)$`, rc.theStorageQuantityShouldBe)
	ctx.Step(`^the storage recipe should be "([^"]*)"$`, rc.theStorageRecipeShouldBe)
	ctx.Step(`^the spillover quantity should be (\d+)$`, rc.theSpilloverQuantityShouldBe)
	ctx.Step(`^the requested quantity should be (\d+)$`, rc.theRequestedQuantityShouldBe)
	ctx.Step(`^no fuel should be requested$`, rc.noFuelShouldBeRequested)
	ctx.Step(`^the offered quantity should be (\d+)$`, rc.theOfferedQuantityShouldBe)
	ctx.Step(`^no product should be offered$`, rc.noProductShouldBeOffered)
	ctx.Step(`^the delivered quantity should be (\d+)$`, rc.theDeliveredQuantityShouldBe)
}

package persistence

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
)

// TradeRecord is a settled trade as read back from the ledger
type TradeRecord struct {
	Step      int
	Trader    string
	Direction string
	Commodity string
	Quantity  decimal.Decimal
}

// StepSnapshot is a per-step inventory snapshot as read back from the ledger
type StepSnapshot struct {
	Step      int
	Trader    string
	Phase     string
	Reserves  decimal.Decimal
	Core      decimal.Decimal
	Storage   decimal.Decimal
	Spillover decimal.Decimal
}

// GormTradeLedger is a GORM-based implementation of the simulation ledger
type GormTradeLedger struct {
	db *gorm.DB
}

// NewGormTradeLedger creates a new trade ledger repository
func NewGormTradeLedger(db *gorm.DB) *GormTradeLedger {
	return &GormTradeLedger{db: db}
}

// RecordTrade persists one settled trade
func (r *GormTradeLedger) RecordTrade(ctx context.Context, step int, trader, direction, commodity string, quantity decimal.Decimal) error {
	model := &TradeRecordModel{
		Step:      step,
		Trader:    trader,
		Direction: direction,
		Commodity: commodity,
		Quantity:  quantity.String(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record trade: %w", err)
	}
	return nil
}

// RecordSnapshot persists one trader's end-of-step inventory levels
func (r *GormTradeLedger) RecordSnapshot(ctx context.Context, step int, trader string, report exchange.InventoryReport) error {
	model := &StepSnapshotModel{
		Step:      step,
		Trader:    trader,
		Phase:     report.Phase,
		Reserves:  report.Reserves.String(),
		Core:      report.Core.String(),
		Storage:   report.Storage.String(),
		Spillover: report.Spillover.String(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	return nil
}

// GetTrades retrieves settled trades for a trader, oldest first
func (r *GormTradeLedger) GetTrades(ctx context.Context, trader string) ([]TradeRecord, error) {
	var models []TradeRecordModel
	err := r.db.WithContext(ctx).
		Where("trader = ?", trader).
		Order("step ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}

	records := make([]TradeRecord, 0, len(models))
	for _, m := range models {
		qty, err := decimal.NewFromString(m.Quantity)
		if err != nil {
			return nil, fmt.Errorf("corrupt quantity %q in trade record %d: %w", m.Quantity, m.ID, err)
		}
		records = append(records, TradeRecord{
			Step:      m.Step,
			Trader:    m.Trader,
			Direction: m.Direction,
			Commodity: m.Commodity,
			Quantity:  qty,
		})
	}
	return records, nil
}

// GetSnapshots retrieves inventory snapshots for a trader, oldest first
func (r *GormTradeLedger) GetSnapshots(ctx context.Context, trader string) ([]StepSnapshot, error) {
	var models []StepSnapshotModel
	err := r.db.WithContext(ctx).
		Where("trader = ?", trader).
		Order("step ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}

	snapshots := make([]StepSnapshot, 0, len(models))
	for _, m := range models {
		snap := StepSnapshot{Step: m.Step, Trader: m.Trader, Phase: m.Phase}
		fields := []struct {
			raw  string
			dest *decimal.Decimal
		}{
			{m.Reserves, &snap.Reserves},
			{m.Core, &snap.Core},
			{m.Storage, &snap.Storage},
			{m.Spillover, &snap.Spillover},
		}
		for _, f := range fields {
			qty, err := decimal.NewFromString(f.raw)
			if err != nil {
				return nil, fmt.Errorf("corrupt quantity %q in snapshot %d: %w", f.raw, m.ID, err)
			}
			*f.dest = qty
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// TradedTotal sums settled quantity for a trader in one direction
func (r *GormTradeLedger) TradedTotal(ctx context.Context, trader, direction string) (decimal.Decimal, error) {
	records, err := r.GetTrades(ctx, trader)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, rec := range records {
		if rec.Direction == direction {
			total = total.Add(rec.Quantity)
		}
	}
	return total, nil
}

package persistence

import "time"

// TradeRecordModel is the database model for settled trades
type TradeRecordModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Step      int    `gorm:"index;not null"`
	Trader    string `gorm:"index;not null"`
	Direction string `gorm:"not null"` // INCOMING or OUTGOING
	Commodity string `gorm:"not null"`
	Quantity  string `gorm:"not null"` // decimal string, exact
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (TradeRecordModel) TableName() string {
	return "trade_records"
}

// StepSnapshotModel is the database model for per-step inventory snapshots
type StepSnapshotModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Step      int    `gorm:"index;not null"`
	Trader    string `gorm:"index;not null"`
	Phase     string `gorm:"not null"`
	Reserves  string `gorm:"not null"`
	Core      string `gorm:"not null"`
	Storage   string `gorm:"not null"`
	Spillover string `gorm:"not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (StepSnapshotModel) TableName() string {
	return "step_snapshots"
}

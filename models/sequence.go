package models

const SequenceCounterTable = "ace_sequence_counters"

// SequenceCounter backs human-readable numbering (ASG-2025/2026-0001,
// BRW-2026-0003, ...). One row per scope, bumped with a single atomic
// UPDATE inside the same transaction as the row it numbers.
type SequenceCounter struct {
	Scope string `gorm:"size:60;primaryKey" json:"scope"`
	Value int64  `gorm:"not null" json:"value"`
}

func (SequenceCounter) TableName() string { return SequenceCounterTable }

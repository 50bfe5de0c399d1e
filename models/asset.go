package models

import "time"

const AssetTable = "ace_assets"
const InspectionTable = "ace_inspections"

// Asset status values. For a unique asset (TotalStock == 1) the status
// tracks where the single unit is; for bulk assets it is largely
// informational and only CurrentStock moves.
type AssetStatus string

const (
	AssetAvailable   AssetStatus = "available"
	AssetReserved    AssetStatus = "reserved"
	AssetBorrowed    AssetStatus = "borrowed"
	AssetMaintenance AssetStatus = "maintenance"
	AssetBroken      AssetStatus = "broken"
	AssetLost        AssetStatus = "lost"
	AssetRetired     AssetStatus = "retired"
)

// NonBorrowableStatuses are excluded from the borrowable-assets query.
var NonBorrowableStatuses = []AssetStatus{
	AssetReserved, AssetBorrowed, AssetMaintenance, AssetBroken, AssetLost, AssetRetired,
}

type Asset struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Code     string `gorm:"size:120;uniqueIndex;not null" json:"code"`
	Name     string `gorm:"size:200;not null" json:"name"`
	Category string `gorm:"size:100" json:"category,omitempty"`

	// TotalStock is fixed at creation; CurrentStock counts units not
	// currently out. Invariant: 0 <= CurrentStock <= TotalStock.
	TotalStock   int         `gorm:"not null" json:"totalStock"`
	CurrentStock int         `gorm:"not null" json:"currentStock"`
	Status       AssetStatus `gorm:"size:20;not null;default:'available'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Asset) TableName() string { return AssetTable }

// Circulation is the tagged view of an asset's circulation model. Engines
// branch on the variant instead of re-deriving uniqueness from raw fields.
type Circulation interface{ isCirculation() }

// UniqueCirculation: one serialized unit, Status says where it is.
type UniqueCirculation struct {
	Status AssetStatus
}

// BulkCirculation: fungible stock, only the quantity moves.
type BulkCirculation struct {
	CurrentStock int
	TotalStock   int
}

func (UniqueCirculation) isCirculation() {}
func (BulkCirculation) isCirculation()   {}

func (a *Asset) Circulation() Circulation {
	if a.TotalStock == 1 {
		return UniqueCirculation{Status: a.Status}
	}
	return BulkCirculation{CurrentStock: a.CurrentStock, TotalStock: a.TotalStock}
}

func (a *Asset) IsUnique() bool { return a.TotalStock == 1 }

// Inspection rows are written by the inspection module; circulation only
// reads the most recent one per asset to stamp checkout condition.
type Inspection struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID     string    `gorm:"type:uuid;index;not null" json:"assetId"`
	Condition   string    `gorm:"size:20;not null" json:"condition"`
	Notes       string    `gorm:"size:500" json:"notes,omitempty"`
	InspectorID string    `gorm:"type:uuid" json:"inspectorId"`
	InspectedAt time.Time `gorm:"index;not null" json:"inspectedAt"`
}

func (Inspection) TableName() string { return InspectionTable }

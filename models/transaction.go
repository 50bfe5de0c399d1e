package models

import "time"

const BorrowTransactionTable = "ace_borrow_transactions"
const BorrowItemTable = "ace_borrow_items"
const ReturnTransactionTable = "ace_return_transactions"
const ReturnItemTable = "ace_return_items"

type BorrowItemStatus string

const (
	BorrowItemBorrowed BorrowItemStatus = "borrowed"
	BorrowItemReturned BorrowItemStatus = "returned"
)

type ReturnCondition string

const (
	ConditionGood    ReturnCondition = "good"
	ConditionDamaged ReturnCondition = "damaged"
	ConditionLost    ReturnCondition = "lost"
)

// BorrowTransaction is one signing event. While IsSigned is false the
// transaction may still be reversed; once signed it is immutable history.
type BorrowTransaction struct {
	ID                string `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionNumber string `gorm:"size:40;uniqueIndex;not null" json:"transactionNumber"`
	AssignmentID      string `gorm:"type:uuid;index;not null" json:"assignmentId"`

	IsSigned      bool   `gorm:"not null;default:false" json:"isSigned"`
	SignaturePath string `gorm:"size:255" json:"signaturePath,omitempty"`
	Notes         string `gorm:"size:500" json:"notes,omitempty"`

	CreatedBy string    `gorm:"type:uuid" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []BorrowItem `gorm:"foreignKey:BorrowTransactionID" json:"items,omitempty"`
}

type BorrowItem struct {
	ID                  string           `gorm:"type:uuid;primaryKey" json:"id"`
	BorrowTransactionID string           `gorm:"type:uuid;index;not null" json:"borrowTransactionId"`
	AssetID             string           `gorm:"type:uuid;index;not null" json:"assetId"`
	Quantity            int              `gorm:"not null" json:"quantity"`
	Status              BorrowItemStatus `gorm:"size:20;not null;default:'borrowed'" json:"status"`

	// Most recent inspection at checkout time, for condition comparison
	// when the item comes back.
	CheckoutInspectionID *string `gorm:"type:uuid" json:"checkoutInspectionId,omitempty"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReturnTransaction is one check-in event against an assignment.
type ReturnTransaction struct {
	ID                string `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionNumber string `gorm:"size:40;uniqueIndex;not null" json:"transactionNumber"`
	AssignmentID      string `gorm:"type:uuid;index;not null" json:"assignmentId"`

	SignaturePath string `gorm:"size:255" json:"signaturePath,omitempty"`
	Notes         string `gorm:"size:500" json:"notes,omitempty"`

	CreatedBy string    `gorm:"type:uuid" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []ReturnItem `gorm:"foreignKey:ReturnTransactionID" json:"items,omitempty"`
}

// ReturnItem references exactly one BorrowItem. Quantity supports partial
// return of a bulk borrow line.
type ReturnItem struct {
	ID                  string          `gorm:"type:uuid;primaryKey" json:"id"`
	ReturnTransactionID string          `gorm:"type:uuid;index;not null" json:"returnTransactionId"`
	BorrowItemID        string          `gorm:"type:uuid;index;not null" json:"borrowItemId"`
	Condition           ReturnCondition `gorm:"size:20;not null" json:"condition"`
	Quantity            int             `gorm:"not null" json:"quantity"`

	DamageNotes  string   `gorm:"size:500" json:"damageNotes,omitempty"`
	DamageCharge *float64 `json:"damageCharge,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (BorrowTransaction) TableName() string { return BorrowTransactionTable }
func (BorrowItem) TableName() string        { return BorrowItemTable }
func (ReturnTransaction) TableName() string { return ReturnTransactionTable }
func (ReturnItem) TableName() string        { return ReturnItemTable }

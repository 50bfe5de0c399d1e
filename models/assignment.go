package models

import "time"

const AssignmentTable = "ace_assignments"

type AssignmentStatus string

const (
	AssignmentActive AssignmentStatus = "active"
	AssignmentClosed AssignmentStatus = "closed"
)

// Assignment groups one borrower's transactions for an academic period.
// It exclusively owns its borrow/return transactions.
type Assignment struct {
	ID               string           `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentNumber string           `gorm:"size:40;uniqueIndex;not null" json:"assignmentNumber"`
	BorrowerID       string           `gorm:"type:uuid;index;not null" json:"borrowerId"`
	AcademicYear     string           `gorm:"size:20;not null" json:"academicYear"` // e.g. "2025/2026"
	Term             string           `gorm:"size:20;not null" json:"term"`
	Status           AssignmentStatus `gorm:"size:20;not null;default:'active'" json:"status"`

	ClosedAt      *time.Time `json:"closedAt,omitempty"`
	ClosedBy      *string    `gorm:"type:uuid" json:"closedBy,omitempty"`
	SignaturePath string     `gorm:"size:255" json:"signaturePath,omitempty"`

	CreatedBy string    `gorm:"type:uuid" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	BorrowTransactions []BorrowTransaction `gorm:"foreignKey:AssignmentID" json:"borrowTransactions,omitempty"`
	ReturnTransactions []ReturnTransaction `gorm:"foreignKey:AssignmentID" json:"returnTransactions,omitempty"`
}

func (Assignment) TableName() string { return AssignmentTable }

package db

import (
	"context"
	"time"

	"asset_circulation_engine/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OpenAssignmentInput struct {
	BorrowerID   string
	AcademicYear string // e.g. "2025/2026"
	Term         string
	ActorID      string
}

func (r *Repo) OpenAssignment(ctx context.Context, in OpenAssignmentInput) (*models.Assignment, error) {
	var asg *models.Assignment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextNumber(tx, "ASG", in.AcademicYear, 4)
		if err != nil {
			return err
		}
		asg = &models.Assignment{
			ID:               uuid.NewString(),
			AssignmentNumber: number,
			BorrowerID:       in.BorrowerID,
			AcademicYear:     in.AcademicYear,
			Term:             in.Term,
			Status:           models.AssignmentActive,
			CreatedBy:        in.ActorID,
		}
		return tx.Create(asg).Error
	})
	if err != nil {
		return nil, err
	}
	return asg, nil
}

func (r *Repo) FindAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	var asg models.Assignment
	if err := r.DB.WithContext(ctx).
		Preload("BorrowTransactions").
		Preload("BorrowTransactions.Items").
		Preload("BorrowTransactions.Items.Asset").
		Preload("ReturnTransactions").
		Preload("ReturnTransactions.Items").
		First(&asg, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrAssignmentNotFound)
	}
	return &asg, nil
}

func (r *Repo) ListAssignments(ctx context.Context, borrowerID string) ([]models.Assignment, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Assignment{}).Order("created_at DESC")
	if borrowerID != "" {
		tx = tx.Where("borrower_id = ?", borrowerID)
	}
	var out []models.Assignment
	err := tx.Find(&out).Error
	return out, err
}

// CloseAssignment finalizes an assignment. Deliberately permissive: it does
// not verify zero outstanding items, so staff can close out a period
// manually; DeleteAssignment is the guarded path.
func (r *Repo) CloseAssignment(ctx context.Context, id, signaturePath, actorID string) (*models.Assignment, error) {
	var asg models.Assignment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asg, "id = ?", id).Error; err != nil {
			return notFound(err, ErrAssignmentNotFound)
		}
		if asg.Status == models.AssignmentClosed {
			return nil
		}
		now := time.Now().UTC()
		asg.Status = models.AssignmentClosed
		asg.ClosedAt = &now
		asg.ClosedBy = &actorID
		if signaturePath != "" {
			asg.SignaturePath = signaturePath
		}
		return tx.Save(&asg).Error
	})
	if err != nil {
		return nil, err
	}
	return &asg, nil
}

// countOutstandingItems counts borrow lines still out across all of the
// assignment's borrow transactions.
func countOutstandingItems(tx *gorm.DB, assignmentID string) (int64, error) {
	var n int64
	err := tx.Model(&models.BorrowItem{}).
		Joins("JOIN "+models.BorrowTransactionTable+" bt ON bt.id = "+models.BorrowItemTable+".borrow_transaction_id").
		Where("bt.assignment_id = ? AND "+models.BorrowItemTable+".status = ?",
			assignmentID, models.BorrowItemBorrowed).
		Count(&n).Error
	return n, err
}

// DeleteAssignment removes an assignment and everything under it. Refused
// while any borrow line is still out. The cascade runs in strict dependency
// order by hand rather than through FK cascades, so the same path can carry
// ledger side effects where needed.
func (r *Repo) DeleteAssignment(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asg models.Assignment
		if err := tx.First(&asg, "id = ?", id).Error; err != nil {
			return notFound(err, ErrAssignmentNotFound)
		}

		outstanding, err := countOutstandingItems(tx, asg.ID)
		if err != nil {
			return err
		}
		if outstanding > 0 {
			return ErrOutstandingItems
		}

		var rtIDs []string
		if err := tx.Model(&models.ReturnTransaction{}).
			Where("assignment_id = ?", asg.ID).
			Pluck("id", &rtIDs).Error; err != nil {
			return err
		}
		if len(rtIDs) > 0 {
			if err := tx.Where("return_transaction_id IN ?", rtIDs).
				Delete(&models.ReturnItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", rtIDs).
				Delete(&models.ReturnTransaction{}).Error; err != nil {
				return err
			}
		}

		var btIDs []string
		if err := tx.Model(&models.BorrowTransaction{}).
			Where("assignment_id = ?", asg.ID).
			Pluck("id", &btIDs).Error; err != nil {
			return err
		}
		if len(btIDs) > 0 {
			if err := tx.Where("borrow_transaction_id IN ?", btIDs).
				Delete(&models.BorrowItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", btIDs).
				Delete(&models.BorrowTransaction{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Assignment{}, "id = ?", asg.ID).Error
	})
}

// DeleteBorrowTransaction reverses an unsigned borrow: every line's stock
// goes back on the shelf and unique assets return to available. This is the
// only path where a borrow's ledger effect is undone outside the return
// flow. Signed transactions, and transactions that returns have already
// been recorded against, are history and stay put.
func (r *Repo) DeleteBorrowTransaction(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bt models.BorrowTransaction
		if err := tx.Preload("Items").First(&bt, "id = ?", id).Error; err != nil {
			return notFound(err, ErrTransactionNotFound)
		}
		if bt.IsSigned {
			return ErrSignedTransactionImmutable
		}

		if len(bt.Items) > 0 {
			itemIDs := make([]string, 0, len(bt.Items))
			for _, item := range bt.Items {
				itemIDs = append(itemIDs, item.ID)
			}
			var returns int64
			if err := tx.Model(&models.ReturnItem{}).
				Where("borrow_item_id IN ?", itemIDs).
				Count(&returns).Error; err != nil {
				return err
			}
			if returns > 0 {
				return ErrTransactionHasReturns
			}

			for _, item := range bt.Items {
				res := tx.Model(&models.Asset{}).
					Where("id = ? AND current_stock + ? <= total_stock", item.AssetID, item.Quantity).
					UpdateColumn("current_stock", gorm.Expr("current_stock + ?", item.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return ErrStockConflict
				}
				if err := tx.Model(&models.Asset{}).
					Where("id = ? AND total_stock = 1", item.AssetID).
					Update("status", models.AssetAvailable).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("borrow_transaction_id = ?", bt.ID).
				Delete(&models.BorrowItem{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.BorrowTransaction{}, "id = ?", bt.ID).Error
	})
}

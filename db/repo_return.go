package db

import (
	"context"
	"strconv"
	"time"

	"asset_circulation_engine/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReturnLineInput struct {
	BorrowItemID string
	Condition    models.ReturnCondition
	Quantity     int
	DamageNotes  string
	DamageCharge *float64
}

type CloseReturnInput struct {
	AssignmentID  string
	Items         []ReturnLineInput
	SignaturePath string
	Notes         string
	ActorID       string
}

// CloseReturn checks items back in. Each line references one borrow line;
// cumulative returns may never exceed what was borrowed, and a line is
// marked returned only once it is returned in full, so a bulk borrow can
// come back across several return events. Closing the assignment itself
// stays a separate explicit operation.
func (r *Repo) CloseReturn(ctx context.Context, in CloseReturnInput) (*models.ReturnTransaction, error) {
	if len(in.Items) == 0 {
		return nil, ErrInvalidQuantity
	}

	var rt *models.ReturnTransaction
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asg models.Assignment
		if err := tx.First(&asg, "id = ?", in.AssignmentID).Error; err != nil {
			return notFound(err, ErrAssignmentNotFound)
		}

		number, err := nextNumber(tx, "RTN", strconv.Itoa(time.Now().Year()), 4)
		if err != nil {
			return err
		}

		header := &models.ReturnTransaction{
			ID:                uuid.NewString(),
			TransactionNumber: number,
			AssignmentID:      asg.ID,
			SignaturePath:     in.SignaturePath,
			Notes:             in.Notes,
			CreatedBy:         in.ActorID,
		}
		if err := tx.Create(header).Error; err != nil {
			return err
		}

		for _, line := range in.Items {
			if line.Quantity < 1 {
				return ErrInvalidQuantity
			}
			var item models.BorrowItem
			if err := tx.Preload("Asset").First(&item, "id = ?", line.BorrowItemID).Error; err != nil {
				return notFound(err, ErrBorrowItemNotFound)
			}
			if item.Asset == nil {
				return ErrAssetNotFound
			}
			var owner models.BorrowTransaction
			if err := tx.Select("assignment_id").
				First(&owner, "id = ?", item.BorrowTransactionID).Error; err != nil {
				return notFound(err, ErrTransactionNotFound)
			}
			// A line can only be settled under the assignment it was
			// borrowed for.
			if owner.AssignmentID != asg.ID {
				return ErrBorrowItemNotFound
			}
			if item.Status == models.BorrowItemReturned {
				return ErrInvalidQuantity
			}

			var alreadyReturned int64
			if err := tx.Model(&models.ReturnItem{}).
				Where("borrow_item_id = ?", item.ID).
				Select("COALESCE(SUM(quantity), 0)").
				Scan(&alreadyReturned).Error; err != nil {
				return err
			}
			if alreadyReturned+int64(line.Quantity) > int64(item.Quantity) {
				return ErrInvalidQuantity
			}

			ret := models.ReturnItem{
				ID:                  uuid.NewString(),
				ReturnTransactionID: header.ID,
				BorrowItemID:        item.ID,
				Condition:           line.Condition,
				Quantity:            line.Quantity,
				DamageNotes:         line.DamageNotes,
				DamageCharge:        line.DamageCharge,
			}
			if err := tx.Create(&ret).Error; err != nil {
				return err
			}

			if alreadyReturned+int64(line.Quantity) == int64(item.Quantity) {
				if err := tx.Model(&models.BorrowItem{}).
					Where("id = ?", item.ID).
					Update("status", models.BorrowItemReturned).Error; err != nil {
					return err
				}
			}

			if err := releaseAsset(tx, item.Asset, line.Quantity, line.Condition); err != nil {
				return err
			}
			header.Items = append(header.Items, ret)
		}

		rt = header
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rt, nil
}

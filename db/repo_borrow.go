package db

import (
	"context"
	"strconv"
	"time"

	"asset_circulation_engine/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BorrowLineInput struct {
	AssetID  string
	Quantity int
}

type OpenBorrowInput struct {
	AssignmentID  string
	Items         []BorrowLineInput
	SignaturePath string
	Notes         string
	ActorID       string
}

// OpenBorrow opens a loan: one borrow transaction with 1..N lines, each
// line reserving stock on its asset. Header, lines and ledger updates
// commit together; the first failing line rolls the whole thing back.
func (r *Repo) OpenBorrow(ctx context.Context, in OpenBorrowInput) (*models.BorrowTransaction, error) {
	if len(in.Items) == 0 {
		return nil, ErrInvalidQuantity
	}

	var bt *models.BorrowTransaction
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asg models.Assignment
		if err := tx.First(&asg, "id = ?", in.AssignmentID).Error; err != nil {
			return notFound(err, ErrAssignmentNotFound)
		}
		if asg.Status == models.AssignmentClosed {
			return ErrAssignmentClosed
		}

		number, err := nextNumber(tx, "BRW", strconv.Itoa(time.Now().Year()), 4)
		if err != nil {
			return err
		}

		signed := in.SignaturePath != ""
		header := &models.BorrowTransaction{
			ID:                uuid.NewString(),
			TransactionNumber: number,
			AssignmentID:      asg.ID,
			IsSigned:          signed,
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
			var asset models.Asset
			if err := tx.First(&asset, "id = ?", line.AssetID).Error; err != nil {
				return notFound(err, ErrAssetNotFound)
			}
			inspID, err := latestInspectionID(tx, asset.ID)
			if err != nil {
				return err
			}

			item := models.BorrowItem{
				ID:                   uuid.NewString(),
				BorrowTransactionID:  header.ID,
				AssetID:              asset.ID,
				Quantity:             line.Quantity,
				Status:               models.BorrowItemBorrowed,
				CheckoutInspectionID: inspID,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if err := reserveAsset(tx, &asset, line.Quantity, signed); err != nil {
				return err
			}
			header.Items = append(header.Items, item)
		}

		bt = header
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bt, nil
}

// SignBorrowTransaction records the borrower's signature, confirming
// custody. Unique assets advance from reserved to borrowed. Signing twice
// is a no-op.
func (r *Repo) SignBorrowTransaction(ctx context.Context, id, signaturePath string) (*models.BorrowTransaction, error) {
	var bt models.BorrowTransaction
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&bt, "id = ?", id).Error; err != nil {
			return notFound(err, ErrTransactionNotFound)
		}
		if bt.IsSigned {
			return nil
		}

		bt.IsSigned = true
		bt.SignaturePath = signaturePath
		if err := tx.Model(&models.BorrowTransaction{}).
			Where("id = ?", bt.ID).
			Updates(map[string]interface{}{
				"is_signed":      true,
				"signature_path": signaturePath,
			}).Error; err != nil {
			return err
		}

		for _, item := range bt.Items {
			if err := tx.Model(&models.Asset{}).
				Where("id = ? AND total_stock = 1 AND status = ?", item.AssetID, models.AssetReserved).
				Update("status", models.AssetBorrowed).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (r *Repo) FindBorrowTransaction(ctx context.Context, id string) (*models.BorrowTransaction, error) {
	var bt models.BorrowTransaction
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.Asset").
		First(&bt, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrTransactionNotFound)
	}
	return &bt, nil
}

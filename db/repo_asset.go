package db

import (
	"context"
	"errors"
	"strings"

	"asset_circulation_engine/models"

	"gorm.io/gorm"
)

// Assets

func (r *Repo) CreateAsset(ctx context.Context, a *models.Asset) error {
	if a.TotalStock < 1 {
		return ErrInvalidQuantity
	}
	a.CurrentStock = a.TotalStock
	if a.Status == "" {
		a.Status = models.AssetAvailable
	}
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *Repo) FindAssetByID(ctx context.Context, id string) (*models.Asset, error) {
	var a models.Asset
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrAssetNotFound)
	}
	return &a, nil
}

func (r *Repo) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&assets).Error
	return assets, err
}

// ListBorrowableAssets returns assets eligible for borrowing: not parked in
// a circulation/repair state and with at least one unit on the shelf.
func (r *Repo) ListBorrowableAssets(ctx context.Context, q string) ([]models.Asset, error) {
	tx := r.DB.WithContext(ctx).
		Where("status NOT IN ?", models.NonBorrowableStatuses).
		Where("current_stock > 0")
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}
	var assets []models.Asset
	if err := tx.Order("name ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// Ledger

// reserveAsset takes qty units out of circulation. The decrement re-checks
// live stock, so the same asset appearing on two lines of one request is
// reserved additively rather than checked-then-decremented. A unique asset
// moves to reserved, or straight to borrowed when the borrower has already
// signed.
func reserveAsset(tx *gorm.DB, a *models.Asset, qty int, signed bool) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	res := tx.Model(&models.Asset{}).
		Where("id = ? AND current_stock >= ?", a.ID, qty).
		UpdateColumn("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}

	if _, unique := a.Circulation().(models.UniqueCirculation); unique && qty == 1 {
		status := models.AssetReserved
		if signed {
			status = models.AssetBorrowed
		}
		return tx.Model(&models.Asset{}).
			Where("id = ?", a.ID).
			Update("status", status).Error
	}
	return nil
}

// releaseAsset puts qty units back. Lost units never return to circulation:
// stock stays down and a unique asset is marked lost for good. A borrowed
// or reserved status is normalized on release even if a different update
// path left it stale.
func releaseAsset(tx *gorm.DB, a *models.Asset, qty int, cond models.ReturnCondition) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	if cond == models.ConditionLost {
		if a.IsUnique() {
			return tx.Model(&models.Asset{}).
				Where("id = ?", a.ID).
				Update("status", models.AssetLost).Error
		}
		return nil
	}

	res := tx.Model(&models.Asset{}).
		Where("id = ? AND current_stock + ? <= total_stock", a.ID, qty).
		UpdateColumn("current_stock", gorm.Expr("current_stock + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}

	switch cond {
	case models.ConditionDamaged:
		return tx.Model(&models.Asset{}).
			Where("id = ?", a.ID).
			Update("status", models.AssetMaintenance).Error
	case models.ConditionGood:
		if a.IsUnique() {
			return tx.Model(&models.Asset{}).
				Where("id = ?", a.ID).
				Update("status", models.AssetAvailable).Error
		}
		return tx.Model(&models.Asset{}).
			Where("id = ? AND status IN ?", a.ID,
				[]models.AssetStatus{models.AssetBorrowed, models.AssetReserved}).
			Update("status", models.AssetAvailable).Error
	}
	return errors.New("unknown return condition: " + string(cond))
}

// latestInspectionID finds the most recent inspection of an asset, if any.
// Inspections are written by the inspection module; circulation only reads.
func latestInspectionID(tx *gorm.DB, assetID string) (*string, error) {
	var insp models.Inspection
	err := tx.Where("asset_id = ?", assetID).
		Order("inspected_at DESC").
		First(&insp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &insp.ID, nil
}

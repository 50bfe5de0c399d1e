package db

import (
	"context"
	"testing"

	"asset_circulation_engine/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateAssetStartsFullyStocked(t *testing.T) {
	r := newTestRepo(t)

	a := seedAsset(t, r, "LAP-300", 5)
	require.Equal(t, 5, a.CurrentStock)
	require.Equal(t, models.AssetAvailable, a.Status)

	err := r.CreateAsset(context.Background(), &models.Asset{
		ID: uuid.NewString(), Code: "BAD-300", Name: "bad", TotalStock: 0,
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestFindAssetByIDNotFound(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.FindAssetByID(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrAssetNotFound)
}

func TestListBorrowableAssets(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	shelf := seedAsset(t, r, "CAM-300", 3)
	seedAsset(t, r, "CAM-301", 1)

	// Park one in maintenance, exhaust another's stock.
	broken := seedAsset(t, r, "CAM-302", 1)
	require.NoError(t, r.DB.Model(&models.Asset{}).
		Where("id = ?", broken.ID).
		Update("status", models.AssetMaintenance).Error)
	empty := seedAsset(t, r, "CAM-303", 4)
	require.NoError(t, r.DB.Model(&models.Asset{}).
		Where("id = ?", empty.ID).
		Update("current_stock", 0).Error)

	got, err := r.ListBorrowableAssets(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = r.ListBorrowableAssets(ctx, "cam-300")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, shelf.ID, got[0].ID)

	got, err = r.ListBorrowableAssets(ctx, "nothing-matches")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestReserveReleaseKeepsStockWithinBounds(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "CBL-300", 3)

	// Reserving more than available fails without touching the row.
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return reserveAsset(tx, asset, 4, false)
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	requireLedger(t, r, asset.ID, 3, models.AssetAvailable)

	require.NoError(t, r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return reserveAsset(tx, asset, 3, false)
	}))
	requireLedger(t, r, asset.ID, 0, models.AssetAvailable)

	// Releasing above capacity is refused.
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return releaseAsset(tx, asset, 4, models.ConditionGood)
	})
	require.ErrorIs(t, err, ErrStockConflict)
	requireLedger(t, r, asset.ID, 0, models.AssetAvailable)

	require.NoError(t, r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return releaseAsset(tx, asset, 3, models.ConditionGood)
	}))
	requireLedger(t, r, asset.ID, 3, models.AssetAvailable)
}

func TestReleaseNormalizesStaleBorrowedStatus(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "CBL-301", 5)

	require.NoError(t, r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return reserveAsset(tx, asset, 2, false)
	}))
	// A different update path left the denormalized status stale.
	require.NoError(t, r.DB.Model(&models.Asset{}).
		Where("id = ?", asset.ID).
		Update("status", models.AssetBorrowed).Error)

	require.NoError(t, r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return releaseAsset(tx, asset, 2, models.ConditionGood)
	}))
	requireLedger(t, r, asset.ID, 5, models.AssetAvailable)
}

func TestReleaseLostBulkKeepsStatus(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "CBL-302", 5)

	require.NoError(t, r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return reserveAsset(tx, asset, 2, false)
	}))
	require.NoError(t, r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return releaseAsset(tx, asset, 2, models.ConditionLost)
	}))

	// Two units gone for good; the pool itself is not marked lost.
	requireLedger(t, r, asset.ID, 3, models.AssetAvailable)
}

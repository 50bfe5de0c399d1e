package db

import (
	"context"
	"testing"

	"asset_circulation_engine/models"

	"github.com/stretchr/testify/require"
)

func TestCloseAssignment(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asg := seedAssignment(t, r)
	require.Equal(t, models.AssignmentActive, asg.Status)

	closed, err := r.CloseAssignment(ctx, asg.ID, "/sig/close.png", "closer-id")
	require.NoError(t, err)
	require.Equal(t, models.AssignmentClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	require.NotNil(t, closed.ClosedBy)
	require.Equal(t, "closer-id", *closed.ClosedBy)

	// Closing again is a no-op.
	again, err := r.CloseAssignment(ctx, asg.ID, "", "other")
	require.NoError(t, err)
	require.Equal(t, *closed.ClosedBy, *again.ClosedBy)
}

func TestDeleteUnsignedBorrowRestoresLedger(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	unique := seedAsset(t, r, "LAP-200", 1)
	bulk := seedAsset(t, r, "CBL-200", 10)
	asg := seedAssignment(t, r)

	bt, err := r.OpenBorrow(ctx, OpenBorrowInput{
		AssignmentID: asg.ID,
		Items: []BorrowLineInput{
			{AssetID: unique.ID, Quantity: 1},
			{AssetID: bulk.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)
	requireLedger(t, r, unique.ID, 0, models.AssetReserved)
	requireLedger(t, r, bulk.ID, 6, models.AssetAvailable)

	require.NoError(t, r.DeleteBorrowTransaction(ctx, bt.ID))

	// Full pre-borrow restoration, rows gone.
	requireLedger(t, r, unique.ID, 1, models.AssetAvailable)
	requireLedger(t, r, bulk.ID, 10, models.AssetAvailable)
	var n int64
	require.NoError(t, r.DB.Model(&models.BorrowItem{}).Count(&n).Error)
	require.Zero(t, n)
	require.NoError(t, r.DB.Model(&models.BorrowTransaction{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestDeleteSignedBorrowRejected(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "LAP-201", 1)
	asg := seedAssignment(t, r)

	bt, err := r.OpenBorrow(ctx, OpenBorrowInput{
		AssignmentID:  asg.ID,
		Items:         []BorrowLineInput{{AssetID: asset.ID, Quantity: 1}},
		SignaturePath: "/sig/signed.png",
	})
	require.NoError(t, err)

	err = r.DeleteBorrowTransaction(ctx, bt.ID)
	require.ErrorIs(t, err, ErrSignedTransactionImmutable)
	requireLedger(t, r, asset.ID, 0, models.AssetBorrowed)
}

func TestDeleteBorrowWithReturnsRejected(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "CBL-201", 10)
	asg := seedAssignment(t, r)

	bt, err := r.OpenBorrow(ctx, OpenBorrowInput{
		AssignmentID: asg.ID,
		Items:        []BorrowLineInput{{AssetID: asset.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	_, err = r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: asg.ID,
		Items: []ReturnLineInput{{
			BorrowItemID: bt.Items[0].ID, Condition: models.ConditionGood, Quantity: 1,
		}},
	})
	require.NoError(t, err)

	err = r.DeleteBorrowTransaction(ctx, bt.ID)
	require.ErrorIs(t, err, ErrTransactionHasReturns)
	requireLedger(t, r, asset.ID, 7, models.AssetAvailable)
}

func TestDeleteAssignmentBlockedByOutstandingItems(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "LAP-202", 1)
	asg := seedAssignment(t, r)

	_, err := r.OpenBorrow(ctx, OpenBorrowInput{
		AssignmentID: asg.ID,
		Items:        []BorrowLineInput{{AssetID: asset.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	err = r.DeleteAssignment(ctx, asg.ID)
	require.ErrorIs(t, err, ErrOutstandingItems)

	// Everything intact.
	_, err = r.FindAssignment(ctx, asg.ID)
	require.NoError(t, err)
	var n int64
	require.NoError(t, r.DB.Model(&models.BorrowItem{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestDeleteAssignmentCascades(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "CBL-202", 10)
	asg := seedAssignment(t, r)

	bt, err := r.OpenBorrow(ctx, OpenBorrowInput{
		AssignmentID:  asg.ID,
		Items:         []BorrowLineInput{{AssetID: asset.ID, Quantity: 3}},
		SignaturePath: "/sig/b.png",
	})
	require.NoError(t, err)

	_, err = r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: asg.ID,
		Items: []ReturnLineInput{{
			BorrowItemID: bt.Items[0].ID, Condition: models.ConditionGood, Quantity: 3,
		}},
	})
	require.NoError(t, err)

	require.NoError(t, r.DeleteAssignment(ctx, asg.ID))

	// No orphans in any child table.
	for _, model := range []interface{}{
		&models.ReturnItem{}, &models.ReturnTransaction{},
		&models.BorrowItem{}, &models.BorrowTransaction{},
		&models.Assignment{},
	} {
		var n int64
		require.NoError(t, r.DB.Model(model).Count(&n).Error)
		require.Zero(t, n)
	}
	// The ledger keeps the returned stock.
	requireLedger(t, r, asset.ID, 10, models.AssetAvailable)
}

func TestDeleteAssignmentNotFound(t *testing.T) {
	r := newTestRepo(t)
	err := r.DeleteAssignment(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

package db

import (
	"context"
	"testing"

	"asset_circulation_engine/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func borrowOne(t *testing.T, r *Repo, asgID, assetID string, qty int) models.BorrowItem {
	t.Helper()
	bt, err := r.OpenBorrow(context.Background(), OpenBorrowInput{
		AssignmentID:  asgID,
		Items:         []BorrowLineInput{{AssetID: assetID, Quantity: qty}},
		SignaturePath: "/sig/borrow.png",
	})
	require.NoError(t, err)
	return bt.Items[0]
}

func TestReturnGoodUniqueAsset(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "LAP-100", 1)
	asg := seedAssignment(t, r)
	item := borrowOne(t, r, asg.ID, asset.ID, 1)
	requireLedger(t, r, asset.ID, 0, models.AssetBorrowed)

	rt, err := r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: asg.ID,
		Items:        []ReturnLineInput{{BorrowItemID: item.ID, Condition: models.ConditionGood, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, rt.Items, 1)
	requireLedger(t, r, asset.ID, 1, models.AssetAvailable)

	var got models.BorrowItem
	require.NoError(t, r.DB.First(&got, "id = ?", item.ID).Error)
	require.Equal(t, models.BorrowItemReturned, got.Status)
}

func TestReturnDamagedUniqueAsset(t *testing.T) {
	r := newTestRepo(t)
	asset := seedAsset(t, r, "LAP-101", 1)
	asg := seedAssignment(t, r)
	item := borrowOne(t, r, asg.ID, asset.ID, 1)

	charge := 125.0
	rt, err := r.CloseReturn(context.Background(), CloseReturnInput{
		AssignmentID: asg.ID,
		Items: []ReturnLineInput{{
			BorrowItemID: item.ID,
			Condition:    models.ConditionDamaged,
			Quantity:     1,
			DamageNotes:  "cracked hinge",
			DamageCharge: &charge,
		}},
	})
	require.NoError(t, err)
	require.Equal(t, "cracked hinge", rt.Items[0].DamageNotes)
	requireLedger(t, r, asset.ID, 1, models.AssetMaintenance)
}

func TestReturnLostUniqueAssetPermanent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "LAP-102", 1)
	asg := seedAssignment(t, r)
	item := borrowOne(t, r, asg.ID, asset.ID, 1)

	_, err := r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: asg.ID,
		Items:        []ReturnLineInput{{BorrowItemID: item.ID, Condition: models.ConditionLost, Quantity: 1}},
	})
	require.NoError(t, err)

	// Lost units never return to circulation.
	requireLedger(t, r, asset.ID, 0, models.AssetLost)

	// The line is settled; a second return attempt is rejected.
	_, err = r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: asg.ID,
		Items:        []ReturnLineInput{{BorrowItemID: item.ID, Condition: models.ConditionGood, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)
	requireLedger(t, r, asset.ID, 0, models.AssetLost)
}

func TestPartialReturnBulkAcrossTwoEvents(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "CBL-100", 10)
	asg := seedAssignment(t, r)
	item := borrowOne(t, r, asg.ID, asset.ID, 3)
	requireLedger(t, r, asset.ID, 7, models.AssetAvailable)

	_, err := r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: asg.ID,
		Items:        []ReturnLineInput{{BorrowItemID: item.ID, Condition: models.ConditionDamaged, Quantity: 1}},
	})
	require.NoError(t, err)
	requireLedger(t, r, asset.ID, 8, models.AssetMaintenance)

	// Line is not settled yet, the remaining two can still come back.
	var got models.BorrowItem
	require.NoError(t, r.DB.First(&got, "id = ?", item.ID).Error)
	require.Equal(t, models.BorrowItemBorrowed, got.Status)

	_, err = r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: asg.ID,
		Items:        []ReturnLineInput{{BorrowItemID: item.ID, Condition: models.ConditionGood, Quantity: 2}},
	})
	require.NoError(t, err)
	requireLedger(t, r, asset.ID, 10, models.AssetMaintenance)

	require.NoError(t, r.DB.First(&got, "id = ?", item.ID).Error)
	require.Equal(t, models.BorrowItemReturned, got.Status)
}

func TestOverReturnRejected(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "CBL-101", 10)
	asg := seedAssignment(t, r)
	item := borrowOne(t, r, asg.ID, asset.ID, 2)

	_, err := r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: asg.ID,
		Items:        []ReturnLineInput{{BorrowItemID: item.ID, Condition: models.ConditionGood, Quantity: 3}},
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	// Whole event rolled back, nothing partially committed.
	requireLedger(t, r, asset.ID, 8, models.AssetAvailable)
	var n int64
	require.NoError(t, r.DB.Model(&models.ReturnTransaction{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestCumulativeOverReturnRejected(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "CBL-102", 10)
	asg := seedAssignment(t, r)
	item := borrowOne(t, r, asg.ID, asset.ID, 3)

	_, err := r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: asg.ID,
		Items:        []ReturnLineInput{{BorrowItemID: item.ID, Condition: models.ConditionGood, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: asg.ID,
		Items:        []ReturnLineInput{{BorrowItemID: item.ID, Condition: models.ConditionGood, Quantity: 2}},
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)
	requireLedger(t, r, asset.ID, 9, models.AssetAvailable)
}

func TestReturnRejectsLineFromOtherAssignment(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r, "CBL-103", 5)
	owner := seedAssignment(t, r)
	other := seedAssignment(t, r)
	item := borrowOne(t, r, owner.ID, asset.ID, 2)

	// Filing the return under a different assignment must not settle the
	// owning assignment's line.
	_, err := r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: other.ID,
		Items:        []ReturnLineInput{{BorrowItemID: item.ID, Condition: models.ConditionGood, Quantity: 2}},
	})
	require.ErrorIs(t, err, ErrBorrowItemNotFound)
	requireLedger(t, r, asset.ID, 3, models.AssetAvailable)

	var got models.BorrowItem
	require.NoError(t, r.DB.First(&got, "id = ?", item.ID).Error)
	require.Equal(t, models.BorrowItemBorrowed, got.Status)

	// The line is still outstanding, so its assignment cannot be deleted
	// out from under it.
	require.ErrorIs(t, r.DeleteAssignment(ctx, owner.ID), ErrOutstandingItems)

	// Nothing from the rejected event survived.
	var n int64
	require.NoError(t, r.DB.Model(&models.ReturnItem{}).Count(&n).Error)
	require.Zero(t, n)

	// Returned under its own assignment, the same line settles normally.
	_, err = r.CloseReturn(ctx, CloseReturnInput{
		AssignmentID: owner.ID,
		Items:        []ReturnLineInput{{BorrowItemID: item.ID, Condition: models.ConditionGood, Quantity: 2}},
	})
	require.NoError(t, err)
	requireLedger(t, r, asset.ID, 5, models.AssetAvailable)
}

func TestReturnUnknownBorrowItem(t *testing.T) {
	r := newTestRepo(t)
	asg := seedAssignment(t, r)

	_, err := r.CloseReturn(context.Background(), CloseReturnInput{
		AssignmentID: asg.ID,
		Items:        []ReturnLineInput{{BorrowItemID: uuid.NewString(), Condition: models.ConditionGood, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrBorrowItemNotFound)
}

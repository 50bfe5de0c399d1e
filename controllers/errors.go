package controllers

import (
	"errors"
	"net/http"

	"asset_circulation_engine/app"
	"asset_circulation_engine/db"

	"github.com/gin-gonic/gin"
)

// writeError maps engine sentinel errors onto HTTP statuses. Anything
// unmapped is a 500 and logged by the caller.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrAssetNotFound),
		errors.Is(err, db.ErrAssignmentNotFound),
		errors.Is(err, db.ErrTransactionNotFound),
		errors.Is(err, db.ErrBorrowItemNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrInsufficientStock),
		errors.Is(err, db.ErrAssignmentClosed),
		errors.Is(err, db.ErrSignedTransactionImmutable),
		errors.Is(err, db.ErrTransactionHasReturns),
		errors.Is(err, db.ErrOutstandingItems),
		errors.Is(err, db.ErrStockConflict):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

package db

import "errors"

// Sentinel errors for the circulation engines. Any of these aborts the
// enclosing transaction; controllers map them to HTTP statuses.
var (
	ErrAssetNotFound       = errors.New("asset not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBorrowItemNotFound  = errors.New("borrow item not found")

	ErrAssignmentClosed  = errors.New("assignment is closed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")

	// ErrStockConflict reports a restore the ledger refused: the increment
	// would push current_stock past total_stock, or the asset row is gone.
	ErrStockConflict = errors.New("stock restore conflicts with asset capacity")

	ErrSignedTransactionImmutable = errors.New("signed transaction is immutable")
	ErrTransactionHasReturns      = errors.New("transaction already has returns")
	ErrOutstandingItems           = errors.New("assignment has outstanding items")
)

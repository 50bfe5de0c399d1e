package controllers

import (
	"fmt"
	"net/http"

	"asset_circulation_engine/app"
	"asset_circulation_engine/db"
	"asset_circulation_engine/models"

	"github.com/gin-gonic/gin"
)

type CirculationController struct{ *Srv }

func NewCirculationController(s *Srv) *CirculationController {
	return &CirculationController{Srv: s}
}

// POST /api/assignments/:id/borrows
func (cc *CirculationController) OpenBorrow(c *gin.Context) {
	actor, ok := app.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		Items []struct {
			AssetID  string `json:"assetId" binding:"required"`
			Quantity int    `json:"quantity" binding:"required,min=1"`
		} `json:"items" binding:"required,min=1,dive"`
		SignaturePath string `json:"signaturePath"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	lines := make([]db.BorrowLineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, db.BorrowLineInput{AssetID: it.AssetID, Quantity: it.Quantity})
	}

	bt, err := cc.Repo.OpenBorrow(c.Request.Context(), db.OpenBorrowInput{
		AssignmentID:  c.Param("id"),
		Items:         lines,
		SignaturePath: in.SignaturePath,
		Notes:         in.Notes,
		ActorID:       actor,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	cc.audit(c.Request.Context(), "borrow.open", "borrow_transaction", bt.ID,
		fmt.Sprintf("%s, %d item(s)", bt.TransactionNumber, len(bt.Items)), actor)
	c.JSON(http.StatusCreated, bt)
}

// POST /api/borrows/:id/sign
func (cc *CirculationController) SignBorrow(c *gin.Context) {
	actor, ok := app.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		SignaturePath string `json:"signaturePath" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	bt, err := cc.Repo.SignBorrowTransaction(c.Request.Context(), c.Param("id"), in.SignaturePath)
	if err != nil {
		writeError(c, err)
		return
	}
	cc.audit(c.Request.Context(), "borrow.sign", "borrow_transaction", bt.ID, bt.TransactionNumber, actor)
	c.JSON(http.StatusOK, bt)
}

// GET /api/borrows/:id
func (cc *CirculationController) GetBorrow(c *gin.Context) {
	bt, err := cc.Repo.FindBorrowTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bt)
}

// DELETE /api/borrows/:id
// Reversal of an unsigned borrow; signed ones are immutable history.
func (cc *CirculationController) DeleteBorrow(c *gin.Context) {
	actor, ok := app.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	id := c.Param("id")
	if err := cc.Repo.DeleteBorrowTransaction(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	cc.audit(c.Request.Context(), "borrow.delete", "borrow_transaction", id, "", actor)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/assignments/:id/returns
func (cc *CirculationController) CloseReturn(c *gin.Context) {
	actor, ok := app.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		Items []struct {
			BorrowItemID string   `json:"borrowItemId" binding:"required"`
			Condition    string   `json:"condition" binding:"required,oneof=good damaged lost"`
			Quantity     int      `json:"quantity" binding:"required,min=1"`
			DamageNotes  string   `json:"damageNotes"`
			DamageCharge *float64 `json:"damageCharge"`
		} `json:"items" binding:"required,min=1,dive"`
		SignaturePath string `json:"signaturePath"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	lines := make([]db.ReturnLineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, db.ReturnLineInput{
			BorrowItemID: it.BorrowItemID,
			Condition:    models.ReturnCondition(it.Condition),
			Quantity:     it.Quantity,
			DamageNotes:  it.DamageNotes,
			DamageCharge: it.DamageCharge,
		})
	}

	rt, err := cc.Repo.CloseReturn(c.Request.Context(), db.CloseReturnInput{
		AssignmentID:  c.Param("id"),
		Items:         lines,
		SignaturePath: in.SignaturePath,
		Notes:         in.Notes,
		ActorID:       actor,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	cc.audit(c.Request.Context(), "return.close", "return_transaction", rt.ID,
		fmt.Sprintf("%s, %d item(s)", rt.TransactionNumber, len(rt.Items)), actor)
	c.JSON(http.StatusCreated, rt)
}

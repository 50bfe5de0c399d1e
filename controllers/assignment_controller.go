package controllers

import (
	"net/http"

	"asset_circulation_engine/app"
	"asset_circulation_engine/db"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct{ *Srv }

func NewAssignmentController(s *Srv) *AssignmentController { return &AssignmentController{Srv: s} }

// POST /api/assignments
func (ac *AssignmentController) CreateAssignment(c *gin.Context) {
	actor, ok := app.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		BorrowerID   string `json:"borrowerId" binding:"required"`
		AcademicYear string `json:"academicYear" binding:"required"`
		Term         string `json:"term" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	asg, err := ac.Repo.OpenAssignment(c.Request.Context(), db.OpenAssignmentInput{
		BorrowerID:   in.BorrowerID,
		AcademicYear: in.AcademicYear,
		Term:         in.Term,
		ActorID:      actor,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	ac.audit(c.Request.Context(), "assignment.open", "assignment", asg.ID, asg.AssignmentNumber, actor)
	c.JSON(http.StatusCreated, asg)
}

// GET /api/assignments?borrowerId=
func (ac *AssignmentController) ListAssignments(c *gin.Context) {
	out, err := ac.Repo.ListAssignments(c.Request.Context(), c.Query("borrowerId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"assignments": out})
}

// GET /api/assignments/:id
func (ac *AssignmentController) GetAssignment(c *gin.Context) {
	asg, err := ac.Repo.FindAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, asg)
}

// POST /api/assignments/:id/close
func (ac *AssignmentController) CloseAssignment(c *gin.Context) {
	actor, ok := app.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		SignaturePath string `json:"signaturePath"`
	}
	_ = c.ShouldBindJSON(&in)

	asg, err := ac.Repo.CloseAssignment(c.Request.Context(), c.Param("id"), in.SignaturePath, actor)
	if err != nil {
		writeError(c, err)
		return
	}
	ac.audit(c.Request.Context(), "assignment.close", "assignment", asg.ID, asg.AssignmentNumber, actor)
	c.JSON(http.StatusOK, asg)
}

// DELETE /api/assignments/:id
// Restricted by the permission table; refused while items are still out.
func (ac *AssignmentController) DeleteAssignment(c *gin.Context) {
	actor, ok := app.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	id := c.Param("id")
	if err := ac.Repo.DeleteAssignment(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	ac.audit(c.Request.Context(), "assignment.delete", "assignment", id, "", actor)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

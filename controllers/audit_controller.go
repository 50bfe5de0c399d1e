package controllers

import (
	"net/http"
	"strconv"

	"asset_circulation_engine/app"

	"github.com/gin-gonic/gin"
)

type AuditController struct{ *Srv }

func NewAuditController(s *Srv) *AuditController { return &AuditController{Srv: s} }

// GET /api/audit?entityType=&limit=
func (ac *AuditController) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := ac.Repo.ListAuditLogs(c.Request.Context(), c.Query("entityType"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"logs": logs})
}

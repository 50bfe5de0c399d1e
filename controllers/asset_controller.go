package controllers

import (
	"net/http"

	"asset_circulation_engine/app"
	"asset_circulation_engine/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssetController struct{ *Srv }

func NewAssetController(s *Srv) *AssetController { return &AssetController{Srv: s} }

// POST /api/assets
// TotalStock 1 makes a unique serialized item; anything larger is bulk
// stock. Capacity is fixed after creation.
func (ac *AssetController) CreateAsset(c *gin.Context) {
	var in struct {
		Code       string `json:"code" binding:"required"`
		Name       string `json:"name" binding:"required"`
		Category   string `json:"category"`
		TotalStock int    `json:"totalStock" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	a := &models.Asset{
		ID:         uuid.NewString(),
		Code:       in.Code,
		Name:       in.Name,
		Category:   in.Category,
		TotalStock: in.TotalStock,
	}
	if err := ac.Repo.CreateAsset(c.Request.Context(), a); err != nil {
		writeError(c, err)
		return
	}

	if actor, ok := app.ActorID(c); ok {
		ac.audit(c.Request.Context(), "asset.create", "asset", a.ID, a.Code, actor)
	}
	c.JSON(http.StatusCreated, a)
}

// GET /api/assets
func (ac *AssetController) ListAssets(c *gin.Context) {
	assets, err := ac.Repo.ListAssets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"assets": assets})
}

// GET /api/assets/borrowable?q=
func (ac *AssetController) ListBorrowable(c *gin.Context) {
	assets, err := ac.Repo.ListBorrowableAssets(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"assets": assets})
}

// GET /api/assets/:id
func (ac *AssetController) GetAsset(c *gin.Context) {
	a, err := ac.Repo.FindAssetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

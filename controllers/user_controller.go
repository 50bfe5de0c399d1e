package controllers

import (
	"net/http"
	"strconv"

	"asset_circulation_engine/app"
	"asset_circulation_engine/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// POST /api/users
func (uc *UserController) CreateUser(c *gin.Context) {
	var in struct {
		Username    string `json:"username" binding:"required"`
		DisplayName string `json:"displayName"`
		Password    string `json:"password" binding:"required,min=8"`
		Role        string `json:"role" binding:"required,oneof=admin manager staff borrower"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	display := in.DisplayName
	if display == "" {
		display = in.Username
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		DisplayName:  display,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := uc.Repo.CreateUser(c.Request.Context(), u); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// GET /api/users?q=&page=&size=
func (uc *UserController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := uc.Repo.ListUsers(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"total": res.Total, "users": res.Users})
}

// GET /api/users/:id
func (uc *UserController) GetUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid uuid"})
		return
	}
	u, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// DELETE /api/users/:id
func (uc *UserController) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid uuid"})
		return
	}
	actor, _ := app.ActorID(c)
	if id == actor {
		c.JSON(http.StatusConflict, app.H{"error": "cannot delete own account"})
		return
	}
	if err := uc.Repo.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "user not found"})
		return
	}
	// Kill every live session so the deleted account stops resolving at
	// the auth middleware.
	if err := uc.Sessions.RevokeAllForUser(c.Request.Context(), id); err != nil {
		uc.Log.Warn("session revocation failed", zap.String("user", id), zap.Error(err))
	}
	uc.audit(c.Request.Context(), "user.delete", "user", id, "", actor)
	c.JSON(http.StatusOK, app.H{"deleted": id})
}

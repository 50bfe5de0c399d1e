package app

import (
	"context"

	"asset_circulation_engine/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapFirstAdmin seeds the first admin account on an empty user table
// so a fresh deployment can be logged into at all.
func BootstrapFirstAdmin(ctx context.Context, a *App) {
	if a.Config.BootstrapAdmin == "" || a.Config.BootstrapPassword == "" {
		return
	}
	n, err := a.Repo.CountUsers(ctx)
	if err != nil {
		a.Log.Warn("bootstrap: count users", zap.Error(err))
		return
	}
	if n > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.Config.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		a.Log.Warn("bootstrap: hash password", zap.Error(err))
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     a.Config.BootstrapAdmin,
		DisplayName:  a.Config.BootstrapAdmin,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := a.Repo.CreateUser(ctx, u); err != nil {
		a.Log.Warn("bootstrap: create admin", zap.Error(err))
		return
	}
	a.Log.Info("bootstrap: first admin created", zap.String("username", u.Username))
}

// controllers/srv.go
package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"asset_circulation_engine/app"
	"asset_circulation_engine/db"
	"asset_circulation_engine/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Srv struct {
	Repo      *db.Repo
	Sessions  *session.Store
	Log       *zap.Logger
	WebOrigin string
	TTL       time.Duration
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      a.Repo,
		Sessions:  a.Sessions(),
		Log:       a.Log.Named("http"),
		WebOrigin: a.Config.WebOrigin,
		TTL:       a.Config.SessionTTL,
	}
}

// --- helpers ---

func (s *Srv) setSessionCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID, role string) error {
	_ = s.Repo.TouchUserLogin(ctx, userID) // login snapshot, non-blocking
	id := uuid.NewString()
	if err := s.Sessions.Create(ctx, id, userID, role); err != nil {
		return err
	}
	s.setSessionCookie(w, id, s.TTL)
	return nil
}

// audit never fails a committed operation
func (s *Srv) audit(ctx context.Context, action, entityType, entityID, details, actorID string) {
	if err := s.Repo.LogAudit(ctx, action, entityType, entityID, details, actorID); err != nil {
		s.Log.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}
}

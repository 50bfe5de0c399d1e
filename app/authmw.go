package app

import (
	"net/http"
	"time"

	"asset_circulation_engine/db"
	"asset_circulation_engine/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const SessionCookie = "ace_session"

// AuthRequired resolves the acting user from the session cookie. Every
// mutating operation runs behind it; no actor, no mutation.
func AuthRequired(sessions *session.Store, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(SessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		sess, err := sessions.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// Confirm the user still exists; look up once per request.
		u, err := repo.FindUserByID(c.Request.Context(), sess.UserID)
		if err != nil {
			_ = sessions.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		c.Set("userID", u.ID)
		c.Set("username", u.Username)
		c.Set("role", u.Role)
		c.Next()
	}
}

// TouchLastSeen records user activity, throttled through Redis so the user
// row is not rewritten on every request.
func TouchLastSeen(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("userID")
		if !ok {
			c.Next()
			return
		}
		uid, _ := v.(string)
		if uid == "" {
			c.Next()
			return
		}
		key := "ace:lastseen:" + uid
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.TouchUserSeen(c, uid) // best effort, never blocks the request
		}
		c.Next()
	}
}

// ActorID pulls the authenticated actor out of the gin context.
func ActorID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	uid, _ := v.(string)
	return uid, uid != ""
}

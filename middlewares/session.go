package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "ollamadash_session"
	sessionIDKey      = "sid"
	contextSessionKey = "sessionID"
)

// Sessions installs a signed cookie session. The cookie only carries an
// opaque id; chat state is kept server side under that id.
func Sessions(secret string) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(SessionCookieName, store)
}

// SessionID makes sure the current session has an id and exposes it through
// CurrentSessionID. It must run after Sessions.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		id, _ := session.Get(sessionIDKey).(string)
		if id == "" {
			id = uuid.NewString()
			session.Set(sessionIDKey, id)
			if err := session.Save(); err != nil {
				slog.Warn("failed to save session", "error", err)
			}
		}

		c.Set(contextSessionKey, id)
		c.Next()
	}
}

// CurrentSessionID returns the id set by SessionID.
func CurrentSessionID(c *gin.Context) string {
	return c.GetString(contextSessionKey)
}

package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/drdobbymazz/fittrack/internal/session"
)

const sessionContextKey = "fittrack.session"

// requireLogin resolves the session cookie against the store and puts the
// session on the echo context. Anonymous or expired visitors are redirected
// to the login page before any handler logic runs.
func requireLogin(sessions *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := sessions.Current(c)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// currentSession returns the session placed on the context by [requireLogin].
// The second return is false on routes outside the guarded group.
func currentSession(c echo.Context) (session.Session, bool) {
	sess, ok := c.Get(sessionContextKey).(session.Session)
	return sess, ok
}

package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CookieName is the cookie carrying the session identifier.
const CookieName = "fittrack_session"

// Issue creates a session for the identity and sets the session cookie on the
// response.
func (s *Store) Issue(c echo.Context, id Identity) Session {
	sess := s.Create(id)
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Current resolves the session for the request, if any.
func (s *Store) Current(c echo.Context) (Session, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	return s.Get(cookie.Value)
}

// Clear destroys the request's session and expires the cookie.
func (s *Store) Clear(c echo.Context) {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		s.Destroy(cookie.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

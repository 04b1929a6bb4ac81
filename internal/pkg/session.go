package pkg

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const SessionCookieName = "game_session"

// GenerateNewSessionID - returns a random session id.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// IsValidSessionID - reports whether id could have been issued by GenerateNewSessionID.
func IsValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// SessionID - returns the session id carried by the request, issuing a new cookie when
// the request has none or carries a foreign value.
func SessionID(writer http.ResponseWriter, req *http.Request, ttl time.Duration) string {
	if cookie, err := req.Cookie(SessionCookieName); err == nil && IsValidSessionID(cookie.Value) {
		return cookie.Value
	}

	sessionID := GenerateNewSessionID()
	http.SetCookie(writer, NewSessionCookie(sessionID, ttl))

	return sessionID
}

func NewSessionCookie(sessionID string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

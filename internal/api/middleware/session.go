package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sanad-aid/registry-api/internal/core/domain"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

// CookieName is the ambient session cookie. Clients never handle a token
// explicitly; the cookie travels with every request.
const CookieName = "registry_session"

const identityContextKey = "identity"

// SessionManager issues, validates, and revokes cookie-carried sessions.
// The cookie wraps a signed JWT referencing a server-side session record,
// so a logout revokes the session even while the cookie is still
// circulating.
type SessionManager struct {
	secret     string
	sessions   ports.SessionStore
	identities ports.IdentityRepository
	ttl        time.Duration
	secure     bool
}

func NewSessionManager(secret string, sessions ports.SessionStore, identities ports.IdentityRepository, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		secret:     secret,
		sessions:   sessions,
		identities: identities,
		ttl:        ttl,
		secure:     secure,
	}
}

// Issue opens a session for the identity and sets the cookie on the
// response.
func (m *SessionManager) Issue(c echo.Context, identity *domain.Identity) error {
	sessionID, err := m.sessions.Open(c.Request().Context(), identity.ID, m.ttl)
	if err != nil {
		return err
	}

	claims := jwt.MapClaims{
		"sid": sessionID,
		"sub": identity.ID,
		"exp": time.Now().Add(m.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret))
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear revokes the session referenced by the request cookie, if any, and
// expires the cookie. Both steps are best-effort so logout is idempotent.
func (m *SessionManager) Clear(c echo.Context) {
	if sessionID, _, ok := m.parseCookie(c); ok {
		_ = m.sessions.Revoke(c.Request().Context(), sessionID)
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware validates the session cookie, checks the server-side record
// is still live, loads the identity fresh from the repository, and
// injects it into the request context. Loading fresh means a role edit
// takes effect on the very next request.
func (m *SessionManager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, _, ok := m.parseCookie(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid session")
			}

			identityID, err := m.sessions.Resolve(c.Request().Context(), sessionID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			identity, err := m.identities.FindByID(c.Request().Context(), identityID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session identity no longer exists")
			}
			identity.Capabilities = identity.Classify().Set()

			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

func (m *SessionManager) parseCookie(c echo.Context) (sessionID, identityID string, ok bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", "", false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(m.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", "", false
	}

	sessionID, _ = claims["sid"].(string)
	identityID, _ = claims["sub"].(string)
	return sessionID, identityID, sessionID != ""
}

// CurrentIdentity extracts the identity injected by the session
// middleware.
func CurrentIdentity(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(*domain.Identity)
	return identity, ok
}

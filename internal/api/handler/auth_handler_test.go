package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanad-aid/registry-api/internal/api/middleware"
	"github.com/sanad-aid/registry-api/internal/core/domain"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

type stubAuthService struct {
	identity *domain.Identity
	loginErr error
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*domain.Identity, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	clone := *s.identity
	return &clone, nil
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.Identity, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &domain.Identity{ID: "id-1", Username: input.NationalID, Role: domain.RoleHead}, nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, _, _, _ string) error {
	return s.loginErr
}

type stubSessionStore struct {
	mu   sync.Mutex
	byID map[string]string
}

func (s *stubSessionStore) Open(_ context.Context, identityID string, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byID == nil {
		s.byID = make(map[string]string)
	}
	id := "sess-1"
	s.byID[id] = identityID
	return id, nil
}

func (s *stubSessionStore) Resolve(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if identityID, ok := s.byID[sessionID]; ok {
		return identityID, nil
	}
	return "", domain.ErrSessionExpired
}

func (s *stubSessionStore) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, sessionID)
	return nil
}

type stubIdentityRepo struct {
	identity *domain.Identity
}

func (r *stubIdentityRepo) FindByUsername(_ context.Context, _ string) (*domain.Identity, error) {
	return r.identity, nil
}

func (r *stubIdentityRepo) FindByID(_ context.Context, _ string) (*domain.Identity, error) {
	return r.identity, nil
}

func (r *stubIdentityRepo) Create(_ context.Context, i *domain.Identity) (*domain.Identity, error) {
	return i, nil
}

func (r *stubIdentityRepo) Update(_ context.Context, i *domain.Identity) (*domain.Identity, error) {
	return i, nil
}

func (r *stubIdentityRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *stubIdentityRepo) List(_ context.Context) ([]*domain.Identity, error) {
	return []*domain.Identity{r.identity}, nil
}

func newAuthHandlerFixture(svc *stubAuthService) (*AuthHandler, *echo.Echo) {
	sessions := middleware.NewSessionManager("secret", &stubSessionStore{},
		&stubIdentityRepo{identity: svc.identity}, time.Hour, false)
	e := echo.New()
	e.Validator = NewValidator()
	return NewAuthHandler(svc, sessions), e
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{identity: &domain.Identity{ID: "id-1", Username: "405857004", Role: domain.RoleHead}}
	h, e := newAuthHandlerFixture(svc)

	body := `{"username":"405857004","password":"Str0ngpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("login handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	found := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName && ck.Value != "" {
			found = true
			if !ck.HttpOnly {
				t.Fatalf("session cookie must be HttpOnly")
			}
		}
	}
	if !found {
		t.Fatalf("session cookie not set")
	}
	if !strings.Contains(rec.Body.String(), `"role":"head"`) {
		t.Fatalf("identity missing from response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_PropagatesClassifiedFailure(t *testing.T) {
	svc := &stubAuthService{loginErr: &domain.AuthError{Kind: domain.KindLockedOut, LockoutMinutes: 15}}
	h, e := newAuthHandlerFixture(svc)

	body := `{"username":"405857004","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	ae := domain.AsAuthError(err)
	if ae == nil || ae.Kind != domain.KindLockedOut || ae.LockoutMinutes != 15 {
		t.Fatalf("expected locked_out(15) to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	svc := &stubAuthService{identity: &domain.Identity{ID: "id-1", Username: "405857004", Role: domain.RoleHead}}
	h, e := newAuthHandlerFixture(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"405857004"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_RejectsNonNumericNationalID(t *testing.T) {
	svc := &stubAuthService{identity: &domain.Identity{ID: "id-1", Username: "405857004", Role: domain.RoleHead}}
	h, e := newAuthHandlerFixture(svc)

	body := `{"national_id":"not-a-number","display_name":"Al-Sayed family","password":"Str0ngpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Logout_IsIdempotent(t *testing.T) {
	svc := &stubAuthService{identity: &domain.Identity{ID: "id-1", Username: "405857004", Role: domain.RoleHead}}
	h, e := newAuthHandlerFixture(svc)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := h.Logout(c); err != nil {
			t.Fatalf("pass %d: logout error: %v", i+1, err)
		}
		if rec.Code != http.StatusNoContent {
			t.Fatalf("pass %d: expected 204, got %d", i+1, rec.Code)
		}
	}
}

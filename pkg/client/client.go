// Package client is the Go SDK for the registry API. It owns a cookie
// jar so the session travels with every call the way a browser would,
// resolves the current identity with caching and staleness control, and
// classifies login failures into machine-readable kinds.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// ErrNoHousehold is returned when the authenticated identity has no
// registered household record.
var ErrNoHousehold = errors.New("no household registered")

// Identity is the authenticated account as issued by the server. The SDK
// never constructs one locally; it only caches what the server returned.
type Identity struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	Phone        string   `json:"phone,omitempty"`
	IsProtected  bool     `json:"isProtected"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Household is the family record owned by a head identity.
type Household struct {
	ID          string `json:"id"`
	NationalID  string `json:"national_id"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone,omitempty"`
}

// PasswordPolicy mirrors the server's live password rule set.
type PasswordPolicy struct {
	MinLength           int  `json:"minLength"`
	RequireUppercase    bool `json:"requireUppercase"`
	RequireLowercase    bool `json:"requireLowercase"`
	RequireNumbers      bool `json:"requireNumbers"`
	RequireSpecialChars bool `json:"requireSpecialChars"`
}

// PublicSettings is the anonymous-readable slice of server settings.
// Maintenance keeps its historical stringly wire shape ("true"/"false").
type PublicSettings struct {
	Maintenance    string         `json:"maintenance"`
	PasswordPolicy PasswordPolicy `json:"passwordPolicy"`
}

// MaintenanceOn reports whether the maintenance flag is set.
func (p PublicSettings) MaintenanceOn() bool {
	return p.Maintenance == "true"
}

// Client is the HTTP transport for the registry API. The embedded cookie
// jar carries the session cookie across calls; no token is held or sent
// explicitly.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The replacement
// must carry its own cookie jar for sessions to survive across calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the default 15s per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New builds a Client for the given base URL with a fresh cookie jar.
func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type identityEnvelope struct {
	Identity *Identity `json:"identity"`
}

// Me returns the identity bound to the session cookie. A 401 means
// logged out and resolves to (nil, nil) rather than an error.
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyResponse(resp)
	}

	var env identityEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return env.Identity, nil
}

// Login authenticates a credential and stores the session cookie in the
// jar. Failures come back as a *Failure with a classified kind.
func (c *Client) Login(ctx context.Context, username, password string) (*Identity, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", body)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyResponse(resp)
	}

	var env identityEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return env.Identity, nil
}

// RegisterInput is the payload for household self-registration.
type RegisterInput struct {
	NationalID  string `json:"national_id"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone,omitempty"`
	Password    string `json:"password"`
}

// Register creates a household head account. On success the server also
// opens a session, so the jar holds a live cookie afterwards.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*Identity, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/register", input)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, classifyResponse(resp)
	}

	var env identityEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return env.Identity, nil
}

// Logout revokes the server session. Repeat calls are harmless.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return classifyResponse(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// GetPublicSettings fetches the anonymous-readable settings slice.
func (c *Client) GetPublicSettings(ctx context.Context) (PublicSettings, error) {
	var settings PublicSettings
	resp, err := c.do(ctx, http.MethodGet, "/settings/public", nil)
	if err != nil {
		return settings, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return settings, classifyResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		return settings, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// MyHousehold fetches the household record owned by the current session's
// identity. Returns ErrNoHousehold when none is registered.
func (c *Client) MyHousehold(ctx context.Context) (*Household, error) {
	resp, err := c.do(ctx, http.MethodGet, "/households/mine", nil)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, ErrNoHousehold
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyResponse(resp)
	}

	var household Household
	if err := json.NewDecoder(resp.Body).Decode(&household); err != nil {
		return nil, fmt.Errorf("decode household: %w", err)
	}
	return &household, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/jobboard/internal/types"
)

// ErrNotLoggedIn is returned when a page needs a user and there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// WrongUserTypeError is returned when the logged-in user may not use a page.
type WrongUserTypeError struct {
	Have types.UserType
	Want []types.UserType
}

func (e *WrongUserTypeError) Error() string {
	want := make([]string, len(e.Want))
	for i, t := range e.Want {
		want[i] = string(t)
	}
	return fmt.Sprintf("this page is for %s accounts, you are logged in as %s", strings.Join(want, " or "), e.Have)
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*types.LoginResponse, error)
}

// Provider is the single source of the current session.
// It satisfies api.TokenSource.
type Provider struct {
	mu    sync.RWMutex
	store Store
	state State
	now   func() time.Time
}

// NewProvider loads the persisted session. An expired token is discarded.
func NewProvider(store Store) (*Provider, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}

	p := &Provider{store: store, state: *state, now: time.Now}
	if p.state.Token != "" && p.expired(p.state.Token) {
		log.Printf("[session] stored token expired, logging out")
		p.clear()
	}
	return p, nil
}

func (p *Provider) expired(token string) bool {
	exp, ok := tokenExpiry(token)
	return ok && !p.now().Before(exp)
}

// tokenExpiry reads the exp claim of a JWT without verifying its signature;
// the backend owns the key. Opaque tokens have no known expiry.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// User returns the logged-in user.
func (p *Provider) User() (*types.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.state.Token == "" || p.state.User == nil {
		return nil, false
	}
	u := *p.state.User
	return &u, true
}

// Token returns the bearer token, or "" when logged out or expired.
func (p *Provider) Token() string {
	p.mu.RLock()
	token := p.state.Token
	p.mu.RUnlock()

	if token != "" && p.expired(token) {
		p.ClearToken()
		return ""
	}
	return token
}

// ClearToken forgets the session, in memory and in the store.
func (p *Provider) ClearToken() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clear()
}

func (p *Provider) clear() {
	p.state = State{}
	if err := p.store.Clear(); err != nil {
		log.Printf("[session] failed to clear stored session: %v", err)
	}
}

// Login authenticates and persists the new session.
func (p *Provider) Login(ctx context.Context, auth Authenticator, email, password string) (*types.User, error) {
	req := types.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	resp, err := auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp == nil || resp.User == nil || resp.Token == "" {
		return nil, fmt.Errorf("login failed: no session returned")
	}
	if !resp.User.Type.Valid() {
		return nil, fmt.Errorf("login failed: unknown user type %q", resp.User.Type)
	}

	state := State{Token: resp.Token, User: resp.User}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.Save(&state); err != nil {
		return nil, err
	}
	p.state = state

	u := *resp.User
	return &u, nil
}

// Logout ends the session.
func (p *Provider) Logout() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = State{}
	return p.store.Clear()
}

// Require returns the logged-in user when their type is one of allowed.
// With no allowed types any logged-in user passes.
func (p *Provider) Require(allowed ...types.UserType) (*types.User, error) {
	u, ok := p.User()
	if !ok {
		return nil, ErrNotLoggedIn
	}
	if len(allowed) > 0 && !slices.Contains(allowed, u.Type) {
		return nil, &WrongUserTypeError{Have: u.Type, Want: allowed}
	}
	return u, nil
}

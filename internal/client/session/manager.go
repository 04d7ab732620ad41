// Package session owns the authentication state of the client: the
// persisted bearer token, the resolved user, and the state machine
//
//	Unknown ──Restore──▶ Authenticated | Unauthenticated
//	Unauthenticated ──Login──▶ Authenticated
//	Authenticated ──Logout / failed Refresh──▶ Unauthenticated
//
// The Manager is the only writer of this state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type State int

const (
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrUserResolution is returned by Login when the stored token could not be
// turned into a user.
var ErrUserResolution = errors.New("cannot resolve current user")

// UserResolver fetches the user owning the current bearer token.
type UserResolver interface {
	GetUserLogged(ctx context.Context) (models.User, error)
}

// TokenSlot is the persisted token storage the manager writes to.
type TokenSlot interface {
	AccessToken(ctx context.Context) (string, error)
	Put(ctx context.Context, token string) error
}

// UserStore mirrors the resolved user into persistent storage. Load
// returns nil when nothing is mirrored.
type UserStore interface {
	Save(ctx context.Context, u models.User) error
	Load(ctx context.Context) (*models.User, error)
}

type Manager struct {
	tokens TokenSlot
	mirror UserStore
	eraser Eraser
	users  UserResolver
	log    logging.Logger

	mu      sync.RWMutex
	state   State
	user    *models.User
	loading bool

	settleOnce sync.Once
	settled    chan struct{}
}

func NewManager(tokens TokenSlot, mirror UserStore, eraser Eraser, users UserResolver, log logging.Logger) *Manager {
	return &Manager{
		tokens:  tokens,
		mirror:  mirror,
		eraser:  eraser,
		users:   users,
		log:     log.With("component", "session"),
		state:   StateUnknown,
		loading: true,
		settled: make(chan struct{}),
	}
}

// Restore runs once at startup. A stored token is checked against the
// service; if the service rejects it the session is fully logged out.
// Whatever happens, the session is marked settled.
func (m *Manager) Restore(ctx context.Context) State {
	defer m.markSettled()
	m.Seed(ctx)

	token, err := m.tokens.AccessToken(ctx)
	if err != nil {
		m.log.Warn(ctx, "cannot read stored token", "error", err)
		m.setState(StateUnauthenticated, nil)
		return StateUnauthenticated
	}
	if token == "" {
		m.setState(StateUnauthenticated, nil)
		return StateUnauthenticated
	}

	u, err := m.users.GetUserLogged(ctx)
	if err != nil {
		m.log.Info(ctx, "stored token rejected, logging out", "error", err)
		m.Logout(ctx)
		return StateUnauthenticated
	}

	m.establish(ctx, u)
	return StateAuthenticated
}

// Seed shows the mirrored user from the last session until Restore
// settles. It does nothing once the session has left the unknown state.
func (m *Manager) Seed(ctx context.Context) (models.User, bool) {
	if m.State() != StateUnknown {
		return models.User{}, false
	}
	u, err := m.mirror.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "cannot read mirrored user", "error", err)
		return models.User{}, false
	}
	if u == nil {
		return models.User{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateUnknown {
		return models.User{}, false
	}
	m.user = u
	return *u, true
}

// Login stores token and resolves the user it belongs to.
//
// When resolution fails the token is left in storage and no user is
// established; the caller must treat the login as failed.
func (m *Manager) Login(ctx context.Context, token string) error {
	if err := m.tokens.Put(ctx, token); err != nil {
		return err
	}

	u, err := m.users.GetUserLogged(ctx)
	if err != nil {
		m.setState(StateUnauthenticated, nil)
		return fmt.Errorf("%w: %w", ErrUserResolution, err)
	}

	m.establish(ctx, u)
	return nil
}

// Logout clears the in-memory user, the stored token and the user mirror.
// Storage failures are logged; logout itself always succeeds.
func (m *Manager) Logout(ctx context.Context) {
	m.setState(StateUnauthenticated, nil)
	if err := m.eraser.Erase(ctx); err != nil {
		m.log.Error(ctx, "cannot erase stored session", "error", err)
	}
}

// Refresh re-resolves the user of an authenticated session. A failure is
// treated as a revoked token and forces a logout.
func (m *Manager) Refresh(ctx context.Context) (models.User, error) {
	if !m.Authenticated() {
		return models.User{}, common.ErrNotAuthenticated
	}

	u, err := m.users.GetUserLogged(ctx)
	if err != nil {
		m.log.Info(ctx, "token no longer accepted, logging out", "error", err)
		m.Logout(ctx)
		return models.User{}, fmt.Errorf("%w: %w", ErrUserResolution, err)
	}

	m.establish(ctx, u)
	return u, nil
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) Authenticated() bool {
	return m.State() == StateAuthenticated
}

// User returns the current user. While loading this is the mirrored user
// of the last session; once settled it is only set when authenticated.
func (m *Manager) User() (u models.User, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// Loading reports whether Restore has not finished yet.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Settled is closed once the startup restore has completed.
func (m *Manager) Settled() <-chan struct{} {
	return m.settled
}

func (m *Manager) establish(ctx context.Context, u models.User) {
	m.setState(StateAuthenticated, &u)
	if err := m.mirror.Save(ctx, u); err != nil {
		m.log.Warn(ctx, "cannot mirror user", "error", err)
	}
	m.log.Debug(ctx, "session established", "user_id", u.ID)
}

func (m *Manager) setState(s State, u *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	m.user = u
}

func (m *Manager) markSettled() {
	m.settleOnce.Do(func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		close(m.settled)
	})
}

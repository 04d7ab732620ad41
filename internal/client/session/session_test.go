package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	mu    sync.Mutex
	user  models.User
	err   error
	calls int
}

func (f *fakeResolver) GetUserLogged(ctx context.Context) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.user, f.err
}

type failingEraser struct{ err error }

func (e failingEraser) Erase(ctx context.Context) error { return e.err }

type fixture struct {
	repo     metadata.Repository
	tokens   *TokenStore
	mirror   *UserMirror
	resolver *fakeResolver
	mgr      *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := metadata.NewSQLiteRepository(db)
	f := &fixture{
		repo:     repo,
		tokens:   NewTokenStore(repo),
		mirror:   NewUserMirror(repo),
		resolver: &fakeResolver{user: models.User{ID: "user-1", Name: "Dicoding", Email: "d@example.com"}},
	}
	f.mgr = NewManager(f.tokens, f.mirror, NewSQLEraser(db), f.resolver, logging.Discard())
	return f
}

func TestTokenStore_EmptyWhenUnset(t *testing.T) {
	f := newFixture(t)
	tok, err := f.tokens.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", tok)
}

func TestUserMirror_SaveLoad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.mirror.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, f.mirror.Save(ctx, models.User{ID: "u", Name: "n", Email: "e"}))
	u, err = f.mirror.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, models.User{ID: "u", Name: "n", Email: "e"}, *u)
}

func TestSQLEraser_KeepsPreferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.tokens.Put(ctx, "tok"))
	require.NoError(t, f.mirror.Save(ctx, models.User{ID: "u"}))
	require.NoError(t, f.repo.Set(ctx, common.MetadataKeyLocale, []byte("id")))

	f.mgr.Logout(ctx)

	tok, err := f.tokens.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", tok)
	u, err := f.mirror.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	loc, err := f.repo.Get(ctx, common.MetadataKeyLocale)
	require.NoError(t, err)
	assert.Equal(t, []byte("id"), loc)
}

func TestSeed_ShowsMirroredUserWhileLoading(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.tokens.Put(ctx, "stale"))
	require.NoError(t, f.mirror.Save(ctx, models.User{ID: "old", Name: "Old Name"}))

	u, ok := f.mgr.Seed(ctx)
	require.True(t, ok)
	assert.Equal(t, "Old Name", u.Name)

	assert.True(t, f.mgr.Loading())
	assert.False(t, f.mgr.Authenticated())
	got, ok := f.mgr.User()
	require.True(t, ok)
	assert.Equal(t, "old", got.ID)

	f.resolver.err = errors.New("401")
	f.mgr.Restore(ctx)

	_, ok = f.mgr.User()
	assert.False(t, ok)
	_, ok = f.mgr.Seed(ctx)
	assert.False(t, ok, "seed is ignored once settled")
}

func TestSeed_NothingMirrored(t *testing.T) {
	f := newFixture(t)
	_, ok := f.mgr.Seed(context.Background())
	assert.False(t, ok)
	_, ok = f.mgr.User()
	assert.False(t, ok)
}

func TestRestore_ReplacesSeededUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.tokens.Put(ctx, "good"))
	require.NoError(t, f.mirror.Save(ctx, models.User{ID: "user-1", Name: "Before Rename"}))

	f.mgr.Restore(ctx)

	u, ok := f.mgr.User()
	require.True(t, ok)
	assert.Equal(t, "Dicoding", u.Name)
}

func TestManager_InitialState(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, StateUnknown, f.mgr.State())
	assert.True(t, f.mgr.Loading())
	_, ok := f.mgr.User()
	assert.False(t, ok)
}

func TestRestore_NoToken(t *testing.T) {
	f := newFixture(t)

	st := f.mgr.Restore(context.Background())

	assert.Equal(t, StateUnauthenticated, st)
	assert.False(t, f.mgr.Loading())
	assert.Zero(t, f.resolver.calls)
	select {
	case <-f.mgr.Settled():
	default:
		t.Fatal("session not settled")
	}
}

func TestRestore_ValidToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.tokens.Put(ctx, "good"))

	st := f.mgr.Restore(ctx)

	assert.Equal(t, StateAuthenticated, st)
	assert.True(t, f.mgr.Authenticated())
	u, ok := f.mgr.User()
	require.True(t, ok)
	assert.Equal(t, "user-1", u.ID)

	mirrored, err := f.mirror.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, mirrored)
	assert.Equal(t, "Dicoding", mirrored.Name)
}

func TestRestore_StaleTokenLogsOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.tokens.Put(ctx, "stale"))
	require.NoError(t, f.mirror.Save(ctx, models.User{ID: "old"}))
	f.resolver.err = errors.New("401")

	st := f.mgr.Restore(ctx)

	assert.Equal(t, StateUnauthenticated, st)
	assert.False(t, f.mgr.Loading())
	tok, err := f.tokens.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", tok)
	u, err := f.mirror.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRestore_SettlesOnlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mgr.Restore(ctx)
	assert.NotPanics(t, func() { f.mgr.Restore(ctx) })
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mgr.Restore(ctx)

	require.NoError(t, f.mgr.Login(ctx, "fresh"))

	assert.True(t, f.mgr.Authenticated())
	tok, err := f.tokens.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
}

func TestLogin_ResolutionFailureKeepsToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mgr.Restore(ctx)
	f.resolver.err = errors.New("boom")

	err := f.mgr.Login(ctx, "fresh")

	require.ErrorIs(t, err, ErrUserResolution)
	assert.False(t, f.mgr.Authenticated())
	_, ok := f.mgr.User()
	assert.False(t, ok)
	tok, err := f.tokens.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
}

func TestLogout_ClearsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.mgr.Login(ctx, "tok"))

	f.mgr.Logout(ctx)

	assert.Equal(t, StateUnauthenticated, f.mgr.State())
	tok, err := f.tokens.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", tok)
}

func TestLogout_StorageErrorIsSwallowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mgr := NewManager(f.tokens, f.mirror, failingEraser{err: errors.New("disk")}, f.resolver, logging.Discard())
	require.NoError(t, mgr.Login(ctx, "tok"))

	assert.NotPanics(t, func() { mgr.Logout(ctx) })
	assert.False(t, mgr.Authenticated())
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("not authenticated", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.mgr.Refresh(ctx)
		require.ErrorIs(t, err, common.ErrNotAuthenticated)
	})

	t.Run("updates user", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.mgr.Login(ctx, "tok"))
		f.resolver.user.Name = "Renamed"

		u, err := f.mgr.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", u.Name)
	})

	t.Run("revoked token forces logout", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.mgr.Login(ctx, "tok"))
		f.resolver.err = errors.New("401")

		_, err := f.mgr.Refresh(ctx)
		require.ErrorIs(t, err, ErrUserResolution)
		assert.False(t, f.mgr.Authenticated())
		tok, _ := f.tokens.AccessToken(ctx)
		assert.Equal(t, "", tok)
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", StateUnknown.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := TokenExpiry(signed)
	require.NoError(t, err)
	assert.True(t, exp.Equal(got))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "x"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = TokenExpiry(noExp)
	require.ErrorIs(t, err, ErrNoExpiry)

	_, err = TokenExpiry("not-a-jwt")
	require.Error(t, err)
}

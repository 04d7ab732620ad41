package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

// TokenStore is the single persisted bearer-token slot. It also serves as
// the client.TokenSource of the REST client.
type TokenStore struct {
	repo metadata.Repository
}

func NewTokenStore(repo metadata.Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// AccessToken returns the stored token, "" when none is set.
func (s *TokenStore) AccessToken(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.MetadataKeyAccessToken)
	if err != nil {
		return "", fmt.Errorf("read access token: %w", err)
	}
	return string(v), nil
}

func (s *TokenStore) Put(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, common.MetadataKeyAccessToken, []byte(token)); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	return nil
}

// UserMirror keeps a JSON copy of the resolved user in the local state
// store.
type UserMirror struct {
	repo metadata.Repository
}

func NewUserMirror(repo metadata.Repository) *UserMirror {
	return &UserMirror{repo: repo}
}

func (m *UserMirror) Save(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.repo.Set(ctx, common.MetadataKeyUser, b); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Load returns the mirrored user, or nil when nothing is stored.
func (m *UserMirror) Load(ctx context.Context) (*models.User, error) {
	b, err := m.repo.Get(ctx, common.MetadataKeyUser)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

// Eraser removes the token and the user mirror together.
type Eraser interface {
	Erase(ctx context.Context) error
}

// SQLEraser deletes both keys inside one transaction.
type SQLEraser struct {
	db *sql.DB
}

func NewSQLEraser(db *sql.DB) *SQLEraser {
	return &SQLEraser{db: db}
}

func (e *SQLEraser) Erase(ctx context.Context) error {
	return dbx.WithTx(ctx, e.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return eraseKeys(ctx, metadata.NewSQLiteRepository(tx))
	})
}

func eraseKeys(ctx context.Context, repo metadata.Repository) error {
	if err := repo.Delete(ctx, common.MetadataKeyAccessToken); err != nil {
		return err
	}
	return repo.Delete(ctx, common.MetadataKeyUser)
}

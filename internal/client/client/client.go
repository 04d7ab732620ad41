package client

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// Client is the contract of the remote notes service.
type Client interface {
	Register(ctx context.Context, r models.Registration) error
	Login(ctx context.Context, c models.Credentials) (models.LoginResult, error)
	GetUserLogged(ctx context.Context) (models.User, error)

	AddNote(ctx context.Context, n models.NewNote) (models.Note, error)
	GetActiveNotes(ctx context.Context) ([]models.Note, error)
	GetArchivedNotes(ctx context.Context) ([]models.Note, error)
	GetNote(ctx context.Context, id string) (models.Note, error)
	ArchiveNote(ctx context.Context, id string) error
	UnarchiveNote(ctx context.Context, id string) error
	DeleteNote(ctx context.Context, id string) error
}

// TokenSource supplies the bearer token attached to authenticated calls.
// It is read on every request, so a token stored by login is picked up
// by the very next call.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

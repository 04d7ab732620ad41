// Package notes holds the note list and detail pages: the derived view
// over fetched notes and the archive, unarchive and delete handlers.
//
// Every handler calls the remote store first and only then re-fetches;
// nothing is updated optimistically.
package notes

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/notify"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

var (
	// ErrActionInFlight is returned when the same note already has an
	// action running.
	ErrActionInFlight = errors.New("another action on this note is in flight")
	// ErrWrongVariant is returned for archive on the archived list and
	// unarchive on the active list.
	ErrWrongVariant = errors.New("action not available on this list")
)

// Store is the slice of the remote client the pages use.
type Store interface {
	GetActiveNotes(ctx context.Context) ([]models.Note, error)
	GetArchivedNotes(ctx context.Context) ([]models.Note, error)
	GetNote(ctx context.Context, id string) (models.Note, error)
	ArchiveNote(ctx context.Context, id string) error
	UnarchiveNote(ctx context.Context, id string) error
	DeleteNote(ctx context.Context, id string) error
}

type Notifier interface {
	Post(kind notify.Kind, message string) string
}

type Translator interface {
	T(key string, args ...any) string
}

var _ Store = client.Client(nil)

type Variant int

const (
	Active Variant = iota
	Archived
)

func (v Variant) String() string {
	if v == Archived {
		return "archived"
	}
	return "active"
}

type ListPage struct {
	variant  Variant
	store    Store
	notifier Notifier
	tr       Translator
	log      logging.Logger

	mu     sync.Mutex
	notes  []models.Note
	query  string
	loaded bool
	busy   map[string]struct{}
}

func NewListPage(v Variant, store Store, notifier Notifier, tr Translator, log logging.Logger) *ListPage {
	return &ListPage{
		variant:  v,
		store:    store,
		notifier: notifier,
		tr:       tr,
		log:      log.With("page", v.String()),
		busy:     make(map[string]struct{}),
	}
}

func (p *ListPage) Variant() Variant { return p.variant }

// Load fetches the page's notes. On failure the page shows an empty list
// and the error is returned for logging; no notification is posted.
func (p *ListPage) Load(ctx context.Context) error {
	notes, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loaded = true
	if err != nil {
		p.log.Warn(ctx, "cannot load notes", "error", err)
		p.notes = nil
		return err
	}
	p.notes = notes
	return nil
}

func (p *ListPage) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *ListPage) SetQuery(q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = q
}

func (p *ListPage) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// View projects the current notes through the current query.
func (p *ListPage) View(label func(time.Time) string) Projection {
	p.mu.Lock()
	notes, query := p.notes, p.query
	p.mu.Unlock()
	return Build(notes, query, label)
}

func (p *ListPage) Archive(ctx context.Context, id string) error {
	if p.variant != Active {
		return ErrWrongVariant
	}
	return p.mutate(ctx, id, p.store.ArchiveNote, "alert.noteArchived", "alert.failedArchive")
}

func (p *ListPage) Unarchive(ctx context.Context, id string) error {
	if p.variant != Archived {
		return ErrWrongVariant
	}
	return p.mutate(ctx, id, p.store.UnarchiveNote, "alert.noteUnarchived", "alert.failedUnarchive")
}

// ToggleArchive archives on the active list and unarchives on the archived
// one.
func (p *ListPage) ToggleArchive(ctx context.Context, id string) error {
	if p.variant == Archived {
		return p.Unarchive(ctx, id)
	}
	return p.Archive(ctx, id)
}

func (p *ListPage) Delete(ctx context.Context, id string) error {
	return p.mutate(ctx, id, p.store.DeleteNote, "alert.noteDeleted", "alert.failedDelete")
}

func (p *ListPage) mutate(ctx context.Context, id string, op func(context.Context, string) error, okKey, failKey string) error {
	if !p.acquire(id) {
		return ErrActionInFlight
	}
	defer p.release(id)

	if err := op(ctx, id); err != nil {
		p.log.Error(ctx, "note action failed", "note_id", id, "error", err)
		p.notifier.Post(notify.KindError, p.tr.T(failKey))
		return err
	}

	notes, err := p.fetch(ctx)
	if err != nil {
		p.log.Warn(ctx, "re-fetch after action failed, keeping previous list", "note_id", id, "error", err)
	} else {
		p.mu.Lock()
		p.notes = notes
		p.mu.Unlock()
	}

	p.notifier.Post(notify.KindSuccess, p.tr.T(okKey))
	return nil
}

func (p *ListPage) fetch(ctx context.Context) ([]models.Note, error) {
	if p.variant == Archived {
		return p.store.GetArchivedNotes(ctx)
	}
	return p.store.GetActiveNotes(ctx)
}

func (p *ListPage) acquire(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.busy[id]; ok {
		return false
	}
	p.busy[id] = struct{}{}
	return true
}

func (p *ListPage) release(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.busy, id)
}

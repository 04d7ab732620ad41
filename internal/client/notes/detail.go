package notes

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/notify"
	"github.com/dmitrijs2005/gophnotes/internal/client/router"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

var ErrNoteNotLoaded = errors.New("no note loaded")

type DetailState int

const (
	DetailLoading DetailState = iota
	DetailReady
	DetailNotFound
)

// DetailPage shows one note. Its actions return the path to navigate to on
// success; on failure the page stays where it is.
type DetailPage struct {
	store    Store
	notifier Notifier
	tr       Translator
	log      logging.Logger

	mu    sync.Mutex
	state DetailState
	note  models.Note
	busy  bool
}

func NewDetailPage(store Store, notifier Notifier, tr Translator, log logging.Logger) *DetailPage {
	return &DetailPage{
		store:    store,
		notifier: notifier,
		tr:       tr,
		log:      log.With("page", "detail"),
	}
}

// Load fetches the note. Any failure, including a missing note, leaves the
// page in the not-found state.
func (p *DetailPage) Load(ctx context.Context, id string) error {
	p.mu.Lock()
	p.state = DetailLoading
	p.note = models.Note{}
	p.mu.Unlock()

	n, err := p.store.GetNote(ctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.log.Info(ctx, "note not available", "note_id", id, "error", err)
		p.state = DetailNotFound
		return err
	}
	p.note = n
	p.state = DetailReady
	return nil
}

func (p *DetailPage) State() DetailState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *DetailPage) Note() (models.Note, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.note, p.state == DetailReady
}

// Archive archives the loaded note and returns the archives path.
func (p *DetailPage) Archive(ctx context.Context) (string, error) {
	return p.act(ctx, p.store.ArchiveNote, "alert.noteArchived", "alert.failedArchive", router.PathArchives)
}

// Unarchive moves the loaded note back to the active list and returns the
// home path.
func (p *DetailPage) Unarchive(ctx context.Context) (string, error) {
	return p.act(ctx, p.store.UnarchiveNote, "alert.noteUnarchived", "alert.failedUnarchive", router.PathHome)
}

// ToggleArchive picks Archive or Unarchive from the note's current flag.
func (p *DetailPage) ToggleArchive(ctx context.Context) (string, error) {
	n, ok := p.Note()
	if ok && n.Archived {
		return p.Unarchive(ctx)
	}
	return p.Archive(ctx)
}

func (p *DetailPage) Delete(ctx context.Context) (string, error) {
	return p.act(ctx, p.store.DeleteNote, "alert.noteDeleted", "alert.failedDelete", router.PathHome)
}

func (p *DetailPage) act(ctx context.Context, op func(context.Context, string) error, okKey, failKey, next string) (string, error) {
	p.mu.Lock()
	if p.state != DetailReady {
		p.mu.Unlock()
		return "", ErrNoteNotLoaded
	}
	if p.busy {
		p.mu.Unlock()
		return "", ErrActionInFlight
	}
	p.busy = true
	id := p.note.ID
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	if err := op(ctx, id); err != nil {
		p.log.Error(ctx, "note action failed", "note_id", id, "error", err)
		p.notifier.Post(notify.KindError, p.tr.T(failKey))
		return "", err
	}

	p.notifier.Post(notify.KindSuccess, p.tr.T(okKey))
	return next, nil
}

package notes

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/notify"
)

var errRemote = errors.New("remote failed")

// fakeStore keeps notes the way the service would: one slice, split by
// the Archived flag on read.
type fakeStore struct {
	mu    sync.Mutex
	notes []models.Note

	FailMutation bool
	FailFetch    bool
	Fetches      int
	Calls        []string

	// block, when set, is waited on inside every mutation.
	block chan struct{}
}

func (f *fakeStore) list(archived bool) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Fetches++
	if f.FailFetch {
		return nil, errRemote
	}
	var out []models.Note
	for _, n := range f.notes {
		if n.Archived == archived {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeStore) GetActiveNotes(ctx context.Context) ([]models.Note, error) {
	return f.list(false)
}

func (f *fakeStore) GetArchivedNotes(ctx context.Context) ([]models.Note, error) {
	return f.list(true)
}

func (f *fakeStore) GetNote(ctx context.Context, id string) (models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Note{}, errRemote
}

func (f *fakeStore) mutate(name, id string, fn func(i int)) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, name+":"+id)
	if f.FailMutation {
		return errRemote
	}
	for i := range f.notes {
		if f.notes[i].ID == id {
			fn(i)
			return nil
		}
	}
	return errRemote
}

func (f *fakeStore) ArchiveNote(ctx context.Context, id string) error {
	return f.mutate("archive", id, func(i int) { f.notes[i].Archived = true })
}

func (f *fakeStore) UnarchiveNote(ctx context.Context, id string) error {
	return f.mutate("unarchive", id, func(i int) { f.notes[i].Archived = false })
}

func (f *fakeStore) DeleteNote(ctx context.Context, id string) error {
	return f.mutate("delete", id, func(i int) { f.notes = append(f.notes[:i], f.notes[i+1:]...) })
}

type posted struct {
	Kind    notify.Kind
	Message string
}

type fakeNotifier struct {
	mu    sync.Mutex
	Posts []posted
}

func (n *fakeNotifier) Post(kind notify.Kind, message string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Posts = append(n.Posts, posted{kind, message})
	return message
}

func (n *fakeNotifier) Last() posted {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Posts) == 0 {
		return posted{}
	}
	return n.Posts[len(n.Posts)-1]
}

type keyTranslator struct{}

func (keyTranslator) T(key string, args ...any) string { return key }

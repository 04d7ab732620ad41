// Package composer captures a new note: a length-capped title, a rich-text
// body, validation and submission.
package composer

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/notify"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const (
	TitleMaxRunes = 30
	BodyMinRunes  = 10

	// emptyBody is what a cleared rich-text editor leaves behind.
	emptyBody = "<br>"
)

var (
	ErrFieldsRequired = errors.New("title and body are required")
	ErrBodyTooShort   = errors.New("body is too short")
	ErrSubmitInFlight = errors.New("submission already in flight")
)

// ValidationError is shown inline; it never reaches the service.
type ValidationError struct {
	Err error
	// Key is the catalog key of the user-facing message.
	Key string
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Validate checks, in order: both fields present (a lone <br> counts as an
// empty body), then at least BodyMinRunes characters of body text.
func Validate(title, body string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" || body == emptyBody {
		return &ValidationError{Err: ErrFieldsRequired, Key: "alert.fillAllFields"}
	}
	if utf8.RuneCountInString(stripTags(body)) < BodyMinRunes {
		return &ValidationError{Err: ErrBodyTooShort, Key: "alert.bodyLength"}
	}
	return nil
}

// TitleField never holds more than TitleMaxRunes runes.
type TitleField struct {
	value string
}

// Set replaces the value unless v is too long, in which case the previous
// value stays and false is returned.
func (f *TitleField) Set(v string) bool {
	if utf8.RuneCountInString(v) > TitleMaxRunes {
		return false
	}
	f.value = v
	return true
}

func (f *TitleField) Value() string { return f.value }

func (f *TitleField) Remaining() int {
	return TitleMaxRunes - utf8.RuneCountInString(f.value)
}

type Creator interface {
	AddNote(ctx context.Context, n models.NewNote) (models.Note, error)
}

type Notifier interface {
	Post(kind notify.Kind, message string) string
}

type Translator interface {
	T(key string, args ...any) string
}

type Composer struct {
	store    Creator
	notifier Notifier
	tr       Translator
	log      logging.Logger

	mu         sync.Mutex
	title      TitleField
	editor     Editor
	inline     string
	submitting bool
}

func New(store Creator, editor Editor, notifier Notifier, tr Translator, log logging.Logger) *Composer {
	return &Composer{
		store:    store,
		editor:   editor,
		notifier: notifier,
		tr:       tr,
		log:      log.With("component", "composer"),
	}
}

func (c *Composer) SetTitle(v string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title.Set(v)
}

func (c *Composer) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title.Value()
}

func (c *Composer) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title.Remaining()
}

func (c *Composer) SetBody(src string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor.SetSource(src)
}

func (c *Composer) Body() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor.Content()
}

// InlineError is the message of the last failed validation, "" otherwise.
func (c *Composer) InlineError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inline
}

// Submit validates, sanitises and sends the note. Validation failures set
// the inline error and return a *ValidationError. A remote failure posts an
// error notification and keeps title and body for another attempt.
func (c *Composer) Submit(ctx context.Context) (models.Note, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return models.Note{}, ErrSubmitInFlight
	}
	title := c.title.Value()
	if err := Validate(title, c.editor.Content()); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			c.inline = c.tr.T(ve.Key)
		}
		c.mu.Unlock()
		return models.Note{}, err
	}
	c.inline = ""
	c.submitting = true
	body := c.editor.SanitizedContent()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	n, err := c.store.AddNote(ctx, models.NewNote{Title: title, Body: body})
	if err != nil {
		c.log.Error(ctx, "cannot save note", "error", err)
		c.notifier.Post(notify.KindError, c.tr.T("alert.failedSave"))
		return models.Note{}, err
	}

	c.notifier.Post(notify.KindSuccess, c.tr.T("alert.noteSaved"))
	return n, nil
}

// Reset clears the composer for the next note.
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title = TitleField{}
	_ = c.editor.SetSource("")
	c.inline = ""
}

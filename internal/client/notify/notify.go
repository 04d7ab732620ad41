// Package notify implements the transient notification queue shown to the
// user after every action.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarn    Kind = "warn"
)

const (
	MaxActive       = 3
	DefaultDuration = 3 * time.Second
)

type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}

// Timer is the part of *time.Timer the channel needs.
type Timer interface {
	Stop() bool
}

type entry struct {
	n     Notification
	timer Timer
}

type Option func(*Channel)

// WithDuration overrides the default lifetime of a notification.
func WithDuration(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithAfterFunc replaces time.AfterFunc, letting tests fire timers by hand.
func WithAfterFunc(fn func(time.Duration, func()) Timer) Option {
	return func(c *Channel) { c.afterFunc = fn }
}

func WithClock(now func() time.Time) Option {
	return func(c *Channel) { c.now = now }
}

// Channel holds at most MaxActive notifications, oldest first. Each one
// is removed when its timer fires, when it is dismissed, or when a newer
// one pushes it out.
type Channel struct {
	mu       sync.Mutex
	items    []entry
	listener func(Notification)

	duration  time.Duration
	afterFunc func(time.Duration, func()) Timer
	now       func() time.Time
}

func NewChannel(opts ...Option) *Channel {
	c := &Channel{
		duration: DefaultDuration,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// OnPost registers fn to be called with every posted notification. fn runs
// on the posting goroutine, outside the channel lock.
func (c *Channel) OnPost(fn func(Notification)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = fn
}

func (c *Channel) Post(kind Kind, message string) string {
	return c.PostFor(kind, message, 0)
}

// PostFor posts a notification living for d; d <= 0 means the channel
// default.
func (c *Channel) PostFor(kind Kind, message string, d time.Duration) string {
	if d <= 0 {
		d = c.duration
	}
	n := Notification{
		ID:        newID(),
		Kind:      kind,
		Message:   message,
		Duration:  d,
		CreatedAt: c.now(),
	}

	c.mu.Lock()
	e := entry{n: n}
	e.timer = c.afterFunc(d, func() { c.Dismiss(n.ID) })
	c.items = append(c.items, e)
	for len(c.items) > MaxActive {
		c.items[0].timer.Stop()
		c.items = c.items[1:]
	}
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(n)
	}
	return n.ID
}

// Dismiss removes the notification with the given id. Unknown ids are
// ignored.
func (c *Channel) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.items {
		if e.n.ID == id {
			e.timer.Stop()
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return
		}
	}
}

// Active returns a snapshot of the live notifications, oldest first.
func (c *Channel) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	for i, e := range c.items {
		out[i] = e.n
	}
	return out
}

// Clear stops every timer and empties the queue.
func (c *Channel) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.items {
		e.timer.Stop()
	}
	c.items = nil
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

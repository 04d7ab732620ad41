// Package prefs persists the user's display preferences (locale and theme)
// in the local state store.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/i18n"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

var ErrUnknownTheme = errors.New("unknown theme")

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Store caches the preferences in memory and writes every change through.
// A stored value that cannot be parsed is ignored in favour of the default.
type Store struct {
	repo metadata.Repository
	log  logging.Logger

	mu     sync.RWMutex
	locale i18n.Locale
	theme  Theme
}

func NewStore(repo metadata.Repository, defaultLocale i18n.Locale, log logging.Logger) *Store {
	return &Store{
		repo:   repo,
		log:    log.With("component", "prefs"),
		locale: defaultLocale,
		theme:  ThemeDark,
	}
}

// Load reads persisted values, keeping defaults for anything missing.
func (s *Store) Load(ctx context.Context) error {
	rawLocale, err := s.repo.Get(ctx, common.MetadataKeyLocale)
	if err != nil {
		return fmt.Errorf("read locale: %w", err)
	}
	rawTheme, err := s.repo.Get(ctx, common.MetadataKeyTheme)
	if err != nil {
		return fmt.Errorf("read theme: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rawLocale) > 0 {
		if l, err := i18n.ParseLocale(string(rawLocale)); err == nil {
			s.locale = l
		} else {
			s.log.Warn(ctx, "ignoring stored locale", "error", err)
		}
	}
	if len(rawTheme) > 0 {
		if t, err := ParseTheme(string(rawTheme)); err == nil {
			s.theme = t
		} else {
			s.log.Warn(ctx, "ignoring stored theme", "error", err)
		}
	}
	return nil
}

func (s *Store) Locale() i18n.Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *Store) SetLocale(ctx context.Context, l i18n.Locale) error {
	if err := s.repo.Set(ctx, common.MetadataKeyLocale, []byte(l)); err != nil {
		return fmt.Errorf("store locale: %w", err)
	}
	s.mu.Lock()
	s.locale = l
	s.mu.Unlock()
	return nil
}

func (s *Store) SetTheme(ctx context.Context, t Theme) error {
	if err := s.repo.Set(ctx, common.MetadataKeyTheme, []byte(t)); err != nil {
		return fmt.Errorf("store theme: %w", err)
	}
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
	return nil
}

func (s *Store) ToggleLocale(ctx context.Context) (i18n.Locale, error) {
	next := s.Locale().Toggle()
	if err := s.SetLocale(ctx, next); err != nil {
		return s.Locale(), err
	}
	return next, nil
}

func (s *Store) ToggleTheme(ctx context.Context) (Theme, error) {
	next := s.Theme().Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return s.Theme(), err
	}
	return next, nil
}

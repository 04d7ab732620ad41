// Package i18n holds the English and Indonesian message catalogs of the
// client and the locale-aware date labels.
//
// Catalogs are YAML files embedded from locales/ and registered into an
// x/text catalog; lookups go through a message.Printer so that messages
// may carry positional arguments.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

type Locale string

const (
	English    Locale = "en"
	Indonesian Locale = "id"

	// BaseLocale supplies messages missing from other catalogs.
	BaseLocale = English
)

var ErrUnknownLocale = errors.New("unknown locale")

// ParseLocale accepts "en" or "id" in any case.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Indonesian:
		return Indonesian, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
}

// Toggle flips between the two supported locales.
func (l Locale) Toggle() Locale {
	if l == Indonesian {
		return English
	}
	return Indonesian
}

func (l Locale) Tag() language.Tag {
	if l == Indonesian {
		return language.Indonesian
	}
	return language.English
}

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Months   []string          `yaml:"months"`
	Weekdays []string          `yaml:"weekdays"`
	Messages map[string]string `yaml:"messages"`
}

type Catalog struct {
	files   map[Locale]catalogFile
	builder *catalog.Builder
}

//go:embed locales/*.yaml
var embeddedFS embed.FS

var defaultCatalog = mustLoadEmbedded()

// Default returns the catalog built from the embedded locale files.
func Default() *Catalog {
	return defaultCatalog
}

func mustLoadEmbedded() *Catalog {
	c, err := Load(embeddedFS)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads every locales/*.yaml file of fsys. The base locale must be
// present; keys missing from another locale fall back to it.
func Load(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	sort.Strings(paths)

	files := make(map[Locale]catalogFile, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := validate(p, f); err != nil {
			return nil, err
		}
		files[Locale(f.Locale)] = f
	}

	base, ok := files[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	b := catalog.NewBuilder(catalog.Fallback(BaseLocale.Tag()))
	for loc, f := range files {
		for key, msg := range base.Messages {
			if own, ok := f.Messages[key]; ok {
				msg = own
			}
			if err := b.SetString(loc.Tag(), key, msg); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", loc, key, err)
			}
		}
	}

	return &Catalog{files: files, builder: b}, nil
}

func validate(p string, f catalogFile) error {
	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if f.Locale != name {
		return fmt.Errorf("catalog %s: locale %q must match file name", p, f.Locale)
	}
	if _, err := ParseLocale(f.Locale); err != nil {
		return fmt.Errorf("catalog %s: %w", p, err)
	}
	if len(f.Months) != 12 {
		return fmt.Errorf("catalog %s: want 12 months, got %d", p, len(f.Months))
	}
	if len(f.Weekdays) != 7 {
		return fmt.Errorf("catalog %s: want 7 weekdays, got %d", p, len(f.Weekdays))
	}
	return nil
}

// Has reports whether key is defined for the base locale.
func (c *Catalog) Has(key string) bool {
	_, ok := c.files[BaseLocale].Messages[key]
	return ok
}

func (c *Catalog) printer(l Locale) *message.Printer {
	return message.NewPrinter(l.Tag(), message.Catalog(c.builder))
}

// T formats the message stored under key for locale l. Arguments are
// positional (%[1]s, ...). An unknown key is returned as is.
func (c *Catalog) T(l Locale, key string, args ...any) string {
	return c.printer(l).Sprintf(key, args...)
}

func (c *Catalog) file(l Locale) catalogFile {
	if f, ok := c.files[l]; ok {
		return f
	}
	return c.files[BaseLocale]
}

// MonthYear renders the grouping label of t, e.g. "January 2024" or
// "Januari 2024". t is used in its own location.
func (c *Catalog) MonthYear(t time.Time, l Locale) string {
	f := c.file(l)
	return c.T(l, "date.monthYear", f.Months[t.Month()-1], strconv.Itoa(t.Year()))
}

// FormatDate renders the long date of t: "Thursday, April 14, 2022" in
// English and "Kamis, 14 April 2022" in Indonesian.
func (c *Catalog) FormatDate(t time.Time, l Locale) string {
	f := c.file(l)
	return c.T(l, "date.full",
		f.Weekdays[t.Weekday()],
		f.Months[t.Month()-1],
		strconv.Itoa(t.Day()),
		strconv.Itoa(t.Year()),
	)
}

// Localizer binds a catalog to a locale source that may change at run time.
type Localizer struct {
	cat    *Catalog
	locale func() Locale
}

func NewLocalizer(cat *Catalog, locale func() Locale) *Localizer {
	return &Localizer{cat: cat, locale: locale}
}

func (l *Localizer) Locale() Locale {
	return l.locale()
}

func (l *Localizer) T(key string, args ...any) string {
	return l.cat.T(l.locale(), key, args...)
}

func (l *Localizer) MonthYear(t time.Time) string {
	return l.cat.MonthYear(t, l.locale())
}

func (l *Localizer) FormatDate(t time.Time) string {
	return l.cat.FormatDate(t, l.locale())
}

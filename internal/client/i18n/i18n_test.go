package i18n

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	l, err := ParseLocale(" ID ")
	require.NoError(t, err)
	assert.Equal(t, Indonesian, l)

	_, err = ParseLocale("fr")
	require.ErrorIs(t, err, ErrUnknownLocale)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, Indonesian, English.Toggle())
	assert.Equal(t, English, Indonesian.Toggle())
}

func TestDefault_Messages(t *testing.T) {
	c := Default()
	assert.Equal(t, "Note saved", c.T(English, "alert.noteSaved"))
	assert.Equal(t, "Catatan tersimpan", c.T(Indonesian, "alert.noteSaved"))
	assert.Equal(t, "Signed in as Ann <a@b.c>", c.T(English, "user.greeting", "Ann", "a@b.c"))
	assert.Equal(t, "no.such.key", c.T(English, "no.such.key"))
}

func TestDefault_EveryBaseKeyIsTranslated(t *testing.T) {
	c := Default()
	id := c.files[Indonesian].Messages
	for key := range c.files[BaseLocale].Messages {
		_, ok := id[key]
		assert.True(t, ok, "missing id translation for %s", key)
	}
}

func TestMonthYear(t *testing.T) {
	c := Default()
	ts := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "January 2024", c.MonthYear(ts, English))
	assert.Equal(t, "Januari 2024", c.MonthYear(ts, Indonesian))
}

func TestFormatDate(t *testing.T) {
	c := Default()
	ts := time.Date(2022, time.April, 14, 4, 27, 34, 0, time.UTC)
	assert.Equal(t, "Thursday, April 14, 2022", c.FormatDate(ts, English))
	assert.Equal(t, "Kamis, 14 April 2022", c.FormatDate(ts, Indonesian))
}

func TestLoad_FallsBackToBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte(`locale: en
months: [a, b, c, d, e, f, g, h, i, j, k, l]
weekdays: [s, m, t, w, th, f, sa]
messages:
  greet: "hello"
  bye: "bye"
`)},
		"locales/id.yaml": {Data: []byte(`locale: id
months: [a, b, c, d, e, f, g, h, i, j, k, l]
weekdays: [s, m, t, w, th, f, sa]
messages:
  greet: "halo"
`)},
	}
	c, err := Load(fsys)
	require.NoError(t, err)
	assert.Equal(t, "halo", c.T(Indonesian, "greet"))
	assert.Equal(t, "bye", c.T(Indonesian, "bye"))
	assert.True(t, c.Has("bye"))
	assert.False(t, c.Has("nope"))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
	}{
		{
			name: "no base locale",
			fs: fstest.MapFS{"locales/id.yaml": {Data: []byte("locale: id\nmonths: [a,b,c,d,e,f,g,h,i,j,k,l]\nweekdays: [a,b,c,d,e,f,g]\n")}},
		},
		{
			name: "locale does not match file",
			fs:   fstest.MapFS{"locales/en.yaml": {Data: []byte("locale: id\nmonths: [a,b,c,d,e,f,g,h,i,j,k,l]\nweekdays: [a,b,c,d,e,f,g]\n")}},
		},
		{
			name: "short month list",
			fs:   fstest.MapFS{"locales/en.yaml": {Data: []byte("locale: en\nmonths: [a]\nweekdays: [a,b,c,d,e,f,g]\n")}},
		},
		{
			name: "bad yaml",
			fs:   fstest.MapFS{"locales/en.yaml": {Data: []byte("locale: [")}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fs)
			require.Error(t, err)
		})
	}
}

func TestLocalizer_FollowsLocaleSource(t *testing.T) {
	current := English
	l := NewLocalizer(Default(), func() Locale { return current })

	assert.Equal(t, "Note deleted", l.T("alert.noteDeleted"))
	current = Indonesian
	assert.Equal(t, "Catatan dihapus", l.T("alert.noteDeleted"))
	assert.Equal(t, Indonesian, l.Locale())
	assert.Equal(t, "Maret 2023", l.MonthYear(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)))
}

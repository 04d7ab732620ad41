package ui

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/notes"
	"github.com/dmitrijs2005/gophnotes/internal/client/notify"
	"github.com/dmitrijs2005/gophnotes/internal/client/prefs"
	"github.com/stretchr/testify/assert"
)

func day(t time.Time) string { return t.Format("2006-01-02") }

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"paragraphs", "<p>one</p><p>two</p>", "one\ntwo"},
		{"br", "a<br>b<br/>c", "a\nb\nc"},
		{"entities", "Tom &amp; Jerry &lt;3", "Tom & Jerry <3"},
		{"script dropped", "<b>x</b><script>alert(1)</script>", "x"},
		{"blank lines collapsed", "<p>a</p><br><br><br><p>b</p>", "a\n\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.in))
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "first", Excerpt("<p>first</p><p>second</p>", 10))
	assert.Equal(t, "abc…", Excerpt("abcdef", 3))
	assert.Equal(t, "", Excerpt("", 3))
}

func TestNotification(t *testing.T) {
	p := NewPalette(prefs.ThemeDark)
	assert.Contains(t, p.Notification(notify.Notification{Kind: notify.KindSuccess, Message: "saved"}), "✓ saved")
	assert.Contains(t, p.Notification(notify.Notification{Kind: notify.KindError, Message: "boom"}), "✗ boom")
	assert.Contains(t, p.Notification(notify.Notification{Kind: notify.KindWarn, Message: "hm"}), "! hm")
}

func TestList(t *testing.T) {
	ns := []models.Note{
		{ID: "1", Title: "Newer", Body: "<p>body one</p>", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "Older", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	proj := notes.Build(ns, "", func(t time.Time) string { return t.Format("January 2006") })

	for _, theme := range []prefs.Theme{prefs.ThemeDark, prefs.ThemeLight} {
		out := NewPalette(theme).List(proj, ListText{Title: "Active Notes", Count: "2 notes"}, day)

		assert.Contains(t, out, "Active Notes")
		assert.Contains(t, out, "February 2024 (1)")
		assert.Contains(t, out, "January 2024 (1)")
		assert.Contains(t, out, "1. Newer")
		assert.Contains(t, out, "2. Older")
		assert.Contains(t, out, "body one")
		assert.Contains(t, out, "2024-02-01")
	}
}

func TestList_Empty(t *testing.T) {
	out := NewPalette(prefs.ThemeDark).List(notes.Projection{}, ListText{Title: "Archived", Empty: "nothing here", Query: "zz"}, day)
	assert.Contains(t, out, "nothing here")
	assert.Contains(t, out, "[zz]")
}

func TestNote(t *testing.T) {
	n := models.Note{Title: "T", Body: "<p>Hello <i>world</i></p>", Archived: true, CreatedAt: time.Date(2022, 4, 14, 0, 0, 0, 0, time.UTC)}
	out := NewPalette(prefs.ThemeLight).Note(n, "Archived", day)

	assert.Contains(t, out, "T")
	assert.Contains(t, out, "Archived")
	assert.Contains(t, out, "2022-04-14")
	assert.Contains(t, out, "Hello world")
}

func TestSettings(t *testing.T) {
	out := NewPalette(prefs.ThemeDark).Settings("Settings", [][2]string{{"Theme", "dark"}, {"Language", "en"}})
	assert.Contains(t, out, "Theme   ")
	assert.Contains(t, out, "dark")
	assert.Contains(t, out, "Language")
}

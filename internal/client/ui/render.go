package ui

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/notes"
	"github.com/dmitrijs2005/gophnotes/internal/client/notify"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strict     = bluemonday.StrictPolicy()
	blockEnd   = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|h[1-6]|blockquote|pre)>`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// HTMLToText turns a note body into plain terminal text: block ends become
// line breaks, every tag is dropped and entities are decoded.
func HTMLToText(body string) string {
	s := blockEnd.ReplaceAllString(body, "$0\n")
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Excerpt is the first line of the note text, cut to n runes.
func Excerpt(body string, n int) string {
	text := HTMLToText(body)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	r := []rune(text)
	if len(r) > n {
		return string(r[:n]) + "…"
	}
	return text
}

func (p Palette) Notification(n notify.Notification) string {
	st, mark := p.kindStyle(n.Kind)
	return st.Render(mark + " " + n.Message)
}

// ListText carries the translated strings of a list screen.
type ListText struct {
	Title    string
	Count    string
	Empty    string
	Query    string
	Archived string
}

// List renders a projection grouped by label. Notes are numbered from 1 in
// projection order so commands can refer to them by position.
func (p Palette) List(proj notes.Projection, txt ListText, date func(time.Time) string) string {
	var b strings.Builder

	b.WriteString(p.Title.Render(txt.Title))
	b.WriteString("  ")
	b.WriteString(p.Muted.Render(txt.Count))
	if txt.Query != "" {
		b.WriteString(p.Muted.Render(fmt.Sprintf("  [%s]", txt.Query)))
	}
	b.WriteString("\n")

	if proj.Count == 0 {
		b.WriteString(p.Help.Render(txt.Empty))
		b.WriteString("\n")
		return b.String()
	}

	i := 0
	for _, g := range proj.Groups {
		b.WriteString("\n")
		b.WriteString(p.Header.Render(fmt.Sprintf("%s (%d)", g.Label, len(g.Notes))))
		b.WriteString("\n")
		for _, n := range g.Notes {
			i++
			fmt.Fprintf(&b, "%3d. %s", i, n.Title)
			if n.Archived && txt.Archived != "" {
				b.WriteString(" ")
				b.WriteString(p.Badge.Render(txt.Archived))
			}
			b.WriteString("  ")
			b.WriteString(p.Muted.Render(date(n.CreatedAt)))
			b.WriteString("\n")
			if ex := Excerpt(n.Body, 60); ex != "" {
				b.WriteString("     ")
				b.WriteString(p.Help.Render(ex))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// Note renders the detail screen.
func (p Palette) Note(n models.Note, archivedLabel string, date func(time.Time) string) string {
	var b strings.Builder
	b.WriteString(p.Title.Render(n.Title))
	if n.Archived {
		b.WriteString(" ")
		b.WriteString(p.Badge.Render(archivedLabel))
	}
	b.WriteString("\n")
	b.WriteString(p.Muted.Render(date(n.CreatedAt)))
	b.WriteString("\n\n")
	b.WriteString(HTMLToText(n.Body))
	b.WriteString("\n")
	return b.String()
}

// Settings renders key/value rows aligned on the key column.
func (p Palette) Settings(title string, rows [][2]string) string {
	width := 0
	for _, r := range rows {
		if w := len([]rune(r[0])); w > width {
			width = w
		}
	}
	var b strings.Builder
	b.WriteString(p.Title.Render(title))
	b.WriteString("\n")
	for _, r := range rows {
		pad := strings.Repeat(" ", width-len([]rune(r[0])))
		b.WriteString(p.Muted.Render(r[0] + pad))
		b.WriteString("  ")
		b.WriteString(r[1])
		b.WriteString("\n")
	}
	return b.String()
}

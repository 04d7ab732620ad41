package composer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

var ErrUnknownFormat = errors.New("unknown editor format")

// Editor is the rich-text body buffer. Content is the raw HTML the user
// produced; SanitizedContent is what gets sent.
type Editor interface {
	SetSource(src string) error
	Source() string
	Content() string
	SanitizedContent() string
	Format() string
}

var ugc = bluemonday.UGCPolicy()

// Sanitize strips everything the UGC policy does not allow (scripts, event
// handlers, javascript: links) while keeping ordinary formatting.
func Sanitize(html string) string {
	return ugc.Sanitize(html)
}

func NewEditor(format string) (Editor, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatHTML:
		return &HTMLBuffer{}, nil
	case FormatMarkdown, "md":
		return NewMarkdownBuffer(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// HTMLBuffer holds HTML typed by the user as is.
type HTMLBuffer struct {
	src string
}

func (b *HTMLBuffer) SetSource(src string) error {
	b.src = src
	return nil
}

func (b *HTMLBuffer) Source() string           { return b.src }
func (b *HTMLBuffer) Content() string          { return b.src }
func (b *HTMLBuffer) SanitizedContent() string { return Sanitize(b.src) }
func (b *HTMLBuffer) Format() string           { return FormatHTML }

// MarkdownBuffer renders Markdown source to HTML on every SetSource.
type MarkdownBuffer struct {
	md   goldmark.Markdown
	src  string
	html string
}

func NewMarkdownBuffer() *MarkdownBuffer {
	return &MarkdownBuffer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (b *MarkdownBuffer) SetSource(src string) error {
	if strings.TrimSpace(src) == "" {
		b.src, b.html = src, ""
		return nil
	}
	var buf bytes.Buffer
	if err := b.md.Convert([]byte(src), &buf); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	b.src = src
	b.html = strings.TrimSpace(buf.String())
	return nil
}

func (b *MarkdownBuffer) Source() string           { return b.src }
func (b *MarkdownBuffer) Content() string          { return b.html }
func (b *MarkdownBuffer) SanitizedContent() string { return Sanitize(b.html) }
func (b *MarkdownBuffer) Format() string           { return FormatMarkdown }

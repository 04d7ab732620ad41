// Package router maps client paths to pages and applies the session gate:
// signed-out users only see the login and register pages, signed-in users
// never see them.
package router

import (
	"net/url"
	"strings"
)

const (
	PathHome     = "/"
	PathAdd      = "/add"
	PathArchives = "/archives"
	PathLogin    = "/login"
	PathRegister = "/register"

	notesPrefix = "/notes/"

	// SearchParam carries the list filter on / and /archives.
	SearchParam = "search"
)

type Page int

const (
	PageNotFound Page = iota
	PageHome
	PageAdd
	PageDetail
	PageArchives
	PageLogin
	PageRegister
)

var pageNames = map[Page]string{
	PageNotFound: "not-found",
	PageHome:     "home",
	PageAdd:      "add",
	PageDetail:   "detail",
	PageArchives: "archives",
	PageLogin:    "login",
	PageRegister: "register",
}

func (p Page) String() string {
	return pageNames[p]
}

type Route struct {
	Page Page
	// Path is the canonical path without the query string.
	Path string
	// NoteID is set for PageDetail.
	NoteID string
	// Search is the decoded ?search= value, if any.
	Search string
}

// NotePath builds the detail path of a note.
func NotePath(id string) string {
	return notesPrefix + url.PathEscape(id)
}

// SearchPath appends a search query to a list path.
func SearchPath(base, query string) string {
	if query == "" {
		return base
	}
	return base + "?" + url.Values{SearchParam: {query}}.Encode()
}

// Resolve maps raw to a route. When the session gate sends the user
// elsewhere, redirected is true and the returned route is the target.
func Resolve(raw string, authenticated bool) (r Route, redirected bool) {
	r = match(raw)

	if !authenticated {
		if r.Page == PageLogin || r.Page == PageRegister {
			return r, false
		}
		return Route{Page: PageLogin, Path: PathLogin}, true
	}

	if r.Page == PageLogin || r.Page == PageRegister {
		return Route{Page: PageHome, Path: PathHome}, true
	}
	return r, false
}

func match(raw string) Route {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Route{Page: PageNotFound, Path: raw}
	}

	p := u.EscapedPath()
	if p == "" {
		p = PathHome
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = PathHome
		}
	}
	search := u.Query().Get(SearchParam)

	switch p {
	case PathHome:
		return Route{Page: PageHome, Path: p, Search: search}
	case PathArchives:
		return Route{Page: PageArchives, Path: p, Search: search}
	case PathAdd:
		return Route{Page: PageAdd, Path: p}
	case PathLogin:
		return Route{Page: PageLogin, Path: p}
	case PathRegister:
		return Route{Page: PageRegister, Path: p}
	}

	if rest, ok := strings.CutPrefix(p, notesPrefix); ok && rest != "" && !strings.Contains(rest, "/") {
		id, err := url.PathUnescape(rest)
		if err == nil && id != "" {
			return Route{Page: PageDetail, Path: p, NoteID: id}
		}
	}

	return Route{Page: PageNotFound, Path: p}
}

package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/gophnotes/internal/client/notes"
	"github.com/dmitrijs2005/gophnotes/internal/client/router"
	"github.com/dmitrijs2005/gophnotes/internal/client/ui"
)

// navigate resolves path against the session gate, records the resulting
// route and renders its page.
func (a *App) navigate(ctx context.Context, path string) {
	r, redirected := router.Resolve(path, a.session.Authenticated())
	if redirected {
		a.log.Debug(ctx, "route redirected", "from", path, "to", r.Path)
	}
	a.route = r

	switch r.Page {
	case router.PageHome:
		a.showList(ctx, a.home, r.Search)
	case router.PageArchives:
		a.showList(ctx, a.archives, r.Search)
	case router.PageDetail:
		a.showDetail(ctx, r.NoteID)
	case router.PageAdd:
		a.compose(ctx)
	case router.PageLogin:
		a.println(a.palette().Header.Render("login"), a.palette().Help.Render("(type 'login' or 'register')"))
	case router.PageRegister:
		a.println(a.palette().Header.Render("register"), a.palette().Help.Render("(type 'register' or 'login')"))
	default:
		a.println(a.palette().Error.Render(a.tr.T("notFound.title")))
	}
}

// currentPath is the route path including its search query.
func (a *App) currentPath() string {
	return router.SearchPath(a.route.Path, a.route.Search)
}

// Gate re-applies the session gate to the current route. It only renders
// when the gate sends the user elsewhere, e.g. after a rejected token.
func (a *App) Gate(ctx context.Context) {
	if _, redirected := router.Resolve(a.currentPath(), a.session.Authenticated()); redirected {
		a.navigate(ctx, a.currentPath())
	}
}

func (a *App) Go(ctx context.Context, path string) error {
	if path == "" {
		path = router.PathHome
	}
	a.navigate(ctx, path)
	return nil
}

func (a *App) Home(ctx context.Context) error {
	a.navigate(ctx, router.PathHome)
	return nil
}

func (a *App) Archives(ctx context.Context) error {
	a.navigate(ctx, router.PathArchives)
	return nil
}

// Search filters the list on screen, or the active list from any other page.
// An empty query clears the filter.
func (a *App) Search(ctx context.Context, query string) error {
	base := router.PathHome
	if a.route.Page == router.PageArchives {
		base = router.PathArchives
	}
	a.navigate(ctx, router.SearchPath(base, query))
	return nil
}

// showList sets the filter, fetches the list and renders it.
func (a *App) showList(ctx context.Context, page *notes.ListPage, query string) {
	page.SetQuery(query)
	if err := page.Load(ctx); err != nil {
		a.log.Debug(ctx, "list load failed", "variant", page.Variant().String(), "error", err)
	}
	a.renderList(page)
}

// renderList prints what the page holds without fetching.
func (a *App) renderList(page *notes.ListPage) {
	query := page.Query()
	proj := page.View(a.tr.MonthYear)
	a.lastView = proj

	txt := ui.ListText{
		Title:    a.tr.T("home.title"),
		Count:    a.tr.T("home.count", strconv.Itoa(proj.Count)),
		Empty:    a.tr.T("home.empty"),
		Query:    query,
		Archived: a.tr.T("detail.archived"),
	}
	if page.Variant() == notes.Archived {
		txt.Title = a.tr.T("archives.title")
		txt.Empty = a.tr.T("archives.empty")
	}
	a.println(a.palette().List(proj, txt, a.tr.FormatDate))
}

func (a *App) showDetail(ctx context.Context, id string) {
	_ = a.detail.Load(ctx, id)

	n, ok := a.detail.Note()
	if !ok {
		a.println(a.palette().Error.Render(a.tr.T("detail.notFound")))
		return
	}
	a.println(a.palette().Note(n, a.tr.T("detail.archived"), a.tr.FormatDate))
}

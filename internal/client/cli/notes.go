package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/gophnotes/internal/client/notes"
	"github.com/dmitrijs2005/gophnotes/internal/client/router"
)

var (
	errNoNote       = errors.New("no such note")
	errNotAvailable = errors.New("not available on this page")
)

// resolveRef turns a positional reference ("2") from the last printed list
// into a note id. Anything that is not a valid position is taken as an id.
func (a *App) resolveRef(ref string) (string, error) {
	if ref == "" {
		return "", errNoNote
	}
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 1 || i > len(a.lastView.Notes) {
			return "", errNoNote
		}
		return a.lastView.Notes[i-1].ID, nil
	}
	return ref, nil
}

// listPage is the list on screen, nil on other pages.
func (a *App) listPage() *notes.ListPage {
	switch a.route.Page {
	case router.PageHome:
		return a.home
	case router.PageArchives:
		return a.archives
	}
	return nil
}

func (a *App) Open(ctx context.Context, ref string) error {
	id, err := a.resolveRef(ref)
	if err != nil {
		a.println(a.palette().Error.Render(err.Error()), a.palette().Help.Render("(usage: open <n|id>)"))
		return err
	}
	a.navigate(ctx, router.NotePath(id))
	return nil
}

func (a *App) Archive(ctx context.Context, ref string) error {
	return a.noteAction(ctx, ref, (*notes.ListPage).Archive, (*notes.DetailPage).Archive)
}

func (a *App) Unarchive(ctx context.Context, ref string) error {
	return a.noteAction(ctx, ref, (*notes.ListPage).Unarchive, (*notes.DetailPage).Unarchive)
}

func (a *App) Delete(ctx context.Context, ref string) error {
	return a.noteAction(ctx, ref, (*notes.ListPage).Delete, (*notes.DetailPage).Delete)
}

// Toggle archives an active note or unarchives an archived one.
func (a *App) Toggle(ctx context.Context, ref string) error {
	return a.noteAction(ctx, ref, (*notes.ListPage).ToggleArchive, (*notes.DetailPage).ToggleArchive)
}

// noteAction runs a list action on the referenced note, or the detail
// action on the open note when no reference is given on the detail page.
// A list action renders the list it re-fetched; a detail action follows
// the returned path.
func (a *App) noteAction(
	ctx context.Context,
	ref string,
	onList func(*notes.ListPage, context.Context, string) error,
	onDetail func(*notes.DetailPage, context.Context) (string, error),
) error {
	if ref == "" && a.route.Page == router.PageDetail {
		next, err := onDetail(a.detail, ctx)
		if err != nil {
			a.actionFailed(err)
			return err
		}
		a.navigate(ctx, next)
		return nil
	}

	page := a.listPage()
	if page == nil {
		a.actionFailed(errNotAvailable)
		return errNotAvailable
	}
	id, err := a.resolveRef(ref)
	if err != nil {
		a.actionFailed(err)
		return err
	}

	if err := onList(page, ctx, id); err != nil {
		a.actionFailed(err)
		return err
	}
	// The action already re-fetched the list.
	a.renderList(page)
	return nil
}

// actionFailed prints failures the pages did not already report as
// notifications.
func (a *App) actionFailed(err error) {
	switch {
	case errors.Is(err, notes.ErrActionInFlight):
		a.println(a.palette().Warn.Render(a.tr.T("alert.busy")))
	case errors.Is(err, notes.ErrWrongVariant),
		errors.Is(err, notes.ErrNoteNotLoaded),
		errors.Is(err, errNoNote),
		errors.Is(err, errNotAvailable):
		a.println(a.palette().Error.Render(err.Error()))
	}
}

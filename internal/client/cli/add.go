package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/composer"
	"github.com/dmitrijs2005/gophnotes/internal/client/router"
)

var getMultiline = GetMultiline

// Add opens the new-note page, which prompts for title and body and
// submits them.
func (a *App) Add(ctx context.Context) error {
	a.composer.Reset()
	a.navigate(ctx, router.PathAdd)
	return nil
}

// Save submits the composer as it is, e.g. after a failed remote call.
// A validation failure re-prompts the fields that need fixing.
func (a *App) Save(ctx context.Context) error {
	if a.route.Page != router.PageAdd {
		a.actionFailed(errNotAvailable)
		return errNotAvailable
	}
	return a.submitUntilValid(ctx)
}

func (a *App) Cancel(ctx context.Context) error {
	a.composer.Reset()
	a.navigate(ctx, router.PathHome)
	return nil
}

// compose renders the add page: title prompt with the remaining counter,
// multi-line body, then a submit.
func (a *App) compose(ctx context.Context) {
	a.println(a.palette().Title.Render(a.tr.T("add.title")))

	if err := a.promptTitle(); err != nil {
		return
	}
	if err := a.promptBody(); err != nil {
		return
	}
	_ = a.submitUntilValid(ctx)
}

func (a *App) promptTitle() error {
	p := a.palette()
	for {
		title, err := getSimpleText(a.reader, a.tr.T("add.titlePrompt"), a.out)
		if err != nil {
			return err
		}
		if a.composer.SetTitle(title) {
			break
		}
		a.println(p.Warn.Render(a.tr.T("add.titleTooLong", strconv.Itoa(composer.TitleMaxRunes))))
	}
	a.println(p.Muted.Render(fmt.Sprintf("%d %s", a.composer.Remaining(), a.tr.T("add.limit"))))
	return nil
}

func (a *App) promptBody() error {
	body, err := getMultiline(a.reader, a.tr.T("add.bodyPrompt"), a.out)
	if err != nil {
		return err
	}
	if err := a.composer.SetBody(body); err != nil {
		a.println(a.palette().Error.Render(err.Error()))
		return err
	}
	return nil
}

// submitUntilValid submits and, while validation fails, re-prompts the
// empty title and the body. It stops at the first non-validation result,
// when input ends, or when the body is left empty again; the form then
// stays on the add page for "save" or "cancel".
func (a *App) submitUntilValid(ctx context.Context) error {
	for {
		err := a.submit(ctx)
		var ve *composer.ValidationError
		if !errors.As(err, &ve) {
			return err
		}

		if strings.TrimSpace(a.composer.Title()) == "" {
			if err := a.promptTitle(); err != nil {
				return err
			}
		}
		if err := a.promptBody(); err != nil {
			return err
		}
		if strings.TrimSpace(a.composer.Body()) == "" {
			a.println(a.palette().Help.Render(a.tr.T("add.retryHint")))
			return err
		}
	}
}

// submit sends the composer once. Validation errors print the inline
// message; remote failures keep title and body for "save".
func (a *App) submit(ctx context.Context) error {
	_, err := a.composer.Submit(ctx)

	var ve *composer.ValidationError
	switch {
	case err == nil:
		a.composer.Reset()
		a.navigate(ctx, router.PathHome)
	case errors.As(err, &ve):
		a.println(a.palette().Error.Render(a.composer.InlineError()))
	case errors.Is(err, composer.ErrSubmitInFlight):
		a.println(a.palette().Warn.Render(a.tr.T("alert.busy")))
	}
	return err
}

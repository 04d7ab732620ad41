package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophnotes/internal/buildinfo"
	"github.com/dmitrijs2005/gophnotes/internal/client/i18n"
	"github.com/dmitrijs2005/gophnotes/internal/client/prefs"
)

var errNoNotification = errors.New("no such notification")

// Notifications lists the notifications that have not expired yet.
func (a *App) Notifications(ctx context.Context) error {
	active := a.notices.Active()
	if len(active) == 0 {
		a.println(a.palette().Help.Render("-"))
		return nil
	}
	p := a.palette()
	for i, n := range active {
		a.println(fmt.Sprintf("%d.", i+1), p.Notification(n))
	}
	return nil
}

// Dismiss closes an active notification by its position in Notifications.
func (a *App) Dismiss(ctx context.Context, ref string) error {
	active := a.notices.Active()
	i, err := strconv.Atoi(ref)
	if err != nil || i < 1 || i > len(active) {
		a.println(a.palette().Error.Render(errNoNotification.Error()))
		return errNoNotification
	}
	a.notices.Dismiss(active[i-1].ID)
	return nil
}

// Lang switches to the given locale, or toggles it without an argument.
func (a *App) Lang(ctx context.Context, arg string) error {
	var err error
	if arg == "" {
		_, err = a.prefs.ToggleLocale(ctx)
	} else {
		var l i18n.Locale
		if l, err = i18n.ParseLocale(arg); err == nil {
			err = a.prefs.SetLocale(ctx, l)
		}
	}
	if err != nil {
		a.println(a.palette().Error.Render(err.Error()))
		return err
	}
	a.println(a.palette().Success.Render(a.tr.T("settings.language") + ": " + string(a.prefs.Locale())))
	return nil
}

// Theme switches to the given theme, or toggles it without an argument.
func (a *App) Theme(ctx context.Context, arg string) error {
	var err error
	if arg == "" {
		_, err = a.prefs.ToggleTheme(ctx)
	} else {
		var t prefs.Theme
		if t, err = prefs.ParseTheme(arg); err == nil {
			err = a.prefs.SetTheme(ctx, t)
		}
	}
	if err != nil {
		a.println(a.palette().Error.Render(err.Error()))
		return err
	}
	a.println(a.palette().Success.Render(a.tr.T("settings.theme") + ": " + string(a.prefs.Theme())))
	return nil
}

func (a *App) Settings(ctx context.Context) error {
	rows := [][2]string{
		{a.tr.T("settings.theme"), string(a.prefs.Theme())},
		{a.tr.T("settings.language"), string(a.prefs.Locale())},
		{a.tr.T("settings.version"), buildinfo.Version},
		{"Server", a.config.ServerURL},
	}
	if exp, ok := a.tokenExpiry(ctx); ok {
		rows = append(rows, [2]string{a.tr.T("settings.tokenExpires"), a.tr.FormatDate(exp)})
	}
	a.println(a.palette().Settings(a.tr.T("settings.title"), rows))
	return nil
}

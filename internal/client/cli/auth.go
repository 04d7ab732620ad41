package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/router"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email, password and its confirmation and
// hands them to the AuthService, which signs the new user in when it can.
// Password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		a.navigate(ctx, router.PathRegister)
		return nil
	}

	name, err := getSimpleText(a.reader, a.tr.T("auth.name"), a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, a.tr.T("auth.email"), a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, a.tr.T("auth.password"))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.out, a.tr.T("auth.confirmPassword"))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	next, err := a.auth.Register(ctx, services.RegisterInput{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}
	a.navigate(ctx, next)
	return nil
}

// Login prompts for credentials and signs in. The password is wiped before
// returning; failures are reported by the AuthService as notifications.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.navigate(ctx, router.PathLogin)
		return nil
	}

	email, err := getSimpleText(a.reader, a.tr.T("auth.email"), a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, a.tr.T("auth.password"))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	next, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.navigate(ctx, next)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return nil
	}
	a.auth.Logout(ctx)
	a.composer.Reset()
	a.navigate(ctx, router.PathLogin)
	return nil
}

// Whoami re-resolves the current user against the service and prints it
// together with the token expiry when the token carries one.
func (a *App) Whoami(ctx context.Context) error {
	u, err := a.auth.Refresh(ctx)
	if err != nil {
		a.println(a.palette().Error.Render(err.Error()))
		return err
	}
	a.println(a.tr.T("user.greeting", u.Name, u.Email))

	if exp, ok := a.tokenExpiry(ctx); ok {
		a.println(a.palette().Muted.Render(fmt.Sprintf("%s: %s", a.tr.T("settings.tokenExpires"), a.tr.FormatDate(exp))))
	}
	return nil
}

func (a *App) tokenExpiry(ctx context.Context) (time.Time, bool) {
	tok, err := a.tokens.AccessToken(ctx)
	if err != nil || tok == "" {
		return time.Time{}, false
	}
	exp, err := session.TokenExpiry(tok)
	if err != nil {
		a.log.Debug(ctx, "token expiry unavailable", "error", err)
		return time.Time{}, false
	}
	return exp, true
}

// Package services contains application services for the notes client.
// This file defines the authentication service: login, registration with
// automatic sign-in, logout, and re-resolving the current user.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/notify"
	"github.com/dmitrijs2005/gophnotes/internal/client/router"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token and establish the session.
//   - Register: create an account, then try to sign in with the same
//     credentials.
//   - Logout: drop the session; never fails.
//   - Refresh: re-resolve the signed-in user; a rejected token logs out.
//
// Login and Register post their own notifications and return the path to
// navigate to on success.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (string, error)
	Register(ctx context.Context, in RegisterInput) (string, error)
	Logout(ctx context.Context)
	Refresh(ctx context.Context) (models.User, error)
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        []byte
	ConfirmPassword []byte
}

// Session is the part of session.Manager the service drives.
type Session interface {
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context)
	Refresh(ctx context.Context) (models.User, error)
}

type Notifier interface {
	Post(kind notify.Kind, message string) string
}

type Translator interface {
	T(key string, args ...any) string
}

type authService struct {
	client   client.Client
	session  Session
	notifier Notifier
	tr       Translator
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and session.
func NewAuthService(c client.Client, s Session, n Notifier, tr Translator, log logging.Logger) AuthService {
	return &authService{
		client:   c,
		session:  s,
		notifier: n,
		tr:       tr,
		log:      log.With("component", "auth"),
	}
}

// Login posts the credentials; on success the returned token is handed to
// the session. The service's own message is preferred for rejections.
func (a *authService) Login(ctx context.Context, email string, password []byte) (string, error) {
	res, err := a.client.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		a.log.Info(ctx, "login rejected", "email", email, "error", err)
		a.notifier.Post(notify.KindError, a.remoteOr(err, "alert.loginError"))
		return "", fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Login(ctx, res.AccessToken); err != nil {
		a.log.Warn(ctx, "token issued but user could not be resolved", "error", err)
		a.notifier.Post(notify.KindError, a.tr.T("alert.loginError"))
		return "", fmt.Errorf("login error: %w", err)
	}

	a.notifier.Post(notify.KindSuccess, a.tr.T("alert.loginSuccess"))
	return router.PathHome, nil
}

// Register creates the account and then signs in with the same
// credentials. If only the sign-in fails the registration still counts as
// a success and the user is sent to the login page.
func (a *authService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if subtle.ConstantTimeCompare(in.Password, in.ConfirmPassword) != 1 {
		a.notifier.Post(notify.KindWarn, a.tr.T("alert.passwordMismatch"))
		return "", ErrPasswordMismatch
	}

	err := a.client.Register(ctx, models.Registration{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(in.Password),
	})
	if err != nil {
		a.log.Info(ctx, "registration rejected", "email", in.Email, "error", err)
		a.notifier.Post(notify.KindError, a.remoteOr(err, "alert.registerError"))
		return "", fmt.Errorf("register error: %w", err)
	}

	res, err := a.client.Login(ctx, models.Credentials{Email: in.Email, Password: string(in.Password)})
	if err == nil {
		err = a.session.Login(ctx, res.AccessToken)
	}
	if err != nil {
		a.log.Warn(ctx, "registered but automatic login failed", "error", err)
		a.notifier.Post(notify.KindSuccess, a.tr.T("alert.registerSuccess"))
		return router.PathLogin, nil
	}

	a.notifier.Post(notify.KindSuccess, a.tr.T("alert.registerSuccessLogin"))
	return router.PathHome, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	a.notifier.Post(notify.KindSuccess, a.tr.T("alert.logout"))
}

func (a *authService) Refresh(ctx context.Context) (models.User, error) {
	return a.session.Refresh(ctx)
}

func (a *authService) remoteOr(err error, key string) string {
	if msg := client.Message(err); msg != "" {
		return msg
	}
	return a.tr.T(key)
}

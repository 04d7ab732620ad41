package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/composer"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/i18n"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/notes"
	"github.com/dmitrijs2005/gophnotes/internal/client/notify"
	"github.com/dmitrijs2005/gophnotes/internal/client/prefs"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/client/router"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/client/ui"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// sessionState is the read side of session.Manager used by the screens.
type sessionState interface {
	Seed(ctx context.Context) (models.User, bool)
	Restore(ctx context.Context) session.State
	Authenticated() bool
	User() (models.User, bool)
	Loading() bool
}

// App owns every long-lived object of the client. All of them are created
// in assemble and live until Close.
type App struct {
	config  *config.Config
	db      *sql.DB
	log     logging.Logger
	api     client.Client
	tokens  *session.TokenStore
	session sessionState
	auth    services.AuthService
	prefs   *prefs.Store
	catalog *i18n.Catalog
	tr      *i18n.Localizer
	notices *notify.Channel

	reader *bufio.Reader
	out    io.Writer
	outMu  sync.Mutex

	route    router.Route
	home     *notes.ListPage
	archives *notes.ListPage
	detail   *notes.DetailPage
	composer *composer.Composer
	// lastView is the projection last printed, for positional references.
	lastView notes.Projection
}

// NewApp opens the local database, builds the REST client and wires the
// application together.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	tokens := session.NewTokenStore(metadata.NewSQLiteRepository(db))

	opts := []client.Option{client.WithLogger(log)}
	if c.RequestTimeout > 0 {
		opts = append(opts, client.WithTimeout(c.RequestTimeout))
	}
	api := client.NewHTTPClient(c.ServerURL, tokens, opts...)

	a, err := assemble(ctx, c, db, tokens, api, log, os.Stdin, os.Stdout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

// assemble wires the application around an opened database, the token
// store the REST client reads from and the client itself.
func assemble(ctx context.Context, c *config.Config, db *sql.DB, tokens *session.TokenStore, api client.Client, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	repo := metadata.NewSQLiteRepository(db)

	defLocale, err := i18n.ParseLocale(c.Locale)
	if err != nil {
		log.Warn(ctx, "unsupported locale in config, using base locale", "error", err)
		defLocale = i18n.BaseLocale
	}
	pr := prefs.NewStore(repo, defLocale, log)
	if err := pr.Load(ctx); err != nil {
		return nil, err
	}

	editor, err := composer.NewEditor(c.EditorFormat)
	if err != nil {
		return nil, err
	}

	cat := i18n.Default()
	tr := i18n.NewLocalizer(cat, pr.Locale)
	notices := notify.NewChannel(notify.WithDuration(c.NotifyDuration))

	mgr := session.NewManager(tokens, session.NewUserMirror(repo), session.NewSQLEraser(db), api, log)

	a := &App{
		config:   c,
		db:       db,
		log:      log,
		api:      api,
		tokens:   tokens,
		session:  mgr,
		auth:     services.NewAuthService(api, mgr, notices, tr, log),
		prefs:    pr,
		catalog:  cat,
		tr:       tr,
		notices:  notices,
		reader:   bufio.NewReader(in),
		out:      out,
		home:     notes.NewListPage(notes.Active, api, notices, tr, log),
		archives: notes.NewListPage(notes.Archived, api, notices, tr, log),
		detail:   notes.NewDetailPage(api, notices, tr, log),
		composer: composer.New(api, editor, notices, tr, log),
	}
	notices.OnPost(a.printNotification)
	return a, nil
}

// Run restores the session, shows the first screen and hands control to
// the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println(a.palette().Title.Render("gophnotes"), a.palette().Help.Render("(type 'help' for commands)"))
	if _, ok := a.session.Seed(ctx); ok {
		a.println(a.palette().Muted.Render(a.status()))
	}
	a.session.Restore(ctx)
	a.navigate(ctx, router.PathHome)

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() {
	a.notices.Clear()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "cannot close database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) palette() ui.Palette {
	return ui.NewPalette(a.prefs.Theme())
}

// status is the prompt context: user and route, or the mirrored user of
// the last session while the session is being restored.
func (a *App) status() string {
	u, ok := a.session.User()
	if a.session.Loading() {
		if ok {
			return u.Name + " ..."
		}
		return "..."
	}
	if ok {
		return u.Name + " " + a.route.Path
	}
	return a.route.Path
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) printNotification(n notify.Notification) {
	a.println(a.palette().Notification(n))
}

// Package cli is the terminal front end: a REPL over the feed, voting and
// comment controllers, mirroring the pages of the web client.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrijs2005/resumeroast/internal/client/api"
	"github.com/dmitrijs2005/resumeroast/internal/client/comments"
	"github.com/dmitrijs2005/resumeroast/internal/client/config"
	"github.com/dmitrijs2005/resumeroast/internal/client/feed"
	"github.com/dmitrijs2005/resumeroast/internal/client/localdb"
	"github.com/dmitrijs2005/resumeroast/internal/client/notify"
	"github.com/dmitrijs2005/resumeroast/internal/client/posts"
	"github.com/dmitrijs2005/resumeroast/internal/client/prefs"
	"github.com/dmitrijs2005/resumeroast/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/resumeroast/internal/client/session"
	"github.com/dmitrijs2005/resumeroast/internal/client/voting"
	"github.com/dmitrijs2005/resumeroast/internal/logging"
)

// App wires the client together and backs the REPL commands.
type App struct {
	config   *config.Config
	log      logging.Logger
	notifier notify.Notifier

	db       *sql.DB
	api      api.Client
	session  *session.Store
	prefs    *prefs.Service
	posts    *posts.Service
	location *feed.MemoryLocation
	nav      *feed.Controller
	vote     *voting.Controller
	thread   *comments.Controller

	reader *bufio.Reader
	out    io.Writer
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, parseLevel(c.LogLevel))

	db, err := localdb.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("initializing local database: %w", err)
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(logger.Slog()),
	)

	store, err := session.NewStore(ctx, apiClient, session.NewSQLitePersistence(db), logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading session: %w", err)
	}

	notifier := notify.NewWriter(os.Stdout)
	location := feed.NewMemoryLocation("/feed")
	nav := feed.NewController(location, feed.WithDebounce(c.URLSyncDebounce))

	a := &App{
		config:   c,
		log:      logger,
		notifier: notifier,
		db:       db,
		api:      apiClient,
		session:  store,
		prefs:    prefs.NewService(metadata.NewSQLiteRepository(db)),
		posts:    posts.NewService(apiClient, store, notifier, logger),
		location: location,
		nav:      nav,
		vote:     voting.NewController(apiClient, store, notifier, logger),
		thread:   comments.NewController(apiClient, store, notifier, logger),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	// Other components mutate the session (validation probes, logout); the
	// voting queue must fall back to preview mode the moment it goes away.
	store.OnChange(func() {
		if store.Token() == "" {
			_ = a.vote.Load(context.Background())
		}
	})

	return a, nil
}

// Close releases the local database.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Token() != ""
}

// status renders the prompt suffix: username and token expiry when signed in.
func (a *App) status() string {
	user := a.session.User()
	if user == nil {
		return ""
	}

	s := user.DisplayName()
	if exp, ok := a.session.TokenExpiry(); ok {
		s += " until " + exp.Local().Format("15:04")
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run validates any persisted session, shows the announcement banner, and
// hands off to the REPL.
func (a *App) Run(ctx context.Context) {
	if a.session.Token() != "" {
		if user := a.session.Validate(ctx); user == nil {
			a.notifier.Error("Session expired. Please sign in again.")
		}
	}

	a.showAnnouncement(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(a.out, "ResumeRoast terminal client (type 'help' for commands)")
	runREPL(ctx, a, a.status, scanner, a.out)
}

const announcementText = "Welcome to ResumeRoast! Rate five resumes to unlock feedback on yours."

func (a *App) showAnnouncement(ctx context.Context) {
	id := a.config.AnnouncementID
	if id == "" || a.prefs.IsDismissed(ctx, id) {
		return
	}
	fmt.Fprintf(a.out, "*** %s (type 'dismiss' to hide) ***\n", announcementText)
}

func (a *App) Dismiss(ctx context.Context) error {
	if a.config.AnnouncementID == "" {
		return nil
	}
	return a.prefs.Dismiss(ctx, a.config.AnnouncementID)
}

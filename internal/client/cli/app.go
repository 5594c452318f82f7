package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/config"
	"github.com/dmitrijs2005/emprende/internal/client/guard"
	"github.com/dmitrijs2005/emprende/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/emprende/internal/client/services"
	"github.com/dmitrijs2005/emprende/internal/client/session"
	"github.com/dmitrijs2005/emprende/internal/logging"
)

type App struct {
	config              *config.Config
	log                 logging.Logger
	store               *session.Store
	guard               *guard.Guard
	loginService        services.LoginService
	profileService      services.ProfileService
	documentService     services.DocumentService
	registrationService services.RegistrationService

	mu    sync.Mutex
	route string

	reader  *bufio.Reader
	out     io.Writer
	closeFn func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store, err := session.Open(ctx, metadata.NewSQLiteRepository(db), log.With("component", "session"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout,
		client.WithTokenSource(store),
		client.WithLogger(log.With("component", "gateway")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	g := guard.New(store)

	return &App{
		config:              c,
		log:                 log,
		store:               store,
		guard:               g,
		loginService:        services.NewLoginService(apiClient, store, g, log.With("component", "login")),
		profileService:      services.NewProfileService(apiClient, store, log.With("component", "profile")),
		documentService:     services.NewDocumentService(apiClient, log.With("component", "documents")),
		registrationService: services.NewRegistrationService(apiClient, log.With("component", "registration")),
		route:               services.HomeRoute,
		reader:              bufio.NewReader(os.Stdin),
		out:                 os.Stdout,
		closeFn:             db.Close,
	}, nil
}

// Run blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, unsubscribe := a.store.Subscribe()
	defer unsubscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.watchSession(ctx, updates)
	}()

	fmt.Fprintln(a.out, "Welcome to the emprende CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)

	cancel()
	wg.Wait()

	if a.closeFn != nil {
		return a.closeFn()
	}
	return nil
}

// watchSession moves the user off a protected route as soon as the session
// ends, wherever the logout came from.
func (a *App) watchSession(ctx context.Context, updates <-chan bool) {
	for {
		select {
		case authenticated, ok := <-updates:
			if !ok {
				return
			}
			a.log.Debug(ctx, "session state changed", "authenticated", authenticated)
			if authenticated {
				continue
			}
			a.mu.Lock()
			if a.guard.Protected(a.route) {
				a.route = guard.LoginRoute
			}
			a.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Authenticated()
}

func (a *App) currentRoute() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

func (a *App) setRoute(route string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.route = route
}

func (a *App) getStatus() string {
	who := "guest"
	if a.isLoggedIn() {
		if sess, err := a.store.Load(context.Background()); err == nil {
			who = sess.Profile.DisplayName()
		}
	}
	return fmt.Sprintf("(%s %s)", who, a.currentRoute())
}

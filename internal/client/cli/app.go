package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/buffsmarket/marketcli/internal/client/config"
	"github.com/buffsmarket/marketcli/internal/client/graphql"
	"github.com/buffsmarket/marketcli/internal/client/listings"
	"github.com/buffsmarket/marketcli/internal/client/services"
	"github.com/buffsmarket/marketcli/internal/client/session"
	"github.com/buffsmarket/marketcli/internal/client/upload"
	"github.com/buffsmarket/marketcli/internal/logging"
)

// App ties the session store, services and REPL together. One App instance
// corresponds to one interactive client; several instances may share a
// session file and observe each other's logins and logouts.
type App struct {
	config   *config.Config
	log      logging.Logger
	sessions *session.Store
	auth     services.AuthService
	listings *listings.Repository
	reader   *bufio.Reader

	// includeSold controls whether sold listings show up in list/search.
	includeSold bool
}

// NewApp wires all client components from the given configuration. The
// persisted session, if any, is restored immediately so the first command
// already runs authenticated.
func NewApp(c *config.Config, log logging.Logger) *App {
	app := &App{config: c, log: log, reader: bufio.NewReader(os.Stdin)}

	app.sessions = session.NewStore(c.SessionFile, log)
	app.sessions.Load()

	gql := graphql.New(c.EndpointURL,
		graphql.WithTokenSource(app.sessions.Token),
		graphql.WithUnauthenticatedHook(app.expireSession),
		graphql.WithLogger(log),
	)

	app.auth = services.NewAuthService(gql, app.sessions, c.RegisterEmailDomain)
	app.listings = listings.New(gql, upload.New(gql))

	return app
}

// Run starts the session watcher and the interactive loop. It blocks until
// the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	if err := a.sessions.Watch(ctx); err != nil {
		a.log.Warn(ctx, "session watch unavailable", "error", err)
	} else {
		go a.watchSessionChanges(ctx, a.sessions.Subscribe())
	}

	printlnFn("BuffsMarket CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// watchSessionChanges reacts to logins and logouts performed by another
// instance sharing the session file. Cached listings are dropped so the next
// fetch runs under the new identity.
func (a *App) watchSessionChanges(ctx context.Context, updates <-chan session.State) {
	for {
		select {
		case st := <-updates:
			a.listings.Reset()
			if st.Authenticated() {
				printlnFn(fmt.Sprintf("Signed in as %s in another window.", st.User.Username))
			} else {
				printlnFn("Signed out in another window.")
			}
		case <-ctx.Done():
			return
		}
	}
}

// expireSession is invoked when the server answers UNAUTHENTICATED. The
// stored session is stale at that point and keeping it would only repeat
// the failure on every call.
func (a *App) expireSession() {
	if err := a.sessions.Logout(); err != nil {
		a.log.Warn(context.Background(), "clearing expired session", "error", err)
	}
	a.listings.Reset()
	printlnFn("Session expired. Please log in again.")
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}

func (a *App) getStatus() string {
	u := a.sessions.User()
	if u == nil {
		return ""
	}
	return "(" + u.Username + ")"
}

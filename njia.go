// Package njia is the navigation and session-security core of a
// multi-tenant school dashboard: a hierarchical context model kept in sync
// with the URL, a token lifecycle over two storage tiers, and the guards
// that keep both safe. It is a library; hosts embed it into their view
// layer and supply the history and storage collaborators.
package njia

import (
	"github.com/darasahub/njia/core"
	"github.com/darasahub/njia/core/guard"
	"github.com/darasahub/njia/core/nav"
	"github.com/darasahub/njia/core/session"
	backendsvc "github.com/darasahub/njia/services/backend"
)

// App wires the core components together once. All collaborators are
// injected; nothing here owns a singleton.
type App struct {
	Conf     *core.Config
	State    *nav.State
	Engine   *nav.Engine
	Sessions *session.Manager
	Watcher  *session.Watcher
	Guard    *guard.Guard
	Backend  *backendsvc.Client
}

// New assembles the app. The sync engine subscribes to context changes
// immediately; the session watcher is created but not started, since its
// lifetime belongs to the host's root view (start on mount, stop on
// unmount). onSessionExpired runs when the watcher forces a logout.
func New(
	conf *core.Config,
	durable, sessionTier session.Tier,
	hist nav.History,
	onSessionExpired func(),
	onRateLimited backendsvc.RateLimitObserver,
	log core.Logger,
) *App {
	state := nav.NewState()
	engine := nav.NewEngine(conf, state, hist, log)
	engine.Start()

	sessions := session.NewManager(conf, durable, sessionTier, log)

	return &App{
		Conf:     conf,
		State:    state,
		Engine:   engine,
		Sessions: sessions,
		Watcher:  session.NewWatcher(conf, sessions, onSessionExpired, log),
		Guard:    guard.New(conf, log),
		Backend:  backendsvc.NewClient(conf, sessions, onRateLimited, log),
	}
}

// Logout purges the session and selection state; the caller is expected to
// navigate to the login route afterwards.
func (a *App) Logout() {
	a.Sessions.Clear()
	a.State.Clear()
}

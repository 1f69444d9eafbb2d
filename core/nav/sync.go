package nav

import (
	"strings"

	"github.com/darasahub/njia/core"
)

// History is the browser-history surface the sync engine writes through.
// Replace rewrites the current entry (used for synchronization so that
// back/forward never replays a sync write); Push is reserved for
// user-initiated navigation.
type History interface {
	Path() string
	Push(path string)
	Replace(path string)
}

// ResolveFunc receives the context a URL implies when the state model does
// not have it loaded. Fetching the implied entities is the owning feature's
// job; the engine only flags the condition.
type ResolveFunc func(Context)

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionReplaceURL
	ActionRequestResolve
)

// Action is the outcome of a reconciliation pass. Keeping it a value (and
// the reconcilers pure) makes the no-feedback-loop invariant testable
// without a live history.
type Action struct {
	Kind    ActionKind
	Path    string  // ActionReplaceURL
	Resolve Context // ActionRequestResolve
}

// ReconcileContext computes the action for a context-changed trigger: the
// expected path for the current page under the new context, or nothing if
// the live URL already matches. Comparing before writing is what keeps a
// sync write from echoing back as a second write.
func ReconcileContext(ctx Context, livePath string, hierarchical bool) Action {
	_, page := Parse(livePath)
	var want string
	if hierarchical {
		want = Build(ctx, page)
	} else {
		want = BuildPlain(page)
	}
	if want == pathOnly(livePath) {
		return Action{Kind: ActionNone}
	}
	return Action{Kind: ActionReplaceURL, Path: want}
}

// ReconcileNavigation computes the action for a navigation-changed trigger.
// If the URL implies context the state does not hold, a resolve is
// requested; if the state holds context the URL lacks, the URL is rewritten
// in place. A URL already in agreement produces no action.
func ReconcileNavigation(ctx Context, livePath string, hierarchical bool) Action {
	urlCtx, page := Parse(livePath)
	if missesContext(ctx, urlCtx) {
		return Action{Kind: ActionRequestResolve, Resolve: urlCtx}
	}
	if !hierarchical {
		return Action{Kind: ActionNone}
	}
	want := Build(ctx, page)
	if want == pathOnly(livePath) {
		return Action{Kind: ActionNone}
	}
	return Action{Kind: ActionReplaceURL, Path: want}
}

// missesContext reports whether url carries a slot value the state does not
// already hold.
func missesContext(state, url Context) bool {
	return (url.InstituteID != "" && url.InstituteID != state.InstituteID) ||
		(url.ClassID != "" && url.ClassID != state.ClassID) ||
		(url.SubjectID != "" && url.SubjectID != state.SubjectID) ||
		(url.ChildID != "" && url.ChildID != state.ChildID) ||
		(url.OrganizationID != "" && url.OrganizationID != state.OrganizationID) ||
		(url.TransportID != "" && url.TransportID != state.TransportID)
}

// Engine keeps the context state and the live URL in agreement. Both
// triggers funnel through the pure reconcilers and then apply the resulting
// action at most once; writes always go through Replace so browser history
// never grows from synchronization.
type Engine struct {
	conf    *core.Config
	state   *State
	hist    History
	log     core.Logger
	resolve ResolveFunc
}

func NewEngine(conf *core.Config, state *State, hist History, log core.Logger) *Engine {
	return &Engine{conf: conf, state: state, hist: hist, log: log}
}

// SetResolveFunc registers the handler for resolve-needed conditions.
func (e *Engine) SetResolveFunc(fn ResolveFunc) {
	e.resolve = fn
}

// Start subscribes the engine to context changes. Navigation changes are
// delivered by the host via NavigationChanged.
func (e *Engine) Start() {
	e.state.Subscribe(func(Context) { e.ContextChanged() })
}

// ContextChanged handles the context-changed trigger and returns the action
// that was applied.
func (e *Engine) ContextChanged() Action {
	live := e.hist.Path()
	if e.Excluded(live) {
		return Action{Kind: ActionNone}
	}
	act := ReconcileContext(e.state.Context(), live, e.conf.HierarchicalURLs)
	return e.apply(act)
}

// NavigationChanged handles the navigation-changed trigger (link click,
// back/forward, synthetic popstate) and returns the action that was applied.
func (e *Engine) NavigationChanged() Action {
	live := e.hist.Path()
	if e.Excluded(live) {
		return Action{Kind: ActionNone}
	}
	act := ReconcileNavigation(e.state.Context(), live, e.conf.HierarchicalURLs)
	return e.apply(act)
}

// Excluded reports whether a path is exempt from synchronization (auth
// screens, deep-link detail pages) and must be passed through unmodified.
func (e *Engine) Excluded(path string) bool {
	p := pathOnly(path)
	for _, prefix := range e.conf.ExcludedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

func (e *Engine) apply(act Action) Action {
	switch act.Kind {
	case ActionReplaceURL:
		e.hist.Replace(act.Path)
		e.log.Debug("nav: synchronized URL", map[string]interface{}{"path": act.Path})
	case ActionRequestResolve:
		e.log.Debug("nav: resolve needed", map[string]interface{}{"context": act.Resolve})
		if e.resolve != nil {
			e.resolve(act.Resolve)
		}
	}
	return act
}

// pathOnly strips query/fragment and normalizes slashes so that computed
// and live paths compare reliably.
func pathOnly(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

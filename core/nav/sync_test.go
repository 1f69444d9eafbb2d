package nav

import (
	"testing"

	"github.com/darasahub/njia/core"
)

type fakeHistory struct {
	path     string
	pushes   int
	replaces int
}

func (h *fakeHistory) Path() string { return h.path }
func (h *fakeHistory) Push(p string) {
	h.path = p
	h.pushes++
}
func (h *fakeHistory) Replace(p string) {
	h.path = p
	h.replaces++
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func testConf() *core.Config {
	return &core.Config{
		HierarchicalURLs: true,
		ExcludedPrefixes: []string{"/login", "/register"},
		LoginRoute:       "/login",
		DashboardRoute:   "/dashboard",
	}
}

func newTestEngine(path string) (*Engine, *State, *fakeHistory) {
	state := NewState()
	hist := &fakeHistory{path: path}
	eng := NewEngine(testConf(), state, hist, nopLogger{})
	eng.Start()
	return eng, state, hist
}

func TestReconcileContext(t *testing.T) {
	tests := []struct {
		name         string
		ctx          Context
		livePath     string
		hierarchical bool
		want         Action
	}{
		{
			name:         "in sync is a no-op",
			ctx:          Context{InstituteID: "6"},
			livePath:     "/institute/6/attendance",
			hierarchical: true,
			want:         Action{Kind: ActionNone},
		},
		{
			name:         "selection rewrites url",
			ctx:          Context{InstituteID: "6", ClassID: "12"},
			livePath:     "/institute/6/attendance",
			hierarchical: true,
			want:         Action{Kind: ActionReplaceURL, Path: "/institute/6/class/12/attendance"},
		},
		{
			name:         "deselection strips url",
			ctx:          Context{},
			livePath:     "/institute/6/attendance",
			hierarchical: true,
			want:         Action{Kind: ActionReplaceURL, Path: "/attendance"},
		},
		{
			name:         "plain mode never embeds context",
			ctx:          Context{InstituteID: "6"},
			livePath:     "/attendance",
			hierarchical: false,
			want:         Action{Kind: ActionNone},
		},
		{
			name:         "query string does not force a write",
			ctx:          Context{InstituteID: "6"},
			livePath:     "/institute/6/attendance?tab=2",
			hierarchical: true,
			want:         Action{Kind: ActionNone},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReconcileContext(tt.ctx, tt.livePath, tt.hierarchical); got != tt.want {
				t.Errorf("ReconcileContext() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReconcileNavigation(t *testing.T) {
	tests := []struct {
		name         string
		ctx          Context
		livePath     string
		hierarchical bool
		want         Action
	}{
		{
			name:         "agreement is a no-op",
			ctx:          Context{InstituteID: "6"},
			livePath:     "/institute/6/attendance",
			hierarchical: true,
			want:         Action{Kind: ActionNone},
		},
		{
			name:         "url implies unknown context",
			ctx:          Context{},
			livePath:     "/institute/6/class/12/attendance",
			hierarchical: true,
			want:         Action{Kind: ActionRequestResolve, Resolve: Context{InstituteID: "6", ClassID: "12"}},
		},
		{
			name:         "url implies different institute",
			ctx:          Context{InstituteID: "7"},
			livePath:     "/institute/6/attendance",
			hierarchical: true,
			want:         Action{Kind: ActionRequestResolve, Resolve: Context{InstituteID: "6"}},
		},
		{
			name:         "state fills a bare url",
			ctx:          Context{InstituteID: "6"},
			livePath:     "/attendance",
			hierarchical: true,
			want:         Action{Kind: ActionReplaceURL, Path: "/institute/6/attendance"},
		},
		{
			name:         "plain mode leaves bare urls alone",
			ctx:          Context{InstituteID: "6"},
			livePath:     "/attendance",
			hierarchical: false,
			want:         Action{Kind: ActionNone},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReconcileNavigation(tt.ctx, tt.livePath, tt.hierarchical); got != tt.want {
				t.Errorf("ReconcileNavigation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEngineNoSpuriousWrites(t *testing.T) {
	_, state, hist := newTestEngine("/institute/6/attendance")
	state.SelectInstitute("6") // matches the URL already

	if hist.replaces != 0 || hist.pushes != 0 {
		t.Errorf("history touched %d times, want 0", hist.replaces+hist.pushes)
	}
}

func TestEngineContextChangeReplacesOnce(t *testing.T) {
	eng, state, hist := newTestEngine("/institute/6/attendance")
	state.SelectInstitute("7")

	if hist.path != "/institute/7/attendance" {
		t.Errorf("path = %q", hist.path)
	}
	if hist.replaces != 1 {
		t.Errorf("replaces = %d, want 1", hist.replaces)
	}
	if hist.pushes != 0 {
		t.Errorf("pushes = %d, want 0 (sync must not grow history)", hist.pushes)
	}

	// the echoed navigation event must not produce a second write
	eng.NavigationChanged()
	if hist.replaces != 1 {
		t.Errorf("replaces after echo = %d, want 1", hist.replaces)
	}
}

func TestEngineNavigationRequestsResolve(t *testing.T) {
	eng, _, hist := newTestEngine("/attendance")
	var resolved []Context
	eng.SetResolveFunc(func(ctx Context) { resolved = append(resolved, ctx) })

	hist.path = "/institute/6/class/12/attendance" // back/forward landed here
	act := eng.NavigationChanged()

	if act.Kind != ActionRequestResolve {
		t.Fatalf("action = %+v, want resolve", act)
	}
	if len(resolved) != 1 || resolved[0] != (Context{InstituteID: "6", ClassID: "12"}) {
		t.Errorf("resolved = %+v", resolved)
	}
	if hist.replaces != 0 {
		t.Errorf("replaces = %d, want 0 (engine must not write while unresolved)", hist.replaces)
	}
}

func TestEngineExcludedPrefixes(t *testing.T) {
	eng, state, hist := newTestEngine("/login")

	state.SelectInstitute("6")
	if hist.replaces != 0 {
		t.Errorf("replaces = %d, want 0 on excluded path", hist.replaces)
	}
	if act := eng.NavigationChanged(); act.Kind != ActionNone {
		t.Errorf("action = %+v, want none on excluded path", act)
	}

	// boundary check: /loginfoo is not excluded
	if eng.Excluded("/loginfoo") {
		t.Error("Excluded(/loginfoo) = true, want false")
	}
	if !eng.Excluded("/login/reset") {
		t.Error("Excluded(/login/reset) = false, want true")
	}
}

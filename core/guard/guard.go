package guard

import (
	"github.com/darasahub/njia/core"
	"github.com/darasahub/njia/core/nav"
	"github.com/darasahub/njia/core/session"
)

// Config declares the precondition checklist a view requires before it may
// render. Checks run in declaration order and short-circuit on the first
// failure.
type Config struct {
	RequireAuth      bool
	AllowedRoles     []string
	RequireInstitute bool
	RequireClass     bool
	RequireSubject   bool
	ValidateParams   bool
	Check            func(Input) bool // caller-supplied predicate, runs last
	Fallback         string           // redirect target on failure; defaults per check
}

// Input is the snapshot a guard evaluation runs against. It is assembled by
// the caller whenever any of user, context or location changes and the
// checklist is re-evaluated.
type Input struct {
	Token    *session.TokenRecord
	Roles    []string
	Context  nav.Context
	Path     string
	RawQuery string
}

// Decision is the outcome of a guard evaluation. A denied decision always
// carries a redirect.
type Decision struct {
	Allowed  bool
	Redirect string
	Reason   string
}

// Guard evaluates view preconditions against the configured fallback routes
// and reports security-signature hits through the logger.
type Guard struct {
	conf *core.Config
	log  core.Logger
}

func New(conf *core.Config, log core.Logger) *Guard {
	return &Guard{conf: conf, log: log}
}

// Evaluate runs the ordered checklist: authentication, role membership,
// required context, parameter validity, custom predicate.
func (g *Guard) Evaluate(cfg Config, in Input) Decision {
	if cfg.RequireAuth && in.Token == nil {
		return g.deny(cfg, g.conf.LoginRoute, "not authenticated")
	}
	if !HasAnyRole(in.Roles, cfg.AllowedRoles) {
		return g.deny(cfg, g.conf.DashboardRoute, "role not allowed")
	}
	if cfg.RequireInstitute && in.Context.InstituteID == "" {
		return g.deny(cfg, g.conf.DashboardRoute, "no institute selected")
	}
	if cfg.RequireClass && in.Context.ClassID == "" {
		return g.deny(cfg, g.conf.DashboardRoute, "no class selected")
	}
	if cfg.RequireSubject && in.Context.SubjectID == "" {
		return g.deny(cfg, g.conf.DashboardRoute, "no subject selected")
	}
	if cfg.ValidateParams {
		if sig := matchParams(in.RawQuery); sig != "" {
			// hard stop, reported louder than ordinary malformed input
			g.log.Error("guard: attack signature in URL parameters",
				core.NewSecurityError(sig, in.RawQuery),
				map[string]interface{}{"path": in.Path})
			return g.deny(cfg, g.conf.DashboardRoute, "unsafe parameters")
		}
	}
	if cfg.Check != nil && !cfg.Check(in) {
		return g.deny(cfg, g.conf.DashboardRoute, "precondition failed")
	}
	return Decision{Allowed: true}
}

func (g *Guard) deny(cfg Config, fallback, reason string) Decision {
	redirect := cfg.Fallback
	if redirect == "" {
		redirect = fallback
	}
	g.log.Debug("guard: denied", map[string]interface{}{"reason": reason, "redirect": redirect})
	return Decision{Redirect: redirect, Reason: reason}
}

package guard

import (
	"testing"
	"time"

	"github.com/darasahub/njia/core"
	"github.com/darasahub/njia/core/nav"
	"github.com/darasahub/njia/core/session"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func testGuard() *Guard {
	return New(&core.Config{LoginRoute: "/login", DashboardRoute: "/dashboard"}, nopLogger{})
}

func validToken() *session.TokenRecord {
	return &session.TokenRecord{
		Token:     "tok",
		UserID:    "u1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
}

func TestGuardEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		in           Input
		wantAllowed  bool
		wantRedirect string
	}{
		{
			name:        "open route",
			cfg:         Config{},
			in:          Input{},
			wantAllowed: true,
		},
		{
			name:         "auth required, no token",
			cfg:          Config{RequireAuth: true},
			in:           Input{},
			wantRedirect: "/login",
		},
		{
			name:        "auth required, token present",
			cfg:         Config{RequireAuth: true},
			in:          Input{Token: validToken()},
			wantAllowed: true,
		},
		{
			name:         "role not allowed",
			cfg:          Config{RequireAuth: true, AllowedRoles: []string{RoleAdmin}},
			in:           Input{Token: validToken(), Roles: []string{RoleStudent}},
			wantRedirect: "/dashboard",
		},
		{
			name:        "group role satisfied by member",
			cfg:         Config{RequireAuth: true, AllowedRoles: []string{RoleAdmin}},
			in:          Input{Token: validToken(), Roles: []string{RoleAdminOwner}},
			wantAllowed: true,
		},
		{
			name:         "institute required",
			cfg:          Config{RequireInstitute: true},
			in:           Input{},
			wantRedirect: "/dashboard",
		},
		{
			name:         "class required",
			cfg:          Config{RequireClass: true},
			in:           Input{Context: nav.Context{InstituteID: "6"}},
			wantRedirect: "/dashboard",
		},
		{
			name:         "subject required",
			cfg:          Config{RequireSubject: true},
			in:           Input{Context: nav.Context{InstituteID: "6", ClassID: "12"}},
			wantRedirect: "/dashboard",
		},
		{
			name:        "full context satisfies",
			cfg:         Config{RequireInstitute: true, RequireClass: true, RequireSubject: true},
			in:          Input{Context: nav.Context{InstituteID: "6", ClassID: "12", SubjectID: "3"}},
			wantAllowed: true,
		},
		{
			name:         "unsafe params rejected",
			cfg:          Config{ValidateParams: true},
			in:           Input{Path: "/attendance", RawQuery: "?id=1' OR '1'='1"},
			wantRedirect: "/dashboard",
		},
		{
			name:        "safe params pass",
			cfg:         Config{ValidateParams: true},
			in:          Input{Path: "/attendance", RawQuery: "?page=2"},
			wantAllowed: true,
		},
		{
			name:         "custom predicate",
			cfg:          Config{Check: func(Input) bool { return false }},
			in:           Input{},
			wantRedirect: "/dashboard",
		},
		{
			name:         "explicit fallback wins",
			cfg:          Config{RequireAuth: true, Fallback: "/welcome"},
			in:           Input{},
			wantRedirect: "/welcome",
		},
		{
			name: "auth checked before context",
			cfg:  Config{RequireAuth: true, RequireInstitute: true},
			in:   Input{},
			// both fail; the redirect must come from the auth check
			wantRedirect: "/login",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := testGuard().Evaluate(tt.cfg, tt.in)
			if dec.Allowed != tt.wantAllowed {
				t.Errorf("Evaluate() allowed = %v (%s), want %v", dec.Allowed, dec.Reason, tt.wantAllowed)
			}
			if dec.Redirect != tt.wantRedirect {
				t.Errorf("Evaluate() redirect = %q, want %q", dec.Redirect, tt.wantRedirect)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	tests := []struct {
		name    string
		held    []string
		allowed []string
		want    bool
	}{
		{name: "no restriction", held: nil, allowed: nil, want: true},
		{name: "exact match", held: []string{RoleTeacher}, allowed: []string{RoleTeacher}, want: true},
		{name: "group match", held: []string{RoleAdminPrincipal}, allowed: []string{RoleAdmin}, want: true},
		{name: "no match", held: []string{RoleStudent}, allowed: []string{RoleAdmin, RoleTeacher}, want: false},
		{name: "nothing held", held: nil, allowed: []string{RoleAdmin}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasAnyRole(tt.held, tt.allowed); got != tt.want {
				t.Errorf("HasAnyRole(%v, %v) = %v, want %v", tt.held, tt.allowed, got, tt.want)
			}
		})
	}
}

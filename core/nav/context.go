package nav

import (
	"errors"
	"sync"
)

var (
	// errors
	ErrClassRequiresInstitute = errors.New("a class can only be selected within an institute")
	ErrSubjectRequiresClass   = errors.New("a subject can only be selected within a class")
)

// Root identifies which of the mutually exclusive top-level scopes drives
// the current view.
type Root int

const (
	RootNone Root = iota
	RootChild
	RootOrganization
	RootTransport
	RootInstitute
)

// Context is the current selection scoping the user's view: either the
// institute > class > subject hierarchy or one of the flat alternatives
// (child, organization, transport). A Context value is an immutable
// snapshot; all mutation goes through State.
type Context struct {
	InstituteID    string `json:"institute_id,omitempty"`
	ClassID        string `json:"class_id,omitempty"`
	SubjectID      string `json:"subject_id,omitempty"`
	ChildID        string `json:"child_id,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	TransportID    string `json:"transport_id,omitempty"`
}

func (c Context) IsEmpty() bool {
	return c == Context{}
}

// ActiveRoot applies the root precedence: child > organization > transport >
// institute hierarchy > none.
func (c Context) ActiveRoot() Root {
	switch {
	case c.ChildID != "":
		return RootChild
	case c.OrganizationID != "":
		return RootOrganization
	case c.TransportID != "":
		return RootTransport
	case c.InstituteID != "":
		return RootInstitute
	}
	return RootNone
}

// Normalized drops slots whose parent is missing: a class without an
// institute and a subject without a class are meaningless.
func (c Context) Normalized() Context {
	if c.InstituteID == "" {
		c.ClassID = ""
	}
	if c.ClassID == "" {
		c.SubjectID = ""
	}
	return c
}

// State is the injectable owner of the current Context. It is created empty
// at session start, mutated by selection actions and cleared on logout.
// Subscribers observe every committed change.
type State struct {
	mu   sync.RWMutex
	ctx  Context
	subs []func(Context)
}

func NewState() *State {
	return &State{}
}

// Context returns the current selection snapshot.
func (s *State) Context() Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx
}

// Subscribe registers fn to be called after every committed context change.
func (s *State) Subscribe(fn func(Context)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *State) commit(ctx Context) {
	s.mu.Lock()
	if s.ctx == ctx {
		s.mu.Unlock()
		return
	}
	s.ctx = ctx
	subs := s.subs
	s.mu.Unlock()
	for _, fn := range subs {
		fn(ctx)
	}
}

// SelectInstitute makes the institute hierarchy the active root. Any
// previously selected class/subject belongs to the old institute and is
// dropped, as are the flat root alternatives.
func (s *State) SelectInstitute(id string) {
	s.commit(Context{InstituteID: id})
}

func (s *State) SelectClass(id string) error {
	ctx := s.Context()
	if ctx.InstituteID == "" {
		return ErrClassRequiresInstitute
	}
	ctx.ClassID = id
	ctx.SubjectID = ""
	s.commit(ctx)
	return nil
}

func (s *State) SelectSubject(id string) error {
	ctx := s.Context()
	if ctx.ClassID == "" {
		return ErrSubjectRequiresClass
	}
	ctx.SubjectID = id
	s.commit(ctx)
	return nil
}

func (s *State) SelectChild(id string) {
	s.commit(Context{ChildID: id})
}

func (s *State) SelectOrganization(id string) {
	s.commit(Context{OrganizationID: id})
}

func (s *State) SelectTransport(id string) {
	s.commit(Context{TransportID: id})
}

// Replace swaps in a full context snapshot, e.g. after a resolve completes.
// The snapshot is normalized before committing.
func (s *State) Replace(ctx Context) {
	s.commit(ctx.Normalized())
}

// Clear resets the selection, e.g. on logout or explicit deselection.
func (s *State) Clear() {
	s.commit(Context{})
}

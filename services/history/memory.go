package histsvc

import (
	"sync"

	"github.com/darasahub/njia/core/nav"
)

// Memory is an in-process history implementing pushState/replaceState
// semantics plus the synthetic popstate dispatch: every programmatic write
// notifies subscribers so same-document listeners (the sync engine's host)
// observe it. Embedding hosts with a real browser history supply their own
// nav.History instead.
type Memory struct {
	mu    sync.Mutex
	stack []string
	idx   int
	subs  []func(path string)
}

var _ nav.History = (*Memory)(nil)

func NewMemory(initial string) *Memory {
	if initial == "" {
		initial = "/"
	}
	return &Memory{stack: []string{initial}}
}

func (h *Memory) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stack[h.idx]
}

// Push adds a new entry, dropping any forward entries, as a user-initiated
// navigation would.
func (h *Memory) Push(path string) {
	h.mu.Lock()
	h.stack = append(h.stack[:h.idx+1], path)
	h.idx = len(h.stack) - 1
	h.mu.Unlock()
	h.notify(path)
}

// Replace rewrites the current entry in place; history length is unchanged.
func (h *Memory) Replace(path string) {
	h.mu.Lock()
	h.stack[h.idx] = path
	h.mu.Unlock()
	h.notify(path)
}

// Back moves one entry back, like the browser back button. No-op at the
// oldest entry.
func (h *Memory) Back() {
	h.mu.Lock()
	if h.idx == 0 {
		h.mu.Unlock()
		return
	}
	h.idx--
	path := h.stack[h.idx]
	h.mu.Unlock()
	h.notify(path)
}

// Forward moves one entry forward. No-op at the newest entry.
func (h *Memory) Forward() {
	h.mu.Lock()
	if h.idx == len(h.stack)-1 {
		h.mu.Unlock()
		return
	}
	h.idx++
	path := h.stack[h.idx]
	h.mu.Unlock()
	h.notify(path)
}

// Len returns the number of history entries.
func (h *Memory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}

// Subscribe registers a navigation listener and returns its teardown.
func (h *Memory) Subscribe(fn func(path string)) func() {
	h.mu.Lock()
	h.subs = append(h.subs, fn)
	i := len(h.subs) - 1
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		h.subs[i] = nil
		h.mu.Unlock()
	}
}

func (h *Memory) notify(path string) {
	h.mu.Lock()
	subs := make([]func(string), len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()
	for _, fn := range subs {
		if fn != nil {
			fn(path)
		}
	}
}

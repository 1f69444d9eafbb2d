package session

import (
	"sync"
	"time"

	"github.com/darasahub/njia/core"
)

// Watcher re-validates the stored session on a fixed interval and forces a
// logout when the token is missing or its embedded expiry has passed. The
// owning view must Stop the watcher on unmount to release the timer.
type Watcher struct {
	mgr      *Manager
	interval time.Duration
	onExpire func()
	log      core.Logger

	stop chan struct{}
	once sync.Once
}

func NewWatcher(conf *core.Config, mgr *Manager, onExpire func(), log core.Logger) *Watcher {
	return &Watcher{
		mgr:      mgr,
		interval: conf.SessionCheckInterval,
		onExpire: onExpire,
		log:      log,
		stop:     make(chan struct{}),
	}
}

// Start begins periodic validation. The first check runs after one full
// interval, not immediately; callers wanting an immediate check call Check.
func (w *Watcher) Start() {
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.Check()
			case <-w.stop:
				return
			}
		}
	}()
}

// Stop tears the watcher down. Idempotent.
func (w *Watcher) Stop() {
	w.once.Do(func() { close(w.stop) })
}

// Check validates the session once. Returns false if the session was found
// invalid and a logout was forced.
func (w *Watcher) Check() bool {
	rec := w.mgr.Read() // expired records purge themselves here
	if rec == nil {
		w.expire()
		return false
	}
	// a structured token carries its own expiry claim; trust it over the
	// locally computed record expiry when it is shorter
	if exp, ok := DecodeExpiry(rec.Token); ok && nowFunc().UTC().After(exp) {
		w.log.Warn("session: token expiry claim passed, forcing logout",
			map[string]interface{}{"user_id": rec.UserID})
		w.mgr.Clear()
		w.expire()
		return false
	}
	return true
}

func (w *Watcher) expire() {
	if w.onExpire != nil {
		w.onExpire()
	}
}

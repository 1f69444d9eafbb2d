package session

import (
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/darasahub/njia/core"

	"github.com/google/uuid"
)

// Fixed storage keys. Both tiers are consumed as opaque string storage.
const (
	tokenRecordKey = "auth_token_record"
	accessTokenKey = "access_token"
	userSessionKey = "user_session"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound           = errors.New("key not found")
	ErrNoSession          = errors.New("no valid session")
	ErrStorageUnavailable = errors.New("session storage unavailable")
)

// Tier is one of the two persisted key/value tiers (durable vs
// session-scoped). Implementations live under services/storage and are
// injected once; nothing else selects a tier.
type Tier interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Manager owns the token lifecycle across both tiers. Reads fail closed
// and silent: any storage trouble, structural defect or expiry reads as
// "logged out". Writes block login and therefore surface their error.
type Manager struct {
	durable Tier
	session Tier
	conf    *core.Config
	log     core.Logger
}

func NewManager(conf *core.Config, durable, session Tier, log core.Logger) *Manager {
	return &Manager{durable: durable, session: session, conf: conf, log: log}
}

// Store writes a fresh TokenRecord to the tier selected by rememberMe and
// clears the other tier, so subsequent reads see only the new record.
func (m *Manager) Store(token, userID string, rememberMe bool) error {
	delta := m.conf.TokenExpirationDelta
	if rememberMe {
		delta = m.conf.RememberMeExpirationDelta
	}
	now := nowFunc().UTC()
	rec := TokenRecord{
		Token:      token,
		UserID:     userID,
		ExpiresAt:  now.Add(delta),
		RememberMe: rememberMe,
	}
	if err := core.Validate.Struct(rec); err != nil {
		return core.NewValidationError(err)
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return pkgerrors.Wrap(err, "session: marshal token record")
	}
	snap, err := json.Marshal(Snapshot{
		UserID:     userID,
		SessionID:  uuid.NewString(),
		RememberMe: rememberMe,
		CreatedAt:  now,
	})
	if err != nil {
		return pkgerrors.Wrap(err, "session: marshal snapshot")
	}

	dst, other := m.session, m.durable
	if rememberMe {
		dst, other = m.durable, m.session
	}
	if err := dst.Set(tokenRecordKey, string(payload)); err != nil {
		return pkgerrors.Wrap(ErrStorageUnavailable, err.Error())
	}
	if err := dst.Set(accessTokenKey, token); err != nil {
		return pkgerrors.Wrap(ErrStorageUnavailable, err.Error())
	}
	if err := dst.Set(userSessionKey, string(snap)); err != nil {
		return pkgerrors.Wrap(ErrStorageUnavailable, err.Error())
	}
	m.purgeTier(other)
	return nil
}

// Read returns the current TokenRecord, or nil when logged out. Expired or
// structurally invalid records are purged from all tiers before returning
// nil, so a bad record can never be observed twice.
func (m *Manager) Read() *TokenRecord {
	for _, tier := range []Tier{m.durable, m.session} {
		raw, err := tier.Get(tokenRecordKey)
		if err != nil {
			// unreadable tier counts as "no session" on this tier
			continue
		}
		var rec TokenRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			m.log.Warn("session: purging undecodable token record", map[string]interface{}{"err": err.Error()})
			m.Clear()
			return nil
		}
		if !rec.structurallyValid() {
			m.log.Warn("session: purging structurally invalid token record")
			m.Clear()
			return nil
		}
		if rec.Expired(nowFunc().UTC()) {
			m.log.Info("session: token expired", map[string]interface{}{"user_id": rec.UserID})
			m.Clear()
			return nil
		}
		return &rec
	}
	return nil
}

// AccessToken returns the raw bearer token of the current session, or ""
// when logged out.
func (m *Manager) AccessToken() string {
	if rec := m.Read(); rec != nil {
		return rec.Token
	}
	return ""
}

// Snapshot returns the stored user-session snapshot, or nil if absent.
func (m *Manager) Snapshot() *Snapshot {
	for _, tier := range []Tier{m.durable, m.session} {
		raw, err := tier.Get(userSessionKey)
		if err != nil {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			continue
		}
		return &snap
	}
	return nil
}

// Refresh re-stores the currently valid token with a newly computed expiry.
// Returns false when there is no valid token to refresh.
func (m *Manager) Refresh(rememberMe bool) bool {
	rec := m.Read()
	if rec == nil {
		return false
	}
	if err := m.Store(rec.Token, rec.UserID, rememberMe); err != nil {
		m.log.Error("session: refresh failed", map[string]interface{}{"err": err.Error()})
		return false
	}
	return true
}

// Clear purges both tiers unconditionally. Idempotent.
func (m *Manager) Clear() {
	m.purgeTier(m.durable)
	m.purgeTier(m.session)
}

func (m *Manager) purgeTier(tier Tier) {
	for _, key := range []string{tokenRecordKey, accessTokenKey, userSessionKey} {
		// best effort; a failed purge of a dead tier reads as absent anyway
		_ = tier.Remove(key)
	}
}

package backendsvc

import (
	"net/http"
	"strconv"
	"time"

	"github.com/darasahub/njia/core"
	"github.com/darasahub/njia/core/session"
)

// RateLimitHint is surfaced when the backend answers 429. The observer gets
// the retry-after delay the backend suggested; retrying itself stays the
// HTTP client's responsibility.
type RateLimitHint struct {
	RetryAfter time.Duration
	At         time.Time
}

type RateLimitObserver func(RateLimitHint)

// Transport attaches the session's bearer token to every outgoing request
// and watches responses for rate limiting. It wraps any base RoundTripper.
type Transport struct {
	base    http.RoundTripper
	mgr     *session.Manager
	observe RateLimitObserver
	log     core.Logger
}

var _ http.RoundTripper = (*Transport)(nil)

func NewTransport(base http.RoundTripper, mgr *session.Manager, observe RateLimitObserver, log core.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, mgr: mgr, observe: observe, log: log}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// per RoundTripper contract the request must not be mutated in place
	out := req.Clone(req.Context())
	if tok := t.mgr.AccessToken(); tok != "" {
		out.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		hint := RateLimitHint{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")), At: time.Now().UTC()}
		t.log.Warn("backend: rate limited",
			map[string]interface{}{"retry_after": hint.RetryAfter.String(), "url": req.URL.Path})
		if t.observe != nil {
			t.observe(hint)
		}
	}
	return resp, nil
}

// parseRetryAfter handles both delta-seconds and HTTP-date forms; zero
// means the backend gave no usable hint.
func parseRetryAfter(val string) time.Duration {
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(val); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

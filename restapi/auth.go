package restapi

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ontoops/go-console-cache/apitypes"
)

// tokenSource guards the access/refresh token pair. Refreshes are serialized
// behind the mutex: when several requests hit a 401 around the same time,
// the first one performs the exchange and the rest reuse its result instead
// of issuing their own refresh calls.
type tokenSource struct {
	mu     sync.Mutex
	tokens apitypes.TokenPair

	leeway    time.Duration
	exchange  func(ctx context.Context, refreshToken string) (apitypes.TokenPair, error)
	onExpired func()
	log       *slog.Logger
}

// current returns a usable access token, proactively refreshing when the JWT
// exp claim is within the leeway window.
func (ts *tokenSource) current(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if expiresWithin(ts.tokens.AccessToken, ts.leeway) {
		if err := ts.refreshLocked(ctx); err != nil {
			return "", err
		}
	}
	return ts.tokens.AccessToken, nil
}

// refreshAfterReject exchanges the refresh token after the backend rejected
// the given access token. If another request already rotated the pair while
// this one was in flight, the fresh token is returned without a second
// exchange.
func (ts *tokenSource) refreshAfterReject(ctx context.Context, rejected string) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.tokens.AccessToken != rejected {
		return ts.tokens.AccessToken, nil
	}
	if err := ts.refreshLocked(ctx); err != nil {
		return "", err
	}
	return ts.tokens.AccessToken, nil
}

func (ts *tokenSource) refreshLocked(ctx context.Context) error {
	if ts.tokens.RefreshToken == "" {
		ts.expire()
		return ErrSessionExpired
	}

	pair, err := ts.exchange(ctx, ts.tokens.RefreshToken)
	if err != nil {
		ts.log.Warn("token refresh failed", "error", err)
		ts.expire()
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	ts.tokens = pair
	ts.log.Debug("access token refreshed")
	return nil
}

// expireSession is the exported-path variant of expire for callers that do
// not already hold the mutex.
func (ts *tokenSource) expireSession() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.expire()
}

func (ts *tokenSource) expire() {
	ts.tokens = apitypes.TokenPair{}
	if ts.onExpired != nil {
		ts.onExpired()
	}
}

func (ts *tokenSource) set(pair apitypes.TokenPair) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tokens = pair
}

// expiresWithin inspects the exp claim of a JWT access token. Opaque tokens
// (anything that does not parse as a JWT) report false and rely on the 401
// retry path instead.
func expiresWithin(token string, leeway time.Duration) bool {
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < leeway
}

package transport

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
	"github.com/yogendraft21/insight-code-sub000/token"
	"github.com/yogendraft21/insight-code-sub000/transport/refresh"
)

const authorizationHeader = "Authorization"

var _ http.RoundTripper = (*AuthTransport)(nil)

// AuthTransport attaches the stored access token to every outbound request
// and performs a one-shot refresh-and-replay when the server answers 401.
//
// Per request: Sent -> (401 and not yet retried) -> Refreshing ->
// Retried-Once -> Success or Failed-Terminal. A request never takes the
// refreshing branch twice; a 401 on the replay is returned as-is.
type AuthTransport struct {
	store       token.Store
	coordinator *refresh.Coordinator
	base        http.RoundTripper
	logger      zerolog.Logger
}

// Option modifies an AuthTransport during construction.
type Option func(*AuthTransport)

// WithBase sets the underlying RoundTripper. Defaults to
// http.DefaultTransport.
func WithBase(base http.RoundTripper) Option {
	return func(t *AuthTransport) {
		t.base = base
	}
}

// WithLogger sets the transport logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *AuthTransport) {
		t.logger = logger
	}
}

// New creates an AuthTransport over the given store and refresh coordinator.
func New(store token.Store, coordinator *refresh.Coordinator, options ...Option) (*AuthTransport, error) {
	if store == nil {
		return nil, errors.New("[transport.New] store is required")
	}
	if coordinator == nil {
		return nil, errors.New("[transport.New] coordinator is required")
	}
	transport := &AuthTransport{
		store:       store,
		coordinator: coordinator,
		base:        http.DefaultTransport,
		logger:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(transport)
	}
	return transport, nil
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	outbound := req.Clone(req.Context())
	if access, err := t.store.Get(token.AccessTokenKey); err == nil && access != "" {
		outbound.Header.Set(authorizationHeader, "Bearer "+access)
	}

	resp, err := t.base.RoundTrip(outbound)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// One-shot recovery. A missing refresh token or a failed exchange is
	// terminal: the original 401 goes back to the caller unchanged. Token
	// deletion on a failed exchange happens inside the coordinator.
	pair, refreshErr := t.coordinator.Refresh(req.Context())
	if refreshErr != nil {
		if !errors.Is(refreshErr, clienterrors.ErrNoRefreshToken) {
			t.logger.Debug().Err(refreshErr).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Msg("refresh failed, propagating 401")
		}
		return resp, nil
	}

	retry, err := cloneForRetry(req)
	if err != nil {
		// The body cannot be replayed; the caller sees the original 401.
		return resp, nil
	}
	retry.Header.Set(authorizationHeader, "Bearer "+pair.AccessToken)

	drainAndClose(resp.Body)
	t.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("replaying request with refreshed token")
	return t.base.RoundTrip(retry)
}

// cloneForRetry copies a request with a fresh body for the replay. The
// original body was consumed by the first attempt, so the clone needs
// GetBody unless there was no body at all.
func cloneForRetry(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("[cloneForRetry] request body is not replayable")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, errors.Wrap(err, "[cloneForRetry] GetBody")
	}
	clone.Body = body
	return clone, nil
}

func drainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

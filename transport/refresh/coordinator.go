package refresh

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
	"github.com/yogendraft21/insight-code-sub000/token"
)

// Refresher exchanges a refresh token for a new token pair. The API client
// satisfies this; it must be built on a bare transport so a rejected refresh
// cannot recurse into another refresh.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (token.Pair, error)
}

// Coordinator is the single place a refresh happens. Both the authenticated
// transport and the session controller call it, so there is exactly one
// refresh path; concurrent 401s racing on the same refresh token share one
// round-trip instead of each minting their own pair.
type Coordinator struct {
	store     token.Store
	refresher Refresher
	group     singleflight.Group
	logger    zerolog.Logger
}

// CoordinatorOption modifies a Coordinator during construction.
type CoordinatorOption func(*Coordinator)

// WithLogger sets the coordinator logger.
func WithLogger(logger zerolog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator creates a refresh coordinator over the given store.
func NewCoordinator(store token.Store, refresher Refresher, options ...CoordinatorOption) (*Coordinator, error) {
	if store == nil {
		return nil, errors.New("[NewCoordinator] store is required")
	}
	if refresher == nil {
		return nil, errors.New("[NewCoordinator] refresher is required")
	}
	coordinator := &Coordinator{
		store:     store,
		refresher: refresher,
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(coordinator)
	}
	return coordinator, nil
}

// Refresh mints a new token pair from the stored refresh token and persists
// it before returning. On a failed exchange both stored tokens are deleted:
// a dead refresh token ends the session everywhere, not just for the caller.
// A missing refresh token returns ErrNoRefreshToken and deletes nothing.
func (c *Coordinator) Refresh(ctx context.Context) (token.Pair, error) {
	refreshToken, err := c.store.Get(token.RefreshTokenKey)
	if err != nil || refreshToken == "" {
		return token.Pair{}, errors.Wrap(clienterrors.ErrNoRefreshToken, "[Coordinator.Refresh]")
	}

	// Keyed on the token value: once a rotation lands, later callers carry
	// the new token and get a fresh flight.
	result, err, shared := c.group.Do(refreshToken, func() (interface{}, error) {
		pair, err := c.refresher.Refresh(ctx, refreshToken)
		if err != nil {
			c.logger.Debug().Err(err).Msg("refresh rejected, clearing stored tokens")
			if clearErr := token.ClearPair(c.store); clearErr != nil {
				c.logger.Err(clearErr).Msg("failed clearing tokens after refresh failure")
			}
			return nil, errors.Wrap(clienterrors.ErrRefreshFailed, err.Error())
		}
		if err := token.SavePair(c.store, pair); err != nil {
			return nil, errors.Wrap(err, "[Coordinator.Refresh] persist pair")
		}
		return pair, nil
	})
	if err != nil {
		return token.Pair{}, err
	}
	if shared {
		c.logger.Debug().Msg("refresh shared with concurrent caller")
	}
	return result.(token.Pair), nil
}

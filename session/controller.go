package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/yogendraft21/insight-code-sub000/api"
	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
	"github.com/yogendraft21/insight-code-sub000/token"
	"github.com/yogendraft21/insight-code-sub000/transport/refresh"
)

// ExpiredSessionNotice is what the user sees when a session cannot be
// recovered.
const ExpiredSessionNotice = "Your session has expired. Please log in again."

// API is the slice of the REST client the controller needs. Identity calls
// made through it are expected to go through the authenticated transport,
// which handles bearer attachment and the transparent per-call refresh.
type API interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	Register(ctx context.Context, reg api.Registration) (*api.AuthResponse, error)
	Me(ctx context.Context) (*api.User, error)
	Logout(ctx context.Context) error
}

// Notifier receives user-facing session notices. The CLI prints them; a
// richer host could toast them.
type Notifier func(message string)

// Deps holds the controller's collaborators.
type Deps struct {
	API         API
	Store       token.Store
	Coordinator *refresh.Coordinator
}

// Controller reconciles persisted tokens with server-verified identity and
// exposes the result as observable Session state. It is the sole writer of
// that state; every mutation funnels through setLoading, setUser, clearUser
// or setError.
type Controller struct {
	deps     Deps
	notifier Notifier
	logger   zerolog.Logger

	lock        sync.Mutex
	state       Session
	subscribers map[int]func(Session)
	nextSubID   int
}

// ControllerOption modifies a Controller during construction.
type ControllerOption func(*Controller)

// WithNotifier sets the user-facing notice handler.
func WithNotifier(notifier Notifier) ControllerOption {
	return func(c *Controller) {
		c.notifier = notifier
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController initializes a Controller with required dependencies.
func NewController(deps Deps, options ...ControllerOption) (*Controller, error) {
	if deps.API == nil {
		return nil, errors.New("[NewController] API is required")
	}
	if deps.Store == nil {
		return nil, errors.New("[NewController] Store is required")
	}
	if deps.Coordinator == nil {
		return nil, errors.New("[NewController] Coordinator is required")
	}

	controller := &Controller{
		deps:        deps,
		notifier:    func(string) {},
		logger:      zerolog.Nop(),
		subscribers: map[int]func(Session){},
	}
	for _, opt := range options {
		opt(controller)
	}
	return controller, nil
}

// Current returns a snapshot of the session state.
func (c *Controller) Current() Session {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state
}

// Subscribe registers a callback invoked with a snapshot after every state
// change. The returned function unsubscribes.
func (c *Controller) Subscribe(fn func(Session)) func() {
	c.lock.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.lock.Unlock()

	return func() {
		c.lock.Lock()
		delete(c.subscribers, id)
		c.lock.Unlock()
	}
}

// Verify reconciles stored tokens with the server.
//
//  1. An already-authenticated session short-circuits with no network call.
//  2. No stored access token settles as anonymous with no network call.
//  3. Otherwise the identity endpoint decides. Its own transport already
//     performed the transparent per-call refresh, so a rejection here means
//     that path failed too; one last explicit refresh-and-retry runs through
//     the shared coordinator before the session is declared expired.
//
// Verification failures degrade the session to anonymous, they never
// propagate: the caller inspects the resulting state.
func (c *Controller) Verify(ctx context.Context) {
	if c.Current().IsAuthenticated {
		return
	}

	access, err := c.deps.Store.Get(token.AccessTokenKey)
	if err != nil || access == "" {
		c.clearUser()
		return
	}

	c.setLoading(true)
	defer c.setLoading(false)

	user, err := c.deps.API.Me(ctx)
	if err == nil {
		c.setUser(user)
		return
	}

	if !api.IsUnauthorizedErr(err) {
		// Transient failure: stop loading, stay anonymous, keep the tokens
		// for the next attempt.
		c.logger.Debug().Err(err).Msg("identity check failed without a 401")
		c.clearUser()
		c.setError(err)
		return
	}

	if _, err := c.deps.Coordinator.Refresh(ctx); err != nil {
		c.expire(err)
		return
	}

	user, err = c.deps.API.Me(ctx)
	if err != nil {
		c.expire(err)
		return
	}
	c.setUser(user)
}

// Login exchanges credentials for a session.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	c.setLoading(true)
	defer c.setLoading(false)

	resp, err := c.deps.API.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		c.setError(err)
		return errors.Wrap(err, "[Controller.Login]")
	}
	if err := token.SavePair(c.deps.Store, resp.Pair); err != nil {
		c.setError(err)
		return errors.Wrap(err, "[Controller.Login] persist pair")
	}
	c.setUser(&resp.User)
	return nil
}

// Register creates an account and starts a session.
func (c *Controller) Register(ctx context.Context, name, email, password string) error {
	c.setLoading(true)
	defer c.setLoading(false)

	resp, err := c.deps.API.Register(ctx, api.Registration{Name: name, Email: email, Password: password})
	if err != nil {
		c.setError(err)
		return errors.Wrap(err, "[Controller.Register]")
	}
	if err := token.SavePair(c.deps.Store, resp.Pair); err != nil {
		c.setError(err)
		return errors.Wrap(err, "[Controller.Register] persist pair")
	}
	c.setUser(&resp.User)
	return nil
}

// Logout tears the session down. The server call is best-effort; local
// state and stored tokens are cleared unconditionally, so logging out with
// no tokens present is a no-op that still lands on anonymous.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.deps.API.Logout(ctx); err != nil {
		c.logger.Debug().Err(err).Msg("server logout failed, clearing local session anyway")
	}
	if err := token.ClearPair(c.deps.Store); err != nil {
		c.logger.Err(err).Msg("failed clearing stored tokens on logout")
	}
	c.clearUser()
}

// expire is the terminal failure path: both tokens gone, anonymous state,
// recorded reason, user notified. The coordinator already clears tokens on
// a failed exchange; clearing again covers the no-refresh-token branch.
func (c *Controller) expire(cause error) {
	c.logger.Debug().Err(cause).Msg("session expired")
	if err := token.ClearPair(c.deps.Store); err != nil {
		c.logger.Err(err).Msg("failed clearing stored tokens on expiry")
	}
	c.clearUser()
	c.setError(errors.Wrap(clienterrors.ErrSessionExpired, cause.Error()))
	c.notifier(ExpiredSessionNotice)
}

// --- state actions -------------------------------------------------------
// The four mutation funnels. Nothing else writes c.state.

func (c *Controller) setLoading(loading bool) {
	c.mutate(func(s *Session) {
		s.IsLoading = loading
	})
}

func (c *Controller) setUser(user *api.User) {
	c.mutate(func(s *Session) {
		s.User = user
		s.IsAuthenticated = user != nil
		s.Err = nil
	})
}

func (c *Controller) clearUser() {
	c.mutate(func(s *Session) {
		s.User = nil
		s.IsAuthenticated = false
	})
}

func (c *Controller) setError(err error) {
	c.mutate(func(s *Session) {
		s.Err = err
	})
}

func (c *Controller) mutate(apply func(*Session)) {
	c.lock.Lock()
	apply(&c.state)
	snapshot := c.state
	subscribers := make([]func(Session), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subscribers = append(subscribers, fn)
	}
	c.lock.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

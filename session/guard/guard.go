package guard

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
	"github.com/yogendraft21/insight-code-sub000/session"
)

// Controller is the slice of the session controller the guard consumes.
type Controller interface {
	Current() session.Session
	Verify(ctx context.Context)
}

// LoginRequiredError is returned when an anonymous session reaches a
// protected entry point. Target is the originally requested destination so
// the caller can bounce back there after a login.
type LoginRequiredError struct {
	Target string
}

func (e *LoginRequiredError) Error() string {
	return fmt.Sprintf("login required for %q", e.Target)
}

func (e *LoginRequiredError) Unwrap() error {
	return clienterrors.ErrLoginRequired
}

// Guard gates protected entry points behind settled session state.
type Guard struct {
	controller Controller
}

// New creates a Guard over the given controller.
func New(controller Controller) (*Guard, error) {
	if controller == nil {
		return nil, errors.New("[guard.New] controller is required")
	}
	return &Guard{controller: controller}, nil
}

// Require runs session verification and admits the caller only once the
// session has settled as authenticated. Verification blocks until settled,
// so nothing protected is reachable while the check is in flight. An
// anonymous outcome yields a LoginRequiredError carrying target.
func (g *Guard) Require(ctx context.Context, target string) error {
	g.controller.Verify(ctx)

	if state := g.controller.Current(); !state.IsAuthenticated {
		return &LoginRequiredError{Target: target}
	}
	return nil
}

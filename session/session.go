package session

import (
	"github.com/yogendraft21/insight-code-sub000/api"
)

// Session is the application's in-memory belief about who is logged in.
// Snapshots are value copies; only the controller mutates the live state,
// and only through its action methods.
//
// Invariants: IsAuthenticated is true exactly when User is non-nil; setting
// a user clears Err; clearing the user forces IsAuthenticated to false.
type Session struct {
	User            *api.User
	IsAuthenticated bool
	IsLoading       bool
	Err             error
}

// Anonymous reports whether the session has settled with no user.
func (s Session) Anonymous() bool {
	return !s.IsLoading && !s.IsAuthenticated
}

package token

// Storage keys for the persisted credential pair. These are the only two keys
// the client ever reads or writes.
const (
	AccessTokenKey  = "authToken"
	RefreshTokenKey = "refreshToken"
)

// Store is durable key-value persistence for the token pair, scoped to the
// current user the way origin-scoped browser storage is scoped to a site.
// Implementations never interpret the values; tokens are opaque strings.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

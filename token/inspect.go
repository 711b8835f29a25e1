package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
)

// Claims is the subset of access-token claims the client peeks at for
// display and for deciding when a refresh is imminent. The token is parsed
// WITHOUT signature verification: the server is the only party that trusts
// token contents, the client still treats the credential itself as opaque.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Inspect extracts claims from a raw access token without verifying it.
func Inspect(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.Wrap(clienterrors.ErrTokenMalformed, "[Inspect] empty token")
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(clienterrors.ErrTokenMalformed, err.Error())
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrap(clienterrors.ErrTokenMalformed, "[Inspect] error extracting claims")
	}

	claims := &Claims{}
	claims.Subject, _ = mapClaims["sub"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	return claims, nil
}

// ExpiresWithin reports whether the token expires inside the given window.
// Malformed tokens and tokens without an exp claim report false; the 401
// path handles them when the server rejects the request.
func ExpiresWithin(rawToken string, window time.Duration) bool {
	claims, err := Inspect(rawToken)
	if err != nil || claims.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(claims.ExpiresAt) < window
}

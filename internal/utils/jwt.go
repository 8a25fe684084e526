package utils // package utils provides helper functions shared by the server and its hosts

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HostToken represents a signed JWT that a host runtime presents when
// calling the tool routes.  Token holds the serialized JWT and Exp its
// expiration time.
type HostToken struct {
	Token string
	Exp   time.Time
}

// ErrEmptySecret is returned when a token is requested without a secret.
var ErrEmptySecret = errors.New("empty signing secret")

// NewHostToken builds and signs an HS256 JWT for a host runtime.  The
// subject identifies the host; the token expires after ttl.
func NewHostToken(secret, hostID string, ttl time.Duration) (HostToken, error) {
	if secret == "" {
		return HostToken{}, ErrEmptySecret
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": hostID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return HostToken{}, err
	}
	return HostToken{Token: signed, Exp: exp}, nil
}

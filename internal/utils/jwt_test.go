package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHostTokenRoundTrip(t *testing.T) {
	tok, err := NewHostToken("s3cret", "terminal", time.Minute)
	require.NoError(t, err)
	assert.True(t, tok.Exp.After(time.Now()))

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "terminal", sub)
}

func TestNewHostTokenRequiresSecret(t *testing.T) {
	_, err := NewHostToken("", "terminal", time.Minute)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

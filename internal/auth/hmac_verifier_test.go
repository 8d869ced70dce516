package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"mdvault/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACVerifier(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v, err := NewHMACVerifier("s3cret", logger)
	require.NoError(t, err)

	valid, err := IssueToken("s3cret", "alice", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken("s3cret", "alice", -time.Minute)
	require.NoError(t, err)
	wrongKey, err := IssueToken("other", "alice", time.Hour)
	require.NoError(t, err)
	noSubject, err := IssueToken("s3cret", "", time.Hour)
	require.NoError(t, err)

	claims, err := v.VerifyToken(valid)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.GetUserID())

	for name, token := range map[string]string{
		"expired":    expired,
		"wrong key":  wrongKey,
		"no subject": noSubject,
		"garbage":    "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.VerifyToken(token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestNewHMACVerifierRequiresSecret(t *testing.T) {
	_, err := NewHMACVerifier("", slog.Default())
	assert.Error(t, err)
}

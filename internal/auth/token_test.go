package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
)

func TestIssueAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	user := &domain.User{
		ID:       42,
		Username: "alice",
		IsAdmin:  false,
	}

	raw, err := tokens.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsAdmin)
}

func TestVerifyCarriesAdminFlag(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	raw, err := tokens.Issue(&domain.User{ID: 1, Username: "root", IsAdmin: true})
	require.NoError(t, err)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	raw, err := tokens.Issue(&domain.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuer := NewTokens("secret-one", time.Hour)
	verifier := NewTokens("secret-two", time.Hour)

	raw, err := issuer.Issue(&domain.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

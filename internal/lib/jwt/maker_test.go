package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/task-tracker/internal/lib/apperr"
)

func newTestMaker() *MakerImpl {
	return NewJWTMaker("test-secret-key", time.Hour, 7*24*time.Hour)
}

func TestGenerateAndParseToken(t *testing.T) {
	maker := newTestMaker()

	token, err := maker.GenerateToken("user-uid-1", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-uid-1", claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Empty(t, claims.TokenType)
}

func TestParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("test-secret-key", -time.Minute, 7*24*time.Hour)

	token, err := maker.GenerateToken("user-uid-1", "user@example.com")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.ErrorIs(t, err, apperr.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := newTestMaker()
	other := NewJWTMaker("another-secret-key", time.Hour, 7*24*time.Hour)

	token, err := other.GenerateToken("user-uid-1", "user@example.com")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.ErrorIs(t, err, apperr.ErrTokenMalformed)
}

func TestParseToken_Garbage(t *testing.T) {
	maker := newTestMaker()

	tests := []struct {
		name  string
		token string
	}{
		{name: "пустая строка", token: ""},
		{name: "не JWT", token: "not-a-token"},
		{name: "обрезанный токен", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := maker.ParseToken(tt.token)
			assert.ErrorIs(t, err, apperr.ErrTokenMalformed)
		})
	}
}

func TestParseToken_RejectsRefreshToken(t *testing.T) {
	maker := newTestMaker()

	refresh, err := maker.GenerateRefreshToken("user-uid-1", "user@example.com")
	require.NoError(t, err)

	_, err = maker.ParseToken(refresh)
	assert.ErrorIs(t, err, apperr.ErrTokenMalformed)
}

func TestParseRefreshToken(t *testing.T) {
	maker := newTestMaker()

	refresh, err := maker.GenerateRefreshToken("user-uid-1", "user@example.com")
	require.NoError(t, err)

	claims, err := maker.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-uid-1", claims.Subject)

	// Access-токен не должен приниматься на месте refresh-токена.
	access, err := maker.GenerateToken("user-uid-1", "user@example.com")
	require.NoError(t, err)

	_, err = maker.ParseRefreshToken(access)
	assert.ErrorIs(t, err, apperr.ErrTokenMalformed)
}

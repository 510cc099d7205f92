package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/pkg/auth"
)

func jwtConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.AccessTokenExpiry = time.Hour
	return cfg
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := auth.NewJWTManager(jwtConfig())

	token, err := manager.GenerateAccessToken("user-1", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := auth.NewJWTManager(jwtConfig())

	_, err := manager.ValidateAccessToken("not.a.token")
	require.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	manager := auth.NewJWTManager(jwtConfig())
	token, err := manager.GenerateAccessToken("user-1", "alice@example.com")
	require.NoError(t, err)

	other := jwtConfig()
	other.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	_, err = auth.NewJWTManager(other).ValidateAccessToken(token)
	require.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", auth.ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "", auth.ExtractTokenFromHeader("abc"))
	assert.Equal(t, "", auth.ExtractTokenFromHeader(""))
	assert.Equal(t, "", auth.ExtractTokenFromHeader("Basic abc"))
}

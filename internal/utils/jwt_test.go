package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenPairRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	pair, err := GenerateTokenPair(userID, "owner", "9876543210", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := ValidateToken(pair.AccessToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, "9876543210", claims.Phone)

	refreshClaims, err := ValidateToken(pair.RefreshToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(primitive.NewObjectID(), "user", "9000000000", "secret")
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, "other-secret")
	require.Error(t, err)

	_, err = ValidateToken("garbage", "secret")
	require.Error(t, err)
}

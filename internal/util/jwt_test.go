package util

import (
	"testing"
	"time"

	"learnspace_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Email:     "creator@example.com",
		Role:      model.Creator,
	}

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Creator, claims.Role)
	assert.Equal(t, "creator@example.com", claims.Email)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.Member}

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret-another-secret-xx")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.Member}

	token, err := GenerateJWT(user, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestVideoDurationMinutesRoundsUp(t *testing.T) {
	assert.Equal(t, 0, (&VideoInfo{Duration: 0}).DurationMinutes())
	assert.Equal(t, 1, (&VideoInfo{Duration: 59}).DurationMinutes())
	assert.Equal(t, 1, (&VideoInfo{Duration: 60}).DurationMinutes())
	assert.Equal(t, 2, (&VideoInfo{Duration: 61}).DurationMinutes())
}

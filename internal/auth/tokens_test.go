package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Tokens_RoundTrip(t *testing.T) {

	claims := Claims{
		UserID:          "user-1",
		Email:           "dev@example.com",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		ProfileImageURL: "https://example.com/ada.png",
	}

	token, err := GenerateToken("secret", claims, time.Hour)
	assert.NoError(t, err)

	parsed, err := ParseToken("secret", token)
	assert.NoError(t, err)
	assert.Equal(t, claims, *parsed)
}

func Test_Tokens_WrongSecretIsRejected(t *testing.T) {

	token, err := GenerateToken("secret", Claims{UserID: "user-1"}, time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func Test_Tokens_ExpiredIsRejected(t *testing.T) {

	token, err := GenerateToken("secret", Claims{UserID: "user-1"}, -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func Test_Tokens_MissingSubjectIsRejected(t *testing.T) {

	token, err := GenerateToken("secret", Claims{}, time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

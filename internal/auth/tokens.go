// Package auth verifies and issues the identity tokens the API trusts.
// Tokens are minted by the identity provider; issuing is exposed here for
// tests and local tooling.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Claims is the identity slice the application cares about. UserID comes
// from the standard subject claim; the rest mirror OIDC profile claims.
type Claims struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

func GenerateToken(secret string, claims Claims, ttl time.Duration) (string, error) {

	mapClaims := jwt.MapClaims{
		"sub":         claims.UserID,
		"email":       claims.Email,
		"given_name":  claims.FirstName,
		"family_name": claims.LastName,
		"picture":     claims.ProfileImageURL,
		"exp":         time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (*Claims, error) {

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token has no subject")
	}

	claims := &Claims{UserID: sub}
	claims.Email, _ = mapClaims["email"].(string)
	claims.FirstName, _ = mapClaims["given_name"].(string)
	claims.LastName, _ = mapClaims["family_name"].(string)
	claims.ProfileImageURL, _ = mapClaims["picture"].(string)

	return claims, nil
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthService validates HMAC-signed JSON Web Tokens.
type JWTAuthService struct {
	secretKey []byte
}

// Validate checks the signature and requires an exp claim. Tokens issued in the future are rejected.
func (j *JWTAuthService) Validate(tokenStr string) (bool, error) {
	if tokenStr == "" {
		return false, fmt.Errorf("empty token")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return false, err
	}

	if !token.Valid {
		return false, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false, errors.New("invalid claims type")
	}

	if iatVal, ok := claims["iat"].(float64); ok {
		if time.Now().Unix() < int64(iatVal) {
			return false, errors.New("token used before issued")
		}
	}

	return true, nil
}

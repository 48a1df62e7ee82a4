package auth

import (
	"crypto/subtle"
	"errors"
)

// ApiKeyAuthService accepts requests carrying the shared API key.
type ApiKeyAuthService struct {
	key []byte
}

func (s *ApiKeyAuthService) Validate(token string) (bool, error) {
	if len(s.key) == 0 || subtle.ConstantTimeCompare(s.key, []byte(token)) != 1 {
		return false, errors.New("api key is either missing or invalid")
	}
	return true, nil
}

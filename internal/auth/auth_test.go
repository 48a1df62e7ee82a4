package auth

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
)

type stubStrategy struct {
	expectedToken string
	valid         bool
	err           error
}

func (s *stubStrategy) Validate(token string) (bool, error) {
	if s.expectedToken != "" && token != s.expectedToken {
		return false, errors.New("token mismatch")
	}
	if s.err != nil {
		return false, s.err
	}
	return s.valid, nil
}

func newRequest(t *testing.T, headers map[string]string) *http.Request {
	t.Helper()
	request, err := http.NewRequest(http.MethodGet, "http://example.com", http.NoBody)
	assert.NoError(t, err)
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	return request
}

func TestNewJWTAuthService(t *testing.T) {
	jwtAuthService := NewJWTAuthService("testSecret")
	assert.Equal(t, []byte("testSecret"), jwtAuthService.secretKey)
}

func TestAuthenticatorValidate_ApiKey(t *testing.T) {
	authenticator := NewAuthenticator(map[string]AuthStrategy{
		ApiKeyHeader: NewApiKeyAuthService("valid"),
	})

	valid, err := authenticator.Validate(newRequest(t, map[string]string{ApiKeyHeader: "valid"}))
	assert.True(t, valid)
	assert.NoError(t, err)

	valid, err = authenticator.Validate(newRequest(t, map[string]string{ApiKeyHeader: "invalid"}))
	assert.False(t, valid)
	assert.EqualError(t, err, "api key is either missing or invalid")

	valid, err = authenticator.Validate(newRequest(t, nil))
	assert.False(t, valid)
	assert.NoError(t, err)
}

func TestAuthenticatorValidateWithBearerPrefix(t *testing.T) {
	authenticator := NewAuthenticator(map[string]AuthStrategy{
		AuthorizationHeader: &stubStrategy{expectedToken: "trimmed-token", valid: true},
	})

	valid, err := authenticator.Validate(newRequest(t, map[string]string{AuthorizationHeader: "Bearer trimmed-token"}))

	assert.True(t, valid)
	assert.NoError(t, err)
}

func TestAuthenticatorValidateReturnsLastError(t *testing.T) {
	authenticator := NewAuthenticator(map[string]AuthStrategy{
		AuthorizationHeader: &stubStrategy{expectedToken: "token", err: errors.New("strategy error")},
	})

	valid, err := authenticator.Validate(newRequest(t, map[string]string{AuthorizationHeader: "token"}))

	assert.False(t, valid)
	assert.EqualError(t, err, "strategy error")
}

func TestAuthenticatorStrategyLookup(t *testing.T) {
	strategy := NewApiKeyAuthService("valid")
	authenticator := NewAuthenticator(map[string]AuthStrategy{
		ApiKeyHeader: strategy,
		"ignored":    nil,
	})

	resolved, ok := authenticator.Strategy(ApiKeyHeader)
	assert.True(t, ok)
	assert.Equal(t, strategy, resolved)

	_, ok = authenticator.Strategy("ignored")
	assert.False(t, ok)
}

func TestNewAuthenticatorFromConfig(t *testing.T) {
	assert.False(t, NewAuthenticatorFromConfig(&config.ServerConfig{}).Enabled())

	authenticator := NewAuthenticatorFromConfig(&config.ServerConfig{ApiKey: "key", JWTSecret: "secret"})
	assert.True(t, authenticator.Enabled())

	_, ok := authenticator.Strategy(ApiKeyHeader)
	assert.True(t, ok)
	_, ok = authenticator.Strategy(AuthorizationHeader)
	assert.True(t, ok)

	var nilAuthenticator *Authenticator
	assert.False(t, nilAuthenticator.Enabled())
}

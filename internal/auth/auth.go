package auth

import (
	"net/http"
	"strings"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
)

const (
	ApiKeyHeader        = "X-API-Key"
	AuthorizationHeader = "Authorization"
)

// AuthStrategy validates a single token.
type AuthStrategy interface {
	Validate(token string) (bool, error)
}

// Authenticator checks a request against strategies keyed by the header carrying their token.
type Authenticator struct {
	strategies map[string]AuthStrategy
}

func NewAuthenticator(strategies map[string]AuthStrategy) *Authenticator {
	normalized := make(map[string]AuthStrategy, len(strategies))
	for header, strategy := range strategies {
		if strategy == nil {
			continue
		}
		normalized[header] = strategy
	}

	return &Authenticator{
		strategies: normalized,
	}
}

// NewAuthenticatorFromConfig enables the API key strategy when API_KEY is set and
// the JWT strategy when JWT_SECRET is set.
func NewAuthenticatorFromConfig(serverConfig *config.ServerConfig) *Authenticator {
	strategies := make(map[string]AuthStrategy)
	if serverConfig.ApiKey != "" {
		strategies[ApiKeyHeader] = NewApiKeyAuthService(serverConfig.ApiKey)
	}
	if serverConfig.JWTSecret != "" {
		strategies[AuthorizationHeader] = NewJWTAuthService(serverConfig.JWTSecret)
	}
	return NewAuthenticator(strategies)
}

// Enabled reports whether any strategy is registered.
func (a *Authenticator) Enabled() bool {
	return a != nil && len(a.strategies) > 0
}

// Validate succeeds as soon as one strategy accepts the token found in its header.
func (a *Authenticator) Validate(request *http.Request) (bool, error) {
	if a == nil || request == nil {
		return false, nil
	}

	var lastErr error

	for header, strategy := range a.strategies {
		token := request.Header.Get(header)
		if token == "" {
			continue
		}

		token = strings.TrimPrefix(token, "Bearer ")

		valid, err := strategy.Validate(token)
		if valid {
			return true, nil
		}
		if err != nil {
			lastErr = err
		}
	}

	return false, lastErr
}

func (a *Authenticator) Strategy(header string) (AuthStrategy, bool) {
	if a == nil {
		return nil, false
	}

	strategy, ok := a.strategies[header]
	return strategy, ok
}

func NewApiKeyAuthService(key string) *ApiKeyAuthService {
	return &ApiKeyAuthService{
		key: []byte(key),
	}
}

func NewJWTAuthService(secret string) *JWTAuthService {
	return &JWTAuthService{
		secretKey: []byte(secret),
	}
}

var (
	_ AuthStrategy = (*ApiKeyAuthService)(nil)
	_ AuthStrategy = (*JWTAuthService)(nil)
)

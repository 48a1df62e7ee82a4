package helpers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/shini4i/render-watcher/internal/models"
)

const RedactedValue = "***REDACTED***"

func Contains(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}

// RedactEnvVars returns a copy of envVars with the values of the listed keys masked.
func RedactEnvVars(envVars []models.EnvVar, keys []string) []models.EnvVar {
	redacted := make([]models.EnvVar, len(envVars))
	for idx, envVar := range envVars {
		redacted[idx] = envVar
		if Contains(keys, envVar.Key) {
			redacted[idx].Value = RedactedValue
		}
	}
	return redacted
}

// TailLines returns at most the last n lines of text.
func TailLines(text string, n int) string {
	text = strings.TrimRight(text, "\n")
	if n <= 0 || text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// CurlCommandFromRequest renders req as an equivalent curl invocation for debug logging.
// Credential headers are masked. The request body is restored after being read.
func CurlCommandFromRequest(request *http.Request) (string, error) {
	parts := []string{"curl", "-X", request.Method}

	headerNames := make([]string, 0, len(request.Header))
	for name := range request.Header {
		headerNames = append(headerNames, name)
	}
	sort.Strings(headerNames)

	for _, name := range headerNames {
		for _, value := range request.Header[name] {
			if name == "Authorization" || name == "X-Api-Key" {
				value = RedactedValue
			}
			parts = append(parts, "-H", fmt.Sprintf("'%s: %s'", name, value))
		}
	}

	if request.Body != nil && request.Body != http.NoBody {
		body, err := io.ReadAll(request.Body)
		if err != nil {
			return "", err
		}
		request.Body = io.NopCloser(bytes.NewReader(body))
		if len(body) > 0 {
			parts = append(parts, "-d", fmt.Sprintf("'%s'", body))
		}
	}

	parts = append(parts, fmt.Sprintf("'%s'", request.URL.String()))
	return strings.Join(parts, " "), nil
}

package gateway_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginVerify verifies that the login verify endpoint is rate
// limited. It has strict limits to slow down assertion brute forcing.
func TestRateLimitLoginVerify(t *testing.T) {
	baseURL, _ := setupGateway(t)

	// Burst past the strict bucket. Early requests fail with 400 (garbage
	// state); once the bucket drains the endpoint answers 429.
	var limited bool
	for range 40 {
		resp, err := http.Post(baseURL+"/auth/passkey/login/verify", "application/json",
			strings.NewReader(`{"state":"garbage","credential":{"type":"public-key"}}`))
		require.NoError(t, err)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			require.NotEmpty(t, resp.Header.Get("Retry-After"))
			limited = true
			break
		}
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	require.True(t, limited, "expected 429 before exhausting the attempt budget")
}

// TestSecurityHeaders verifies the baseline response headers on every route.
func TestSecurityHeaders(t *testing.T) {
	baseURL, _ := setupGateway(t)

	resp, err := http.Get(baseURL + "/livez")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	require.NotEmpty(t, resp.Header.Get("Referrer-Policy"))
}

package gatewaysdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a minimal client for the gateway's machine-facing endpoints.
type SDKClient struct {
	baseURL    string
	httpClient *http.Client

	// bearer, when set, is sent as the Authorization header on
	// authenticated calls.
	bearer string
}

// NewSDKClient creates a client for the gateway at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetBearer sets the access token used for authenticated calls.
func (c *SDKClient) SetBearer(token string) {
	c.bearer = token
}

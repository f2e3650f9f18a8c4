package gatewaysdk

import (
	"context"
	"net/http"
)

// GetToken fetches the caller's access token in bearer form. Requires a
// bearer token or relies on the ambient session cookie when the underlying
// http.Client carries a cookie jar.
func (c *SDKClient) GetToken(ctx context.Context) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/token", nil)
	if err != nil {
		return nil, err
	}

	var token TokenResponse
	if err := decodeJSON(resp, &token, http.StatusOK); err != nil {
		return nil, err
	}
	return &token, nil
}

// MintRegistrationToken creates a one-time enrollment token. Authenticated.
func (c *SDKClient) MintRegistrationToken(ctx context.Context) (*MintRegistrationTokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/registration-tokens", nil)
	if err != nil {
		return nil, err
	}

	var minted MintRegistrationTokenResponse
	if err := decodeJSON(resp, &minted, http.StatusCreated); err != nil {
		return nil, err
	}
	return &minted, nil
}

package http

import (
	"net/http"
	"strings"

	"github.com/vibespace/vibespace/internal/gateway/service"
	"github.com/vibespace/vibespace/pkg/gatewaysdk"
	"github.com/vibespace/vibespace/pkg/httpx"
)

type RegistrationTokenMintHandler struct {
	RegistrationService *service.RegistrationService

	// BaseURL is the public origin used to build the enrollment URL.
	BaseURL string
}

// ServeHTTP godoc
//
//	@Summary		Registration Token Mint Endpoint
//	@Description	Mint a one-time enrollment token and the URL to hand to the person adding a
//	@Description	passkey. The token is single-use and expires after the configured TTL.
//	@Tags			Registration
//	@Produce		json
//	@Success		201	{object}	gatewaysdk.MintRegistrationTokenResponse	"token, expiresAt, registerUrl"
//	@Failure		401	{object}	gatewaysdk.ErrorResponse					"authentication required"
//	@Failure		500	{object}	gatewaysdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/auth/registration-tokens [post].
func (h *RegistrationTokenMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	minted, err := h.RegistrationService.Mint(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, gatewaysdk.MintRegistrationTokenResponse{
		Token:       minted.Token,
		ExpiresAt:   minted.ExpiresAt,
		RegisterURL: strings.TrimRight(h.BaseURL, "/") + "/auth/register/" + minted.Token,
	})
}

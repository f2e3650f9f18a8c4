package http

import (
	"net/http"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/service"
	"github.com/vibespace/vibespace/pkg/gatewaysdk"
	"github.com/vibespace/vibespace/pkg/httpx"
)

type TokenHandler struct {
	TokenService *service.TokenService
	AccessTTL    time.Duration
}

// ServeHTTP godoc
//
//	@Summary		Token Retrieval Endpoint
//	@Description	Exchange the interactive session for a bearer token usable from scripts.
//	@Description	Requires an authenticated session; unauthenticated browsers are redirected to login.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{object}	gatewaysdk.TokenResponse	"token, expiresIn, type"
//	@Failure		500	{object}	gatewaysdk.ErrorResponse
//	@Router			/auth/token [get].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub := httpx.SubjectFromContext(r.Context())

	token, err := h.TokenService.IssueAccess(sub, "passkey")
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, gatewaysdk.TokenResponse{
		Token:     token,
		ExpiresIn: int64(h.AccessTTL / time.Second),
		Type:      "Bearer",
	})
}

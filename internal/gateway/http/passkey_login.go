package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/service"
	"github.com/vibespace/vibespace/pkg/gatewaysdk"
	"github.com/vibespace/vibespace/pkg/httpx"
)

type LoginOptionsHandler struct {
	PasskeyService *service.PasskeyService
}

// ServeHTTP godoc
//
//	@Summary		Passkey Login Options Endpoint
//	@Description	Start a passkey login ceremony. Returns WebAuthn assertion options and an
//	@Description	opaque state token that must accompany the verify call.
//	@Tags			Passkeys
//	@Produce		json
//	@Success		200	{object}	gatewaysdk.CeremonyOptionsResponse	"publicKey, state"
//	@Failure		400	{object}	gatewaysdk.ErrorResponse			"no passkeys enrolled"
//	@Failure		500	{object}	gatewaysdk.ErrorResponse
//	@Router			/auth/passkey/login/options [post].
func (h *LoginOptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts, err := h.PasskeyService.LoginOptions(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoCredentials) {
			httpx.WriteError(w, http.StatusBadRequest,
				"No passkeys enrolled. Create a one-time token and visit /auth/register/<token>.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, gatewaysdk.CeremonyOptionsResponse{
		PublicKey: opts.PublicKey,
		State:     opts.State,
	})
}

type LoginVerifyHandler struct {
	PasskeyService *service.PasskeyService
}

// ServeHTTP godoc
//
//	@Summary		Passkey Login Verify Endpoint
//	@Description	Complete a passkey login ceremony. On success the access token is set as the
//	@Description	session cookie; API clients can exchange it at /auth/token.
//	@Tags			Passkeys
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatewaysdk.LoginVerifyRequest	true	"state and credential"
//	@Success		200		{object}	gatewaysdk.LoginVerifyResponse	"ok, sub, userVerified"
//	@Failure		400		{object}	gatewaysdk.ErrorResponse		"invalid state or credential payload"
//	@Failure		403		{object}	gatewaysdk.ErrorResponse		"not enrolled or verification failed"
//	@Failure		500		{object}	gatewaysdk.ErrorResponse
//	@Router			/auth/passkey/login/verify [post].
func (h *LoginVerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req gatewaysdk.LoginVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Credential) == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid credential payload")
		return
	}

	result, err := h.PasskeyService.LoginVerify(r.Context(), req.State, req.Credential)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidState):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid login state")
		case errors.Is(err, service.ErrInvalidCredentialPayload):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid credential payload")
		case errors.Is(err, service.ErrNotEnrolled):
			httpx.WriteError(w, http.StatusForbidden, "Credential is not enrolled")
		case errors.Is(err, service.ErrVerificationFailed):
			httpx.WriteError(w, http.StatusForbidden, "Passkey verification failed")
		default:
			httpx.WriteError(w, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	http.SetCookie(w, httpx.SessionCookie(result.Token, time.Duration(result.ExpiresIn)*time.Second))
	httpx.WriteJSON(w, http.StatusOK, gatewaysdk.LoginVerifyResponse{
		OK:           true,
		Sub:          result.Sub,
		UserVerified: result.UserVerified,
	})
}

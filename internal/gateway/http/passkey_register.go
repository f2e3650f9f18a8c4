package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vibespace/vibespace/internal/gateway/service"
	"github.com/vibespace/vibespace/pkg/gatewaysdk"
	"github.com/vibespace/vibespace/pkg/httpx"
)

type RegisterOptionsHandler struct {
	PasskeyService *service.PasskeyService
}

// ServeHTTP godoc
//
//	@Summary		Passkey Registration Options Endpoint
//	@Description	Start a passkey registration ceremony gated by a one-time enrollment token.
//	@Description	The token is validated here but only consumed at verify time.
//	@Tags			Passkeys
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatewaysdk.RegisterOptionsRequest	true	"enrollment token and optional label"
//	@Success		200		{object}	gatewaysdk.CeremonyOptionsResponse	"publicKey, state"
//	@Failure		400		{object}	gatewaysdk.ErrorResponse			"missing token"
//	@Failure		404		{object}	gatewaysdk.ErrorResponse			"token unknown, used, or expired"
//	@Failure		500		{object}	gatewaysdk.ErrorResponse
//	@Router			/auth/passkey/register/options [post].
func (h *RegisterOptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req gatewaysdk.RegisterOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	opts, err := h.PasskeyService.RegisterOptions(r.Context(),
		strings.TrimSpace(req.Token), strings.TrimSpace(req.Label))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationTokenRequired):
			httpx.WriteError(w, http.StatusBadRequest, "Registration token is required")
		case errors.Is(err, service.ErrRegistrationTokenNotFound):
			httpx.WriteError(w, http.StatusNotFound, "Registration token is invalid, used, or expired")
		default:
			httpx.WriteError(w, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, gatewaysdk.CeremonyOptionsResponse{
		PublicKey: opts.PublicKey,
		State:     opts.State,
	})
}

type RegisterVerifyHandler struct {
	PasskeyService *service.PasskeyService
}

// ServeHTTP godoc
//
//	@Summary		Passkey Registration Verify Endpoint
//	@Description	Complete a passkey registration ceremony. The enrollment token is consumed on
//	@Description	every verified attempt, including the idempotent replay of a known credential.
//	@Tags			Passkeys
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatewaysdk.RegisterVerifyRequest	true	"state and credential"
//	@Success		200		{object}	gatewaysdk.RegisterVerifyResponse	"ok, credentialId, tokenConsumed"
//	@Failure		400		{object}	gatewaysdk.ErrorResponse			"invalid state, payload, or rp binding"
//	@Failure		409		{object}	gatewaysdk.ErrorResponse			"enrollment token already used"
//	@Failure		500		{object}	gatewaysdk.ErrorResponse
//	@Router			/auth/passkey/register/verify [post].
func (h *RegisterVerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req gatewaysdk.RegisterVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Credential) == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid credential payload")
		return
	}

	result, err := h.PasskeyService.RegisterVerify(r.Context(), req.State, req.Credential)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidState):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid registration state")
		case errors.Is(err, service.ErrInvalidCredentialPayload):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid credential payload")
		case errors.Is(err, service.ErrVerificationFailed):
			httpx.WriteError(w, http.StatusBadRequest, "Registration verification failed")
		case errors.Is(err, service.ErrRPMismatch):
			httpx.WriteError(w, http.StatusBadRequest, "RP ID mismatch")
		case errors.Is(err, service.ErrRegistrationTokenConflict):
			httpx.WriteError(w, http.StatusConflict, "Registration token is invalid, used, or expired")
		default:
			httpx.WriteError(w, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	resp := gatewaysdk.RegisterVerifyResponse{
		OK:            true,
		AlreadyExists: result.AlreadyExists,
		TokenConsumed: result.TokenConsumed,
	}
	if !result.AlreadyExists {
		resp.CredentialID = result.CredentialID
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

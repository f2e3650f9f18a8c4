package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/vibespace/vibespace/internal/gateway/service"
	"github.com/vibespace/vibespace/pkg/slogx"
)

//go:embed templates/*.html
var pageFS embed.FS

var pageTemplates = template.Must(template.ParseFS(pageFS, "templates/*.html"))

// LoginPageHandler serves the interactive login page.
func LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplates.ExecuteTemplate(w, "login.html", nil); err != nil {
			slogx.FromContext(r.Context()).Error("failed to render login page", "error", err)
		}
	}
}

type RegisterPageHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP serves the enrollment page for a one-time link. An invalid or
// spent token gets a plain 404 so the page never loads with a dead token.
func (h *RegisterPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if err := h.RegistrationService.Validate(r.Context(), token); err != nil {
		http.Error(w, "Registration token is invalid or expired.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplates.ExecuteTemplate(w, "register.html", struct{ Token string }{Token: token})
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to render register page", "error", err)
	}
}

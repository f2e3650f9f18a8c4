package httpx

import (
	"net/http"

	"github.com/vibespace/vibespace/pkg/slogx"
)

// Recover is the outermost request boundary: any panic escaping a handler is
// logged and converted into a generic internal error. Half-completed protocol
// state (an issued but unredeemed state token, an unconsumed registration
// token) is not rolled back; it expires on its own.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slogx.FromContext(r.Context()).Error("panic in handler", "panic", rec)
				WriteError(w, http.StatusInternalServerError, "Internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

package gateway_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/vibespace/vibespace/internal/gateway/ceremony"
	gatewayhttp "github.com/vibespace/vibespace/internal/gateway/http"
	"github.com/vibespace/vibespace/internal/gateway/service"
	"github.com/vibespace/vibespace/internal/gateway/store/drivers/sqlite"
	"github.com/vibespace/vibespace/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testRPID   = "gateway.test"
	testOrigin = "https://gateway.test"
	testOwner  = "owner@gateway.test"
)

// setupGateway starts a fully wired gateway over an httptest server, using
// the real WebAuthn verifier. Ceremony completion needs an authenticator and
// is covered by handler tests with a stub; these tests exercise the outer
// surface end to end.
func setupGateway(t *testing.T) (baseURL string, tokens *service.TokenService) {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "gateway.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec([]byte("e2e-secret-e2e-secret-e2e-secret"))
	require.NoError(t, err)

	verifier, err := ceremony.NewWebAuthnVerifier(testRPID, "Gateway", testOrigin)
	require.NoError(t, err)

	tokens = &service.TokenService{Codec: codec}
	registration := &service.RegistrationService{Store: st}
	passkeys := &service.PasskeyService{
		Store:        st,
		Verifier:     verifier,
		Tokens:       tokens,
		Registration: registration,
		OwnerSub:     testOwner,
		RPID:         testRPID,
		Origin:       testOrigin,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := gatewayhttp.NewRouter("e2e", testOrigin, service.DefaultAccessTTL, st, logger)
	router.TokenService = tokens
	router.SessionService = &service.SessionService{Tokens: tokens}
	router.PasskeyService = passkeys
	router.RegistrationService = registration
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv.URL, tokens
}

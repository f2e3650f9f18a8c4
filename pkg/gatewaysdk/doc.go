// Package gatewaysdk provides the wire types for the gateway's HTTP API and
// a small client for the endpoints that make sense outside a browser: token
// retrieval, registration token minting, and health probes. The WebAuthn
// ceremonies themselves require a browser authenticator and are not wrapped
// here, but their request and response types are, so the server handlers and
// any tooling share one set of definitions.
package gatewaysdk

package image

import (
	"strings"

	"profile-store/core/storage"
)

// joinURL joins an endpoint and path segments with exactly one slash between
// each, whatever slashes the inputs already carry.
func joinURL(endpoint string, elems ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(endpoint, "/"))
	for _, e := range elems {
		b.WriteString("/")
		b.WriteString(strings.Trim(e, "/"))
	}
	return b.String()
}

// publicEndpoint returns the storage endpoint as a full URL, inferring the
// scheme from the TLS setting when the configured endpoint carries none.
func publicEndpoint(cfg storage.Config) string {
	if strings.Contains(cfg.Endpoint, "://") {
		return cfg.Endpoint
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}

package webhooks

import (
	"net/http"

	libHTTP "github.com/brigadecore/brigade-foundations/http"
)

// tokenVerificationFilter is a component that implements the http.Filter
// interface and can conditionally allow or disallow a request based on
// whether it carries the gateway's shared webhook secret.
type tokenVerificationFilter struct {
	configStore ConfigStore
}

// NewTokenVerificationFilter returns a component that implements the
// http.Filter interface and can conditionally allow or disallow a request
// based on whether it carries the gateway's shared webhook secret. The secret
// is read from the configuration store per request so that a reload takes
// effect immediately.
func NewTokenVerificationFilter(configStore ConfigStore) libHTTP.Filter {
	return &tokenVerificationFilter{
		configStore: configStore,
	}
}

func (t *tokenVerificationFilter) Decorate(
	handle http.HandlerFunc,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Gitlab-Token")
		if token == "" {
			writeResponse(
				w,
				http.StatusUnauthorized,
				"Missing auth token header",
			)
			return
		}
		if token != t.configStore.Get().WebhookSecret {
			writeResponse(w, http.StatusUnauthorized, "")
			return
		}
		handle(w, r)
	}
}

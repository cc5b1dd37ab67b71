package middleware

import (
	"hotelbooking/pkg/auth"
	"hotelbooking/pkg/logger"
	"net/http"
	"strings"
)

// TokenParser turns a bearer token into the caller's principal.
type TokenParser interface {
	Parse(token string) (*auth.Principal, error)
}

// Authentication attaches the principal carried by the Authorization header to the
// request context. Requests without a valid token continue anonymously; the
// operations themselves decide whether that is acceptable.
func Authentication(tokens TokenParser, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := tokens.Parse(token)
			if err != nil {
				log.Warn("Rejected bearer token",
					"request_id", logger.RequestID(r.Context()),
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

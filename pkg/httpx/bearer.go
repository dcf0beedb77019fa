package httpx

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. It reports false for an absent header, a different scheme or an
// empty credential, so callers never try to decode those.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if len(authz) < len(bearerPrefix) || !strings.EqualFold(authz[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	raw := strings.TrimSpace(authz[len(bearerPrefix):])
	if raw == "" {
		return "", false
	}
	return raw, true
}

// WriteBearerError writes an RFC 6750 challenge with a JSON error body.
func WriteBearerError(w http.ResponseWriter, code int, errCode, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="`+errCode+`", error_description="`+desc+`"`)
	WriteError(w, code, errCode, desc)
}

package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// Middleware parses the Shopping-Session header on session-scoped routes
// and stores the descriptor in the request context. Catalog browsing,
// health checks, and currency resolution work without a session; everything
// touching per-shopper state requires one and is rejected with 400 when the
// header is missing or malformed.
func Middleware(minClientVersion string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExemptPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get(Header)
			if header == "" {
				writeSessionError(w, http.StatusBadRequest,
					"Shopping-Session header is required")
				return
			}

			desc, err := ParseHeader(header)
			if err != nil {
				logger.Warn("invalid session header",
					slog.String("header", header),
					slog.String("error", err.Error()))
				writeSessionError(w, http.StatusBadRequest,
					"Invalid Shopping-Session header: "+err.Error())
				return
			}

			if err := CheckClientVersion(desc.ClientVersion, minClientVersion); err != nil {
				var verErr *VersionError
				if errors.As(err, &verErr) {
					writeSessionError(w, http.StatusUpgradeRequired, verErr.Error())
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), desc)))
		})
	}
}

// isExemptPath reports whether the path serves without a session. Catalog
// data is shared, health checks are infrastructure, and currency resolution
// happens before a client has a session to present.
func isExemptPath(path string) bool {
	switch {
	case path == "/health" || path == "/healthz":
		return true
	case path == "/currency":
		return true
	case path == "/newsletter":
		return true
	// MCP carries the session id inside tool arguments, not headers.
	case path == "/mcp":
		return true
	case path == "/catalog" || strings.HasPrefix(path, "/catalog/"):
		return true
	default:
		return false
	}
}

// writeSessionError writes the standard response envelope for a rejected
// request.
func writeSessionError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := struct {
		Success    bool   `json:"success"`
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	}{
		Success:    false,
		StatusCode: status,
		Message:    message,
	}
	json.NewEncoder(w).Encode(resp)
}

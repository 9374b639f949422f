package middleware

import (
	"net/http"
)

// SecurityPolicy is the set of response headers for one face of the service.
type SecurityPolicy struct {
	CSP            string // Content-Security-Policy, omitted when empty
	ReferrerPolicy string
	NoStore        bool // responses carry per-session state or CSRF tokens
	HTTPS          bool // adds Strict-Transport-Security
}

// APISecurity serves JSON only: nothing may load, frame or be referred from it.
func APISecurity(https bool) SecurityPolicy {
	return SecurityPolicy{
		CSP:            "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy: "no-referrer",
		HTTPS:          https,
	}
}

// UISecurity serves the board screen: one inline stylesheet, forms posting
// back to the same origin, and pages that must not be cached.
func UISecurity(https bool) SecurityPolicy {
	return SecurityPolicy{
		CSP:            "default-src 'self'; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'; form-action 'self'",
		ReferrerPolicy: "same-origin",
		NoStore:        true,
		HTTPS:          https,
	}
}

func SecurityHeaders(p SecurityPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()

			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")
			if p.ReferrerPolicy != "" {
				headers.Set("Referrer-Policy", p.ReferrerPolicy)
			}
			if p.CSP != "" {
				headers.Set("Content-Security-Policy", p.CSP)
			}
			if p.NoStore {
				headers.Set("Cache-Control", "no-store")
			}
			if p.HTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import "net/http"

// VaryLocale adds Accept-Language to Vary on dynamic responses.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r)
	})
}

package language

import (
	"net/http"

	"factureme/lib/api/cont"
	"factureme/lib/i18n"
)

// New stores the language negotiated from Accept-Language, requests without
// the header are left for the authenticated user preference
func New() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Accept-Language")
			if header != "" {
				r = r.WithContext(cont.PutLanguage(r.Context(), i18n.DetectLanguage(header)))
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// From returns the request language, French when nothing was negotiated
func From(r *http.Request) string {
	if lang := cont.GetLanguage(r.Context()); i18n.Supported(lang) {
		return lang
	}
	return i18n.FR
}

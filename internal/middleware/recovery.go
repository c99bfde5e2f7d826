package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/pkg/utils"
)

// PanicRecovery converts handler panics into JSON 500s so one bad request
// cannot take the process down. The panic value and stack stay in the
// server log only.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[Recovery] %s %s panicked: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

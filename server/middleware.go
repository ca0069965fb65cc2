package server

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// RequestLoggingMiddleware - logs every incoming request with a generated
// request id so concurrent request logs can be told apart
func RequestLoggingMiddleware(logInfo *log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New().String()
			logInfo.Printf("[%s] %s %s", requestID, r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}

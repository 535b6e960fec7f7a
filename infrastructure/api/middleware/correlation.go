package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/investmatch/investmatch/internal/log"
)

// CorrelationIDHeader carries the correlation id on requests and responses.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID adds a correlation id to the request context so that
// context-aware log calls carry it. The caller's X-Correlation-ID wins;
// otherwise chi's request id is used.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		id := r.Header.Get(CorrelationIDHeader)
		if id == "" {
			id = requestID
		}
		if id != "" {
			w.Header().Set(CorrelationIDHeader, id)
		}

		ctx := log.WithCorrelationID(r.Context(), id)
		if requestID != "" && requestID != id {
			ctx = log.WithRequestID(ctx, requestID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCorrelationID retrieves the correlation id from the context, falling
// back to chi's request id.
func GetCorrelationID(ctx context.Context) string {
	if id := log.CorrelationID(ctx); id != "" {
		return id
	}
	return middleware.GetReqID(ctx)
}

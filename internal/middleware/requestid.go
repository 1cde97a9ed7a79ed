package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// maxIncomingIDLen bounds ids accepted from clients so they cannot inflate
// every log line.
const maxIncomingIDLen = 64

// RequestID tags each request with an id.
//
// An id supplied by the client (or a proxy) in X-Request-ID is kept;
// otherwise a new xid is generated. xids are 20 characters, sortable by
// creation time and need no coordination.
//
// The id is stored under chi's RequestIDKey, so chimiddleware.GetReqID works
// for any downstream handler, and echoed in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxIncomingIDLen {
			id = xid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the id set by RequestID, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	return chimiddleware.GetReqID(ctx)
}

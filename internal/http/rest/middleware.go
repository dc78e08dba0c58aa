package rest

import (
	"context"
	"net/http"

	"github.com/devtrio/wanderswipe/util/tracing"
	"github.com/devtrio/wanderswipe/util/values"
	"github.com/lucsky/cuid"
)

// RequestTracing handles the request tracing context. Browser-issued
// requests (image tags, websocket upgrades) carry no custom headers, so
// missing values fall back to defaults instead of being rejected.
func RequestTracing(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestSource := r.Header.Get(values.HeaderRequestSource)
		if requestSource == "" {
			requestSource = "web"
		}

		requestID := r.Header.Get(values.HeaderRequestID)
		if requestID == "" {
			requestID = cuid.New()
		}

		tracingContext := tracing.Context{
			RequestID:     requestID,
			RequestSource: requestSource,
		}

		ctx = context.WithValue(ctx, values.ContextTracingKey, tracingContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

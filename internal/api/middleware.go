package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/observability/tracing"
)

// traceMiddleware reuses the caller's trace id when present and echoes it
// back so responses can be matched with server logs.
func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.WithTraceID(r.Context(), r.Header.Get(tracing.TraceIDHeader))
		w.Header().Set(tracing.TraceIDHeader, tracing.TraceID(ctx))

		startTime := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		log.Ctx(ctx).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(startTime)).
			Msg("request served")
	})
}

func contentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

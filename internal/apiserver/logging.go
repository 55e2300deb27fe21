package apiserver

import (
	"github.com/expected-so/canonicallog"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"
	"net/http"
	"time"
)

func (s *Server) canonicalLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logContext := canonicallog.NewLogLine(r.Context())
		startedAt := time.Now()
		canonicallog.LogAttr(logContext, slog.String("method", r.Method))
		canonicallog.LogAttr(logContext, slog.String("path", r.URL.Path))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(logContext))

		canonicallog.LogAttr(logContext, slog.Int("status", ww.Status()))
		canonicallog.LogDuration(logContext, time.Now().Sub(startedAt))
		canonicallog.PrintLine(logContext, "api-request")
	})
}

package middleware

import (
	"net/http"

	"github.com/rohits-web03/robofriends/internal/utils"
	"go.uber.org/zap"
)

// Recover turns a panic in a handler into a 500. A response that has already
// started is left as is; the panic is only logged.
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					log.Error("panic serving request",
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Any("panic", v),
						zap.Bool("response_started", rec.wroteHeader),
						zap.Stack("stack"),
					)
					if !rec.wroteHeader {
						utils.JSONError(w, http.StatusInternalServerError, "Internal server error")
					}
				}
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

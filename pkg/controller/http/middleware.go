package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/utils/errutil"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
)

// accessLogger logs every request and stores a request scoped logger in the
// context for handlers and usecases.
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

// panicRecoverer turns a handler panic into a logged and reported 500
func panicRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rv := recover()
			if rv == nil {
				return
			}
			if rv == http.ErrAbortHandler {
				panic(rv)
			}

			var panicErr error
			switch e := rv.(type) {
			case error:
				panicErr = goerr.Wrap(e, "handler panic")
			case string:
				panicErr = goerr.New(e)
			default:
				panicErr = goerr.New("panic occurred", goerr.V("panic", rv))
			}

			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(panicErr, "recovered from panic",
				goerr.V("method", r.Method),
				goerr.V("path", r.URL.Path)), http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

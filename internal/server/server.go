package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/unclebandit/customer-service/internal/controller"
	"github.com/unclebandit/customer-service/internal/handler"
	"github.com/unclebandit/customer-service/internal/metrics"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	CustomerController *controller.CustomerController
	HealthHandler      *handler.HealthHandler
	Metrics            *metrics.Metrics
	Logger             *zap.Logger
	AllowedOrigin      string
	RequestTimeout     time.Duration
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(accessLog(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(d.Metrics.Middleware)
	r.Use(corsPolicy(d.AllowedOrigin))
	r.Use(middleware.StripSlashes)
	r.Use(middleware.GetHead)
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}

	// Customer routes
	r.Get("/getcustomer", d.CustomerController.GetCustomers)
	r.Get("/resetAcc", d.CustomerController.ResetAccount)

	r.Get("/health", d.HealthHandler.Health)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	return r
}

func NewHTTPServer(port string, h http.Handler, requestTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       requestTimeout,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

func accessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				log.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("origin", r.Header.Get("Origin")),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"todoflow-backend/internal/analytics"
	"todoflow-backend/internal/extract"
	"todoflow-backend/internal/todos"
	"todoflow-backend/pkg/metrics"
	"todoflow-backend/pkg/trace"
)

type Deps struct {
	Store      todos.Store
	Normalizer *extract.Normalizer
	Events     *analytics.Logger
	Log        *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			todos.GetTasksHandler(d.Store)(w, r)
		case http.MethodPost:
			todos.CreateTaskHandler(d.Store, d.Normalizer, d.Events, d.Log)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/tasks/status", postOnly(todos.SetTaskStatusHandler(d.Store, d.Events)))
	mux.HandleFunc("/tasks/delete", postOnly(todos.DeleteTaskHandler(d.Store, d.Events)))

	return trace.Middleware(observe(mux, d.Log))
}

func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			next(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// observe records the request duration metric and one access log line.
func observe(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(sw.status)).
			Observe(elapsed.Seconds())

		log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("elapsed", elapsed),
			zap.String("request_id", trace.FromContext(r.Context())),
		)
	})
}

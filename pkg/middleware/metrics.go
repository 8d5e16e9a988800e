package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/ads-dashboard-api/pkg/metrics"
)

// Metrics registra contagem e latência usando o padrão da rota como label,
// para não explodir a cardinalidade com ids.
func Metrics(path string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			metrics.RequestCount.WithLabelValues(path, r.Method, strconv.Itoa(lrw.statusCode)).Inc()
			metrics.RequestLatency.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

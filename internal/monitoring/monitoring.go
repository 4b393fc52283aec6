package monitoring

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	TweetsPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweets_posted_total",
		Help: "Total tweets successfully posted",
	})

	TweetsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweets_deleted_total",
		Help: "Total tweets deleted by their author",
	})

	LikesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "likes_total",
		Help: "Total likes successfully recorded",
	})

	FollowsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "follows_total",
		Help: "Total follow edges successfully created",
	})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(TweetsPosted)
	prometheus.MustRegister(TweetsDeleted)
	prometheus.MustRegister(LikesTotal)
	prometheus.MustRegister(FollowsTotal)
}

// Middleware to track request timing and status code
type statusRecordingWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecordingWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecordingWriter{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := fmt.Sprintf("%d", rw.statusCode)

		RequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(duration)
	})
}

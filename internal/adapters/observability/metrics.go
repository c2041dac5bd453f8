package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "rental"

func counter(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func histogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: name, Help: help, Buckets: buckets,
	}, labels)
}

var (
	// request surface
	HTTPRequests = counter("http_requests_total", "HTTP requests.", "route", "method", "status")
	HTTPLatency  = histogram("http_request_duration_seconds", "HTTP request duration seconds.",
		prometheus.DefBuckets, "route", "method")

	// lodgify, mailgun, smtp, webhook, s3
	ExternalRequests = counter("external_requests_total", "Outbound requests.", "service", "endpoint", "status")
	ExternalLatency  = histogram("external_request_duration_seconds", "Outbound request duration seconds.",
		prometheus.DefBuckets, "service", "endpoint")

	CacheEvents        = counter("cache_events_total", "Cache hits/misses/sets/dels.", "cache", "event")
	ContactSubmissions = counter("contact_submissions_total", "Contact form submissions by outcome.", "provider", "outcome")

	// static build
	PagesRendered = counter("pages_rendered_total", "Static pages written by the build.", "kind", "locale")
	BuildDuration = histogram("build_duration_seconds", "Whole-site build duration seconds.",
		prometheus.ExponentialBuckets(0.05, 2, 10), "outcome")
)

// Serve starts a side metrics server on addr. An empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		ContactSubmissions, PagesRendered, BuildDuration)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveExternal records one outbound call; status 0 is a transport error.
func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, statusLabel(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveContact(provider, outcome string) { // outcome: sent|rejected|error
	if provider == "" {
		provider = "none"
	}
	ContactSubmissions.WithLabelValues(provider, outcome).Inc()
}

func ObservePage(kind, locale string) {
	PagesRendered.WithLabelValues(kind, locale).Inc()
}

func ObserveBuild(err error, dur time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	BuildDuration.WithLabelValues(outcome).Observe(dur.Seconds())
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}

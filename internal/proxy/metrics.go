package proxy

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	proxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dokploy_proxy_requests_total",
			Help: "Requests relayed to Dokploy by method and returned status",
		},
		[]string{"method", "status"},
	)

	proxyUpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dokploy_proxy_upstream_duration_seconds",
			Help:    "Time spent waiting on the Dokploy API",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func requestID(r *http.Request) string {
	return chimw.GetReqID(r.Context())
}

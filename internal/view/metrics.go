package view

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/edvin/dokdash/internal/dokploy"
)

var fetchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dokploy_fetch_total",
		Help: "Dashboard project loads by outcome",
	},
	[]string{"outcome"},
)

func fetchOutcome(err error) string {
	var authErr *dokploy.AuthError
	var httpErr *dokploy.HTTPError
	var netErr *dokploy.NetworkError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &authErr):
		return "auth_error"
	case errors.As(err, &httpErr):
		return "http_error"
	case errors.As(err, &netErr):
		return "network_error"
	default:
		return "error"
	}
}

package api

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moneydash_client_requests_total",
		Help: "Requests sent to the backend, by method and status class.",
	}, []string{"method", "status"})

	networkErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneydash_client_network_errors_total",
		Help: "Requests that failed before receiving a status.",
	})

	tokenRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneydash_client_token_refreshes_total",
		Help: "Refresh-token exchanges performed.",
	})

	tokenRefreshFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneydash_client_token_refresh_failures_total",
		Help: "Refresh-token exchanges that failed.",
	})
)

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}

// Package metrics defines all custom Prometheus metrics for the book
// catalog API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry
// via promauto; HTTP request metrics are added separately by the
// echoprometheus middleware in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// BooksCreatedTotal counts successfully created books.
var BooksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books created.",
	},
)

// CacheLookupsTotal counts single-book cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (fetched from the repository)
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of book cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// AuthAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ThrottledRequestsTotal counts requests rejected by the login rate limiter.
var ThrottledRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "throttled_requests_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)

// Package metrics defines and registers all custom Prometheus metrics for the
// sweet shop API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// package load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sweetshop"

// ── Inventory metrics ─────────────────────────────────────────────────────────

// SweetsCreatedTotal counts catalog entries created by admins.
// Label:
//   - category: the sweet's category (e.g. "Barfi")
var SweetsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweets_created_total",
		Help:      "Total number of sweets added to the catalog, by category.",
	},
	[]string{"category"},
)

// PurchasesTotal counts successful purchases.
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of successful purchases, by category.",
	},
	[]string{"category"},
)

// RestocksTotal counts successful restocks.
var RestocksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restocks_total",
		Help:      "Total number of successful restocks, by category.",
	},
	[]string{"category"},
)

// StockConflictsTotal counts purchases rejected for insufficient stock.
var StockConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_conflicts_total",
		Help:      "Total number of purchases rejected because stock was insufficient.",
	},
)

// CatalogCacheTotal counts catalog cache lookups.
// Label:
//   - result: "hit" or "miss"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts successful account registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// Package telemetry exposes prometheus metrics for the transfer engine.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransfersTotal counts transfer attempts by terminal outcome.
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "banking_transfers_total",
			Help: "Total number of transfer attempts",
		},
		[]string{"status"}, // success, invalid_amount, same_account, not_found, insufficient_funds, concurrency_exhausted, error
	)

	// TransferConflicts counts optimistic lock conflicts that triggered a retry.
	TransferConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "banking_transfer_conflicts_total",
			Help: "Total number of optimistic concurrency conflicts",
		},
	)

	// EventsPublished counts transaction events handed to the notifier.
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "banking_transaction_events_published_total",
			Help: "Total number of transaction events published",
		},
		[]string{"type"},
	)

	// EventPublishFailures counts notification failures. They never affect
	// the transfer outcome.
	EventPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "banking_transaction_event_publish_failures_total",
			Help: "Total number of transaction event publish failures",
		},
	)
)

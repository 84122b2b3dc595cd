package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cardforge_orders_created_total",
		Help: "Total number of orders successfully created at checkout.",
	})

	OrderStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardforge_order_status_updates_total",
		Help: "Total number of admin order status updates, by new status.",
	},
		[]string{"status"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardforge_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	GenerationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cardforge_generation_failures_total",
		Help: "Total number of failed calls to the generation service.",
	})

	PolicyRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cardforge_policy_rejections_total",
		Help: "Total number of prompts rejected by the content policy.",
	})

	EditorSessionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cardforge_editor_sessions_open",
		Help: "Current number of open customization editing sessions.",
	})
)

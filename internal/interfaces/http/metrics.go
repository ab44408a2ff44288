package httpinterface

import "github.com/prometheus/client_golang/prometheus"

var operationsCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "bazaar",
		Name:      "operations_total",
		Help:      "Number of registry operations by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

func init() {
	prometheus.MustRegister(operationsCounter)
}

func countOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	operationsCounter.WithLabelValues(operation, outcome).Inc()
}

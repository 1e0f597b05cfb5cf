package service

import "github.com/prometheus/client_golang/prometheus"

var (
	developersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "developers_created_total", Help: "Developers created"},
	)
	developersDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "developers_deleted_total", Help: "Developers deleted by mode"},
		[]string{"mode"},
	)
)

func init() { prometheus.MustRegister(developersCreated, developersDeleted) }

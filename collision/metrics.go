package collision

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeLabel = "mode"
)

var (
	collisionComparisons = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collision_comparisons_total",
		Help: "The number of bounding box comparisons.",
	}, []string{modeLabel})

	collisionColliding = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "collision_colliding_rectangles",
		Help: "The number of rectangles flagged as colliding by the last detection.",
	}, []string{modeLabel})
)

func instrumentDetection(r Report) {
	labels := prometheus.Labels{modeLabel: string(r.Mode)}

	collisionComparisons.
		With(labels).
		Add(float64(r.Comparisons))

	collisionColliding.
		With(labels).
		Set(float64(r.Colliding))
}

package simulation

import (
	"github.com/aukilabs/quadcollide/modules/quadtree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeLabel = "mode"
)

var (
	ticksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simulation_ticks_total",
		Help: "The number of simulated ticks.",
	}, []string{modeLabel})

	tickDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simulation_tick_duration_seconds",
		Help:    "The time to move, index and check the rectangles of a tick.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{modeLabel})

	sceneRectangles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "simulation_rectangles",
		Help: "The number of rectangles in the simulated scene.",
	})

	quadtreeNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quadtree_nodes",
		Help: "The number of quadtree nodes after the last rebuild.",
	})

	quadtreeDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quadtree_depth",
		Help: "The deepest quadtree level after the last rebuild.",
	})
)

func instrumentTick(f Frame, info quadtree.DebugInfo) {
	labels := prometheus.Labels{modeLabel: string(f.Mode)}

	ticksTotal.
		With(labels).
		Inc()

	tickDuration.
		With(labels).
		Observe(f.Duration.Seconds())

	sceneRectangles.Set(float64(len(f.Rectangles)))
	quadtreeNodes.Set(float64(info.NodeCount))
	quadtreeDepth.Set(float64(info.Depth))
}

func instrumentRectangles(count int) {
	sceneRectangles.Set(float64(count))
}

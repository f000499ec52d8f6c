package models

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rectangleCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rectangle_count",
		Help: "The number of rectangles in the scene.",
	})

	rectangleCountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rectangle_count_total",
		Help: "The total number of rectangles added to the scene.",
	})
)

func instrumentRectangleAdded() {
	rectangleCount.Inc()
	rectangleCountTotal.Inc()
}

func instrumentRectangleRemoved() {
	rectangleCount.Dec()
}

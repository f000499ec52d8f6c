package simulation

import (
	"context"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

type summary struct {
	mutex        sync.Mutex
	ticks        int
	comparisons  int
	maxColliding int
	maxDuration  time.Duration
	totalTime    time.Duration
}

func (s *summary) add(f Frame) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.ticks++
	s.comparisons += f.Report.Comparisons
	s.totalTime += f.Duration
	if f.Report.Colliding > s.maxColliding {
		s.maxColliding = f.Report.Colliding
	}
	if f.Duration > s.maxDuration {
		s.maxDuration = f.Duration
	}
}

func (w *World) startSummaryWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			w.logSummary(interval)
		}
	}
}

func (w *World) logSummary(interval time.Duration) {
	frame := w.Frame()
	info := w.QuadtreeDebugInfo()

	w.summary.mutex.Lock()
	defer w.summary.mutex.Unlock()

	if w.summary.ticks == 0 {
		return
	}

	logs.WithTag("run_id", w.RunID).
		WithTag("time_interval", interval).
		WithTag("mode", frame.Mode).
		WithTag("rectangles", len(frame.Rectangles)).
		WithTag("ticks", w.summary.ticks).
		WithTag("comparisons", w.summary.comparisons).
		WithTag("max_colliding", w.summary.maxColliding).
		WithTag("avg_tick_duration", w.summary.totalTime/time.Duration(w.summary.ticks)).
		WithTag("max_tick_duration", w.summary.maxDuration).
		WithTag("quadtree_nodes", info.NodeCount).
		WithTag("quadtree_depth", info.Depth).
		Info("tick summary")

	w.summary.ticks = 0
	w.summary.comparisons = 0
	w.summary.maxColliding = 0
	w.summary.maxDuration = 0
	w.summary.totalTime = 0
}

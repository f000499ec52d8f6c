package simulation

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// Animation selects the tick rate.
type Animation string

const (
	// About 60 ticks per second.
	Animation60 Animation = "60"

	// 10 ticks per second.
	AnimationSlow Animation = "slow"

	// A single tick.
	AnimationNone Animation = "none"
)

func ParseAnimation(v string) (Animation, error) {
	switch a := Animation(v); a {
	case Animation60, AnimationSlow, AnimationNone:
		return a, nil
	default:
		return "", errors.New("unknown animation").WithTag("animation", v)
	}
}

// Interval returns the duration between two ticks, 0 for AnimationNone.
func (a Animation) Interval() time.Duration {
	switch a {
	case Animation60:
		return time.Second / 60
	case AnimationSlow:
		return time.Millisecond * 100
	default:
		return 0
	}
}

type RunOptions struct {
	// The duration between two ticks. A zero interval publishes a single
	// frame.
	Interval time.Duration

	// Stops after the given number of ticks. Zero means no limit.
	MaxTicks uint64

	// The duration between each tick summary log. Zero disables summaries.
	SummaryInterval time.Duration
}

// Run ticks the world until ctx is canceled or MaxTicks is reached. Ticks are
// never run concurrently: a tick that overruns the interval delays the next
// one.
func (w *World) Run(ctx context.Context, opts RunOptions) error {
	if opts.SummaryInterval > 0 {
		summaryCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go w.startSummaryWorker(summaryCtx, opts.SummaryInterval)
	}

	logs.WithTag("run_id", w.RunID).
		WithTag("interval", opts.Interval).
		WithTag("max_ticks", opts.MaxTicks).
		WithTag("mode", w.Mode()).
		Info("starting simulation")

	var ticks uint64
	tick := func() bool {
		w.Tick()
		ticks++
		return opts.MaxTicks != 0 && ticks >= opts.MaxTicks
	}

	if tick() {
		return nil
	}

	if opts.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if tick() {
				return nil
			}
		}
	}
}

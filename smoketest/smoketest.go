package smoketest

import (
	"context"
	"net/http"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/quadcollide/collision"
	qchttp "github.com/aukilabs/quadcollide/http"
	"github.com/aukilabs/quadcollide/simulation"
)

type Status string

const (
	// Indexed detection flagged the same rectangles as brute force.
	StatusSuccess Status = "success"

	// Indexed detection disagreed with brute force.
	StatusFailed Status = "failed"
)

type Results struct {
	simulation.Comparison
	Status Status `json:"status"`
}

// Comparer is implemented by simulation.World.
type Comparer interface {
	Mode() collision.Mode
	CompareModes(mode collision.Mode) simulation.Comparison
}

type Options struct {
	// Called with every result. Errors are logged.
	SendResult func(context.Context, Results) error
}

// Run compares brute force detection with the detection of mode on the
// current scene.
func Run(c Comparer, mode collision.Mode) Results {
	res := Results{
		Comparison: c.CompareModes(mode),
		Status:     StatusSuccess,
	}
	if !res.Equivalent() {
		res.Status = StatusFailed
	}
	return res
}

// HandleSmokeTest runs a smoke test on the mode given by the mode query
// parameter, the current world mode when omitted.
func HandleSmokeTest(ctx context.Context, c Comparer, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := c.Mode()
		if v := r.URL.Query().Get("mode"); v != "" {
			m, err := collision.ParseMode(v)
			if err != nil {
				qchttp.BadRequest(w, err)
				return
			}
			mode = m
		}

		res := Run(c, mode)

		logs.WithTag("run_id", res.RunID).
			WithTag("mode", res.Mode).
			WithTag("status", res.Status).
			WithTag("rectangles", res.Rectangles).
			WithTag("missed", len(res.Missed)).
			WithTag("extra", len(res.Extra)).
			Info("smoke test")

		if opts.SendResult != nil {
			if err := opts.SendResult(ctx, res); err != nil {
				logs.WithTag("run_id", res.RunID).
					Warn(errors.New("sending smoke test result failed").Wrap(err))
			}
		}

		qchttp.WriteJSON(w, http.StatusOK, res)
	}
}

package http

import (
	"net/http"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/quadcollide/modules/quadtree"
	"github.com/aukilabs/quadcollide/simulation"
	"github.com/segmentio/encoding/json"
)

// FrameSource provides the state exposed by the debug handlers.
type FrameSource interface {
	Frame() simulation.Frame
	QuadtreeDebugInfo() quadtree.DebugInfo
}

func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func HandleReadyCheck(readinessCheck func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !readinessCheck() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func HandleVersion(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(version))
	}
}

// HandleFrame writes the last published frame.
func HandleFrame(s FrameSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		WriteJSON(w, http.StatusOK, s.Frame())
	}
}

// HandleQuadtree writes the shape of the quadtree built at the last tick.
func HandleQuadtree(s FrameSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		WriteJSON(w, http.StatusOK, s.QuadtreeDebugInfo())
	}
}

// WriteJSON writes v as the JSON body of a response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		InternalServerError(w, errors.New("encoding response failed").Wrap(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

// BadRequest responds with a 400 status and the error message.
func BadRequest(w http.ResponseWriter, err error) {
	logs.Debug(err)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// InternalServerError logs err and responds with a 500 status. The error
// details are not sent to the client.
func InternalServerError(w http.ResponseWriter, err error) {
	logs.Error(err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

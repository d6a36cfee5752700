package pipeline

import (
	"errors"
	"fmt"

	"github.com/jonathan/trustproof/internal/client"
)

// ErrorKind classifies terminal pipeline failures.
type ErrorKind string

const (
	// KindInvalidInput: the request failed local validation; no network call
	// was made.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindAlreadyRunning: a second start was attempted while a run was in
	// flight.
	KindAlreadyRunning ErrorKind = "already_running"
	// KindTransportError: a network or HTTP failure reaching a remote stage.
	KindTransportError ErrorKind = "transport_error"
	// KindMalformedResponse: the stage succeeded at the transport level but
	// its payload lacks required fields.
	KindMalformedResponse ErrorKind = "malformed_response"
	// KindTimeout: the per-stage deadline expired.
	KindTimeout ErrorKind = "timeout"
)

// PipelineError is the terminal failure value of a run. State is the partial
// accumulator at failure time, for diagnostics only; it is never surfaced as
// a partial result.
type PipelineError struct {
	Stage      Stage
	Kind       ErrorKind
	StatusCode int // HTTP status for transport errors, zero otherwise
	Cause      error
	State      State
}

func (e *PipelineError) Error() string {
	stage := string(e.Stage)
	if stage == "" {
		stage = "pipeline"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s failed (%s, HTTP %d): %v", stage, e.Kind, e.StatusCode, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s failed (%s): %v", stage, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s failed (%s)", stage, e.Kind)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// classify maps a stage execution error to its PipelineError kind.
func classify(stage Stage, err error, st State) *PipelineError {
	var clientErr *client.Error
	if errors.As(err, &clientErr) {
		kind := KindTransportError
		if clientErr.Timeout() {
			kind = KindTimeout
		}
		return &PipelineError{
			Stage:      stage,
			Kind:       kind,
			StatusCode: clientErr.StatusCode,
			Cause:      err,
			State:      st,
		}
	}

	// Schema violations and decode failures mean the transport succeeded but
	// the payload is unusable.
	return &PipelineError{Stage: stage, Kind: KindMalformedResponse, Cause: err, State: st}
}

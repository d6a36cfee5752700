// Package server provides the HTTP REST API for the review verification agent.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/trustproof/internal/pipeline"
)

// pipelineErrorPayload is the wire form of a failed run.
type pipelineErrorPayload struct {
	Error  string             `json:"error"`
	Stage  pipeline.Stage     `json:"stage,omitempty"`
	Kind   pipeline.ErrorKind `json:"kind,omitempty"`
	Status int                `json:"status,omitempty"`
}

func newPipelineErrorPayload(err error) pipelineErrorPayload {
	var perr *pipeline.PipelineError
	if errors.As(err, &perr) {
		return pipelineErrorPayload{
			Error:  perr.Error(),
			Stage:  perr.Stage,
			Kind:   perr.Kind,
			Status: perr.StatusCode,
		}
	}
	return pipelineErrorPayload{Error: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for a run error.
func HTTPStatus(err error) int {
	var perr *pipeline.PipelineError
	if !errors.As(err, &perr) {
		return http.StatusInternalServerError
	}
	switch perr.Kind {
	case pipeline.KindInvalidInput:
		return http.StatusBadRequest
	case pipeline.KindAlreadyRunning:
		return http.StatusConflict
	case pipeline.KindTimeout:
		return http.StatusGatewayTimeout
	case pipeline.KindTransportError, pipeline.KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) pipelineErrorResponse(w http.ResponseWriter, err error) {
	s.jsonResponse(w, HTTPStatus(err), newPipelineErrorPayload(err))
}

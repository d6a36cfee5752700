package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/trustproof/internal/pipeline"
	"github.com/jonathan/trustproof/internal/types"
)

// VerifyResponse is the terminal response of a blocking verification run.
type VerifyResponse struct {
	RunID  string                    `json:"run_id"`
	Result *types.VerificationResult `json:"result"`
}

// StageStatusEntry reports one stage's status in execution order.
type StageStatusEntry struct {
	Stage  pipeline.Stage  `json:"stage"`
	Status pipeline.Status `json:"status"`
}

// StatusResponse reports the pipeline-level and per-stage state.
type StatusResponse struct {
	RunID  string             `json:"run_id"`
	State  pipeline.RunState  `json:"state"`
	Stages []StageStatusEntry `json:"stages"`
}

// handleVerify runs the full pipeline and returns the terminal result.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req types.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.orch.Start(r.Context(), &req)
	if err != nil {
		s.metrics.ObserveRun("failed")
		s.pipelineErrorResponse(w, err)
		return
	}
	s.metrics.ObserveRun("succeeded")

	s.jsonResponse(w, http.StatusOK, VerifyResponse{
		RunID:  s.orch.RunID().String(),
		Result: result,
	})
}

// handleVerifyStream runs the pipeline while streaming stage transitions as
// Server-Sent Events, then emits a terminal result or error event.
func (s *Server) handleVerifyStream(w http.ResponseWriter, r *http.Request) {
	var req types.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	events, cancel := s.orch.Subscribe()
	defer cancel()

	type runOutcome struct {
		result *types.VerificationResult
		err    error
	}
	done := make(chan runOutcome, 1)
	go func() {
		result, err := s.orch.Start(r.Context(), &req)
		done <- runOutcome{result, err}
	}()

	for {
		select {
		case ev := <-events:
			if writeErr := sse.WriteEvent("stage", ev); writeErr != nil {
				log.Printf("SSE write failed: %v", writeErr)
			}
		case outcome := <-done:
			// Stage events are emitted before Start returns; flush any the
			// select has not consumed yet.
			for len(events) > 0 {
				_ = sse.WriteEvent("stage", <-events)
			}
			if outcome.err != nil {
				s.metrics.ObserveRun("failed")
				sse.WriteError(newPipelineErrorPayload(outcome.err))
				return
			}
			s.metrics.ObserveRun("succeeded")
			sse.WriteResult(s.orch.RunID().String(), outcome.result)
			return
		}
	}
}

// handleStatus reports the current run state and per-stage statuses.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	statuses := s.orch.Statuses()

	resp := StatusResponse{
		RunID: s.orch.RunID().String(),
		State: s.orch.RunState(),
	}
	for _, stage := range pipeline.Stages() {
		resp.Stages = append(resp.Stages, StageStatusEntry{Stage: stage, Status: statuses[stage]})
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// Package pipeline provides the orchestration core for review verification:
// a fixed six-stage sequence of remote calls with per-stage status tracking,
// a single-run invariant, and fail-fast error propagation.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/trustproof/internal/client"
	"github.com/jonathan/trustproof/internal/types"
)

// DefaultStageTimeout bounds each remote call. Per-stage timeouts are an
// added contract over the observed upstream behavior, which had none.
const DefaultStageTimeout = 30 * time.Second

// eventBuffer sizes subscriber channels. A full run emits at most two events
// per stage, so slow consumers lose events rather than stall the pipeline.
const eventBuffer = 32

// Options configures an Orchestrator.
type Options struct {
	// StageTimeout is the deadline applied to each stage's remote call(s).
	StageTimeout time.Duration
	// PacingDelay is the display-pacing delay inserted between stages. It
	// has no correctness role; zero disables it.
	PacingDelay time.Duration
	// OnEvent, if set, is called synchronously for every stage transition.
	OnEvent func(Event)
}

// Orchestrator owns the stage sequence, the cross-stage state accumulator,
// and the stage-status state machine. Exactly one run may be active per
// instance at a time.
type Orchestrator struct {
	client *client.Client
	opts   Options

	mu       sync.Mutex
	running  bool
	runID    uuid.UUID
	runState RunState
	statuses map[Stage]Status
	started  map[Stage]time.Time
	subs     map[int]chan Event
	nextSub  int
}

// New creates an orchestrator over the given verification service client.
func New(c *client.Client, opts Options) *Orchestrator {
	if opts.StageTimeout <= 0 {
		opts.StageTimeout = DefaultStageTimeout
	}
	o := &Orchestrator{
		client:   c,
		opts:     opts,
		runState: RunIdle,
		statuses: make(map[Stage]Status, len(stageOrder)),
		started:  make(map[Stage]time.Time),
		subs:     make(map[int]chan Event),
	}
	for _, stage := range stageOrder {
		o.statuses[stage] = StatusPending
	}
	return o
}

// Start runs the full pipeline for one submission. It returns the terminal
// VerificationResult, or a *PipelineError on the first stage failure. There
// is no automatic retry and no rollback of committed remote-side effects.
func (o *Orchestrator) Start(ctx context.Context, req *types.SubmissionRequest) (*types.VerificationResult, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}

	result, err := o.run(ctx, req)
	if err != nil {
		o.end(RunFailed)
		return nil, err
	}
	o.end(RunSucceeded)
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, req *types.SubmissionRequest) (*types.VerificationResult, error) {
	st := &State{}

	// Local validation happens before any remote call is made.
	if err := req.Validate(); err != nil {
		o.setStatus(StageIntake, StatusFailed)
		return nil, &PipelineError{Stage: StageIntake, Kind: KindInvalidInput, Cause: err}
	}

	for i, stage := range stageOrder {
		if stage == StageMedia && req.Media == nil {
			st.MediaScore = neutralMediaScore
			st.MediaMeasured = false
			o.setStatus(stage, StatusSkipped)
		} else {
			o.setStatus(stage, StatusActive)

			stageCtx, cancel := context.WithTimeout(ctx, o.opts.StageTimeout)
			err := o.runStage(stageCtx, stage, req, st)
			cancel()

			if err != nil {
				o.setStatus(stage, StatusFailed)
				return nil, classify(stage, err, *st)
			}
			o.setStatus(stage, StatusCompleted)
		}

		if i < len(stageOrder)-1 {
			o.pause(ctx)
		}
	}

	return st.Result, nil
}

// begin transitions the pipeline to Running, rejecting a concurrent start.
func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return &PipelineError{Kind: KindAlreadyRunning}
	}

	o.running = true
	o.runID = uuid.New()
	o.runState = RunRunning
	for _, stage := range stageOrder {
		o.statuses[stage] = StatusPending
		delete(o.started, stage)
	}
	return nil
}

func (o *Orchestrator) end(state RunState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running = false
	o.runState = state
}

// setStatus records a stage transition and notifies observers.
func (o *Orchestrator) setStatus(stage Stage, status Status) {
	o.mu.Lock()
	o.statuses[stage] = status

	var elapsedMillis int64
	switch {
	case status == StatusActive:
		o.started[stage] = time.Now()
	case status.Terminal():
		if startedAt, ok := o.started[stage]; ok {
			elapsedMillis = time.Since(startedAt).Milliseconds()
		}
	}

	event := Event{RunID: o.runID, Stage: stage, Status: status, ElapsedMillis: elapsedMillis}
	for _, ch := range o.subs {
		select {
		case ch <- event:
		default:
		}
	}
	o.mu.Unlock()

	if o.opts.OnEvent != nil {
		o.opts.OnEvent(event)
	}
}

// pause inserts the display-pacing delay between stages.
func (o *Orchestrator) pause(ctx context.Context) {
	if o.opts.PacingDelay <= 0 {
		return
	}
	timer := time.NewTimer(o.opts.PacingDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Subscribe registers an event channel for stage transitions. The returned
// cancel function must be called to release the subscription.
func (o *Orchestrator) Subscribe() (<-chan Event, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ch := make(chan Event, eventBuffer)
	id := o.nextSub
	o.nextSub++
	o.subs[id] = ch

	cancel := func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if sub, ok := o.subs[id]; ok {
			delete(o.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Statuses returns a snapshot of all stage statuses.
func (o *Orchestrator) Statuses() map[Stage]Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[Stage]Status, len(o.statuses))
	for stage, status := range o.statuses {
		out[stage] = status
	}
	return out
}

// RunState returns the pipeline-level state.
func (o *Orchestrator) RunState() RunState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.runState
}

// RunID returns the identifier of the current or most recent run.
func (o *Orchestrator) RunID() uuid.UUID {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.runID
}

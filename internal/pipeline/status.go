package pipeline

import "github.com/google/uuid"

// Stage identifies one unit of the verification pipeline.
type Stage string

// The six stages, in their fixed execution order.
const (
	StageIntake      Stage = "intake"
	StagePurchase    Stage = "purchase_verification"
	StageText        Stage = "text_authenticity"
	StageConsistency Stage = "consistency_check"
	StageMedia       Stage = "media_authenticity"
	StageScore       Stage = "trust_scoring"
)

// stageOrder is fixed and not configurable. Each stage's request depends on
// a field written by an earlier stage.
var stageOrder = [...]Stage{
	StageIntake,
	StagePurchase,
	StageText,
	StageConsistency,
	StageMedia,
	StageScore,
}

// Stages returns the stage sequence in execution order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder[:])
	return out
}

// Status is the per-stage lifecycle: pending → active → completed|skipped|failed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Terminal reports whether a stage status can no longer advance.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusSkipped || s == StatusFailed
}

// RunState is the pipeline-level lifecycle: idle → running → succeeded|failed.
type RunState string

const (
	RunIdle      RunState = "idle"
	RunRunning   RunState = "running"
	RunSucceeded RunState = "succeeded"
	RunFailed    RunState = "failed"
)

// Event is a stage status transition, emitted for progressive disclosure.
// ElapsedMillis is populated on terminal stage statuses.
type Event struct {
	RunID         uuid.UUID `json:"run_id"`
	Stage         Stage     `json:"stage"`
	Status        Status    `json:"status"`
	ElapsedMillis int64     `json:"elapsed_ms,omitempty"`
}

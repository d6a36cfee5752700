package pipeline

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/trustproof/internal/client"
)

func TestStages_FixedOrder(t *testing.T) {
	assert.Equal(t, []Stage{
		StageIntake,
		StagePurchase,
		StageText,
		StageConsistency,
		StageMedia,
		StageScore,
	}, Stages())
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusActive.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusSkipped.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

func TestConsistencyScore(t *testing.T) {
	assert.Equal(t, 0.85, consistencyScore(true))
	assert.Equal(t, 0.45, consistencyScore(false))
}

func TestClassify(t *testing.T) {
	transport := &client.Error{Endpoint: "/auth/text", StatusCode: http.StatusBadGateway, Message: "HTTP status 502"}
	perr := classify(StageText, transport, State{})
	assert.Equal(t, KindTransportError, perr.Kind)
	assert.Equal(t, http.StatusBadGateway, perr.StatusCode)
	assert.Equal(t, StageText, perr.Stage)

	malformed := errors.New("response validation failed")
	perr = classify(StageScore, malformed, State{})
	assert.Equal(t, KindMalformedResponse, perr.Kind)
	assert.Zero(t, perr.StatusCode)
}

func TestPipelineError_Message(t *testing.T) {
	perr := &PipelineError{Stage: StagePurchase, Kind: KindTransportError, StatusCode: 503}
	assert.Contains(t, perr.Error(), "purchase_verification")
	assert.Contains(t, perr.Error(), "HTTP 503")

	perr = &PipelineError{Kind: KindAlreadyRunning}
	assert.Contains(t, perr.Error(), "already_running")
}

package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/trustproof/internal/pipeline"
	"github.com/jonathan/trustproof/internal/types"
)

func TestPrintStageEvent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStageEvent(pipeline.Event{Stage: pipeline.StagePurchase, Status: pipeline.StatusActive})
	p.PrintStageEvent(pipeline.Event{Stage: pipeline.StagePurchase, Status: pipeline.StatusCompleted, ElapsedMillis: 120})
	p.PrintStageEvent(pipeline.Event{Stage: pipeline.StageMedia, Status: pipeline.StatusSkipped})

	output := buf.String()
	assert.Contains(t, output, "Purchase")
	assert.Contains(t, output, "active")
	assert.Contains(t, output, "completed (120ms)")
	assert.Contains(t, output, "Media")
	assert.Contains(t, output, "skipped")
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(&types.VerificationResult{
		FinalTrustScore: 92,
		ReviewStatus:    types.StatusTrusted,
		TrustLevel:      "High",
		Breakdown: types.Breakdown{
			PurchaseVerification:  "100%",
			TextAuthenticity:      "90%",
			ExperienceConsistency: "85%",
			MediaAuthenticity:     types.NotAvailable,
		},
	})

	output := buf.String()
	assert.Contains(t, output, "Verification Result")
	assert.Contains(t, output, "92 / 100")
	assert.Contains(t, output, "TRUSTED")
	assert.Contains(t, output, "High")
	assert.Contains(t, output, "100%")
	assert.Contains(t, output, "N/A")
}

func TestPrintResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintError(&pipeline.PipelineError{Stage: pipeline.StageText, Kind: pipeline.KindTransportError, StatusCode: 502})
	assert.Contains(t, buf.String(), "Text stage failed")
	assert.Contains(t, buf.String(), "HTTP 502")
}

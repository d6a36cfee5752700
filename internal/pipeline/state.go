package pipeline

import "github.com/jonathan/trustproof/internal/types"

// neutralMediaScore is the prior used when no media was supplied. It is not
// a measured value; MediaMeasured distinguishes the two downstream.
const neutralMediaScore = 0.5

// Fixed two-point consistency policy derived from the text authenticity
// verdict. The consistency endpoint only acknowledges the value.
const (
	consistentScore   = 0.85
	inconsistentScore = 0.45
)

// consistencyScore maps the text verdict to the consistency value sent to
// the remote service. No other value is ever sent.
func consistencyScore(textValid bool) float64 {
	if textValid {
		return consistentScore
	}
	return inconsistentScore
}

// State is the cross-stage accumulator, exclusively owned by the single
// in-flight run. A field is read by a stage only if a prior stage wrote it.
// Fields beyond the ones later stages consume are retained opaquely for
// diagnostics.
type State struct {
	// Intake
	ReviewID string

	// Purchase verification
	PurchaseVerified   bool
	PurchaseConfidence float64
	PurchaseMessage    string

	// Text authenticity
	TextValid     bool
	TextScore     float64
	AIProbability float64
	TextReason    string

	// Consistency check
	ConsistencyScore float64

	// Media authenticity. MediaMeasured is false when the neutral prior was
	// used because no media was attached.
	MediaID             string
	MediaURL            string
	MediaScore          float64
	MediaMeasured       bool
	DeepfakeProbability float64
	MediaAnalysis       string

	// Trust scoring
	Result *types.VerificationResult
}

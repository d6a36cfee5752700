package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/trustproof/internal/schemas"
	"github.com/jonathan/trustproof/internal/types"
)

// consistencyNotes is the fixed annotation sent with the consistency value.
const consistencyNotes = "Automated consistency validation"

// remoteCall defines one stage's interaction with the verification service:
// a pure payload builder over (request, state), the endpoint, the response
// schema, and the state patch folded in from the validated response.
type remoteCall struct {
	endpoint string
	build    func(req *types.SubmissionRequest, st *State) any
	schema   string
	apply    func(raw json.RawMessage, st *State) error
}

// stageCalls covers the five single-call stages. The media stage is a
// composite upload-then-score call and is executed separately.
var stageCalls = map[Stage]remoteCall{
	StageIntake: {
		endpoint: "/review/intake",
		build: func(req *types.SubmissionRequest, _ *State) any {
			return map[string]any{
				"business_id":    req.BusinessID,
				"bill_id":        req.BillID,
				"review_text":    req.ReviewText,
				"media_uploaded": req.Media != nil,
			}
		},
		schema: schemas.IntakeResponse,
		apply: func(raw json.RawMessage, st *State) error {
			var resp struct {
				ReviewID string `json:"review_id"`
			}
			if err := json.Unmarshal(raw, &resp); err != nil {
				return fmt.Errorf("decoding intake response: %w", err)
			}
			st.ReviewID = resp.ReviewID
			return nil
		},
	},

	StagePurchase: {
		endpoint: "/verify/purchase",
		build: func(req *types.SubmissionRequest, _ *State) any {
			return map[string]any{
				"bill_id":     req.BillID,
				"business_id": req.BusinessID,
			}
		},
		schema: schemas.PurchaseResponse,
		apply: func(raw json.RawMessage, st *State) error {
			var resp struct {
				Verified   bool    `json:"verified"`
				Confidence float64 `json:"confidence"`
				Message    string  `json:"message"`
			}
			if err := json.Unmarshal(raw, &resp); err != nil {
				return fmt.Errorf("decoding purchase response: %w", err)
			}
			st.PurchaseVerified = resp.Verified
			st.PurchaseConfidence = resp.Confidence
			st.PurchaseMessage = resp.Message
			return nil
		},
	},

	StageText: {
		endpoint: "/auth/text",
		build: func(req *types.SubmissionRequest, _ *State) any {
			return map[string]any{"review_text": req.ReviewText}
		},
		schema: schemas.TextResponse,
		apply: func(raw json.RawMessage, st *State) error {
			var resp struct {
				TextValid     bool    `json:"text_valid"`
				TextScore     float64 `json:"text_score"`
				AIProbability float64 `json:"ai_probability"`
				Reason        string  `json:"reason"`
			}
			if err := json.Unmarshal(raw, &resp); err != nil {
				return fmt.Errorf("decoding text response: %w", err)
			}
			st.TextValid = resp.TextValid
			st.TextScore = resp.TextScore
			st.AIProbability = resp.AIProbability
			st.TextReason = resp.Reason
			return nil
		},
	},

	StageConsistency: {
		endpoint: "/review/consistency-check",
		build: func(_ *types.SubmissionRequest, st *State) any {
			return map[string]any{
				"consistency_score": consistencyScore(st.TextValid),
				"notes":             consistencyNotes,
			}
		},
		schema: schemas.ConsistencyResponse,
		apply: func(_ json.RawMessage, st *State) error {
			st.ConsistencyScore = consistencyScore(st.TextValid)
			return nil
		},
	},

	StageScore: {
		endpoint: "/trust/score",
		build: func(_ *types.SubmissionRequest, st *State) any {
			return map[string]any{
				"text_score":        st.TextScore,
				"media_score":       st.MediaScore,
				"purchase_verified": st.PurchaseVerified,
				"consistency_score": st.ConsistencyScore,
			}
		},
		schema: schemas.TrustScoreResponse,
		apply: func(raw json.RawMessage, st *State) error {
			var resp struct {
				FinalTrustScore int               `json:"final_trust_score"`
				ReviewStatus    string            `json:"review_status"`
				TrustLevel      string            `json:"trust_level"`
				Breakdown       map[string]string `json:"breakdown"`
			}
			if err := json.Unmarshal(raw, &resp); err != nil {
				return fmt.Errorf("decoding trust score response: %w", err)
			}
			st.Result = &types.VerificationResult{
				FinalTrustScore: resp.FinalTrustScore,
				ReviewStatus:    resp.ReviewStatus,
				TrustLevel:      resp.TrustLevel,
				Breakdown:       types.BreakdownFromMap(resp.Breakdown),
			}
			return nil
		},
	},
}

// mediaScoreCall is the second half of the composite media stage.
var mediaScoreCall = remoteCall{
	endpoint: "/auth/media",
	build: func(req *types.SubmissionRequest, st *State) any {
		return map[string]any{
			"media_id":   st.MediaID,
			"media_url":  st.MediaURL,
			"media_type": req.Media.MediaType(),
		}
	},
	schema: schemas.MediaResponse,
	apply: func(raw json.RawMessage, st *State) error {
		var resp struct {
			MediaScore          float64 `json:"media_score"`
			DeepfakeProbability float64 `json:"deepfake_probability"`
			Analysis            string  `json:"analysis"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil {
			return fmt.Errorf("decoding media response: %w", err)
		}
		st.MediaScore = resp.MediaScore
		st.MediaMeasured = true
		st.DeepfakeProbability = resp.DeepfakeProbability
		st.MediaAnalysis = resp.Analysis
		return nil
	},
}

// invoke executes one remote call: build the payload, post it, validate the
// response shape, fold the patch into state.
func (o *Orchestrator) invoke(ctx context.Context, call remoteCall, req *types.SubmissionRequest, st *State) error {
	raw, err := o.client.Post(ctx, call.endpoint, call.build(req, st))
	if err != nil {
		return err
	}
	if err := schemas.Validate(call.schema, raw); err != nil {
		return err
	}
	return call.apply(raw, st)
}

// runStage executes a single pipeline stage against the current state.
func (o *Orchestrator) runStage(ctx context.Context, stage Stage, req *types.SubmissionRequest, st *State) error {
	if stage == StageMedia {
		return o.runMediaStage(ctx, req, st)
	}
	return o.invoke(ctx, stageCalls[stage], req, st)
}

// runMediaStage uploads the attachment, then scores it by the returned
// identifier pair. Both sub-calls count as the one media stage; either
// failing fails the stage. An already-uploaded asset is not deleted when the
// scoring call fails.
func (o *Orchestrator) runMediaStage(ctx context.Context, req *types.SubmissionRequest, st *State) error {
	raw, err := o.client.Upload(ctx, "/media/upload", req.Media.Filename, req.Media.MIMEType, req.Media.Data)
	if err != nil {
		return err
	}
	if err := schemas.Validate(schemas.UploadResponse, raw); err != nil {
		return err
	}

	var resp struct {
		MediaID  string `json:"media_id"`
		MediaURL string `json:"media_url"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("decoding upload response: %w", err)
	}
	st.MediaID = resp.MediaID
	st.MediaURL = resp.MediaURL

	return o.invoke(ctx, mediaScoreCall, req, st)
}

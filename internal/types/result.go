package types

// NotAvailable is the sentinel label used for breakdown entries the scoring
// service did not supply.
const NotAvailable = "N/A"

// Review statuses produced by the remote trust scoring service.
const (
	StatusTrusted    = "TRUSTED"
	StatusSuspicious = "SUSPICIOUS"
	StatusRejected   = "REJECTED"
)

// Breakdown holds the four named sub-scores accompanying the trust score.
// Values are opaque remote-supplied labels (typically percentages).
type Breakdown struct {
	PurchaseVerification  string `json:"purchase_verification"`
	TextAuthenticity      string `json:"text_authenticity"`
	ExperienceConsistency string `json:"experience_consistency"`
	MediaAuthenticity     string `json:"media_authenticity"`
}

// BreakdownFromMap builds a Breakdown from the raw response map, substituting
// NotAvailable for each key the scoring service omitted or left empty. The
// four keys are handled independently.
func BreakdownFromMap(raw map[string]string) Breakdown {
	get := func(key string) string {
		if v, ok := raw[key]; ok && v != "" {
			return v
		}
		return NotAvailable
	}
	return Breakdown{
		PurchaseVerification:  get("purchase_verification"),
		TextAuthenticity:      get("text_authenticity"),
		ExperienceConsistency: get("experience_consistency"),
		MediaAuthenticity:     get("media_authenticity"),
	}
}

// VerificationResult is the terminal success value of a pipeline run, built
// verbatim from the trust scoring stage's response. The pipeline never
// recomputes or clamps the score locally.
type VerificationResult struct {
	FinalTrustScore int       `json:"final_trust_score"`
	ReviewStatus    string    `json:"review_status"`
	TrustLevel      string    `json:"trust_level"`
	Breakdown       Breakdown `json:"breakdown"`
}

// Package types provides type definitions for structured data used throughout the trustproof system.
package types

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// billIDPattern matches receipt identifiers of the form BILL-YYYY-NNNNNN.
var billIDPattern = regexp.MustCompile(`^BILL-\d{4}-\d{6}$`)

// KnownBusinesses maps registered business identifiers to display names.
// Submissions referencing any other identifier are rejected before a single
// remote call is made.
var KnownBusinesses = map[string]string{
	"BIZ-HOTEL-5678": "Sunset Hotel",
	"BIZ-REST-9012":  "Grand Restaurant",
}

// MediaFile is an optional proof-of-experience attachment. Data marshals as
// base64 in JSON request bodies.
type MediaFile struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type" validate:"required"`
	Data     []byte `json:"data"`
}

// MediaType classifies the attachment for the media scoring service.
// Anything that is not an image is treated as video, matching the
// upstream service's two-value contract.
func (m *MediaFile) MediaType() string {
	if strings.HasPrefix(m.MIMEType, "image/") {
		return "image"
	}
	return "video"
}

// SubmissionRequest is the immutable input to a verification run.
type SubmissionRequest struct {
	BusinessID string     `json:"business_id" validate:"required"`
	BillID     string     `json:"bill_id" validate:"required"`
	ReviewText string     `json:"review_text" validate:"required,min=1"`
	Rating     int        `json:"rating" validate:"required,min=1,max=5"`
	Media      *MediaFile `json:"media,omitempty"`
}

// Validate checks the field constraints that must hold before the pipeline
// contacts any remote service.
func (r *SubmissionRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}

	if _, ok := KnownBusinesses[r.BusinessID]; !ok {
		return fmt.Errorf("unknown business id: %s", r.BusinessID)
	}

	if !billIDPattern.MatchString(r.BillID) {
		return fmt.Errorf("bill id %q does not match format BILL-YYYY-NNNNNN", r.BillID)
	}

	if r.Media != nil {
		if !strings.HasPrefix(r.Media.MIMEType, "image/") && !strings.HasPrefix(r.Media.MIMEType, "video/") {
			return fmt.Errorf("unsupported media type %q: must be image/* or video/*", r.Media.MIMEType)
		}
		if len(r.Media.Data) == 0 {
			return fmt.Errorf("media file %q is empty", r.Media.Filename)
		}
	}

	return nil
}

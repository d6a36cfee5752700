package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *SubmissionRequest {
	return &SubmissionRequest{
		BusinessID: "BIZ-REST-9012",
		BillID:     "BILL-2024-001234",
		ReviewText: "Great food",
		Rating:     5,
	}
}

func TestSubmissionRequest_Valid(t *testing.T) {
	require.NoError(t, validRequest().Validate())
}

func TestSubmissionRequest_ValidWithMedia(t *testing.T) {
	req := validRequest()
	req.Media = &MediaFile{
		Filename: "receipt.jpg",
		MIMEType: "image/jpeg",
		Data:     []byte{0xff, 0xd8},
	}
	require.NoError(t, req.Validate())
}

func TestSubmissionRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmissionRequest)
	}{
		{"empty business id", func(r *SubmissionRequest) { r.BusinessID = "" }},
		{"empty bill id", func(r *SubmissionRequest) { r.BillID = "" }},
		{"empty review text", func(r *SubmissionRequest) { r.ReviewText = "" }},
		{"rating zero", func(r *SubmissionRequest) { r.Rating = 0 }},
		{"rating too high", func(r *SubmissionRequest) { r.Rating = 6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestSubmissionRequest_UnknownBusiness(t *testing.T) {
	req := validRequest()
	req.BusinessID = "BIZ-UNKNOWN-0000"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown business id")
}

func TestSubmissionRequest_BillIDFormat(t *testing.T) {
	tests := []struct {
		billID string
		valid  bool
	}{
		{"BILL-2024-001234", true},
		{"BILL-2024-001235", true},
		{"BILL-24-001234", false},
		{"BILL-2024-1234", false},
		{"bill-2024-001234", false},
		{"RECEIPT-2024-001234", false},
	}

	for _, tt := range tests {
		t.Run(tt.billID, func(t *testing.T) {
			req := validRequest()
			req.BillID = tt.billID
			err := req.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSubmissionRequest_MediaTypeRejected(t *testing.T) {
	req := validRequest()
	req.Media = &MediaFile{Filename: "notes.pdf", MIMEType: "application/pdf", Data: []byte("x")}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported media type")
}

func TestSubmissionRequest_EmptyMediaRejected(t *testing.T) {
	req := validRequest()
	req.Media = &MediaFile{Filename: "clip.mp4", MIMEType: "video/mp4"}
	assert.Error(t, req.Validate())
}

func TestMediaFile_MediaType(t *testing.T) {
	assert.Equal(t, "image", (&MediaFile{MIMEType: "image/png"}).MediaType())
	assert.Equal(t, "video", (&MediaFile{MIMEType: "video/mp4"}).MediaType())
}

package domain

import "regexp"

// Candidate is one tracking number extracted from free text, with a
// heuristic carrier attribution and confidence. Created fresh per request,
// never persisted.
type Candidate struct {
	// TrackingNumber is the normalized candidate number.
	TrackingNumber string `json:"tracking_number"`
	// CarrierCode is the attributed carrier code, empty when unknown.
	CarrierCode string `json:"carrier_code,omitempty"`
	// CarrierName is the attributed carrier name, empty when unknown.
	CarrierName string `json:"carrier_name,omitempty"`
	// Confidence is the extraction confidence in [0,1].
	Confidence float64 `json:"confidence"`
	// Source describes how the candidate was extracted.
	Source string `json:"source"`
}

var separatorPattern = regexp.MustCompile(`[\s\-_.]`)

// NormalizeNumber strips spaces, dashes, underscores and periods from a raw
// tracking number match.
func NormalizeNumber(raw string) string {
	return separatorPattern.ReplaceAllString(raw, "")
}

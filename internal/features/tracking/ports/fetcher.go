package ports

import (
	"context"
	"fmt"
)

// RawDetail is one tracking waypoint as delivered by the upstream API.
type RawDetail struct {
	// TimeString is the carrier-supplied event timestamp.
	TimeString string `json:"timeString"`
	// Kind is the raw carrier status text.
	Kind string `json:"kind"`
	// Where is the event location.
	Where string `json:"where"`
	// Remark is an optional carrier note.
	Remark string `json:"remark,omitempty"`
}

// RawRecord is the upstream tracking payload before domain mapping.
// Status/Msg carry carrier-side failure signals that arrive on HTTP 200.
type RawRecord struct {
	// Status is "false" when the carrier reports a lookup failure.
	Status string `json:"status,omitempty"`
	// Msg is the carrier-side error message, when present.
	Msg string `json:"msg,omitempty"`
	// TrackingDetails is the ordered waypoint list, oldest first.
	TrackingDetails []RawDetail `json:"trackingDetails"`
	// SenderName is the sender, when reported.
	SenderName string `json:"senderName,omitempty"`
	// ReceiverName is the receiver, when reported.
	ReceiverName string `json:"receiverName,omitempty"`
	// ItemName is the shipped item description, when reported.
	ItemName string `json:"itemName,omitempty"`
	// CompleteYN is "Y" when the carrier flags the delivery complete.
	CompleteYN string `json:"completeYN,omitempty"`
}

// Failed reports whether the carrier signalled a logical failure.
func (r *RawRecord) Failed() bool {
	return r.Status == "false" || r.Msg != ""
}

// Company is one carrier as listed by the upstream API.
type Company struct {
	// Code is the Sweet Tracker carrier code.
	Code string `json:"Code"`
	// Name is the carrier name.
	Name string `json:"Name"`
}

// StatusError reports a non-2xx response from the upstream API.
type StatusError struct {
	// StatusCode is the HTTP status code returned upstream.
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Fetcher defines the interface to the upstream tracking source.
type Fetcher interface {
	// Fetch retrieves the raw tracking record for a number/carrier pair.
	// Transport problems surface as errors; carrier-side failures come
	// back inside the record.
	Fetch(ctx context.Context, trackingNumber, carrierCode string) (*RawRecord, error)

	// CompanyList retrieves the carriers the upstream source supports.
	CompanyList(ctx context.Context) ([]Company, error)
}

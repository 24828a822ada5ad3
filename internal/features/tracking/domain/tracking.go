package domain

// TrackingEvent represents a single waypoint in the shipment's history.
// Events are kept oldest-first, exactly as returned by the carrier.
type TrackingEvent struct {
	// Time is the carrier-supplied timestamp. Format varies by carrier.
	Time string `json:"time"`
	// Status is the raw carrier status text for this event.
	Status string `json:"status"`
	// Location is where the event occurred.
	Location string `json:"location,omitempty"`
	// Detail is an optional carrier remark.
	Detail string `json:"detail,omitempty"`
}

// NoInformation is the current-status sentinel for an empty event list.
const NoInformation = "정보 없음"

// LookupFailed is the current-status sentinel for a failed query.
const LookupFailed = "조회 실패"

// TrackingResult represents the complete outcome of one tracking query.
// Built fresh per query, never mutated and never cached.
type TrackingResult struct {
	// Success reports whether the query produced tracking data.
	Success bool `json:"success"`
	// TrackingNumber is the queried tracking/invoice number.
	TrackingNumber string `json:"tracking_number"`
	// CarrierCode is the Sweet Tracker code of the queried carrier.
	CarrierCode string `json:"carrier_code"`
	// CarrierName is the carrier display name.
	CarrierName string `json:"carrier_name"`
	// Sender is the sender name, when the carrier reports one.
	Sender string `json:"sender,omitempty"`
	// Receiver is the receiver name, when the carrier reports one.
	Receiver string `json:"receiver,omitempty"`
	// ItemName is the shipped item description, when reported.
	ItemName string `json:"item_name,omitempty"`
	// Events is the chronological waypoint list, oldest first.
	Events []TrackingEvent `json:"events"`
	// CurrentStatus is the last event's raw status, or a sentinel.
	CurrentStatus string `json:"current_status"`
	// IsDelivered reports whether the shipment reached its receiver.
	IsDelivered bool `json:"is_delivered"`
	// ErrorMessage describes the failure when Success is false.
	ErrorMessage string `json:"error_message,omitempty"`
}

// LastEvent returns the most recent event, if any.
func (r *TrackingResult) LastEvent() (TrackingEvent, bool) {
	if len(r.Events) == 0 {
		return TrackingEvent{}, false
	}
	return r.Events[len(r.Events)-1], true
}

package models

// Validation error codes (block the result from being marked valid)
const (
	ErrCodeTimeReversal       = "TIME_REVERSAL"
	ErrCodeNegativeDuration   = "NEGATIVE_DURATION"
	ErrCodeTripWindowExceeded = "TRIP_WINDOW_EXCEEDED"
)

// Validation warning codes (advisory, never block success)
const (
	WarnCodeDuplicateVisit        = "DUPLICATE_VISIT"
	WarnCodeLongDay               = "LONG_DAY"
	WarnCodeShortFlight           = "SHORT_FLIGHT"
	WarnCodeLongWalk              = "LONG_WALK"
	WarnCodeNegativeTransportTime = "NEGATIVE_TRANSPORT_TIME"
	WarnCodeFewRatings            = "FEW_RATINGS"
	WarnCodeUniformRatings        = "UNIFORM_RATINGS"
)

// ValidationError blocks the itinerary from being marked valid
type ValidationError struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	DestinationID string `json:"destination_id,omitempty"`
	Day           int    `json:"day,omitempty"`
}

// ValidationWarning is advisory only
type ValidationWarning struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	DestinationID string `json:"destination_id,omitempty"`
	Day           int    `json:"day,omitempty"`
}

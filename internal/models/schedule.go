package models

import "time"

// DestinationVisit is a scheduled occurrence of a Destination on a specific day.
// One Destination yields multiple visits only when a multi-day booking is split
// across calendar days (virtual split) or a constrained event crosses midnight
// (split part), both linked back via OriginalPlaceID.
type DestinationVisit struct {
	DestinationID string    `json:"destination_id"`
	Name          string    `json:"name"`
	Day           int       `json:"day"`
	OrderInDay    int       `json:"order_in_day"`
	Arrival       time.Time `json:"arrival"`
	Departure     time.Time `json:"departure"`
	Constrained   bool      `json:"constrained"`

	// Incoming hop, zero values for the first visit of the trip
	TransportMode TransportMode `json:"transport_mode,omitempty"`
	TravelMinutes int           `json:"travel_minutes"`
	DistanceKm    float64       `json:"distance_km"`

	// Virtual split of a multi-day booking
	VirtualSplit    bool   `json:"virtual_split,omitempty"`
	OriginalPlaceID string `json:"original_place_id,omitempty"`
	SplitIndex      int    `json:"split_index,omitempty"`      // 1-based day index within the booking
	SplitTotalDays  int    `json:"split_total_days,omitempty"` // total calendar days spanned

	// Cross-midnight split of a constrained event: 1 or 2, 0 when not split
	SplitPart int `json:"split_part,omitempty"`
}

// MealBreak is a fixed meal slot placed into a day's schedule
type MealBreak struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DailySchedule is one calendar day of the built itinerary
type DailySchedule struct {
	Day           int                `json:"day"`
	Date          string             `json:"date"` // YYYY-MM-DD
	Visits        []DestinationVisit `json:"visits"`
	Meals         []MealBreak        `json:"meals"`
	TravelMinutes int                `json:"travel_minutes"`
	VisitMinutes  int                `json:"visit_minutes"`
	MealMinutes   int                `json:"meal_minutes"`
}

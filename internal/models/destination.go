package models

import "time"

// TransportMode is the closed set of travel modes the planner assigns to hops
type TransportMode string

// TransportMode constants
const (
	ModeWalking TransportMode = "walking"
	ModeDriving TransportMode = "driving"
	ModeFlying  TransportMode = "flying"
)

// ConstraintKind is the closed set of hard time constraints a destination can carry
type ConstraintKind string

// ConstraintKind constants
const (
	ConstraintNone            ConstraintKind = "none"
	ConstraintArrivalBy       ConstraintKind = "arrival_by"
	ConstraintDepartBy        ConstraintKind = "depart_by"
	ConstraintMultiDayBooking ConstraintKind = "multi_day_booking"
)

// Constraint is a tagged variant: exactly the fields implied by Kind are set.
// A multi-day booking carries check-in and check-out; arrival/departure
// constraints carry a single timestamp each.
type Constraint struct {
	Kind      ConstraintKind `json:"kind"`
	ArrivalBy *time.Time     `json:"arrival_by,omitempty"`
	DepartBy  *time.Time     `json:"depart_by,omitempty"`
	CheckIn   *time.Time     `json:"check_in,omitempty"`
	CheckOut  *time.Time     `json:"check_out,omitempty"`
}

// IsHard reports whether the constraint fixes this place in time
func (c Constraint) IsHard() bool {
	return c.Kind != "" && c.Kind != ConstraintNone
}

// Destination represents a candidate place for the trip.
// It is immutable input: scheduling output lives on DestinationVisit records,
// never on the Destination itself.
type Destination struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Lat         float64    `json:"lat" db:"lat"`
	Lon         float64    `json:"lon" db:"lon"`
	StayMinutes int        `json:"stay_minutes" db:"stay_minutes"`
	Category    string     `json:"category,omitempty" db:"category"`
	Constraint  Constraint `json:"constraint"`
}

// Location is a named coordinate used for trip endpoints
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

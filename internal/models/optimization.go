package models

import "time"

// OptimizationRequest is the engine's full input record. External data
// (place catalogs, identities) must be resolved by the caller beforehand;
// the engine itself performs no I/O.
type OptimizationRequest struct {
	TripID          string           `json:"trip_id"`
	Departure       Location         `json:"departure"`
	Return          *Location        `json:"return,omitempty"`
	Destinations    []Destination    `json:"destinations"`
	Preferences     []UserPreference `json:"preferences"`
	TripStart       time.Time        `json:"trip_start"` // first trip day at local midnight
	TripEnd         time.Time        `json:"trip_end"`   // last allowed day at local midnight
	MaxDestinations int              `json:"max_destinations,omitempty"`
	Config          *ScheduleConfig  `json:"config,omitempty"` // nil means defaults
}

// OptimizationSummary is the machine-readable run summary
type OptimizationSummary struct {
	DestinationCount   int     `json:"destination_count"`
	SelectedCount      int     `json:"selected_count"`
	Days               int     `json:"days"`
	TotalDistanceKm    float64 `json:"total_distance_km"`
	TotalTravelMinutes int     `json:"total_travel_minutes"`
	TotalVisitMinutes  int     `json:"total_visit_minutes"`
	FairnessScore      float64 `json:"fairness_score"`
	ErrorCount         int     `json:"error_count"`
	WarningCount       int     `json:"warning_count"`
	ExecutionMs        int64   `json:"execution_ms"`
}

// OptimizationResult is the engine's full output record
type OptimizationResult struct {
	RunID     string              `json:"run_id"`
	TripID    string              `json:"trip_id"`
	Attempted bool                `json:"attempted"`
	Reason    string              `json:"reason,omitempty"` // set when not attempted
	Valid     bool                `json:"valid"`
	Route     *RouteSolution      `json:"route,omitempty"`
	Schedules []DailySchedule     `json:"schedules,omitempty"`
	Errors    []ValidationError   `json:"errors,omitempty"`
	Warnings  []ValidationWarning `json:"warnings,omitempty"`
	Summary   OptimizationSummary `json:"summary"`
}

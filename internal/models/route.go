package models

// RoutePoint is a destination reduced to what route ordering needs
type RoutePoint struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// TransportSegment describes one hop between consecutive route points
type TransportSegment struct {
	FromID        string        `json:"from_id"`
	ToID          string        `json:"to_id"`
	Mode          TransportMode `json:"mode"`
	DistanceKm    float64       `json:"distance_km"`
	TravelMinutes int           `json:"travel_minutes"`
}

// RouteSolution is the immutable result of one optimization attempt.
// A run may score several candidates internally but only the best is retained.
type RouteSolution struct {
	OrderedIDs         []string           `json:"ordered_ids"`
	Feasible           bool               `json:"feasible"`
	FairnessScore      float64            `json:"fairness_score"`
	Gini               float64            `json:"gini"`
	Satisfaction       map[string]float64 `json:"satisfaction"`
	TotalDistanceKm    float64            `json:"total_distance_km"`
	TotalTravelMinutes int                `json:"total_travel_minutes"`
	Issues             []string           `json:"issues,omitempty"`
}

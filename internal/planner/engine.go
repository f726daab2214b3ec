package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/wayfare/tripplan-backend-go/internal/models"
	"github.com/wayfare/tripplan-backend-go/internal/planner/fairness"
	"github.com/wayfare/tripplan-backend-go/internal/planner/preference"
	"github.com/wayfare/tripplan-backend-go/internal/planner/route"
	"github.com/wayfare/tripplan-backend-go/internal/planner/schedule"
	"github.com/wayfare/tripplan-backend-go/internal/planner/segment"
	"github.com/wayfare/tripplan-backend-go/internal/planner/transport"
	"github.com/wayfare/tripplan-backend-go/internal/planner/validate"
	"github.com/wayfare/tripplan-backend-go/internal/spatial"
)

// MinDestinations is the smallest destination set worth optimizing
const MinDestinations = 2

// Engine runs the full optimization pipeline. It is pure and stateless:
// every run works on immutable inputs and derives all timestamps from the
// supplied trip start date, so identical inputs produce identical itineraries
// and independent trips can run in parallel without coordination.
type Engine struct{}

// NewEngine creates an optimization engine
func NewEngine() *Engine {
	return &Engine{}
}

// Optimize executes one run: normalize, select, order, segment, time,
// schedule, validate. Each stage completes before the next starts.
func (e *Engine) Optimize(req *models.OptimizationRequest) *models.OptimizationResult {
	started := time.Now()

	cfg := models.MergeScheduleConfig(req.Config)

	result := &models.OptimizationResult{
		// derived from the request so reruns keep the same id
		RunID:  uuid.NewSHA1(uuid.NameSpaceOID, []byte(req.TripID+req.TripStart.Format(time.RFC3339))).String(),
		TripID: req.TripID,
	}

	if reason := checkInput(req); reason != "" {
		result.Reason = reason
		result.Summary.ExecutionMs = time.Since(started).Milliseconds()
		return result
	}
	result.Attempted = true

	// 1. preference normalization
	norm := preference.Normalize(req.Preferences)
	result.Warnings = append(result.Warnings, norm.Warnings...)
	issues := preference.QualityCheck(norm.Preferences)

	users := userKeys(req.Preferences)

	// 2. destination selection guided by the fairness oracle
	selectedIDs := e.selectDestinations(req, norm.Preferences, users, cfg)
	eval := fairness.Evaluate(selectedIDs, norm.Preferences, users)
	if analysis := fairness.AnalyzeDistribution(eval); len(analysis.Recommendations) > 0 {
		issues = append(issues, analysis.Recommendations...)
	}

	var selected, constrained []models.Destination
	for _, d := range req.Destinations {
		if !selectedIDs[d.ID] {
			continue
		}
		if d.Constraint.IsHard() {
			constrained = append(constrained, d)
		} else {
			selected = append(selected, d)
		}
	}

	// 3. route ordering for the freely movable places
	points := make([]models.RoutePoint, len(selected))
	for i, d := range selected {
		points[i] = models.RoutePoint{ID: d.ID, Name: d.Name, Lat: d.Lat, Lon: d.Lon}
	}
	ordering := route.Order(req.Departure, req.Return, points)

	ordered := orderedByRoute(selected, ordering)
	merged := mergeConstrained(ordered, constrained, req.TripStart, cfg)

	// 4. constraint segmentation
	places, _, segIssues := segment.Build(merged, req.TripStart)
	issues = append(issues, segIssues...)

	// 5-6. transport timing and day-schedule construction
	finalID := ""
	if len(merged) > 0 && !merged[len(merged)-1].Constraint.IsHard() {
		finalID = merged[len(merged)-1].ID
	}
	builder := schedule.NewBuilder(cfg, req.TripStart)
	result.Schedules = builder.Build(places, finalID)

	// 7. validation
	errs, warns := validate.Check(result.Schedules, req.TripEnd)
	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warns...)
	result.Valid = len(result.Errors) == 0

	result.Route = &models.RouteSolution{
		OrderedIDs:    idsOf(merged),
		Feasible:      result.Valid,
		FairnessScore: eval.Score,
		Gini:          eval.Gini,
		Satisfaction:  eval.Satisfaction,
		Issues:        issues,
	}
	for _, day := range result.Schedules {
		result.Route.TotalTravelMinutes += day.TravelMinutes
		for _, v := range day.Visits {
			result.Route.TotalDistanceKm += v.DistanceKm
		}
	}

	result.Summary = summarize(req, result, started)
	return result
}

// checkInput reports the reason a run cannot be attempted, or ""
func checkInput(req *models.OptimizationRequest) string {
	if req.TripID == "" {
		return "trip id is required"
	}
	if req.TripStart.IsZero() {
		return "trip start date is required"
	}
	if !spatial.ValidCoordinates(req.Departure.Lat, req.Departure.Lon) {
		return "departure location has malformed coordinates"
	}
	if req.Return != nil && !spatial.ValidCoordinates(req.Return.Lat, req.Return.Lon) {
		return "return location has malformed coordinates"
	}
	if len(req.Destinations) < MinDestinations {
		return fmt.Sprintf("at least %d destinations are required, got %d", MinDestinations, len(req.Destinations))
	}
	for _, d := range req.Destinations {
		if d.ID == "" {
			return "every destination needs an id"
		}
		if !spatial.ValidCoordinates(d.Lat, d.Lon) {
			return fmt.Sprintf("destination %s has malformed coordinates", d.ID)
		}
	}
	return ""
}

// selectDestinations keeps all destinations unless the request caps the count,
// in which case candidates are added greedily by aggregate standardized score,
// skipping those the incremental fairness oracle rejects.
func (e *Engine) selectDestinations(req *models.OptimizationRequest, prefs []models.StandardizedPreference, users []string, cfg models.ScheduleConfig) map[string]bool {
	selected := make(map[string]bool, len(req.Destinations))
	if req.MaxDestinations <= 0 || req.MaxDestinations >= len(req.Destinations) {
		for _, d := range req.Destinations {
			selected[d.ID] = true
		}
		return selected
	}

	totals := make(map[string]float64)
	for _, p := range prefs {
		totals[p.DestinationID] += p.Score
	}

	// hard-constrained places are bookings; they are always kept
	var candidates []models.Destination
	for _, d := range req.Destinations {
		if d.Constraint.IsHard() {
			selected[d.ID] = true
		} else {
			candidates = append(candidates, d)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := totals[candidates[i].ID], totals[candidates[j].ID]
		if ti != tj {
			return ti > tj
		}
		return candidates[i].ID < candidates[j].ID
	})

	var skipped []models.Destination
	for _, d := range candidates {
		if len(selected) >= req.MaxDestinations {
			break
		}
		delta := fairness.EvaluateDelta(selected, []string{d.ID}, true, prefs, users)
		if delta.Decision == fairness.DecisionReject {
			skipped = append(skipped, d)
			continue
		}
		selected[d.ID] = true
	}

	// fill any remaining room with the best of the rejected candidates
	for _, d := range skipped {
		if len(selected) >= req.MaxDestinations {
			break
		}
		selected[d.ID] = true
	}

	return selected
}

// orderedByRoute maps the route ordering back onto destination records,
// dropping the synthetic endpoint entries
func orderedByRoute(dests []models.Destination, ordering route.Ordering) []models.Destination {
	byID := make(map[string]models.Destination, len(dests))
	for _, d := range dests {
		byID[d.ID] = d
	}

	out := make([]models.Destination, 0, len(dests))
	for _, p := range ordering.Points {
		if d, ok := byID[p.ID]; ok {
			out = append(out, d)
		}
	}
	return out
}

// mergeConstrained interleaves hard-constrained places, sorted by their fixed
// times, into the route-ordered sequence. Each constrained place lands where
// the estimated running clock reaches its anchor, so the segmenter sees a
// chronologically ordered list without ever reordering a constrained place.
func mergeConstrained(ordered, constrained []models.Destination, tripStart time.Time, cfg models.ScheduleConfig) []models.Destination {
	if len(constrained) == 0 {
		return ordered
	}

	sort.SliceStable(constrained, func(i, j int) bool {
		return anchorMinute(constrained[i], tripStart) < anchorMinute(constrained[j], tripStart)
	})

	merged := make([]models.Destination, 0, len(ordered)+len(constrained))
	estimate := cfg.DayStartMinutes
	ci := 0

	var prev *models.Destination
	for i := range ordered {
		d := ordered[i]
		for ci < len(constrained) && anchorMinute(constrained[ci], tripStart) <= estimate {
			merged = append(merged, constrained[ci])
			if end := anchorEndMinute(constrained[ci], tripStart); end > estimate {
				estimate = end
			}
			prev = &constrained[ci]
			ci++
		}

		if prev != nil {
			seg := transport.Segment(
				models.RoutePoint{ID: prev.ID, Lat: prev.Lat, Lon: prev.Lon},
				models.RoutePoint{ID: d.ID, Lat: d.Lat, Lon: d.Lon},
				cfg,
			)
			estimate += seg.TravelMinutes
		}
		stay := d.StayMinutes
		if stay <= 0 {
			stay = cfg.DefaultStayMinutes
		}
		estimate += stay

		// rough day rollover so anchors on later days line up
		if estimate%(24*60) > cfg.DayEndMinutes {
			estimate = (estimate/(24*60)+1)*24*60 + cfg.DayStartMinutes
		}

		merged = append(merged, d)
		prev = &ordered[i]
	}

	for ; ci < len(constrained); ci++ {
		merged = append(merged, constrained[ci])
	}

	return merged
}

func anchorMinute(d models.Destination, tripStart time.Time) int {
	c := d.Constraint
	switch c.Kind {
	case models.ConstraintArrivalBy:
		if c.ArrivalBy != nil {
			return int(c.ArrivalBy.Sub(tripStart).Minutes())
		}
	case models.ConstraintDepartBy:
		if c.DepartBy != nil {
			return int(c.DepartBy.Sub(tripStart).Minutes()) - d.StayMinutes
		}
	case models.ConstraintMultiDayBooking:
		if c.CheckIn != nil {
			return int(c.CheckIn.Sub(tripStart).Minutes())
		}
	}
	return 0
}

func anchorEndMinute(d models.Destination, tripStart time.Time) int {
	c := d.Constraint
	switch c.Kind {
	case models.ConstraintArrivalBy:
		if c.ArrivalBy != nil {
			return int(c.ArrivalBy.Sub(tripStart).Minutes()) + d.StayMinutes
		}
	case models.ConstraintDepartBy:
		if c.DepartBy != nil {
			return int(c.DepartBy.Sub(tripStart).Minutes())
		}
	case models.ConstraintMultiDayBooking:
		if c.CheckOut != nil {
			return int(c.CheckOut.Sub(tripStart).Minutes())
		}
	}
	return 0
}

func userKeys(prefs []models.UserPreference) []string {
	set := make(map[string]bool)
	for _, p := range prefs {
		set[p.UserKey()] = true
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func idsOf(dests []models.Destination) []string {
	ids := make([]string, len(dests))
	for i, d := range dests {
		ids[i] = d.ID
	}
	return ids
}

func summarize(req *models.OptimizationRequest, result *models.OptimizationResult, started time.Time) models.OptimizationSummary {
	s := models.OptimizationSummary{
		DestinationCount: len(req.Destinations),
		Days:             len(result.Schedules),
		ErrorCount:       len(result.Errors),
		WarningCount:     len(result.Warnings),
		ExecutionMs:      time.Since(started).Milliseconds(),
	}
	if result.Route != nil {
		s.SelectedCount = len(result.Route.OrderedIDs)
		s.TotalDistanceKm = result.Route.TotalDistanceKm
		s.TotalTravelMinutes = result.Route.TotalTravelMinutes
		s.FairnessScore = result.Route.FairnessScore
	}
	for _, day := range result.Schedules {
		s.TotalVisitMinutes += day.VisitMinutes
	}
	return s
}

package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfare/tripplan-backend-go/internal/models"
)

var tripStart = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func baseRequest() *models.OptimizationRequest {
	return &models.OptimizationRequest{
		TripID:    "trip-1",
		Departure: models.Location{Name: "Paris", Lat: 48.8566, Lon: 2.3522},
		Destinations: []models.Destination{
			{ID: "louvre", Name: "Louvre", Lat: 48.8606, Lon: 2.3376, StayMinutes: 120},
			{ID: "orsay", Name: "Orsay", Lat: 48.8600, Lon: 2.3266, StayMinutes: 90},
			{ID: "pantheon", Name: "Pantheon", Lat: 48.8462, Lon: 2.3464, StayMinutes: 60},
		},
		Preferences: []models.UserPreference{
			{UserID: "alice", DestinationID: "louvre", Rating: 5},
			{UserID: "alice", DestinationID: "orsay", Rating: 3},
			{UserID: "alice", DestinationID: "pantheon", Rating: 1},
			{UserID: "bob", DestinationID: "louvre", Rating: 2},
			{UserID: "bob", DestinationID: "orsay", Rating: 4},
			{UserID: "bob", DestinationID: "pantheon", Rating: 5},
		},
		TripStart: tripStart,
		TripEnd:   tripStart.AddDate(0, 0, 3),
	}
}

func TestOptimizeHappyPath(t *testing.T) {
	result := NewEngine().Optimize(baseRequest())

	require.True(t, result.Attempted)
	assert.True(t, result.Valid, "errors: %+v", result.Errors)
	require.NotNil(t, result.Route)

	assert.Len(t, result.Route.OrderedIDs, 3)
	assert.True(t, result.Route.Feasible)
	assert.GreaterOrEqual(t, result.Route.FairnessScore, 0.0)
	assert.LessOrEqual(t, result.Route.FairnessScore, 1.0)

	require.NotEmpty(t, result.Schedules)
	assert.Equal(t, "2026-06-01", result.Schedules[0].Date)
	assert.Equal(t, 3, result.Summary.SelectedCount)
	assert.Empty(t, result.Errors)
}

func TestOptimizeNotAttemptedTooFewDestinations(t *testing.T) {
	req := baseRequest()
	req.Destinations = req.Destinations[:1]

	result := NewEngine().Optimize(req)
	assert.False(t, result.Attempted)
	assert.Contains(t, result.Reason, "at least 2 destinations")
	assert.Nil(t, result.Route)
	assert.Empty(t, result.Schedules)
}

func TestOptimizeNotAttemptedMalformedCoordinates(t *testing.T) {
	req := baseRequest()
	req.Destinations[1].Lat = 123.45

	result := NewEngine().Optimize(req)
	assert.False(t, result.Attempted)
	assert.Contains(t, result.Reason, "malformed coordinates")
}

func TestOptimizeIdempotent(t *testing.T) {
	first := NewEngine().Optimize(baseRequest())
	second := NewEngine().Optimize(baseRequest())

	// execution duration is the only field allowed to differ
	first.Summary.ExecutionMs = 0
	second.Summary.ExecutionMs = 0
	assert.Equal(t, first, second)
	assert.Equal(t, first.RunID, second.RunID)
}

func TestOptimizeDayCapInvariant(t *testing.T) {
	req := baseRequest()
	// enough visiting time to force multiple days
	for i := range req.Destinations {
		req.Destinations[i].StayMinutes = 240
	}

	result := NewEngine().Optimize(req)
	require.True(t, result.Attempted)

	cfg := models.DefaultScheduleConfig()
	lastDay := result.Schedules[len(result.Schedules)-1].Day
	for _, day := range result.Schedules {
		total := day.TravelMinutes + day.VisitMinutes + day.MealMinutes
		cap := cfg.MaxDailyMinutes
		if day.Day == lastDay {
			// the final destination may stretch its day up to the 20:00 cutoff
			cap += cfg.FinalCutoffMinutes - cfg.DayEndMinutes
		}
		assert.LessOrEqual(t, total, cap, "day %d over cap", day.Day)
	}
	assert.Greater(t, len(result.Schedules), 1)
}

func TestOptimizeMultiDayBooking(t *testing.T) {
	req := baseRequest()
	checkIn := tripStart.Add(15 * time.Hour)             // day 1, 15:00
	checkOut := tripStart.AddDate(0, 0, 2).Add(11 * time.Hour) // day 3, 11:00
	req.Destinations = append(req.Destinations, models.Destination{
		ID: "hotel", Name: "Hotel", Lat: 48.8566, Lon: 2.3522,
		Constraint: models.Constraint{
			Kind:    models.ConstraintMultiDayBooking,
			CheckIn: &checkIn, CheckOut: &checkOut,
		},
	})

	result := NewEngine().Optimize(req)
	require.True(t, result.Attempted)

	var splits int
	for _, day := range result.Schedules {
		for _, v := range day.Visits {
			if v.VirtualSplit {
				splits++
				assert.Equal(t, "hotel", v.OriginalPlaceID)
				assert.Equal(t, 3, v.SplitTotalDays)
			}
		}
	}
	assert.Equal(t, 3, splits)
}

func TestOptimizePartialConfigKeepsDefaults(t *testing.T) {
	req := baseRequest()
	// only the day start is overridden; speeds and windows stay at defaults
	req.Config = &models.ScheduleConfig{DayStartMinutes: 10 * 60}

	result := NewEngine().Optimize(req)
	require.True(t, result.Attempted)
	assert.True(t, result.Valid, "errors: %+v", result.Errors)

	require.NotEmpty(t, result.Schedules)
	first := result.Schedules[0].Visits[0]
	assert.Equal(t, tripStart.Add(10*time.Hour), first.Arrival)
	// zeroed speeds would blow travel times up; sane defaults keep them small
	assert.Less(t, result.Route.TotalTravelMinutes, 120)
}

func TestOptimizeMaxDestinationsSelection(t *testing.T) {
	req := baseRequest()
	req.MaxDestinations = 2

	result := NewEngine().Optimize(req)
	require.True(t, result.Attempted)
	assert.Len(t, result.Route.OrderedIDs, 2)
}

func TestOptimizeFewRatingsWarning(t *testing.T) {
	req := baseRequest()
	req.Preferences = req.Preferences[:2] // alice only, two ratings

	result := NewEngine().Optimize(req)
	require.True(t, result.Attempted)

	var codes []string
	for _, w := range result.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, models.WarnCodeFewRatings)
	// a single participant always scores perfectly fair
	assert.Equal(t, 1.0, result.Route.FairnessScore)
}

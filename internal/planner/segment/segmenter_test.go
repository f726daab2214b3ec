package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfare/tripplan-backend-go/internal/models"
)

var tripStart = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func ts(day, hour, min int) time.Time {
	return tripStart.AddDate(0, 0, day-1).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func dest(id string, stay int) models.Destination {
	return models.Destination{ID: id, Name: id, StayMinutes: stay}
}

func TestMultiDayBookingSplit(t *testing.T) {
	checkIn := ts(1, 15, 0)  // day 1, 15:00
	checkOut := ts(3, 11, 0) // day 3, 11:00

	hotel := dest("hotel", 0)
	hotel.Constraint = models.Constraint{
		Kind:    models.ConstraintMultiDayBooking,
		CheckIn: &checkIn, CheckOut: &checkOut,
	}

	places, _, issues := Build([]models.Destination{hotel}, tripStart)
	require.Empty(t, issues)
	require.Len(t, places, 3)

	for i, p := range places {
		assert.True(t, p.VirtualSplit)
		assert.Equal(t, "hotel", p.OriginalPlaceID)
		assert.Equal(t, i+1, p.SplitIndex)
		assert.Equal(t, 3, p.SplitTotalDays)
		if i > 0 {
			// windows must not overlap
			assert.GreaterOrEqual(t, p.StartMinute, places[i-1].EndMinute)
		}
	}

	// day 1: 15:00 to midnight
	assert.Equal(t, 15*60, places[0].StartMinute)
	assert.Equal(t, 24*60, places[0].EndMinute)
	// day 2: full day
	assert.Equal(t, 24*60, places[1].StartMinute)
	assert.Equal(t, 48*60, places[1].EndMinute)
	// day 3: midnight to 11:00
	assert.Equal(t, 48*60, places[2].StartMinute)
	assert.Equal(t, 48*60+11*60, places[2].EndMinute)
}

func TestMultiDayBookingSplitNonUTCTrip(t *testing.T) {
	// same booking shape as above, but the trip is anchored in a non-UTC zone;
	// split boundaries must still land on trip-day multiples of 24h
	zone := time.FixedZone("UTC+2", 2*3600)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, zone)
	checkIn := start.Add(15 * time.Hour)
	checkOut := start.AddDate(0, 0, 2).Add(11 * time.Hour)

	hotel := dest("hotel", 0)
	hotel.Constraint = models.Constraint{
		Kind:    models.ConstraintMultiDayBooking,
		CheckIn: &checkIn, CheckOut: &checkOut,
	}

	places, _, issues := Build([]models.Destination{hotel}, start)
	require.Empty(t, issues)
	require.Len(t, places, 3)

	assert.Equal(t, 15*60, places[0].StartMinute)
	assert.Equal(t, 24*60, places[0].EndMinute)
	assert.Equal(t, 24*60, places[1].StartMinute)
	assert.Equal(t, 48*60, places[1].EndMinute)
	assert.Equal(t, 48*60, places[2].StartMinute)
	assert.Equal(t, 48*60+11*60, places[2].EndMinute)
}

func TestMidnightCheckoutBelongsToPrecedingDay(t *testing.T) {
	checkIn := ts(1, 18, 0)
	checkOut := ts(3, 0, 0) // exactly midnight after day 2

	hotel := dest("hotel", 0)
	hotel.Constraint = models.Constraint{
		Kind:    models.ConstraintMultiDayBooking,
		CheckIn: &checkIn, CheckOut: &checkOut,
	}

	places, _, _ := Build([]models.Destination{hotel}, tripStart)
	require.Len(t, places, 2)
	assert.Equal(t, 48*60, places[1].EndMinute)
}

func TestSameDayBookingNotSplit(t *testing.T) {
	checkIn := ts(1, 10, 0)
	checkOut := ts(1, 16, 0)

	spa := dest("spa", 0)
	spa.Constraint = models.Constraint{
		Kind:    models.ConstraintMultiDayBooking,
		CheckIn: &checkIn, CheckOut: &checkOut,
	}

	places, _, _ := Build([]models.Destination{spa}, tripStart)
	require.Len(t, places, 1)
	assert.False(t, places[0].VirtualSplit)
	assert.Equal(t, 360, places[0].StayMinutes)
}

func TestArrivalAndDepartureAnchors(t *testing.T) {
	arriveBy := ts(1, 14, 0)
	departBy := ts(2, 10, 0)

	flight := dest("flight-in", 120)
	flight.Constraint = models.Constraint{Kind: models.ConstraintArrivalBy, ArrivalBy: &arriveBy}

	train := dest("train-out", 60)
	train.Constraint = models.Constraint{Kind: models.ConstraintDepartBy, DepartBy: &departBy}

	places, _, issues := Build([]models.Destination{flight, train}, tripStart)
	require.Empty(t, issues)

	assert.Equal(t, 14*60, places[0].StartMinute)
	assert.Equal(t, 16*60, places[0].EndMinute)

	assert.Equal(t, 24*60+10*60, places[1].EndMinute)
	assert.Equal(t, 24*60+9*60, places[1].StartMinute)
}

func TestPartitionPreservesOrder(t *testing.T) {
	arriveBy := ts(1, 12, 0)
	anchor := dest("museum", 60)
	anchor.Constraint = models.Constraint{Kind: models.ConstraintArrivalBy, ArrivalBy: &arriveBy}

	input := []models.Destination{
		dest("a", 30), dest("b", 30), anchor, dest("c", 30), dest("d", 30),
	}

	places, segments, _ := Build(input, tripStart)
	require.Len(t, places, 5)

	// relative order of unconstrained places is untouched
	gotIDs := make([]string, len(places))
	for i, p := range places {
		gotIDs[i] = p.Destination.ID
	}
	assert.Equal(t, []string{"a", "b", "museum", "c", "d"}, gotIDs)

	require.Len(t, segments, 2)
	assert.Nil(t, segments[0].StartAnchor)
	require.NotNil(t, segments[0].EndAnchor)
	assert.Equal(t, "museum", segments[0].EndAnchor.Destination.ID)
	assert.Len(t, segments[0].Places, 2)

	require.NotNil(t, segments[1].StartAnchor)
	assert.Nil(t, segments[1].EndAnchor)
	assert.Len(t, segments[1].Places, 2)
}

func TestChronologyIssueReported(t *testing.T) {
	later := ts(2, 10, 0)
	earlier := ts(1, 10, 0)

	first := dest("first", 60)
	first.Constraint = models.Constraint{Kind: models.ConstraintArrivalBy, ArrivalBy: &later}
	second := dest("second", 60)
	second.Constraint = models.Constraint{Kind: models.ConstraintArrivalBy, ArrivalBy: &earlier}

	_, _, issues := Build([]models.Destination{first, second}, tripStart)
	assert.Len(t, issues, 1)
}

func TestEmptyInput(t *testing.T) {
	places, segments, issues := Build(nil, tripStart)
	assert.Empty(t, places)
	assert.Len(t, segments, 1)
	assert.Empty(t, issues)
}

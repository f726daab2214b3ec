package validate

import (
	"fmt"
	"time"

	"github.com/wayfare/tripplan-backend-go/internal/models"
)

// Advisory thresholds
const (
	longDayHours  = 12
	shortFlightKm = 100.0
	longWalkKm    = 5.0
)

// Check sweeps the built schedules for blocking errors and advisory warnings.
// It never fails the pipeline itself; the caller decides what an error means.
func Check(schedules []models.DailySchedule, tripEnd time.Time) ([]models.ValidationError, []models.ValidationWarning) {
	var errs []models.ValidationError
	var warns []models.ValidationWarning

	seen := make(map[string]bool)
	var prev *models.DestinationVisit

	for di := range schedules {
		day := schedules[di]
		for vi := range day.Visits {
			v := day.Visits[vi]

			if v.Departure.Before(v.Arrival) {
				errs = append(errs, models.ValidationError{
					Code:          models.ErrCodeNegativeDuration,
					Message:       fmt.Sprintf("%s departs before it arrives", v.DestinationID),
					DestinationID: v.DestinationID,
					Day:           day.Day,
				})
			}

			if prev != nil && v.Arrival.Before(prev.Departure) {
				errs = append(errs, models.ValidationError{
					Code:          models.ErrCodeTimeReversal,
					Message:       fmt.Sprintf("%s arrives before %s departs", v.DestinationID, prev.DestinationID),
					DestinationID: v.DestinationID,
					Day:           day.Day,
				})
			}

			// split parts of one event share a destination id by design
			if v.SplitPart == 0 {
				if seen[v.DestinationID] {
					warns = append(warns, models.ValidationWarning{
						Code:          models.WarnCodeDuplicateVisit,
						Message:       fmt.Sprintf("%s is visited more than once", v.DestinationID),
						DestinationID: v.DestinationID,
						Day:           day.Day,
					})
				}
				seen[v.DestinationID] = true
			}

			switch {
			case v.TravelMinutes < 0:
				// indicates an upstream calculation bug, not a user error
				warns = append(warns, models.ValidationWarning{
					Code:          models.WarnCodeNegativeTransportTime,
					Message:       fmt.Sprintf("negative travel time reaching %s", v.DestinationID),
					DestinationID: v.DestinationID,
					Day:           day.Day,
				})
			case v.TransportMode == models.ModeFlying && v.DistanceKm > 0 && v.DistanceKm < shortFlightKm:
				warns = append(warns, models.ValidationWarning{
					Code:          models.WarnCodeShortFlight,
					Message:       fmt.Sprintf("flight of %.0f km to %s may be inefficient", v.DistanceKm, v.DestinationID),
					DestinationID: v.DestinationID,
					Day:           day.Day,
				})
			case v.TransportMode == models.ModeWalking && v.DistanceKm > longWalkKm:
				warns = append(warns, models.ValidationWarning{
					Code:          models.WarnCodeLongWalk,
					Message:       fmt.Sprintf("walk of %.1f km to %s", v.DistanceKm, v.DestinationID),
					DestinationID: v.DestinationID,
					Day:           day.Day,
				})
			}

			prev = &day.Visits[vi]
		}

		if len(day.Visits) > 0 {
			span := day.Visits[len(day.Visits)-1].Departure.Sub(day.Visits[0].Arrival)
			if span > longDayHours*time.Hour {
				warns = append(warns, models.ValidationWarning{
					Code:    models.WarnCodeLongDay,
					Message: fmt.Sprintf("day %d spans %.1f hours", day.Day, span.Hours()),
					Day:     day.Day,
				})
			}
		}
	}

	if len(schedules) > 0 && !tripEnd.IsZero() {
		last := schedules[len(schedules)-1]
		for _, v := range last.Visits {
			if v.Departure.After(tripEnd.AddDate(0, 0, 1)) {
				errs = append(errs, models.ValidationError{
					Code:    models.ErrCodeTripWindowExceeded,
					Message: fmt.Sprintf("schedule ends %s, after the trip end date", v.Departure.Format("2006-01-02")),
					Day:     last.Day,
				})
				break
			}
		}
	}

	return errs, warns
}

package segment

import (
	"fmt"
	"time"

	"github.com/wayfare/tripplan-backend-go/internal/models"
)

const minutesPerDay = 24 * 60

// Place is a destination prepared for scheduling. Constrained places carry a
// cumulative-minutes-since-trip-start window so downstream arithmetic is
// anchored to one absolute origin instead of wall-clock times.
type Place struct {
	Destination models.Destination
	StayMinutes int

	Constrained bool
	StartMinute int // cumulative minutes since trip start, -1 when unconstrained
	EndMinute   int

	VirtualSplit    bool
	OriginalPlaceID string
	SplitIndex      int // 1-based day index within a multi-day booking
	SplitTotalDays  int
}

// Segment is a maximal run of unconstrained places bounded by zero, one, or
// two hard-constrained anchors. Order inside a segment is never changed.
type Segment struct {
	StartAnchor *Place
	Places      []Place
	EndAnchor   *Place
}

// Build expands multi-day bookings into per-day virtual places, converts all
// hard constraints to cumulative minutes from tripStart, and partitions the
// sequence at each constrained place. The input order is preserved throughout.
//
// Issues report constrained places whose windows are out of chronological
// order; the segmenter never reorders them.
func Build(dests []models.Destination, tripStart time.Time) (places []Place, segments []Segment, issues []string) {
	places = expand(dests, tripStart)

	lastAnchorEnd := -1
	for _, p := range places {
		if !p.Constrained {
			continue
		}
		if lastAnchorEnd >= 0 && p.StartMinute < lastAnchorEnd {
			issues = append(issues, fmt.Sprintf(
				"constrained place %s starts at minute %d before the previous constraint ends at %d",
				p.Destination.ID, p.StartMinute, lastAnchorEnd))
		}
		lastAnchorEnd = p.EndMinute
	}

	segments = partition(places)
	return places, segments, issues
}

// expand resolves stay durations and splits multi-day bookings into one
// virtual place per calendar day spanned
func expand(dests []models.Destination, tripStart time.Time) []Place {
	var places []Place

	for _, d := range dests {
		c := d.Constraint
		switch c.Kind {
		case models.ConstraintMultiDayBooking:
			if c.CheckIn == nil || c.CheckOut == nil {
				places = append(places, unconstrained(d))
				continue
			}
			places = append(places, splitBooking(d, *c.CheckIn, *c.CheckOut, tripStart)...)

		case models.ConstraintArrivalBy:
			if c.ArrivalBy == nil {
				places = append(places, unconstrained(d))
				continue
			}
			start := minutesSince(tripStart, *c.ArrivalBy)
			places = append(places, Place{
				Destination: d,
				StayMinutes: d.StayMinutes,
				Constrained: true,
				StartMinute: start,
				EndMinute:   start + d.StayMinutes,
			})

		case models.ConstraintDepartBy:
			if c.DepartBy == nil {
				places = append(places, unconstrained(d))
				continue
			}
			end := minutesSince(tripStart, *c.DepartBy)
			start := end - d.StayMinutes
			if start < 0 {
				start = 0
			}
			places = append(places, Place{
				Destination: d,
				StayMinutes: end - start,
				Constrained: true,
				StartMinute: start,
				EndMinute:   end,
			})

		default:
			places = append(places, unconstrained(d))
		}
	}

	return places
}

func unconstrained(d models.Destination) Place {
	return Place{
		Destination: d,
		StayMinutes: d.StayMinutes,
		StartMinute: -1,
		EndMinute:   -1,
	}
}

// splitBooking yields one virtual place per trip day between check-in and
// check-out. Day boundaries are multiples of 24h from tripStart, never wall
// clock, so the windows line up regardless of the trip's time zone. Each split
// inherits a slice of the stay duration proportional to that day's share of
// the booking window.
func splitBooking(d models.Destination, checkIn, checkOut time.Time, tripStart time.Time) []Place {
	inMin := minutesSince(tripStart, checkIn)
	outMin := minutesSince(tripStart, checkOut)

	inIdx := inMin / minutesPerDay
	outIdx := outMin / minutesPerDay
	if outMin%minutesPerDay == 0 && outIdx > inIdx {
		// a checkout exactly at midnight belongs to the preceding day
		outIdx--
	}
	totalDays := outIdx - inIdx + 1

	if totalDays <= 1 {
		// Same trip day: no split needed
		return []Place{{
			Destination: d,
			StayMinutes: outMin - inMin,
			Constrained: true,
			StartMinute: inMin,
			EndMinute:   outMin,
		}}
	}

	totalWindow := float64(outMin - inMin)
	stayTotal := d.StayMinutes
	if stayTotal <= 0 {
		stayTotal = outMin - inMin
	}

	places := make([]Place, 0, totalDays)
	for i := 0; i < totalDays; i++ {
		windowStart := (inIdx + i) * minutesPerDay
		if inMin > windowStart {
			windowStart = inMin
		}
		windowEnd := (inIdx + i + 1) * minutesPerDay
		if outMin < windowEnd {
			windowEnd = outMin
		}

		portion := float64(windowEnd-windowStart) / totalWindow

		split := d
		split.ID = fmt.Sprintf("%s_d%d", d.ID, i+1)

		places = append(places, Place{
			Destination:     split,
			StayMinutes:     int(float64(stayTotal)*portion + 0.5),
			Constrained:     true,
			StartMinute:     windowStart,
			EndMinute:       windowEnd,
			VirtualSplit:    true,
			OriginalPlaceID: d.ID,
			SplitIndex:      i + 1,
			SplitTotalDays:  totalDays,
		})
	}

	return places
}

// partition cuts the place sequence at each constrained place. Runs between
// two consecutive constraints may be empty; they still carry anchor info.
func partition(places []Place) []Segment {
	var segments []Segment
	current := Segment{}

	for i := range places {
		p := places[i]
		if p.Constrained {
			anchor := p
			current.EndAnchor = &anchor
			segments = append(segments, current)
			current = Segment{StartAnchor: &anchor}
			continue
		}
		current.Places = append(current.Places, p)
	}

	if len(current.Places) > 0 || current.StartAnchor != nil {
		segments = append(segments, current)
	}
	if len(segments) == 0 {
		segments = append(segments, current)
	}

	return segments
}

func minutesSince(origin, t time.Time) int {
	return int(t.Sub(origin).Minutes())
}

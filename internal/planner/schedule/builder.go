package schedule

import (
	"sort"
	"time"

	"github.com/wayfare/tripplan-backend-go/internal/models"
	"github.com/wayfare/tripplan-backend-go/internal/planner/segment"
	"github.com/wayfare/tripplan-backend-go/internal/planner/transport"
)

const minutesPerDay = 24 * 60

// Builder walks an ordered, timed place sequence and splits it across
// calendar days. All timestamps derive from the supplied trip start date so
// identical inputs always build identical schedules.
type Builder struct {
	cfg       models.ScheduleConfig
	tripStart time.Time
}

// NewBuilder creates a day-schedule builder anchored at tripStart (the first
// trip day at local midnight)
func NewBuilder(cfg models.ScheduleConfig, tripStart time.Time) *Builder {
	return &Builder{cfg: cfg, tripStart: tripStart}
}

type dayState struct {
	visits        []models.DestinationVisit
	travelMinutes int
	visitMinutes  int
	// set when a constrained event alone exceeds the daily cap; such a day
	// takes no further places
	exclusive bool
}

// Build produces per-day schedules with absolute dates. finalID designates
// the trip's final destination, which may stretch its day up to the extended
// cutoff instead of being deferred by the daily cap.
func (b *Builder) Build(places []segment.Place, finalID string) []models.DailySchedule {
	days := make(map[int]*dayState)

	day := 1
	clock := b.cfg.DayStartMinutes

	var prev models.RoutePoint
	hasPrev := false

	for i := range places {
		p := places[i]

		if p.Constrained {
			day, clock = b.placeConstrained(days, p)
		} else {
			day, clock = b.placeUnconstrained(days, p, day, clock, prev, hasPrev, p.Destination.ID == finalID)
		}

		prev = models.RoutePoint{
			ID:  p.Destination.ID,
			Lat: p.Destination.Lat,
			Lon: p.Destination.Lon,
		}
		hasPrev = true
	}

	return b.finish(days)
}

// placeConstrained schedules a place whose time is externally fixed. No
// incoming travel is added; a window crossing midnight is split into two
// linked parts at the day boundary.
func (b *Builder) placeConstrained(days map[int]*dayState, p segment.Place) (day, clock int) {
	startDay := p.StartMinute/minutesPerDay + 1
	endOfStartDay := startDay * minutesPerDay

	if p.EndMinute <= endOfStartDay {
		dep := b.absMinute(p.EndMinute)
		if p.EndMinute == endOfStartDay {
			// a window ending exactly at midnight belongs to its own day
			dep = b.dayDate(startDay).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		}
		b.appendVisit(days, startDay, models.DestinationVisit{
			DestinationID:   p.Destination.ID,
			Name:            p.Destination.Name,
			Day:             startDay,
			Arrival:         b.absMinute(p.StartMinute),
			Departure:       dep,
			Constrained:     true,
			VirtualSplit:    p.VirtualSplit,
			OriginalPlaceID: p.OriginalPlaceID,
			SplitIndex:      p.SplitIndex,
			SplitTotalDays:  p.SplitTotalDays,
		}, p.EndMinute-p.StartMinute)

		return b.advance(startDay, p.EndMinute)
	}

	// Cross-midnight event, e.g. a 21:00-01:00 flight: part 1 ends at
	// 23:59:59, part 2 starts at 00:00:00 the next day
	original := p.OriginalPlaceID
	if original == "" {
		original = p.Destination.ID
	}

	nextDay := startDay + 1
	b.appendVisit(days, startDay, models.DestinationVisit{
		DestinationID:   p.Destination.ID,
		Name:            p.Destination.Name + " (part 1)",
		Day:             startDay,
		Arrival:         b.absMinute(p.StartMinute),
		Departure:       b.dayDate(startDay).Add(23*time.Hour + 59*time.Minute + 59*time.Second),
		Constrained:     true,
		OriginalPlaceID: original,
		SplitPart:       1,
	}, endOfStartDay-p.StartMinute)

	b.appendVisit(days, nextDay, models.DestinationVisit{
		DestinationID:   p.Destination.ID,
		Name:            p.Destination.Name + " (part 2)",
		Day:             nextDay,
		Arrival:         b.dayDate(nextDay),
		Departure:       b.absMinute(p.EndMinute),
		Constrained:     true,
		OriginalPlaceID: original,
		SplitPart:       2,
	}, p.EndMinute-endOfStartDay)

	return b.advance(nextDay, p.EndMinute)
}

// placeUnconstrained schedules a freely movable place under the day-end and
// daily-cap rules. Precedence: the hard cap closes the day, except that the
// final destination may stretch up to the extended cutoff; a hop in progress
// is never split, so a deferred place carries its travel into the new day.
func (b *Builder) placeUnconstrained(days map[int]*dayState, p segment.Place, day, clock int, prev models.RoutePoint, hasPrev, isFinal bool) (int, int) {
	stay := p.StayMinutes
	if stay <= 0 {
		stay = b.cfg.DefaultStayMinutes
	}

	var seg models.TransportSegment
	if hasPrev {
		cur := models.RoutePoint{ID: p.Destination.ID, Lat: p.Destination.Lat, Lon: p.Destination.Lon}
		seg = transport.Segment(prev, cur, b.cfg)
	}

	arrival := clock + seg.TravelMinutes

	for !b.fits(days, day, arrival, stay, seg.TravelMinutes, isFinal) {
		fresh := days[day] == nil || len(days[day].visits) == 0
		if fresh {
			// a fresh day that still cannot hold the place means the stay
			// alone exceeds the budget; the day-end clamp below bounds it
			break
		}
		// close the day; travel restarts on the next morning
		day++
		clock = b.cfg.DayStartMinutes
		arrival = clock + seg.TravelMinutes
	}

	// clamp arrival to day end, then clamp the stay so departure never
	// passes the applicable cutoff
	if arrival > b.cfg.DayEndMinutes {
		arrival = b.cfg.DayEndMinutes
	}
	cutoff := b.cfg.DayEndMinutes
	if isFinal && arrival+stay > cutoff && arrival+stay <= b.cfg.FinalCutoffMinutes {
		cutoff = b.cfg.FinalCutoffMinutes
	}
	departure := arrival + stay
	if departure > cutoff {
		departure = cutoff
	}
	if departure < arrival {
		departure = arrival
	}

	b.appendVisit(days, day, models.DestinationVisit{
		DestinationID: p.Destination.ID,
		Name:          p.Destination.Name,
		Day:           day,
		Arrival:       b.dayDate(day).Add(time.Duration(arrival) * time.Minute),
		Departure:     b.dayDate(day).Add(time.Duration(departure) * time.Minute),
		TransportMode: seg.Mode,
		TravelMinutes: seg.TravelMinutes,
		DistanceKm:    seg.DistanceKm,
	}, departure-arrival)

	days[day].travelMinutes += seg.TravelMinutes
	return day, departure
}

// fits checks whether a place can join a day without violating the day end or
// the daily cap. The final destination may stretch to the extended cutoff.
func (b *Builder) fits(days map[int]*dayState, day, arrival, stay, travel int, isFinal bool) bool {
	if st := days[day]; st != nil && st.exclusive {
		return false
	}

	end := b.cfg.DayEndMinutes
	if isFinal {
		end = b.cfg.FinalCutoffMinutes
	}
	if arrival > b.cfg.DayEndMinutes {
		return false
	}
	if arrival+stay > end && arrival+b.cfg.MinStayMinutes > end {
		return false
	}

	used := 0
	if st := days[day]; st != nil {
		used += st.travelMinutes + st.visitMinutes
	}
	if used+travel+stay > b.cfg.MaxDailyMinutes {
		if isFinal && arrival+stay <= b.cfg.FinalCutoffMinutes {
			return true
		}
		return false
	}
	return true
}

func (b *Builder) appendVisit(days map[int]*dayState, day int, v models.DestinationVisit, visitMinutes int) {
	st := days[day]
	if st == nil {
		st = &dayState{}
		days[day] = st
	}

	v.OrderInDay = len(st.visits) + 1
	st.visits = append(st.visits, v)
	st.visitMinutes += visitMinutes

	if v.Constrained && visitMinutes > b.cfg.MaxDailyMinutes {
		st.exclusive = true
	}
}

// advance moves the running clock past a constrained event
func (b *Builder) advance(day, endCumulative int) (int, int) {
	clock := endCumulative - (day-1)*minutesPerDay
	if clock >= minutesPerDay {
		day = endCumulative/minutesPerDay + 1
		clock = endCumulative - (day-1)*minutesPerDay
	}
	if clock < b.cfg.DayStartMinutes {
		clock = b.cfg.DayStartMinutes
	}
	return day, clock
}

// finish inserts conflict-free meal breaks and assembles the day list
func (b *Builder) finish(days map[int]*dayState) []models.DailySchedule {
	nums := make([]int, 0, len(days))
	for n := range days {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	schedules := make([]models.DailySchedule, 0, len(nums))
	for _, n := range nums {
		st := days[n]
		sched := models.DailySchedule{
			Day:           n,
			Date:          b.dayDate(n).Format("2006-01-02"),
			Visits:        st.visits,
			TravelMinutes: st.travelMinutes,
			VisitMinutes:  st.visitMinutes,
		}

		for _, slot := range b.cfg.Meals {
			if sched.TravelMinutes+sched.VisitMinutes+sched.MealMinutes+slot.DurationMinutes > b.cfg.MaxDailyMinutes {
				// a full day keeps its visits; the meal is dropped instead
				continue
			}
			start := b.dayDate(n).Add(time.Duration(slot.StartMinutes) * time.Minute)
			end := start.Add(time.Duration(slot.DurationMinutes) * time.Minute)
			if b.mealConflicts(st.visits, sched.Meals, start, end) {
				// conflicting meal slots are dropped, not rescheduled
				continue
			}
			sched.Meals = append(sched.Meals, models.MealBreak{Name: slot.Name, Start: start, End: end})
			sched.MealMinutes += slot.DurationMinutes
		}

		schedules = append(schedules, sched)
	}

	return schedules
}

func (b *Builder) mealConflicts(visits []models.DestinationVisit, meals []models.MealBreak, start, end time.Time) bool {
	for _, v := range visits {
		if start.Before(v.Departure) && v.Arrival.Before(end) {
			return true
		}
	}
	for _, m := range meals {
		if start.Before(m.End) && m.Start.Before(end) {
			return true
		}
	}
	return false
}

// dayDate returns local midnight of the given 1-based trip day
func (b *Builder) dayDate(day int) time.Time {
	return b.tripStart.AddDate(0, 0, day-1)
}

func (b *Builder) absMinute(cumulative int) time.Time {
	return b.tripStart.Add(time.Duration(cumulative) * time.Minute)
}

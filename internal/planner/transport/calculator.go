package transport

import (
	"math"

	"github.com/wayfare/tripplan-backend-go/internal/models"
	"github.com/wayfare/tripplan-backend-go/internal/spatial"
)

// Travel time never drops below one minute, so zero-distance hops stay positive
const minTravelMinutes = 1

// Classify picks a transport mode for a hop from its distance alone.
// The flight threshold is a single configurable value; 300 km by default.
func Classify(distanceKm float64, cfg models.ScheduleConfig) models.TransportMode {
	switch {
	case distanceKm <= cfg.WalkMaxKm:
		return models.ModeWalking
	case distanceKm > cfg.FlightThresholdKm:
		return models.ModeFlying
	default:
		return models.ModeDriving
	}
}

// TravelMinutes computes the travel time for a hop of the given mode,
// including fixed overheads, rounded to the nearest minute.
func TravelMinutes(distanceKm float64, mode models.TransportMode, cfg models.ScheduleConfig) int {
	var minutes float64

	switch mode {
	case models.ModeWalking:
		minutes = distanceKm/cfg.WalkSpeedKmh*60 + float64(cfg.WalkOverheadMinutes)
	case models.ModeDriving:
		if distanceKm > cfg.LongDriveKm {
			// Long hops run at highway speed but include a rest break
			minutes = distanceKm/cfg.LongDriveSpeedKmh*60 +
				float64(cfg.DriveOverheadMinutes+cfg.DriveBreakMinutes)
		} else {
			minutes = distanceKm/cfg.DriveSpeedKmh*60 + float64(cfg.DriveOverheadMinutes)
		}
	case models.ModeFlying:
		minutes = distanceKm/cfg.FlightSpeedKmh*60 + float64(airportOverheadMinutes(distanceKm, cfg))
	}

	rounded := int(math.Round(minutes))
	if rounded < minTravelMinutes {
		return minTravelMinutes
	}
	return rounded
}

// airportOverheadMinutes covers check-in, security, boarding and ground
// access; it doubles for intercontinental distances
func airportOverheadMinutes(distanceKm float64, cfg models.ScheduleConfig) int {
	if distanceKm >= cfg.IntercontinentalKm {
		return cfg.AirportOverheadMinutes * 2
	}
	return cfg.AirportOverheadMinutes
}

// Segment builds the full transport segment between two route points
func Segment(from, to models.RoutePoint, cfg models.ScheduleConfig) models.TransportSegment {
	distance := spatial.HaversineKm(from.Lat, from.Lon, to.Lat, to.Lon)
	mode := Classify(distance, cfg)

	return models.TransportSegment{
		FromID:        from.ID,
		ToID:          to.ID,
		Mode:          mode,
		DistanceKm:    distance,
		TravelMinutes: TravelMinutes(distance, mode, cfg),
	}
}

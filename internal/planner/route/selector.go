package route

import (
	"github.com/wayfare/tripplan-backend-go/internal/models"
	"github.com/wayfare/tripplan-backend-go/internal/spatial"
)

// Ordering is an ordered route with its total great-circle length
type Ordering struct {
	Points          []models.RoutePoint
	TotalDistanceKm float64
}

// Order fixes the departure (and optional return) endpoints and orders the
// remaining points with a greedy nearest-neighbor heuristic: from the current
// point, always pick the closest unvisited point. Intentionally O(n^2) and
// deterministic: on distance ties the first-seen point wins.
//
// An empty input returns just the endpoints; a single point is returned
// unmodified between them.
func Order(departure models.Location, ret *models.Location, points []models.RoutePoint) Ordering {
	ordered := make([]models.RoutePoint, 0, len(points)+2)
	ordered = append(ordered, models.RoutePoint{
		ID:   "departure",
		Name: departure.Name,
		Lat:  departure.Lat,
		Lon:  departure.Lon,
	})

	remaining := make([]models.RoutePoint, len(points))
	copy(remaining, points)

	var total float64
	current := ordered[0]

	for len(remaining) > 0 {
		best := 0
		bestDist := spatial.HaversineKm(current.Lat, current.Lon, remaining[0].Lat, remaining[0].Lon)
		for i := 1; i < len(remaining); i++ {
			d := spatial.HaversineKm(current.Lat, current.Lon, remaining[i].Lat, remaining[i].Lon)
			// Strict less-than keeps the first-seen point on ties
			if d < bestDist {
				best = i
				bestDist = d
			}
		}

		current = remaining[best]
		ordered = append(ordered, current)
		total += bestDist
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	if ret != nil && (ret.Lat != departure.Lat || ret.Lon != departure.Lon) {
		end := models.RoutePoint{
			ID:   "return",
			Name: ret.Name,
			Lat:  ret.Lat,
			Lon:  ret.Lon,
		}
		total += spatial.HaversineKm(current.Lat, current.Lon, end.Lat, end.Lon)
		ordered = append(ordered, end)
	}

	return Ordering{Points: ordered, TotalDistanceKm: total}
}

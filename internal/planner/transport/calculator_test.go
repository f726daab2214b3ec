package transport

import (
	"testing"

	"github.com/wayfare/tripplan-backend-go/internal/models"
)

func TestClassifyThresholds(t *testing.T) {
	cfg := models.DefaultScheduleConfig()

	cases := []struct {
		distanceKm float64
		want       models.TransportMode
	}{
		{0, models.ModeWalking},
		{1.5, models.ModeWalking},
		{2, models.ModeWalking}, // boundary is inclusive for walking
		{2.1, models.ModeDriving},
		{150, models.ModeDriving},
		{300, models.ModeDriving}, // boundary stays below the flight threshold
		{350, models.ModeFlying},
		{5000, models.ModeFlying},
	}

	for _, c := range cases {
		if got := Classify(c.distanceKm, cfg); got != c.want {
			t.Fatalf("Classify(%.1f) = %s, want %s", c.distanceKm, got, c.want)
		}
	}
}

func TestWalkingTime(t *testing.T) {
	cfg := models.DefaultScheduleConfig()

	// 1.5 km at 5 km/h = 18 min + 5 min overhead = 23 min
	if got := TravelMinutes(1.5, models.ModeWalking, cfg); got != 23 {
		t.Fatalf("walking 1.5 km = %d min, want 23", got)
	}
}

func TestFlyingTime(t *testing.T) {
	cfg := models.DefaultScheduleConfig()

	// 350 km at 700 km/h = 30 min + 60 min airport overhead = 90 min
	if got := TravelMinutes(350, models.ModeFlying, cfg); got != 90 {
		t.Fatalf("flying 350 km = %d min, want 90", got)
	}

	// Intercontinental distances double the airport overhead
	short := TravelMinutes(2000, models.ModeFlying, cfg)
	long := TravelMinutes(3000, models.ModeFlying, cfg)
	wantShort := 2000*60/700 + 60 // 171 + 60
	if short != wantShort+1 && short != wantShort { // rounding
		t.Fatalf("flying 2000 km = %d min", short)
	}
	if long-short < 60 {
		t.Fatalf("intercontinental overhead missing: 2000km=%d, 3000km=%d", short, long)
	}
}

func TestDrivingTime(t *testing.T) {
	cfg := models.DefaultScheduleConfig()

	// 120 km at 60 km/h = 120 min + 10 min overhead
	if got := TravelMinutes(120, models.ModeDriving, cfg); got != 130 {
		t.Fatalf("driving 120 km = %d min, want 130", got)
	}

	// 200 km at 80 km/h = 150 min + 10 min overhead + 15 min break
	if got := TravelMinutes(200, models.ModeDriving, cfg); got != 175 {
		t.Fatalf("driving 200 km = %d min, want 175", got)
	}
}

func TestZeroDistanceFloor(t *testing.T) {
	cfg := models.DefaultScheduleConfig()
	cfg.WalkOverheadMinutes = 0

	if got := TravelMinutes(0, models.ModeWalking, cfg); got < 1 {
		t.Fatalf("zero-distance hop yielded %d min, want >= 1", got)
	}
}

func TestSegment(t *testing.T) {
	cfg := models.DefaultScheduleConfig()
	from := models.RoutePoint{ID: "a", Lat: 48.8566, Lon: 2.3522}
	to := models.RoutePoint{ID: "b", Lat: 48.8606, Lon: 2.3376} // ~1.2 km away

	seg := Segment(from, to, cfg)
	if seg.Mode != models.ModeWalking {
		t.Fatalf("expected walking for a short hop, got %s", seg.Mode)
	}
	if seg.FromID != "a" || seg.ToID != "b" {
		t.Fatalf("segment endpoints wrong: %+v", seg)
	}
	if seg.TravelMinutes <= 0 {
		t.Fatalf("expected positive travel time, got %d", seg.TravelMinutes)
	}
}

package models

// MealSlot is a fixed meal window candidate, in minutes from local midnight
type MealSlot struct {
	Name            string `json:"name"`
	StartMinutes    int    `json:"start_minutes"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ScheduleConfig tunes the scheduling and transport calculations.
// All times of day are minutes from local midnight.
type ScheduleConfig struct {
	DayStartMinutes    int `json:"day_start_minutes"`
	DayEndMinutes      int `json:"day_end_minutes"`
	MaxDailyMinutes    int `json:"max_daily_minutes"`     // cap on travel + visit + meal per day
	FinalCutoffMinutes int `json:"final_cutoff_minutes"`  // extended cutoff for the final destination
	DefaultStayMinutes int `json:"default_stay_minutes"`  // used when a destination has no stay duration
	MinStayMinutes     int `json:"min_stay_minutes"`

	Meals []MealSlot `json:"meals"`

	// Transport mode thresholds (km)
	WalkMaxKm         float64 `json:"walk_max_km"`
	FlightThresholdKm float64 `json:"flight_threshold_km"`
	LongDriveKm       float64 `json:"long_drive_km"`

	// Speeds (km/h) and fixed overheads (minutes)
	WalkSpeedKmh           float64 `json:"walk_speed_kmh"`
	DriveSpeedKmh          float64 `json:"drive_speed_kmh"`
	LongDriveSpeedKmh      float64 `json:"long_drive_speed_kmh"`
	FlightSpeedKmh         float64 `json:"flight_speed_kmh"`
	WalkOverheadMinutes    int     `json:"walk_overhead_minutes"`
	DriveOverheadMinutes   int     `json:"drive_overhead_minutes"`
	DriveBreakMinutes      int     `json:"drive_break_minutes"`
	AirportOverheadMinutes int     `json:"airport_overhead_minutes"`

	// Distance beyond which the airport overhead doubles
	IntercontinentalKm float64 `json:"intercontinental_km"`
}

// MergeScheduleConfig overlays a caller-supplied override on the defaults.
// Zero-valued fields keep their default, so a partial override cannot zero
// out speeds or windows it never mentioned.
func MergeScheduleConfig(override *ScheduleConfig) ScheduleConfig {
	cfg := DefaultScheduleConfig()
	if override == nil {
		return cfg
	}

	o := *override
	if o.DayStartMinutes > 0 {
		cfg.DayStartMinutes = o.DayStartMinutes
	}
	if o.DayEndMinutes > 0 {
		cfg.DayEndMinutes = o.DayEndMinutes
	}
	if o.MaxDailyMinutes > 0 {
		cfg.MaxDailyMinutes = o.MaxDailyMinutes
	}
	if o.FinalCutoffMinutes > 0 {
		cfg.FinalCutoffMinutes = o.FinalCutoffMinutes
	}
	if o.DefaultStayMinutes > 0 {
		cfg.DefaultStayMinutes = o.DefaultStayMinutes
	}
	if o.MinStayMinutes > 0 {
		cfg.MinStayMinutes = o.MinStayMinutes
	}
	if len(o.Meals) > 0 {
		cfg.Meals = o.Meals
	}
	if o.WalkMaxKm > 0 {
		cfg.WalkMaxKm = o.WalkMaxKm
	}
	if o.FlightThresholdKm > 0 {
		cfg.FlightThresholdKm = o.FlightThresholdKm
	}
	if o.LongDriveKm > 0 {
		cfg.LongDriveKm = o.LongDriveKm
	}
	if o.WalkSpeedKmh > 0 {
		cfg.WalkSpeedKmh = o.WalkSpeedKmh
	}
	if o.DriveSpeedKmh > 0 {
		cfg.DriveSpeedKmh = o.DriveSpeedKmh
	}
	if o.LongDriveSpeedKmh > 0 {
		cfg.LongDriveSpeedKmh = o.LongDriveSpeedKmh
	}
	if o.FlightSpeedKmh > 0 {
		cfg.FlightSpeedKmh = o.FlightSpeedKmh
	}
	if o.WalkOverheadMinutes > 0 {
		cfg.WalkOverheadMinutes = o.WalkOverheadMinutes
	}
	if o.DriveOverheadMinutes > 0 {
		cfg.DriveOverheadMinutes = o.DriveOverheadMinutes
	}
	if o.DriveBreakMinutes > 0 {
		cfg.DriveBreakMinutes = o.DriveBreakMinutes
	}
	if o.AirportOverheadMinutes > 0 {
		cfg.AirportOverheadMinutes = o.AirportOverheadMinutes
	}
	if o.IntercontinentalKm > 0 {
		cfg.IntercontinentalKm = o.IntercontinentalKm
	}
	return cfg
}

// DefaultScheduleConfig returns the standard planner tuning
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		DayStartMinutes:    9 * 60,
		DayEndMinutes:      19 * 60,
		MaxDailyMinutes:    10 * 60,
		FinalCutoffMinutes: 20 * 60,
		DefaultStayMinutes: 90,
		MinStayMinutes:     15,
		Meals: []MealSlot{
			{Name: "breakfast", StartMinutes: 8 * 60, DurationMinutes: 30},
			{Name: "lunch", StartMinutes: 12*60 + 30, DurationMinutes: 60},
			{Name: "dinner", StartMinutes: 18*60 + 30, DurationMinutes: 60},
		},
		WalkMaxKm:              2,
		FlightThresholdKm:      300,
		LongDriveKm:            150,
		WalkSpeedKmh:           5,
		DriveSpeedKmh:          60,
		LongDriveSpeedKmh:      80,
		FlightSpeedKmh:         700,
		WalkOverheadMinutes:    5,
		DriveOverheadMinutes:   10,
		DriveBreakMinutes:      15,
		AirportOverheadMinutes: 60,
		IntercontinentalKm:     3000,
	}
}

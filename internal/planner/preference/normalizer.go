package preference

import (
	"fmt"
	"sort"

	"github.com/wayfare/tripplan-backend-go/internal/models"
	"github.com/wayfare/tripplan-backend-go/internal/stats"
)

// Quality check tolerances for the standardized score distribution
const (
	meanTolerance   = 0.1
	stdDevTolerance = 0.2
)

// MinReliableRatings is the rating count below which per-user normalization
// is statistically unreliable
const MinReliableRatings = 3

// Result holds the output of one normalization pass
type Result struct {
	Preferences []models.StandardizedPreference
	Stats       map[string]models.UserStatistics
	Warnings    []models.ValidationWarning
}

// Normalize converts raw 1-5 ratings into per-user z-scores so users with
// different rating habits compare fairly. The output preserves input order.
func Normalize(prefs []models.UserPreference) Result {
	result := Result{
		Stats: make(map[string]models.UserStatistics),
	}

	byUser := make(map[string][]float64)
	for _, p := range prefs {
		key := p.UserKey()
		byUser[key] = append(byUser[key], float64(p.Rating))
	}

	// Sorted key order keeps warning output deterministic
	keys := make([]string, 0, len(byUser))
	for key := range byUser {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		ratings := byUser[key]
		mean := stats.Mean(ratings)
		stdDev := stats.PopulationStdDev(ratings)

		if len(ratings) < MinReliableRatings {
			result.Warnings = append(result.Warnings, models.ValidationWarning{
				Code:    models.WarnCodeFewRatings,
				Message: fmt.Sprintf("user %s has only %d ratings, normalization is unreliable", key, len(ratings)),
			})
		}

		if stdDev == 0 {
			// All identical ratings: floor the deviation to 1 to avoid
			// division by zero, every score standardizes to 0
			stdDev = 1
			result.Warnings = append(result.Warnings, models.ValidationWarning{
				Code:    models.WarnCodeUniformRatings,
				Message: fmt.Sprintf("user %s rated every destination identically", key),
			})
		}

		result.Stats[key] = models.UserStatistics{
			UserKey: key,
			Mean:    mean,
			StdDev:  stdDev,
			Count:   len(ratings),
		}
	}

	result.Preferences = make([]models.StandardizedPreference, 0, len(prefs))
	for _, p := range prefs {
		st := result.Stats[p.UserKey()]
		result.Preferences = append(result.Preferences, models.StandardizedPreference{
			UserPreference: p,
			Score:          (float64(p.Rating) - st.Mean) / st.StdDev,
		})
	}

	return result
}

// QualityCheck verifies that the full standardized-score distribution is
// roughly standard normal. Deviations are reported as issues, not failures.
func QualityCheck(prefs []models.StandardizedPreference) []string {
	if len(prefs) == 0 {
		return nil
	}

	scores := make([]float64, len(prefs))
	for i, p := range prefs {
		scores[i] = p.Score
	}

	var issues []string

	mean := stats.Mean(scores)
	if mean > meanTolerance || mean < -meanTolerance {
		issues = append(issues, fmt.Sprintf("standardized score mean %.3f exceeds tolerance %.1f", mean, meanTolerance))
	}

	stdDev := stats.PopulationStdDev(scores)
	if stdDev != 0 && (stdDev > 1+stdDevTolerance || stdDev < 1-stdDevTolerance) {
		issues = append(issues, fmt.Sprintf("standardized score stddev %.3f outside tolerance %.1f of 1", stdDev, stdDevTolerance))
	}

	return issues
}

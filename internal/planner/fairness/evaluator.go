package fairness

import (
	"fmt"
	"math"
	"sort"

	"github.com/wayfare/tripplan-backend-go/internal/models"
	"github.com/wayfare/tripplan-backend-go/internal/stats"
)

// Delta band for the incremental oracle: changes within +-0.05 are neutral
const deltaThreshold = 0.05

// Wishlist share below which a low-satisfaction user triggers a recommendation
const minWishlistShare = 0.3

// Decision classifies an incremental fairness delta
type Decision string

// Decision constants
const (
	DecisionAccept  Decision = "accept"
	DecisionReject  Decision = "reject"
	DecisionNeutral Decision = "neutral"
)

// DisparityLevel classifies overall satisfaction balance
type DisparityLevel string

// DisparityLevel constants
const (
	DisparityLow    DisparityLevel = "low"
	DisparityMedium DisparityLevel = "medium"
	DisparityHigh   DisparityLevel = "high"
)

// Evaluation is the fairness picture for one candidate destination set
type Evaluation struct {
	Gini          float64            `json:"gini"`
	Score         float64            `json:"fairness_score"`
	Satisfaction  map[string]float64 `json:"satisfaction"`
	SelectedCount map[string]int     `json:"selected_count"`
	RatedCount    map[string]int     `json:"rated_count"`
}

// Delta is the result of the incremental add/remove oracle
type Delta struct {
	Before   float64  `json:"before"`
	After    float64  `json:"after"`
	Delta    float64  `json:"delta"`
	Decision Decision `json:"decision"`
}

// Analysis classifies the satisfaction distribution and suggests corrections
type Analysis struct {
	Level           DisparityLevel `json:"level"`
	Recommendations []string       `json:"recommendations,omitempty"`
}

// Evaluate computes the Gini-based fairness score for a selected destination
// set. users is the full set of participating user keys; a user with no rated
// selected destination still counts, with zero satisfaction.
func Evaluate(selected map[string]bool, prefs []models.StandardizedPreference, users []string) Evaluation {
	eval := Evaluation{
		Satisfaction:  make(map[string]float64, len(users)),
		SelectedCount: make(map[string]int, len(users)),
		RatedCount:    make(map[string]int, len(users)),
	}

	for _, u := range users {
		eval.Satisfaction[u] = 0
	}

	for _, p := range prefs {
		key := p.UserKey()
		if _, ok := eval.Satisfaction[key]; !ok {
			continue
		}
		eval.RatedCount[key]++
		if selected[p.DestinationID] {
			eval.SelectedCount[key]++
			eval.Satisfaction[key] += p.Score
		}
	}

	// A single participant has no measurable inequality
	if len(users) < 2 {
		eval.Gini = 0
		eval.Score = 1
		return eval
	}

	values := make([]float64, 0, len(users))
	for _, u := range users {
		values = append(values, eval.Satisfaction[u])
	}

	eval.Gini = stats.Gini(values)
	eval.Score = 1 - math.Abs(eval.Gini)
	return eval
}

// EvaluateDelta recomputes fairness with candidateIDs added to (or removed
// from) the selection and classifies the change, so greedy selection can use
// fairness as a cheap oracle.
func EvaluateDelta(selected map[string]bool, candidateIDs []string, add bool, prefs []models.StandardizedPreference, users []string) Delta {
	before := Evaluate(selected, prefs, users)

	modified := make(map[string]bool, len(selected)+len(candidateIDs))
	for id, ok := range selected {
		modified[id] = ok
	}
	for _, id := range candidateIDs {
		if add {
			modified[id] = true
		} else {
			delete(modified, id)
		}
	}

	after := Evaluate(modified, prefs, users)

	d := Delta{
		Before: before.Score,
		After:  after.Score,
		Delta:  after.Score - before.Score,
	}
	switch {
	case d.Delta > deltaThreshold:
		d.Decision = DecisionAccept
	case d.Delta < -deltaThreshold:
		d.Decision = DecisionReject
	default:
		d.Decision = DecisionNeutral
	}
	return d
}

// AnalyzeDistribution classifies balance from fixed fairness-score bands and
// generates recommendations when the least satisfied user holds too little of
// their wishlist.
func AnalyzeDistribution(eval Evaluation) Analysis {
	var a Analysis
	switch {
	case eval.Score >= 0.8:
		a.Level = DisparityLow
	case eval.Score >= 0.6:
		a.Level = DisparityMedium
	default:
		a.Level = DisparityHigh
	}

	if len(eval.Satisfaction) < 2 {
		return a
	}

	// Sorted keys keep recommendation output deterministic
	keys := make([]string, 0, len(eval.Satisfaction))
	for k := range eval.Satisfaction {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lowest := keys[0]
	for _, k := range keys[1:] {
		if eval.Satisfaction[k] < eval.Satisfaction[lowest] {
			lowest = k
		}
	}

	rated := eval.RatedCount[lowest]
	if rated > 0 && float64(eval.SelectedCount[lowest])/float64(rated) < minWishlistShare {
		a.Recommendations = append(a.Recommendations, fmt.Sprintf(
			"user %s has only %d of %d rated destinations selected, consider including more of their wishlist",
			lowest, eval.SelectedCount[lowest], rated))
	}

	return a
}

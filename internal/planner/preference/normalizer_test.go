package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfare/tripplan-backend-go/internal/models"
)

func prefs(user string, ratings ...int) []models.UserPreference {
	out := make([]models.UserPreference, len(ratings))
	for i, r := range ratings {
		out[i] = models.UserPreference{UserID: user, DestinationID: string(rune('a' + i)), Rating: r}
	}
	return out
}

func TestNormalizeZScores(t *testing.T) {
	// one user rates [5,4,3]: mean 4, stddev sqrt(2/3)
	result := Normalize(prefs("alice", 5, 4, 3))

	require.Len(t, result.Preferences, 3)
	assert.InDelta(t, 1.2247, result.Preferences[0].Score, 1e-3)
	assert.InDelta(t, 0, result.Preferences[1].Score, 1e-9)
	assert.InDelta(t, -1.2247, result.Preferences[2].Score, 1e-3)

	st := result.Stats["alice"]
	assert.Equal(t, 4.0, st.Mean)
	assert.Equal(t, 3, st.Count)
	assert.Empty(t, result.Warnings)
}

func TestNormalizeUniformRatings(t *testing.T) {
	result := Normalize(prefs("bob", 4, 4, 4))

	for _, p := range result.Preferences {
		assert.Equal(t, 0.0, p.Score)
	}
	// stddev floored to 1
	assert.Equal(t, 1.0, result.Stats["bob"].StdDev)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, models.WarnCodeUniformRatings, result.Warnings[0].Code)
}

func TestNormalizeFewRatings(t *testing.T) {
	result := Normalize(prefs("carol", 5, 2))

	var codes []string
	for _, w := range result.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, models.WarnCodeFewRatings)
}

func TestNormalizeSessionFallback(t *testing.T) {
	input := []models.UserPreference{
		{SessionID: "sess-1", DestinationID: "a", Rating: 5},
		{SessionID: "sess-1", DestinationID: "b", Rating: 3},
		{SessionID: "sess-1", DestinationID: "c", Rating: 1},
		{DestinationID: "a", Rating: 2},
	}
	result := Normalize(input)

	assert.Contains(t, result.Stats, "sess-1")
	assert.Contains(t, result.Stats, models.UnknownUserKey)
}

func TestQualityCheck(t *testing.T) {
	result := Normalize(prefs("dave", 5, 4, 3, 2, 1))
	assert.Empty(t, QualityCheck(result.Preferences))

	// a skewed fake distribution should report issues
	skewed := []models.StandardizedPreference{
		{Score: 2.0}, {Score: 2.1}, {Score: 1.9},
	}
	issues := QualityCheck(skewed)
	assert.NotEmpty(t, issues)
}

package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfare/tripplan-backend-go/internal/database"
	"github.com/wayfare/tripplan-backend-go/internal/models"
	"github.com/wayfare/tripplan-backend-go/internal/planner"
	"github.com/wayfare/tripplan-backend-go/internal/repository"
)

func newTestService(t *testing.T) *OptimizationService {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOptimizationService(planner.NewEngine(), repository.NewResultRepository(db))
}

func testRequest(tripID string) *models.OptimizationRequest {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return &models.OptimizationRequest{
		TripID:    tripID,
		Departure: models.Location{Name: "Paris", Lat: 48.8566, Lon: 2.3522},
		Destinations: []models.Destination{
			{ID: "louvre", Name: "Louvre", Lat: 48.8606, Lon: 2.3376, StayMinutes: 120},
			{ID: "orsay", Name: "Orsay", Lat: 48.8600, Lon: 2.3266, StayMinutes: 90},
		},
		Preferences: []models.UserPreference{
			{UserID: "alice", DestinationID: "louvre", Rating: 5},
			{UserID: "alice", DestinationID: "orsay", Rating: 3},
		},
		TripStart: start,
		TripEnd:   start.AddDate(0, 0, 2),
	}
}

func TestOptimizePersistsActiveResult(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Optimize(context.Background(), testRequest("trip-1"))
	require.NoError(t, err)
	require.True(t, result.Attempted)

	stored, err := svc.GetActiveResult("trip-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, result.RunID, stored.RunID)
}

func TestOptimizeCancelledContext(t *testing.T) {
	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Optimize(ctx, testRequest("trip-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	stored, err := svc.GetActiveResult("trip-1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestOptimizeConcurrentSameTrip(t *testing.T) {
	svc := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Optimize(context.Background(), testRequest("trip-1"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// serialized runs leave exactly one active row
	results, total, err := svc.ListResults("trip-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)

	var active int
	for _, r := range results {
		if r.IsActive {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

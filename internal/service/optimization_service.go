package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/wayfare/tripplan-backend-go/internal/models"
	"github.com/wayfare/tripplan-backend-go/internal/planner"
	"github.com/wayfare/tripplan-backend-go/internal/repository"
)

// OptimizationService handles business logic for itinerary optimization
type OptimizationService struct {
	engine *planner.Engine
	repo   *repository.ResultRepository

	mu    sync.Mutex
	trips map[string]*sync.Mutex
}

// NewOptimizationService creates a new optimization service
func NewOptimizationService(engine *planner.Engine, repo *repository.ResultRepository) *OptimizationService {
	return &OptimizationService{
		engine: engine,
		repo:   repo,
		trips:  make(map[string]*sync.Mutex),
	}
}

// tripLock returns the mutex serializing runs for one trip
func (s *OptimizationService) tripLock(tripID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.trips[tripID]
	if !ok {
		lock = &sync.Mutex{}
		s.trips[tripID] = lock
	}
	return lock
}

// Optimize runs the engine for a trip and persists the outcome as the
// trip's active result. Concurrent calls for the same trip are serialized;
// different trips run independently.
func (s *OptimizationService) Optimize(ctx context.Context, req *models.OptimizationRequest) (*models.OptimizationResult, error) {
	lock := s.tripLock(req.TripID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("optimization cancelled: %w", err)
	}

	result := s.engine.Optimize(req)
	log.Printf("[Optimization] trip=%s run=%s attempted=%v valid=%v selected=%d days=%d took=%dms",
		req.TripID, result.RunID, result.Attempted, result.Valid,
		result.Summary.SelectedCount, result.Summary.Days, result.Summary.ExecutionMs)

	if err := s.repo.Save(result); err != nil {
		return nil, fmt.Errorf("failed to save optimization result: %w", err)
	}

	return result, nil
}

// GetActiveResult retrieves the trip's current active result
func (s *OptimizationService) GetActiveResult(tripID string) (*repository.StoredResult, error) {
	return s.repo.GetActive(tripID)
}

// ListResults retrieves the trip's result history
func (s *OptimizationService) ListResults(tripID string, page, pageSize int) ([]repository.StoredResult, int64, error) {
	return s.repo.List(tripID, page, pageSize)
}

package utils

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"realtor-scraper/models"
)

// WorkerPool runs jobs with bounded concurrency behind a shared token-bucket
// rate gate. Every job, regardless of which worker runs it, waits on the same
// limiter, so the minimum spacing between outbound requests holds across the
// whole pool.
type WorkerPool struct {
	limiter   *rate.Limiter
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool with the given concurrency and shared
// rate limiter. A nil limiter disables rate gating.
func NewWorkerPool(maxWorkers int, limiter *rate.Limiter) *WorkerPool {
	return &WorkerPool{
		limiter:   limiter,
		semaphore: make(chan struct{}, maxWorkers),
	}
}

// Submit enqueues a job for execution. The job is skipped (not run) if ctx is
// canceled before the rate gate admits it; a canceled sibling never affects
// jobs already running.
func (wp *WorkerPool) Submit(ctx context.Context, job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		if wp.limiter != nil {
			if err := wp.limiter.Wait(ctx); err != nil {
				return
			}
		}
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// URLSet is a thread-safe set of listing URLs used to deduplicate detail
// links before any fetch happens.
type URLSet struct {
	mu   sync.RWMutex
	seen map[models.ListingURL]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[models.ListingURL]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *URLSet) Add(url models.ListingURL) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Contains returns true if the URL has already been seen.
func (s *URLSet) Contains(url models.ListingURL) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[url]
	return exists
}

// Size returns the number of tracked URLs.
func (s *URLSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}

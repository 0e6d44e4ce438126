package utils

import "sync"

// WorkerPool runs independent jobs with bounded concurrency. The model fits
// use it; the data-prep pass itself is a single deterministic thread.
type WorkerPool struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool with the given concurrency.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	return &WorkerPool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
	}
}

// Submit enqueues a job for execution in the pool.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Seen is a thread-safe set for tracking duplicate row keys.
type Seen struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewSeen creates an empty Seen set.
func NewSeen() *Seen {
	return &Seen{keys: make(map[string]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *Seen) Add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.keys[key]; exists {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Contains returns true if the key has already been recorded.
func (s *Seen) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.keys[key]
	return exists
}

// Size returns the number of unique keys tracked.
func (s *Seen) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

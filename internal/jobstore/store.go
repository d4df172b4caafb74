package jobstore

import (
	"errors"
	"sync"

	"github.com/arupbarman82/ft-chromebook-app/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a job id is unknown.
var ErrNotFound = errors.New("job not found")

// Store is a concurrent registry of job records. Creation, update and read
// are atomic with respect to each other: one mutex guards the whole map.
// Job records are mutated only through Update, by the goroutine that owns
// the job; Get returns defensive copies so pollers never see partial writes.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
}

// New creates an empty store.
func New() *Store {
	return &Store{jobs: make(map[string]*models.Job)}
}

// Create registers a new job record and returns its id.
// New jobs start queued at progress 1.
func (s *Store) Create() string {
	id := uuid.New().String()[:10]

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[id] = &models.Job{
		ID:       id,
		Stage:    models.StageQueued,
		Progress: 1,
		QAIssues: []string{},
	}
	return id
}

// Update applies fn to the job record under the store lock.
// Returns ErrNotFound for unknown ids.
func (s *Store) Update(id string, fn func(*models.Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	fn(job)
	return nil
}

// Get returns a snapshot of the job record.
func (s *Store) Get(id string) (models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return models.Job{}, ErrNotFound
	}
	return snapshot(job), nil
}

// Len returns the number of registered jobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// snapshot deep-copies a job so callers cannot alias store-owned state.
func snapshot(job *models.Job) models.Job {
	out := *job

	out.QAIssues = make([]string, len(job.QAIssues))
	copy(out.QAIssues, job.QAIssues)

	if job.Error != nil {
		e := *job.Error
		out.Error = &e
	}
	if job.QAPass != nil {
		p := *job.QAPass
		out.QAPass = &p
	}
	return out
}

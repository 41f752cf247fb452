package lead

import (
	"sync"
)

// Repository persists lead-capture applications.
type Repository interface {
	Create(app Application) (Application, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu   sync.RWMutex
	apps []Application
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{apps: make([]Application, 0)}
}

func (r *InMemoryRepository) Create(app Application) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps = append(r.apps, app)
	return app, nil
}

// List returns every stored application, for tests.
func (r *InMemoryRepository) List() []Application {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Application, len(r.apps))
	copy(out, r.apps)
	return out
}

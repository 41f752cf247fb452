package lead

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind    = errors.New("unknown application kind")
	ErrMissingContact = errors.New("name and email are required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit stores a lead-capture application.
func (s *Service) Submit(app Application) (Application, error) {
	if !validKind(app.Kind) {
		return Application{}, ErrInvalidKind
	}
	if app.Name == "" || app.Email == "" {
		return Application{}, ErrMissingContact
	}

	app.ID = uuid.NewString()
	app.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(app)
}

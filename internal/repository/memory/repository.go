package memory

import (
	"sync"
	"time"

	"github.com/omarshaarawi/matchclock/internal/models"
)

// Repository holds the last match list fetched from the API.
type Repository struct {
	matches   []models.MatchSnapshot
	updatedAt time.Time
	mu        sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveMatches(matches []models.MatchSnapshot, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = append([]models.MatchSnapshot(nil), matches...)
	r.updatedAt = at
}

func (r *Repository) GetMatches() ([]models.MatchSnapshot, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.MatchSnapshot(nil), r.matches...), r.updatedAt
}

func (r *Repository) GetMatch(id string) (models.MatchSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.matches {
		if m.ID == id {
			return m, true
		}
	}
	return models.MatchSnapshot{}, false
}

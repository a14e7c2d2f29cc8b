package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/dockfinder-cli/internal/dataset"
	"github.com/KaramelBytes/dockfinder-cli/internal/grid"
)

// View is one rendered page: its dataset and the state it opened with.
type View struct {
	ID       string
	Dataset  *dataset.Dataset
	Summary  dataset.Summary
	Default  grid.State
	LoadedAt time.Time
}

// ViewStore keeps the datasets of recent page views, evicting the oldest past max.
type ViewStore struct {
	mu    sync.Mutex
	max   int
	views map[string]*View
	order []string
}

// NewViewStore returns a store holding at most max views.
func NewViewStore(max int) *ViewStore {
	if max <= 0 {
		max = 256
	}
	return &ViewStore{max: max, views: make(map[string]*View)}
}

// Put stores a new view and returns it with its ID set.
func (s *ViewStore) Put(ds *dataset.Dataset, sum dataset.Summary, def grid.State) *View {
	v := &View{
		ID:       uuid.NewString(),
		Dataset:  ds,
		Summary:  sum,
		Default:  def,
		LoadedAt: time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[v.ID] = v
	s.order = append(s.order, v.ID)
	for len(s.order) > s.max {
		delete(s.views, s.order[0])
		s.order = s.order[1:]
	}
	return v
}

// Get returns the view with id, if it is still held.
func (s *ViewStore) Get(id string) (*View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[id]
	return v, ok
}

// Latest returns the most recently stored view.
func (s *ViewStore) Latest() (*View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return nil, false
	}
	v, ok := s.views[s.order[len(s.order)-1]]
	return v, ok
}

// Len returns the number of held views.
func (s *ViewStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

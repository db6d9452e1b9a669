package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lazyvibe/texrack/internal/fsys"
	"github.com/lazyvibe/texrack/internal/model"
)

// CurrentFile is the pointer filename under the data directory.
const CurrentFile = "current.json"

// CurrentStore persists the last-opened project.
type CurrentStore struct {
	mu  sync.Mutex
	dir fsys.Path
}

// NewCurrentStore creates a store writing into dataDir.
func NewCurrentStore(dataDir fsys.Path) *CurrentStore {
	return &CurrentStore{dir: dataDir}
}

// Path returns the location of the pointer file.
func (s *CurrentStore) Path() fsys.Path {
	return s.dir.Join(CurrentFile)
}

// Load reads the current project.
func (s *CurrentStore) Load() (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p model.Project
	if err := ReadJSON(s.Path(), &p); err != nil {
		if errors.Is(err, fsys.ErrNotFound) {
			return nil, ErrNoCurrentProject
		}
		return nil, fmt.Errorf("read current project: %w", err)
	}
	return &p, nil
}

// Save records p as the current project.
func (s *CurrentStore) Save(p *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dir.Mkdir(true, true); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return WriteJSON(s.Path(), p)
}

// Clear forgets the current project.
func (s *CurrentStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Path().Remove(true, false)
}

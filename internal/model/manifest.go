package model

import (
	"errors"
	"fmt"
	"time"
)

// Manifest describes a project's identity, configuration and textures.
type Manifest struct {
	Version    string    `json:"version"`
	Name       string    `json:"name"`
	ID         string    `json:"id"`
	RackSize   int       `json:"rackSize"`
	Textures   []Texture `json:"textures"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// NewManifest builds the manifest of a freshly created project.
func NewManifest(name, id string, now time.Time) *Manifest {
	return &Manifest{
		Version:    ManifestVersion,
		Name:       name,
		ID:         id,
		RackSize:   DefaultRackSize,
		Textures:   []Texture{},
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// Touch records a modification at now. ModifiedAt never moves before
// CreatedAt.
func (m *Manifest) Touch(now time.Time) {
	if now.Before(m.CreatedAt) {
		now = m.CreatedAt
	}
	m.ModifiedAt = now
}

// FindTexture returns the index of the texture with id, or -1.
func (m *Manifest) FindTexture(id string) int {
	for i := range m.Textures {
		if m.Textures[i].ID == id {
			return i
		}
	}
	return -1
}

// AddTexture appends t in insertion order.
func (m *Manifest) AddTexture(t Texture, now time.Time) {
	m.Textures = append(m.Textures, t)
	m.Touch(now)
}

// RemoveTexture drops the texture with id and reports whether it existed.
func (m *Manifest) RemoveTexture(id string, now time.Time) bool {
	i := m.FindTexture(id)
	if i < 0 {
		return false
	}
	m.Textures = append(m.Textures[:i], m.Textures[i+1:]...)
	m.Touch(now)
	return true
}

// Validate checks the manifest invariants.
func (m *Manifest) Validate() error {
	if m.Version != ManifestVersion {
		return fmt.Errorf("unsupported manifest version %q", m.Version)
	}
	if m.ID == "" {
		return errors.New("manifest id is empty")
	}
	if m.ModifiedAt.Before(m.CreatedAt) {
		return errors.New("manifest modifiedAt precedes createdAt")
	}
	seen := make(map[string]bool, len(m.Textures))
	for _, t := range m.Textures {
		if t.ID == "" {
			return errors.New("texture id is empty")
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate texture id %s", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// Package store provides JSON persistence for texrack: manifest encoding and
// the current-project pointer.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lazyvibe/texrack/internal/fsys"
)

// ErrNoCurrentProject is returned when no project has been opened yet.
var ErrNoCurrentProject = errors.New("no current project")

// ReadJSON decodes the file at p into v.
func ReadJSON(p fsys.Path, v any) error {
	content, err := p.ReadText()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("decode %s: %w", p.Absolute(), err)
	}
	return nil
}

// WriteJSON overwrites the file at p with v as indented JSON.
func WriteJSON(p fsys.Path, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return p.WriteText(append(content, '\n'))
}

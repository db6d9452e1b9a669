package project

import (
	"errors"

	"github.com/lazyvibe/texrack/internal/store"
)

// Common errors.
var (
	ErrInvalidProject     = errors.New("invalid project")
	ErrInvalidProjectName = errors.New("invalid project name")
	ErrUserCancelled      = errors.New("cancelled by user")
	ErrUnsupportedTexture = errors.New("unsupported texture type")
	ErrNoCurrentProject   = store.ErrNoCurrentProject
)

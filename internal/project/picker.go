package project

import "context"

// FileFilter restricts a file picker to a set of extensions.
type FileFilter struct {
	Name       string
	Extensions []string
}

// Picker is the user-facing file and directory chooser. Both methods return
// an empty location when the user dismisses the dialog.
type Picker interface {
	PickFile(ctx context.Context, filter FileFilter) (string, error)
	PickDirectory(ctx context.Context) (string, error)
}

// StaticPicker answers every prompt with a fixed location. An empty
// location behaves like a dismissed dialog.
type StaticPicker struct {
	File      string
	Directory string
}

func (s StaticPicker) PickFile(ctx context.Context, _ FileFilter) (string, error) {
	return s.File, ctx.Err()
}

func (s StaticPicker) PickDirectory(ctx context.Context) (string, error) {
	return s.Directory, ctx.Err()
}

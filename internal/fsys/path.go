package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Path is a location expressed as base segments plus relative segments.
// The zero value is not usable; build one with NewPath or Abs.
type Path struct {
	fs   FileSystem
	base []string
	rel  []string
}

// NewPath creates a path rooted at base. Base may be a single absolute
// location or several segments.
func NewPath(fsys FileSystem, base []string, rel ...string) Path {
	return Path{
		fs:   fsys,
		base: append([]string(nil), base...),
		rel:  append([]string(nil), rel...),
	}
}

// Abs creates a path whose base is the given location and which has no
// relative segments.
func Abs(fsys FileSystem, location string) Path {
	return NewPath(fsys, []string{location})
}

// Absolute joins base and relative segments.
func (p Path) Absolute() string {
	segments := make([]string, 0, len(p.base)+len(p.rel))
	segments = append(segments, p.base...)
	segments = append(segments, p.rel...)
	return filepath.Join(segments...)
}

// Relative joins the relative segments only.
func (p Path) Relative() string {
	return filepath.Join(p.rel...)
}

// String returns the absolute location.
func (p Path) String() string {
	return p.Absolute()
}

// Join returns a new path with segments appended to the relative part.
func (p Path) Join(segments ...string) Path {
	rel := make([]string, 0, len(p.rel)+len(segments))
	rel = append(rel, p.rel...)
	rel = append(rel, segments...)
	return Path{fs: p.fs, base: p.base, rel: rel}
}

// Parent drops the last relative segment. A path without relative segments
// resolves the parent of its base instead.
func (p Path) Parent() Path {
	if len(p.rel) > 0 {
		return Path{fs: p.fs, base: p.base, rel: p.rel[:len(p.rel)-1]}
	}
	return Abs(p.fs, filepath.Dir(p.Absolute()))
}

// Basename returns the final element of the location.
func (p Path) Basename() string {
	return filepath.Base(p.Absolute())
}

// Extension returns the suffix of the basename including the leading dot,
// or "" when there is none.
func (p Path) Extension() string {
	return filepath.Ext(p.Basename())
}

// Stem returns the basename without its extension.
func (p Path) Stem() string {
	base := p.Basename()
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Exists reports whether the location exists.
func (p Path) Exists() (bool, error) {
	_, err := p.fs.Stat(p.Absolute())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether the location is an existing directory.
func (p Path) IsDir() bool {
	info, err := p.fs.Stat(p.Absolute())
	return err == nil && info.IsDir()
}

// IsFile reports whether the location is an existing non-directory.
func (p Path) IsFile() bool {
	info, err := p.fs.Stat(p.Absolute())
	return err == nil && !info.IsDir()
}

// Size returns the size in bytes of the file at the location.
func (p Path) Size() (int64, error) {
	info, err := p.fs.Stat(p.Absolute())
	if err != nil {
		return 0, p.wrap(err)
	}
	return info.Size(), nil
}

// Touch creates an empty file. An existing file is left untouched when
// existOk is set.
func (p Path) Touch(existOk bool) error {
	exists, err := p.Exists()
	if err != nil {
		return err
	}
	if exists {
		if existOk {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrAlreadyExists, p.Absolute())
	}
	return p.wrap(p.fs.WriteFile(p.Absolute(), nil))
}

// Mkdir creates the directory. With recursive set, missing parents are
// created as well.
func (p Path) Mkdir(existOk, recursive bool) error {
	exists, err := p.Exists()
	if err != nil {
		return err
	}
	if exists {
		if !existOk {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, p.Absolute())
		}
		if !p.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotDir, p.Absolute())
		}
		return nil
	}
	if recursive {
		return p.wrap(p.fs.MkdirAll(p.Absolute()))
	}
	return p.wrap(p.fs.Mkdir(p.Absolute()))
}

// Remove deletes the file or directory. Non-empty directories require
// recursive.
func (p Path) Remove(missingOk, recursive bool) error {
	exists, err := p.Exists()
	if err != nil {
		return err
	}
	if !exists {
		if missingOk {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNotFound, p.Absolute())
	}
	if p.IsDir() {
		if recursive {
			return p.wrap(p.fs.RemoveAll(p.Absolute()))
		}
		entries, err := p.fs.ReadDir(p.Absolute())
		if err != nil {
			return p.wrap(err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("remove %s: directory not empty", p.Absolute())
		}
	}
	return p.wrap(p.fs.Remove(p.Absolute()))
}

// ReadDir lists the immediate children of the directory.
func (p Path) ReadDir() ([]Entry, error) {
	entries, err := p.fs.ReadDir(p.Absolute())
	if err != nil {
		return nil, p.wrap(err)
	}
	return entries, nil
}

// ReadText reads the whole file.
func (p Path) ReadText() ([]byte, error) {
	data, err := p.fs.ReadFile(p.Absolute())
	if err != nil {
		return nil, p.wrap(err)
	}
	return data, nil
}

// WriteText overwrites the file with data.
func (p Path) WriteText(data []byte) error {
	return p.wrap(p.fs.WriteFile(p.Absolute(), data))
}

// CopyTo copies the file to dst.
func (p Path) CopyTo(dst Path) error {
	return p.wrap(p.fs.CopyFile(p.Absolute(), dst.Absolute()))
}

// CopyTreeTo copies the directory tree so that dst becomes the copy.
func (p Path) CopyTreeTo(dst Path) error {
	return p.wrap(p.fs.CopyDir(p.Absolute(), dst.Absolute()))
}

// wrap maps not-exist errors onto ErrNotFound so callers can test with
// errors.Is regardless of the backend.
func (p Path) wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, p.Absolute(), err)
	}
	if errors.Is(err, os.ErrExist) && !errors.Is(err, ErrAlreadyExists) {
		return fmt.Errorf("%w: %s: %v", ErrAlreadyExists, p.Absolute(), err)
	}
	return err
}

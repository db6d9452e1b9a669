// Package fsys provides the file-system collaborator used by texrack and a
// segment-based Path handle built on top of it.
package fsys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when operating on an absent path.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating a path that already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotDir is returned when a directory was expected.
	ErrNotDir = errors.New("not a directory")
)

// Entry is a single directory listing result.
type Entry struct {
	Name  string
	IsDir bool
}

// FileSystem defines the primitives the project manager calls through.
// All names are absolute, platform-specific locations.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	Mkdir(name string) error
	MkdirAll(name string) error
	Remove(name string) error
	RemoveAll(name string) error
	ReadDir(name string) ([]Entry, error)
	CopyFile(src, dst string) error
	// CopyDir copies the tree rooted at src so that dst becomes the copy.
	CopyDir(src, dst string) error
}

// AferoFS implements FileSystem on any afero backend.
type AferoFS struct {
	fs afero.Fs
}

// New wraps an afero backend.
func New(backend afero.Fs) *AferoFS {
	return &AferoFS{fs: backend}
}

// NewOS returns a FileSystem backed by the host operating system.
func NewOS() *AferoFS {
	return New(afero.NewOsFs())
}

// NewMemory returns an in-memory FileSystem.
func NewMemory() *AferoFS {
	return New(afero.NewMemMapFs())
}

func (a *AferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *AferoFS) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(a.fs, name)
}

func (a *AferoFS) WriteFile(name string, data []byte) error {
	return afero.WriteFile(a.fs, name, data, 0644)
}

func (a *AferoFS) Mkdir(name string) error {
	return a.fs.Mkdir(name, 0755)
}

func (a *AferoFS) MkdirAll(name string) error {
	return a.fs.MkdirAll(name, 0755)
}

func (a *AferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *AferoFS) RemoveAll(name string) error {
	return a.fs.RemoveAll(name)
}

// ReadDir lists the immediate children of name sorted by filename.
func (a *AferoFS) ReadDir(name string) ([]Entry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{Name: info.Name(), IsDir: info.IsDir()})
	}
	return entries, nil
}

// CopyFile copies src to dst, truncating dst if it exists. The copy is not
// atomic: a failure can leave a partial dst behind.
func (a *AferoFS) CopyFile(src, dst string) error {
	in, err := a.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("copy %s: is a directory", src)
	}

	out, err := a.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// CopyDir walks src and recreates it at dst.
func (a *AferoFS) CopyDir(src, dst string) error {
	info, err := a.fs.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDir, src)
	}

	return afero.Walk(a.fs, src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return a.fs.MkdirAll(target, 0755)
		}
		return a.CopyFile(path, target)
	})
}

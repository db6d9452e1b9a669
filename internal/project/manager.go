package project

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lazyvibe/texrack/internal/fsys"
	"github.com/lazyvibe/texrack/internal/model"
	"github.com/lazyvibe/texrack/internal/notify"
	"github.com/lazyvibe/texrack/internal/store"
	"github.com/lazyvibe/texrack/pkg/utils"
)

// DefaultProjectsFolder is the shared folder name under the documents root.
const DefaultProjectsFolder = "Projects"

// Roots locates the shared directories the manager works in.
type Roots struct {
	// Documents is the base directory holding the projects folder.
	Documents string
	// ProjectsFolder is the folder name under Documents. Defaults to "Projects".
	ProjectsFolder string
	// Data is the local application-data directory holding current.json.
	Data string
}

// Notifier receives project events.
type Notifier interface {
	Dispatch(ctx context.Context, event notify.Event)
}

type nopNotifier struct{}

func (nopNotifier) Dispatch(context.Context, notify.Event) {}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithNotifier sets the event notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(m *Manager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// Manager orchestrates the project and texture lifecycle.
type Manager struct {
	fs       fsys.FileSystem
	picker   Picker
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
	newID    func() (string, error)

	projectsRoot fsys.Path
	dataRoot     fsys.Path
	current      *store.CurrentStore
}

// NewManager creates a manager over the given roots and collaborators.
func NewManager(roots Roots, fs fsys.FileSystem, picker Picker, opts ...Option) (*Manager, error) {
	if fs == nil {
		return nil, errors.New("file system is required")
	}
	if picker == nil {
		return nil, errors.New("picker is required")
	}
	if roots.Documents == "" {
		return nil, errors.New("documents root is required")
	}
	if roots.Data == "" {
		return nil, errors.New("data root is required")
	}
	folder := roots.ProjectsFolder
	if folder == "" {
		folder = DefaultProjectsFolder
	}

	m := &Manager{
		fs:       fs,
		picker:   picker,
		notifier: nopNotifier{},
		logger:   zap.NewNop(),
		now:      defaultClock,
		newID:    newTimeOrderedID,

		projectsRoot: fsys.NewPath(fs, []string{roots.Documents}, folder),
		dataRoot:     fsys.Abs(fs, roots.Data),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("project")
	m.current = store.NewCurrentStore(m.dataRoot)
	return m, nil
}

// ProjectsRoot returns the shared projects folder.
func (m *Manager) ProjectsRoot() fsys.Path {
	return m.projectsRoot
}

// ClearCurrent forgets the current project. The project itself is untouched.
func (m *Manager) ClearCurrent(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.current.Clear(); err != nil {
		return fmt.Errorf("clear current project: %w", err)
	}
	m.logger.Debug("current project cleared", zap.String("pointer", m.current.Path().Absolute()))
	return nil
}

// CreateProject creates a new project folder named after the sanitized
// name. An existing folder is never overwritten.
func (m *Manager) CreateProject(ctx context.Context, name string) (*model.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	folder := utils.SanitizeName(name)
	if folder == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProjectName, name)
	}

	id, err := m.newID()
	if err != nil {
		return nil, fmt.Errorf("generate project id: %w", err)
	}

	// Best effort: a failure here resurfaces when creating the project folder.
	if err := m.projectsRoot.Mkdir(true, true); err != nil {
		m.logger.Debug("projects root not created", zap.Error(err))
	}

	dir := m.projectsRoot.Join(folder)
	if err := dir.Mkdir(false, false); err != nil {
		return nil, fmt.Errorf("create project folder: %w", err)
	}
	if err := dir.Join(model.AssetsDir).Mkdir(false, false); err != nil {
		return nil, fmt.Errorf("create assets folder: %w", err)
	}
	if err := dir.Join(model.ManifestFile).Touch(false); err != nil {
		return nil, fmt.Errorf("create manifest: %w", err)
	}

	p := &model.Project{
		Path:     dir.Absolute(),
		Manifest: *model.NewManifest(name, id, m.now()),
	}
	if err := m.saveManifest(p); err != nil {
		return nil, err
	}

	m.logger.Info("project created",
		zap.String("name", name),
		zap.String("id", id),
		zap.String("path", p.Path))
	m.notifier.Dispatch(ctx, notify.Event{
		ProjectID:   id,
		ProjectName: name,
		Type:        notify.EventProjectCreated,
		Message:     "Project created in " + dir.Relative(),
		Timestamp:   p.Manifest.CreatedAt,
	})
	return p, nil
}

// OpenProject opens a project by folder name under the projects root or by
// explicit location, and records it as the current project.
func (m *Manager) OpenProject(ctx context.Context, identifier string) (*model.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := m.resolve(identifier)
	if err != nil {
		return nil, err
	}

	p, err := m.load(dir)
	if err != nil {
		return nil, err
	}
	if err := m.current.Save(p); err != nil {
		return nil, fmt.Errorf("record current project: %w", err)
	}

	m.logger.Debug("project opened", zap.String("path", p.Path))
	return p, nil
}

// CurrentProject returns the last project opened with OpenProject.
func (m *Manager) CurrentProject(ctx context.Context) (*model.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.current.Load()
}

// ImportProject asks the user for a project directory and copies it into
// the projects root under its sanitized manifest name. It returns the
// location of the copy.
func (m *Manager) ImportProject(ctx context.Context) (string, error) {
	selected, err := m.picker.PickDirectory(ctx)
	if err != nil {
		return "", fmt.Errorf("pick project directory: %w", err)
	}
	if selected == "" {
		return "", ErrUserCancelled
	}

	location, err := filepath.Abs(utils.ExpandPath(selected))
	if err != nil {
		return "", err
	}
	src := fsys.Abs(m.fs, location)
	p, err := m.load(src)
	if err != nil {
		return "", err
	}

	folder := utils.SanitizeName(p.Manifest.Name)
	if folder == "" {
		folder = utils.SanitizeName(src.Basename())
	}

	dst := m.projectsRoot.Join(folder)
	if contains(src.Absolute(), dst.Absolute()) {
		return "", fmt.Errorf("%w: %s contains the projects folder %s", ErrInvalidProject, src.Absolute(), m.projectsRoot.Absolute())
	}
	if err := m.projectsRoot.Mkdir(true, true); err != nil {
		return "", fmt.Errorf("create projects root: %w", err)
	}
	exists, err := dst.Exists()
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("import %s: %w: %s", src.Absolute(), fsys.ErrAlreadyExists, dst.Absolute())
	}

	if err := src.CopyTreeTo(dst); err != nil {
		if rmErr := dst.Remove(true, true); rmErr != nil {
			m.logger.Warn("partial import left behind",
				zap.String("path", dst.Absolute()),
				zap.Error(rmErr))
		}
		return "", fmt.Errorf("copy project: %w", err)
	}

	m.logger.Info("project imported",
		zap.String("source", src.Absolute()),
		zap.String("path", dst.Absolute()))
	m.notifier.Dispatch(ctx, notify.Event{
		ProjectID:   p.Manifest.ID,
		ProjectName: p.Manifest.Name,
		Type:        notify.EventProjectImported,
		Message:     "Imported into " + dst.Relative(),
		Timestamp:   m.now(),
	})
	return dst.Absolute(), nil
}

// ListProjects opens every subdirectory of the projects root. Folders that
// are not valid projects are skipped.
func (m *Manager) ListProjects(ctx context.Context) ([]model.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	projects := []model.Project{}
	if !m.projectsRoot.IsDir() {
		return projects, nil
	}

	entries, err := m.projectsRoot.ReadDir()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir {
			continue
		}
		p, err := m.load(m.projectsRoot.Join(entry.Name))
		if err != nil {
			if errors.Is(err, ErrInvalidProject) {
				m.logger.Warn("skipping folder", zap.String("folder", entry.Name), zap.Error(err))
				continue
			}
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

// Root returns the path handle of the project's folder.
func (m *Manager) Root(p *model.Project) fsys.Path {
	return fsys.Abs(m.fs, p.Path)
}

func (m *Manager) resolve(identifier string) (fsys.Path, error) {
	if identifier == "" {
		return fsys.Path{}, fmt.Errorf("%w: empty identifier", ErrInvalidProject)
	}
	if !utils.IsExplicitLocation(identifier) {
		if identifier == "." || !filepath.IsLocal(identifier) {
			return fsys.Path{}, fmt.Errorf("%w: %q is not a project folder name", ErrInvalidProject, identifier)
		}
		return m.projectsRoot.Join(identifier), nil
	}
	location, err := filepath.Abs(utils.ExpandPath(identifier))
	if err != nil {
		return fsys.Path{}, err
	}
	return fsys.Abs(m.fs, location), nil
}

// load parses the manifest at dir without touching the current pointer.
func (m *Manager) load(dir fsys.Path) (*model.Project, error) {
	manifestPath := dir.Join(model.ManifestFile)
	if !manifestPath.IsFile() {
		return nil, fmt.Errorf("%w: no %s in %s", ErrInvalidProject, model.ManifestFile, dir.Absolute())
	}

	var manifest model.Manifest
	if err := store.ReadJSON(manifestPath, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProject, manifestPath.Absolute(), err)
	}
	if manifest.Textures == nil {
		manifest.Textures = []model.Texture{}
	}
	return &model.Project{Path: dir.Absolute(), Manifest: manifest}, nil
}

// saveManifest overwrites the manifest file at the project root.
func (m *Manager) saveManifest(p *model.Project) error {
	if err := store.WriteJSON(m.Root(p).Join(model.ManifestFile), p.Manifest); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	return nil
}

// contains reports whether child is dir or lies below it.
func contains(dir, child string) bool {
	dir, errDir := filepath.Abs(dir)
	child, errChild := filepath.Abs(child)
	if errDir != nil || errChild != nil {
		return false
	}
	rel, err := filepath.Rel(dir, child)
	if err != nil {
		return false
	}
	return rel == "." || filepath.IsLocal(rel)
}

func defaultClock() time.Time {
	return time.Now().UTC().Round(0)
}

func newTimeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

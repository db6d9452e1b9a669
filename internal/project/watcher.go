package project

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lazyvibe/texrack/internal/model"
)

// DefaultDebounce is the quiet period before a drift check runs.
const DefaultDebounce = 300 * time.Millisecond

// Watch observes a project's root and assets folders and delivers a fresh
// Report after every burst of changes. The manifest is re-read from disk
// for each check. The channel is closed when ctx ends.
//
// Watch requires the operating-system file system.
func (m *Manager) Watch(ctx context.Context, p *model.Project, debounce time.Duration) (<-chan Report, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	root := m.Root(p)
	assets := root.Join(model.AssetsDir)
	if err := assets.Mkdir(true, false); err != nil {
		return nil, fmt.Errorf("prepare assets folder: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range []string{root.Absolute(), assets.Absolute()} {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	log := m.logger.With(zap.String("project", p.Path))
	reports := make(chan Report)

	go func() {
		defer close(reports)
		defer fsWatcher.Close()

		// fire is nil while no change is pending.
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-fsWatcher.Events:
				if !ok {
					return
				}
				if !relevant(event, root.Absolute()) {
					continue
				}
				log.Debug("asset event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
				fire = time.After(debounce)

			case err, ok := <-fsWatcher.Errors:
				if !ok {
					return
				}
				log.Warn("watch error", zap.Error(err))

			case <-fire:
				fire = nil
				report, err := m.check(ctx, root.Absolute())
				if err != nil {
					log.Warn("drift check failed", zap.Error(err))
					continue
				}
				if !report.Consistent() {
					log.Warn("manifest and assets diverged",
						zap.Int("missing", len(report.Missing)),
						zap.Strings("orphans", report.Orphans))
				}
				select {
				case reports <- report:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return reports, nil
}

func (m *Manager) check(ctx context.Context, location string) (Report, error) {
	current, err := m.load(m.Root(&model.Project{Path: location}))
	if err != nil {
		return Report{}, err
	}
	return m.Verify(ctx, current)
}

// relevant keeps manifest writes and any change below assets/.
func relevant(event fsnotify.Event, root string) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	dir, name := filepath.Split(event.Name)
	if filepath.Clean(dir) == filepath.Clean(root) {
		return name == model.ManifestFile || name == model.AssetsDir
	}
	return true
}

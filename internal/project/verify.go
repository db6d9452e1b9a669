package project

import (
	"context"
	"fmt"

	"github.com/lazyvibe/texrack/internal/model"
)

// Report lists the differences between a manifest and its assets folder.
type Report struct {
	// Missing holds textures listed in the manifest without an asset file.
	Missing []model.Texture
	// Orphans holds texture_* files in assets/ that no manifest entry names.
	Orphans []string
}

// Consistent reports whether manifest and disk agree.
func (r Report) Consistent() bool {
	return len(r.Missing) == 0 && len(r.Orphans) == 0
}

// Verify compares p's texture list with the files under assets/.
func (m *Manager) Verify(ctx context.Context, p *model.Project) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	report := Report{}

	var names []string
	present := make(map[string]bool)
	assets := m.Root(p).Join(model.AssetsDir)
	if assets.IsDir() {
		entries, err := assets.ReadDir()
		if err != nil {
			return Report{}, fmt.Errorf("read assets: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir {
				continue
			}
			if _, _, ok := model.ParseTextureFilename(entry.Name); ok {
				names = append(names, entry.Name)
				present[entry.Name] = true
			}
		}
	}

	for _, texture := range p.Manifest.Textures {
		name := texture.Filename()
		if present[name] {
			delete(present, name)
			continue
		}
		report.Missing = append(report.Missing, texture)
	}
	for _, name := range names {
		if present[name] {
			report.Orphans = append(report.Orphans, name)
		}
	}
	return report, nil
}

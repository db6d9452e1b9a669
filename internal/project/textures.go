package project

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lazyvibe/texrack/internal/fsys"
	"github.com/lazyvibe/texrack/internal/model"
	"github.com/lazyvibe/texrack/internal/notify"
	"github.com/lazyvibe/texrack/pkg/utils"
)

// TextureFilter is the picker filter offered when adding a texture.
var TextureFilter = FileFilter{Name: "Images", Extensions: model.TextureExtensions}

// AddTexture asks the user for an image and copies it into the project's
// assets folder. It returns nil without error when the user cancels.
func (m *Manager) AddTexture(ctx context.Context, p *model.Project) (*model.Texture, error) {
	selected, err := m.picker.PickFile(ctx, TextureFilter)
	if err != nil {
		return nil, fmt.Errorf("pick texture: %w", err)
	}
	if selected == "" {
		return nil, nil
	}
	if !utils.MatchesExtensions(selected, TextureFilter.Extensions) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTexture, selected)
	}

	src := fsys.Abs(m.fs, utils.ExpandPath(selected))
	if !src.IsFile() {
		return nil, fmt.Errorf("texture source: %w: %s", fsys.ErrNotFound, src.Absolute())
	}

	id, err := m.newID()
	if err != nil {
		return nil, fmt.Errorf("generate texture id: %w", err)
	}
	texture := model.Texture{
		ID:           id,
		OriginalName: src.Basename(),
		Extension:    src.Extension(),
	}

	assets := m.Root(p).Join(model.AssetsDir)
	if err := assets.Mkdir(true, false); err != nil {
		return nil, fmt.Errorf("prepare assets folder: %w", err)
	}
	dst := assets.Join(texture.Filename())
	if err := src.CopyTo(dst); err != nil {
		if rmErr := dst.Remove(true, false); rmErr != nil {
			m.logger.Warn("partial texture left behind", zap.String("path", dst.Absolute()), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("copy texture: %w", err)
	}
	if size, err := dst.Size(); err == nil {
		texture.Size = &size
	}

	previous := p.Manifest.ModifiedAt
	p.Manifest.AddTexture(texture, m.now())
	if err := m.saveManifest(p); err != nil {
		p.Manifest.Textures = p.Manifest.Textures[:len(p.Manifest.Textures)-1]
		p.Manifest.ModifiedAt = previous
		if rmErr := dst.Remove(true, false); rmErr != nil {
			m.logger.Warn("orphaned texture left behind", zap.String("path", dst.Absolute()), zap.Error(rmErr))
		}
		return nil, err
	}

	m.logger.Info("texture added",
		zap.String("project", p.Path),
		zap.String("texture", texture.ID),
		zap.String("original", texture.OriginalName))
	m.notifier.Dispatch(ctx, notify.Event{
		ProjectID:   p.Manifest.ID,
		ProjectName: p.Manifest.Name,
		Type:        notify.EventTextureAdded,
		Message:     texture.OriginalName + " added",
		Timestamp:   p.Manifest.ModifiedAt,
	})
	return &texture, nil
}

// RemoveTexture deletes the texture's asset and drops it from the manifest.
// It reports false when the id is unknown or the asset could not be
// deleted; the manifest is left unchanged in both cases.
func (m *Manager) RemoveTexture(ctx context.Context, p *model.Project, textureID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	i := p.Manifest.FindTexture(textureID)
	if i < 0 {
		return false, nil
	}
	texture := p.Manifest.Textures[i]

	file := m.TexturePath(p, texture)
	exists, err := file.Exists()
	if err != nil {
		m.logger.Error("failed to stat texture asset",
			zap.String("path", file.Absolute()),
			zap.Error(err))
		return false, nil
	}
	if !exists {
		m.logger.Warn("texture asset already missing", zap.String("path", file.Absolute()))
	}
	if err := file.Remove(true, false); err != nil {
		m.logger.Error("failed to delete texture asset",
			zap.String("path", file.Absolute()),
			zap.Error(err))
		return false, nil
	}

	p.Manifest.RemoveTexture(textureID, m.now())
	if err := m.saveManifest(p); err != nil {
		return false, err
	}

	m.logger.Info("texture removed",
		zap.String("project", p.Path),
		zap.String("texture", textureID))
	m.notifier.Dispatch(ctx, notify.Event{
		ProjectID:   p.Manifest.ID,
		ProjectName: p.Manifest.Name,
		Type:        notify.EventTextureRemoved,
		Message:     texture.OriginalName + " removed",
		Timestamp:   p.Manifest.ModifiedAt,
	})
	return true, nil
}

// TexturePath derives the asset location of texture. It performs no I/O.
func (m *Manager) TexturePath(p *model.Project, texture model.Texture) fsys.Path {
	return m.Root(p).Join(model.AssetsDir, texture.Filename())
}

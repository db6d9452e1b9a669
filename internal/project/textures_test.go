package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/lazyvibe/texrack/internal/model"
	"github.com/lazyvibe/texrack/internal/notify"
)

// failingRemoveFs refuses every deletion.
type failingRemoveFs struct {
	afero.Fs
}

func (failingRemoveFs) Remove(string) error    { return errors.New("permission denied") }
func (failingRemoveFs) RemoveAll(string) error { return errors.New("permission denied") }

// faultyWriteFs fails write-mode opens of matching names. With partial set
// the target is created first, as an interrupted write would leave it.
type faultyWriteFs struct {
	afero.Fs
	fail    func(name string) bool
	partial bool
}

func (f faultyWriteFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) == 0 || f.fail == nil || !f.fail(name) {
		return f.Fs.OpenFile(name, flag, perm)
	}
	if f.partial {
		if file, err := f.Fs.OpenFile(name, flag, perm); err == nil {
			file.Close()
		}
	}
	return nil, errors.New("no space left on device")
}

// failingStatFs fails Stat for matching names.
type failingStatFs struct {
	afero.Fs
	fail func(name string) bool
}

func (f failingStatFs) Stat(name string) (os.FileInfo, error) {
	if f.fail != nil && f.fail(name) {
		return nil, errors.New("input/output error")
	}
	return f.Fs.Stat(name)
}

// textureFiles lists the texture_* files in the project's assets folder.
func textureFiles(t *testing.T, projectPath string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(projectPath, model.AssetsDir))
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), model.TexturePrefix) {
			names = append(names, entry.Name())
		}
	}
	return names
}

func TestAddTexture(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)
	before := p.Manifest.ModifiedAt

	h.picker.file = h.writeImage(t, "photo.png", "0123456789")
	texture, err := h.manager.AddTexture(ctx, p)
	require.NoError(t, err)
	require.NotNil(t, texture)

	assert.NotEmpty(t, texture.ID)
	assert.Equal(t, "photo.png", texture.OriginalName)
	assert.Equal(t, ".png", texture.Extension)
	require.NotNil(t, texture.Size)
	assert.Equal(t, int64(10), *texture.Size)

	path := h.manager.TexturePath(p, *texture)
	assert.Equal(t, filepath.Join(p.Path, "assets", "texture_"+texture.ID+".png"), path.Absolute())
	assert.FileExists(t, path.Absolute())

	require.Len(t, p.Manifest.Textures, 1)
	assert.Equal(t, *texture, p.Manifest.Textures[0])
	assert.True(t, p.Manifest.ModifiedAt.After(before))
	assert.Equal(t, p.Manifest, readManifest(t, p.Path))

	require.Len(t, h.picker.filters, 1)
	assert.ElementsMatch(t, model.TextureExtensions, h.picker.filters[0].Extensions)
	assert.Contains(t, h.notifier.types(), notify.EventTextureAdded)
}

func TestAddTextureKeepsInsertionOrder(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)

	var ids []string
	for _, name := range []string{"b.jpg", "a.webp", "c.svg"} {
		h.picker.file = h.writeImage(t, name, name)
		texture, err := h.manager.AddTexture(ctx, p)
		require.NoError(t, err)
		ids = append(ids, texture.ID)
	}

	manifest := readManifest(t, p.Path)
	require.Len(t, manifest.Textures, 3)
	for i, id := range ids {
		assert.Equal(t, id, manifest.Textures[i].ID)
	}
	assert.Equal(t, "a.webp", manifest.Textures[1].OriginalName)
	assert.NoError(t, manifest.Validate())
}

func TestAddTextureCancelled(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)
	before := p.Manifest

	texture, err := h.manager.AddTexture(ctx, p)
	require.NoError(t, err)
	assert.Nil(t, texture)
	assert.Equal(t, before, p.Manifest)
}

func TestAddTextureRejected(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)

	h.picker.file = h.writeImage(t, "notes.txt", "text")
	_, err = h.manager.AddTexture(ctx, p)
	assert.ErrorIs(t, err, ErrUnsupportedTexture)

	h.picker.file = filepath.Join(h.scratch, "ghost.png")
	_, err = h.manager.AddTexture(ctx, p)
	require.Error(t, err)

	assert.Empty(t, p.Manifest.Textures)
	entries, err := os.ReadDir(filepath.Join(p.Path, model.AssetsDir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddTextureCopyFailureLeavesManifest(t *testing.T) {
	for _, partial := range []bool{false, true} {
		t.Run(fmt.Sprintf("partial=%v", partial), func(t *testing.T) {
			var armed bool
			backend := &faultyWriteFs{Fs: afero.NewOsFs(), partial: partial}
			backend.fail = func(name string) bool {
				return armed && strings.HasPrefix(filepath.Base(name), model.TexturePrefix)
			}
			h := newHarness(t, backend)
			ctx := context.Background()

			p, err := h.manager.CreateProject(ctx, "Rack")
			require.NoError(t, err)
			before := p.Manifest
			h.picker.file = h.writeImage(t, "photo.png", "photo")
			armed = true

			texture, err := h.manager.AddTexture(ctx, p)
			require.Error(t, err)
			assert.Nil(t, texture)
			assert.Contains(t, err.Error(), "copy texture")

			assert.Equal(t, before, p.Manifest)
			assert.Equal(t, before, readManifest(t, p.Path))
			assert.Empty(t, textureFiles(t, p.Path))
			assert.NotContains(t, h.notifier.types(), notify.EventTextureAdded)
		})
	}
}

func TestAddTextureSaveFailureRollsBack(t *testing.T) {
	var armed bool
	backend := &faultyWriteFs{Fs: afero.NewOsFs()}
	backend.fail = func(name string) bool {
		return armed && filepath.Base(name) == model.ManifestFile
	}
	h := newHarness(t, backend)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)
	before := p.Manifest
	h.picker.file = h.writeImage(t, "photo.png", "photo")
	armed = true

	texture, err := h.manager.AddTexture(ctx, p)
	require.Error(t, err)
	assert.Nil(t, texture)
	assert.Contains(t, err.Error(), "save manifest")

	assert.Equal(t, before, p.Manifest)
	assert.Equal(t, before, readManifest(t, p.Path))
	assert.Empty(t, textureFiles(t, p.Path))
}

func TestAddTextureUpperCaseExtension(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)

	h.picker.file = h.writeImage(t, "SCAN.JPG", "jpg")
	texture, err := h.manager.AddTexture(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, ".JPG", texture.Extension)
	assert.FileExists(t, h.manager.TexturePath(p, *texture).Absolute())
}

func TestRemoveTexture(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)
	h.picker.file = h.writeImage(t, "keep.png", "keep")
	kept, err := h.manager.AddTexture(ctx, p)
	require.NoError(t, err)

	before := append([]model.Texture(nil), p.Manifest.Textures...)

	h.picker.file = h.writeImage(t, "photo.png", "photo")
	texture, err := h.manager.AddTexture(ctx, p)
	require.NoError(t, err)
	addedAt := p.Manifest.ModifiedAt
	asset := h.manager.TexturePath(p, *texture).Absolute()

	removed, err := h.manager.RemoveTexture(ctx, p, texture.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, before, p.Manifest.Textures)
	assert.NoFileExists(t, asset)
	assert.FileExists(t, h.manager.TexturePath(p, *kept).Absolute())
	assert.True(t, p.Manifest.ModifiedAt.After(addedAt))
	assert.Equal(t, p.Manifest, readManifest(t, p.Path))
	assert.Contains(t, h.notifier.types(), notify.EventTextureRemoved)
}

func TestRemoveTextureUnknownID(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)
	h.picker.file = h.writeImage(t, "photo.png", "photo")
	_, err = h.manager.AddTexture(ctx, p)
	require.NoError(t, err)
	before := readManifest(t, p.Path)

	removed, err := h.manager.RemoveTexture(ctx, p, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, p.Manifest)
	assert.Equal(t, before, readManifest(t, p.Path))
}

func TestRemoveTextureDeleteFailure(t *testing.T) {
	h := newHarness(t, failingRemoveFs{Fs: afero.NewOsFs()})
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)
	h.picker.file = h.writeImage(t, "photo.png", "photo")
	texture, err := h.manager.AddTexture(ctx, p)
	require.NoError(t, err)
	before := p.Manifest

	removed, err := h.manager.RemoveTexture(ctx, p, texture.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, p.Manifest)
	assert.Equal(t, before, readManifest(t, p.Path))
	assert.FileExists(t, h.manager.TexturePath(p, *texture).Absolute())

	entries := h.logs.FilterMessage("failed to delete texture asset").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestRemoveTextureStatFailure(t *testing.T) {
	var armed bool
	backend := &failingStatFs{Fs: afero.NewOsFs()}
	backend.fail = func(name string) bool {
		return armed && strings.HasPrefix(filepath.Base(name), model.TexturePrefix)
	}
	h := newHarness(t, backend)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)
	h.picker.file = h.writeImage(t, "photo.png", "photo")
	texture, err := h.manager.AddTexture(ctx, p)
	require.NoError(t, err)
	before := p.Manifest
	armed = true

	removed, err := h.manager.RemoveTexture(ctx, p, texture.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, p.Manifest)
	assert.Equal(t, before, readManifest(t, p.Path))
	assert.Len(t, textureFiles(t, p.Path), 1)

	entries := h.logs.FilterMessage("failed to stat texture asset").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestRemoveTextureMissingAsset(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Rack")
	require.NoError(t, err)
	h.picker.file = h.writeImage(t, "photo.png", "photo")
	texture, err := h.manager.AddTexture(ctx, p)
	require.NoError(t, err)
	require.NoError(t, os.Remove(h.manager.TexturePath(p, *texture).Absolute()))

	removed, err := h.manager.RemoveTexture(ctx, p, texture.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, p.Manifest.Textures)
	assert.Equal(t, 1, h.logs.FilterMessage("texture asset already missing").Len())
}

func TestTexturePathIsPure(t *testing.T) {
	h := newHarness(t, nil)
	p := &model.Project{Path: "/nowhere/Rack"}
	path := h.manager.TexturePath(p, model.Texture{ID: "abc", Extension: ".gif"})
	assert.Equal(t, filepath.Join("/nowhere/Rack", "assets", "texture_abc.gif"), path.Absolute())
}

func TestTextureLifecycleScenario(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	p, err := h.manager.CreateProject(ctx, "Test Rack!")
	require.NoError(t, err)
	assert.Equal(t, "Test_Rack_", filepath.Base(p.Path))
	created := p.Manifest.ModifiedAt

	h.picker.file = h.writeImage(t, "photo.png", "photo")
	texture, err := h.manager.AddTexture(ctx, p)
	require.NoError(t, err)
	require.Len(t, p.Manifest.Textures, 1)
	assert.Equal(t, ".png", texture.Extension)
	afterAdd := p.Manifest.ModifiedAt
	assert.True(t, afterAdd.After(created))

	asset := h.manager.TexturePath(p, *texture).Absolute()
	removed, err := h.manager.RemoveTexture(ctx, p, texture.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, p.Manifest.Textures)
	assert.NoFileExists(t, asset)
	assert.True(t, p.Manifest.ModifiedAt.After(afterAdd))
	assert.False(t, p.Manifest.ModifiedAt.Before(p.Manifest.CreatedAt))
}

func TestTextureIDsAreTimeOrdered(t *testing.T) {
	first, err := newTimeOrderedID()
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := newTimeOrderedID()
	require.NoError(t, err)
	assert.Less(t, first, second)
}

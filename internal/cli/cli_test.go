package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/texrack/internal/model"
	"github.com/lazyvibe/texrack/internal/project"
)

type testEnv struct {
	configDir string
	docs      string
	data      string
	scratch   string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	root := t.TempDir()
	env := testEnv{
		configDir: filepath.Join(root, "config"),
		docs:      filepath.Join(root, "docs"),
		data:      filepath.Join(root, "data"),
		scratch:   filepath.Join(root, "scratch"),
	}
	require.NoError(t, os.MkdirAll(env.scratch, 0755))
	t.Setenv("TEXRACK_DOCUMENTS_DIR", env.docs)
	t.Setenv("TEXRACK_DATA_DIR", env.data)
	t.Setenv("TEXRACK_LOG_LEVEL", "error")
	t.Setenv("TEXRACK_NOTIFY_DESKTOP", "false")
	return env
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--config-dir", e.configDir}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e testEnv) projectDir(folder string) string {
	return filepath.Join(e.docs, project.DefaultProjectsFolder, folder)
}

func TestCommandsRegistered(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"create", "open", "current", "import", "list", "texture", "verify", "watch"} {
		assert.Contains(t, names, want)
	}

	texture, _, err := root.Find([]string{"texture"})
	require.NoError(t, err)
	var sub []string
	for _, cmd := range texture.Commands() {
		sub = append(sub, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"add", "remove", "path", "list"}, sub)
	assert.NotNil(t, root.PersistentFlags().Lookup("project"))
}

func TestCreateListOpenCurrent(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "create", "Spring Rack!")
	require.NoError(t, err)
	assert.Contains(t, out, "Spring Rack!")
	assert.Contains(t, out, env.projectDir("Spring_Rack_"))
	assert.FileExists(t, filepath.Join(env.projectDir("Spring_Rack_"), model.ManifestFile))

	_, err = env.run(t, "current")
	assert.ErrorIs(t, err, project.ErrNoCurrentProject)

	out, err = env.run(t, "list", "--json")
	require.NoError(t, err)
	var projects []model.Project
	require.NoError(t, json.Unmarshal([]byte(out), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "Spring Rack!", projects[0].Manifest.Name)

	out, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Spring Rack!")

	_, err = env.run(t, "open", "Spring_Rack_")
	require.NoError(t, err)
	out, err = env.run(t, "current")
	require.NoError(t, err)
	assert.Contains(t, out, projects[0].Manifest.ID)
}

func TestCurrentClear(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "create", "Rack", "--open")
	require.NoError(t, err)

	out, err := env.run(t, "current", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "current project cleared")

	_, err = env.run(t, "current")
	assert.ErrorIs(t, err, project.ErrNoCurrentProject)
	assert.DirExists(t, env.projectDir("Rack"))

	_, err = env.run(t, "current", "--clear")
	assert.NoError(t, err)
}

func TestOpenRejectsParentFolder(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "open", "..")
	assert.ErrorIs(t, err, project.ErrInvalidProject)
}

func TestCreateExistingFails(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "create", "Rack")
	require.NoError(t, err)
	_, err = env.run(t, "create", "Rack")
	assert.Error(t, err)
}

func TestListEmpty(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no projects")
}

func TestTextureCommands(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "create", "Rack", "--open")
	require.NoError(t, err)

	image := filepath.Join(env.scratch, "brick.png")
	require.NoError(t, os.WriteFile(image, []byte("png"), 0644))

	out, err := env.run(t, "texture", "add", "--file", image)
	require.NoError(t, err)
	assert.Contains(t, out, "brick.png")

	out, err = env.run(t, "texture", "list", "--json")
	require.NoError(t, err)
	var textures []model.Texture
	require.NoError(t, json.Unmarshal([]byte(out), &textures))
	require.Len(t, textures, 1)
	id := textures[0].ID

	out, err = env.run(t, "texture", "path", id)
	require.NoError(t, err)
	asset := filepath.Join(env.projectDir("Rack"), model.AssetsDir, "texture_"+id+".png")
	assert.Equal(t, asset, strings.TrimSpace(out))
	assert.FileExists(t, asset)

	out, err = env.run(t, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "consistent")

	orphan := filepath.Join(env.projectDir("Rack"), model.AssetsDir, "texture_stray.png")
	require.NoError(t, os.WriteFile(orphan, []byte("x"), 0644))
	out, err = env.run(t, "verify")
	assert.ErrorIs(t, err, errDrift)
	assert.Contains(t, out, "texture_stray.png")
	require.NoError(t, os.Remove(orphan))

	_, err = env.run(t, "texture", "remove", id)
	require.NoError(t, err)
	assert.NoFileExists(t, asset)

	_, err = env.run(t, "texture", "remove", id)
	assert.Error(t, err)
	_, err = env.run(t, "texture", "path", id)
	assert.Error(t, err)
}

func TestTextureAddRejectsUnsupported(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "create", "Rack", "--open")
	require.NoError(t, err)

	notes := filepath.Join(env.scratch, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("txt"), 0644))
	_, err = env.run(t, "texture", "add", "--file", notes)
	assert.ErrorIs(t, err, project.ErrUnsupportedTexture)
}

func TestTextureCommandsExplicitProject(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "create", "Rack")
	require.NoError(t, err)

	_, err = env.run(t, "texture", "list")
	assert.ErrorIs(t, err, project.ErrNoCurrentProject)

	out, err := env.run(t, "texture", "list", "--project", "Rack")
	require.NoError(t, err)
	assert.Contains(t, out, "no textures")

	// --project makes the project current.
	_, err = env.run(t, "current")
	assert.NoError(t, err)
}

func TestImportCommand(t *testing.T) {
	env := newTestEnv(t)

	src := filepath.Join(env.scratch, "incoming")
	require.NoError(t, os.MkdirAll(filepath.Join(src, model.AssetsDir), 0755))
	manifest := model.NewManifest("Shared Rack", "0190a6f0-0000-7000-8000-000000000001", time.Now().UTC())
	data, err := json.MarshalIndent(manifest, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(src, model.ManifestFile), data, 0644))

	out, err := env.run(t, "import", "--dir", src)
	require.NoError(t, err)
	assert.Contains(t, out, env.projectDir("Shared_Rack"))
	assert.DirExists(t, filepath.Join(env.projectDir("Shared_Rack"), model.AssetsDir))

	_, err = env.run(t, "import", "--dir", src)
	assert.Error(t, err)

	_, err = env.run(t, "import", "--dir", env.scratch)
	assert.ErrorIs(t, err, project.ErrInvalidProject)
}

func TestInvalidConfigFails(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"), []byte("projects_folder: a/b\n"), 0600))

	_, err := env.run(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projects_folder")
}

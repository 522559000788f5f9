package android

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhimanyu14/material-symbols/session"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))
}

func newProject(t *testing.T) *Project {
	t.Helper()
	root := t.TempDir()
	touch(t, filepath.Join(root, "settings.gradle.kts"))
	touch(t, filepath.Join(root, "app", "build.gradle.kts"))
	touch(t, filepath.Join(root, "app", "src", "main", "AndroidManifest.xml"))
	touch(t, filepath.Join(root, "lib", "core", "build.gradle"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib", "core", "src", "main", "res", "values"), 0o755))
	touch(t, filepath.Join(root, "docs", "README.md"))
	touch(t, filepath.Join(root, "bench.androidTest", "build.gradle"))
	touch(t, filepath.Join(root, "bench.androidTest", "src", "main", "AndroidManifest.xml"))
	touch(t, filepath.Join(root, ".cache", "build.gradle"))
	touch(t, filepath.Join(root, ".cache", "src", "main", "AndroidManifest.xml"))
	touch(t, filepath.Join(root, "jvm", "build.gradle"))

	p, err := Open(root)
	require.NoError(t, err)
	return p
}

func moduleNames(modules []session.Module) []string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}
	return names
}

func TestListModules(t *testing.T) {
	p := newProject(t)
	modules, err := p.ListModules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "lib:core"}, moduleNames(modules))
	assert.Equal(t, filepath.Join(p.Root, "lib", "core"), modules[1].Path)
}

func TestListModulesEmpty(t *testing.T) {
	p, err := Open(t.TempDir())
	require.NoError(t, err)
	_, err = p.ListModules(context.Background())
	assert.ErrorIs(t, err, ErrNoModules)
}

func TestOpenRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	touch(t, path)
	_, err := Open(path)
	assert.Error(t, err)
}

func TestFindModule(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()

	m, err := p.FindModule(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "app", m.Name)

	m, err = p.FindModule(ctx, ":lib:core")
	require.NoError(t, err)
	assert.Equal(t, "lib:core", m.Name)

	_, err = p.FindModule(ctx, "wear")
	assert.ErrorIs(t, err, ErrUnknownModule)
}

func TestResolveResourceDirCreatesDrawable(t *testing.T) {
	p := newProject(t)
	m, err := p.FindModule(context.Background(), "app")
	require.NoError(t, err)

	dir, err := p.ResolveResourceDir(m)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.Root, "app", "src", "main", "res", "drawable"), dir.Path)
	assert.DirExists(t, dir.Path)
}

func drawableDir(t *testing.T, p *Project) session.Dir {
	t.Helper()
	m, err := p.FindModule(context.Background(), "app")
	require.NoError(t, err)
	dir, err := p.ResolveResourceDir(m)
	require.NoError(t, err)
	return dir
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	des, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names
}

func TestAtomicWriteCommits(t *testing.T) {
	p := newProject(t)
	dir := drawableDir(t, p)

	err := p.RunAtomicWrite(context.Background(), func(ctx context.Context) error {
		f, err := p.WriteFile(dir, "ic_a_rounded_24dp.xml", "<vector a/>")
		if err != nil {
			return err
		}
		assert.Equal(t, len("<vector a/>"), f.Size)
		assert.NoFileExists(t, f.Path)
		_, err = p.WriteFile(dir, "ic_b_rounded_24dp.xml", "<vector b/>")
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ic_a_rounded_24dp.xml", "ic_b_rounded_24dp.xml"}, entries(t, dir.Path))
	data, err := os.ReadFile(filepath.Join(dir.Path, "ic_b_rounded_24dp.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<vector b/>", string(data))
}

func TestAtomicWriteRollsBack(t *testing.T) {
	p := newProject(t)
	dir := drawableDir(t, p)
	boom := errors.New("boom")

	err := p.RunAtomicWrite(context.Background(), func(ctx context.Context) error {
		if _, err := p.WriteFile(dir, "ic_a_rounded_24dp.xml", "<vector/>"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, entries(t, dir.Path))
}

func TestAtomicWriteCanceled(t *testing.T) {
	p := newProject(t)
	dir := drawableDir(t, p)
	ctx, cancel := context.WithCancel(context.Background())

	err := p.RunAtomicWrite(ctx, func(ctx context.Context) error {
		_, err := p.WriteFile(dir, "ic_a_rounded_24dp.xml", "<vector/>")
		cancel()
		return err
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, entries(t, dir.Path))
}

func TestWriteConflict(t *testing.T) {
	p := newProject(t)
	dir := drawableDir(t, p)
	existing := filepath.Join(dir.Path, "ic_a_rounded_24dp.xml")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	err := p.RunAtomicWrite(context.Background(), func(ctx context.Context) error {
		if _, err := p.WriteFile(dir, "ic_b_rounded_24dp.xml", "<vector b/>"); err != nil {
			return err
		}
		_, err := p.WriteFile(dir, "ic_a_rounded_24dp.xml", "new")
		return err
	})
	assert.ErrorIs(t, err, os.ErrExist)
	assert.Equal(t, []string{"ic_a_rounded_24dp.xml"}, entries(t, dir.Path))

	p.Overwrite = true
	err = p.RunAtomicWrite(context.Background(), func(ctx context.Context) error {
		_, err := p.WriteFile(dir, "ic_a_rounded_24dp.xml", "new")
		return err
	})
	require.NoError(t, err)
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.Equal(t, []string{"ic_a_rounded_24dp.xml"}, entries(t, dir.Path))
}

func TestWriteFileOutsideTransaction(t *testing.T) {
	p := newProject(t)
	dir := drawableDir(t, p)

	f, err := p.WriteFile(dir, "ic_x_rounded_24dp.xml", "<vector/>")
	require.NoError(t, err)
	assert.FileExists(t, f.Path)

	_, err = p.WriteFile(dir, "../escape.xml", "x")
	assert.Error(t, err)
}

func TestOpenInEditor(t *testing.T) {
	p := newProject(t)
	f := session.File{Name: "a.xml", Path: filepath.Join(p.Root, "a.xml")}

	assert.NoError(t, p.OpenInEditor(f))
	_, ok := p.EditorCommand(f)
	assert.False(t, ok)

	p.Editor = "code --wait"
	cmd, ok := p.EditorCommand(f)
	require.True(t, ok)
	assert.Equal(t, []string{"code", "--wait", f.Path}, cmd.Args)

	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX true(1)")
	}
	p.Editor = "true"
	assert.NoError(t, p.OpenInEditor(f))
}

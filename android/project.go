// Package android implements the session host on an Android project checked
// out on disk.
package android

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"

	"github.com/Abhimanyu14/material-symbols/session"
)

var (
	ErrNoModules     = errors.New("no android modules found")
	ErrUnknownModule = errors.New("unknown module")
)

const maxScanDepth = 4

var (
	testModuleSuffixes = []string{".main", ".unitTest", ".androidTest", ".screenshotTest"}
	buildFiles         = []string{"build.gradle", "build.gradle.kts"}
	skipDirs           = map[string]bool{"build": true, "node_modules": true, "gradle": true}
)

// Project is a session.Host that writes into res/drawable of a module.
type Project struct {
	Root string

	// Editor is the command used by OpenInEditor, e.g. "code --wait". Empty
	// disables opening files.
	Editor string

	// Overwrite allows replacing drawables that already exist.
	Overwrite bool

	txMu sync.Mutex
	mu   sync.Mutex
	tx   *transaction
}

var _ session.Host = (*Project)(nil)

// Open resolves root, expanding a leading ~.
func Open(root string) (*Project, error) {
	expanded, err := homedir.Expand(root)
	if err != nil {
		return nil, fmt.Errorf("failed to expand project path: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", abs)
	}
	return &Project{Root: abs}, nil
}

func (p *Project) ShowError(msg string) {
	logrus.WithField("project", p.Root).Error(msg)
}

// ListModules finds Gradle modules with an Android source set. Names use the
// Gradle path notation, e.g. "feature:home".
func (p *Project) ListModules(ctx context.Context) ([]session.Module, error) {
	var modules []session.Module

	err := filepath.WalkDir(p.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(p.Root, path)
		if err != nil {
			return err
		}
		if rel != "." {
			if strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()] || d.Name() == "src" {
				return filepath.SkipDir
			}
			if strings.Count(rel, string(filepath.Separator)) >= maxScanDepth {
				return filepath.SkipDir
			}
		}

		if isAndroidModule(path) {
			name := moduleName(p.Root, rel)
			if isTestModule(name) {
				return nil
			}
			modules = append(modules, session.Module{Name: name, Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", p.Root, err)
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoModules, p.Root)
	}

	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return modules, nil
}

// FindModule returns the module called name, or the default one when name is
// empty: "app" if present, else the first module.
func (p *Project) FindModule(ctx context.Context, name string) (session.Module, error) {
	modules, err := p.ListModules(ctx)
	if err != nil {
		return session.Module{}, err
	}
	name = strings.TrimPrefix(name, ":")
	if name == "" {
		name = "app"
		for _, m := range modules {
			if m.Name == name {
				return m, nil
			}
		}
		return modules[0], nil
	}
	for _, m := range modules {
		if m.Name == name {
			return m, nil
		}
	}
	return session.Module{}, fmt.Errorf("%w %q", ErrUnknownModule, name)
}

func isAndroidModule(dir string) bool {
	hasBuild := false
	for _, f := range buildFiles {
		if fileExists(filepath.Join(dir, f)) {
			hasBuild = true
			break
		}
	}
	if !hasBuild {
		return false
	}
	srcMain := filepath.Join(dir, "src", "main")
	return dirExists(filepath.Join(srcMain, "res")) || fileExists(filepath.Join(srcMain, "AndroidManifest.xml"))
}

func isTestModule(name string) bool {
	for _, suffix := range testModuleSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func moduleName(root, rel string) string {
	if rel == "." {
		return filepath.Base(root)
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", ":")
}

// ResolveResourceDir returns <module>/src/main/res/drawable, creating it if
// needed.
func (p *Project) ResolveResourceDir(module session.Module) (session.Dir, error) {
	res := filepath.Join(module.Path, "src", "main", "res")
	drawable := filepath.Join(res, "drawable")
	if err := os.MkdirAll(drawable, 0o755); err != nil {
		return session.Dir{}, fmt.Errorf("failed to create drawable directory: %w", err)
	}
	return session.Dir{Module: module, Path: drawable}, nil
}

// OpenInEditor runs the configured editor on file and waits for it.
func (p *Project) OpenInEditor(file session.File) error {
	cmd, ok := p.EditorCommand(file)
	if !ok {
		logrus.WithField("file", file.Path).Debug("no editor configured")
		return nil
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}

// EditorCommand builds the editor invocation for file without starting it.
func (p *Project) EditorCommand(file session.File) (*exec.Cmd, bool) {
	args := strings.Fields(p.Editor)
	if len(args) == 0 {
		return nil, false
	}
	return exec.Command(args[0], append(args[1:], file.Path)...), true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

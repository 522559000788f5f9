package session

import "context"

// Module is a project module that can receive drawables.
type Module struct {
	Name string
	Path string
}

func (m Module) String() string { return m.Name }

// Dir is a resolved resource directory inside a module.
type Dir struct {
	Module Module
	Path   string
}

// File is a written drawable.
type File struct {
	Name string
	Path string
	Size int
}

// Host is everything the session needs from the environment it runs in.
// Methods other than ShowError may be called from worker goroutines.
type Host interface {
	// ShowError surfaces a user-facing failure.
	ShowError(msg string)

	// RunAtomicWrite runs action so that the files written through WriteFile
	// during it either all appear or none do.
	RunAtomicWrite(ctx context.Context, action func(ctx context.Context) error) error

	ListModules(ctx context.Context) ([]Module, error)
	ResolveResourceDir(module Module) (Dir, error)
	WriteFile(dir Dir, name, content string) (File, error)
	OpenInEditor(file File) error
}

package tui

import (
	"github.com/Abhimanyu14/material-symbols/session"
	"github.com/Abhimanyu14/material-symbols/symbol"
)

type Mode int

const (
	ListMode Mode = iota
	SearchMode
	OptionsMode
	ModulePickerMode
	HelpMode
)

type CatalogLoadedMsg struct {
	Count int
	Error error
}

type ModulesLoadedMsg struct {
	Modules []session.Module
	Error   error
}

// FilterAppliedMsg carries a filtered view computed off the UI loop. Seq
// identifies the keystroke it was computed for.
type FilterAppliedMsg struct {
	Seq   int
	Text  string
	Icons []symbol.Icon
}

type ConfirmDoneMsg struct {
	Files []session.File
	Error error
}

// DispatchMsg runs Fn on the UI loop. Cache notifications arrive this way.
type DispatchMsg struct {
	Fn func()
}

type HostErrorMsg struct {
	Message string
}

type OpenEditorMsg struct {
	File session.File
}

type EditorClosedMsg struct {
	File  session.File
	Error error
}

type StatusTickMsg struct {
	ID int
}

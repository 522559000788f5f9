package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Abhimanyu14/material-symbols/android"
	"github.com/Abhimanyu14/material-symbols/session"
)

// host is the project as seen from the picker: errors go to the status bar
// and editors run in the foreground through the program.
type host struct {
	*android.Project
	send func(tea.Msg)
}

func (h *host) ShowError(msg string) {
	h.Project.ShowError(msg)
	h.send(HostErrorMsg{Message: msg})
}

func (h *host) OpenInEditor(file session.File) error {
	h.send(OpenEditorMsg{File: file})
	return nil
}

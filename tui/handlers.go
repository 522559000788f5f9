package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/Abhimanyu14/material-symbols/session"
	"github.com/Abhimanyu14/material-symbols/symbol"
)

func (a *App) handleKeyPress(key string) tea.Cmd {
	// Global
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "?":
		if a.currentMode != SearchMode {
			return a.toggleHelp()
		}
	}

	switch a.currentMode {
	case ListMode:
		return a.handleListKeys(key)
	case SearchMode:
		return a.handleSearchKeys(key)
	case OptionsMode:
		return a.handleOptionsKeys(key)
	case ModulePickerMode:
		return a.handleModulePickerKeys(key)
	case HelpMode:
		return a.handleHelpKeys(key)
	}

	return nil
}

func (a *App) handleListKeys(key string) tea.Cmd {
	n := len(a.session.State().Filtered())

	switch key {
	case "q":
		return tea.Quit
	case "esc":
		return a.handleEscape()
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "pgup":
		a.moveCursor(-10)
	case "pgdown", "pgdn":
		a.moveCursor(10)
	case "home", "g":
		a.moveCursor(-n)
	case "end", "G":
		a.moveCursor(n)
	case " ", "space":
		icon, ok := a.currentIcon()
		if !ok {
			return nil
		}
		state := a.session.State()
		state.ToggleSelect(icon, !state.IsSelected(icon))
		return a.setStatus(fmt.Sprintf("Selected: %d icon(s)", len(state.Selected())), 1)
	case "c":
		a.session.State().ClearSelection()
		return a.setStatus("Selection cleared", 1)
	case "r":
		n := a.retryPreviews()
		if n == 0 {
			return nil
		}
		return a.setStatus(fmt.Sprintf("Retrying %d preview(s)", n), 2)
	case "/":
		a.currentMode = SearchMode
	case "o":
		a.currentMode = OptionsMode
	case "left", "h":
		a.changeOption(-1)
	case "right", "l":
		a.changeOption(1)
	case "m":
		if len(a.modules) == 0 {
			a.setError("No modules found", a.project.Root)
			return nil
		}
		a.currentMode = ModulePickerMode
	case "enter":
		return a.confirm()
	}

	return nil
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clampCursor()
	a.requestPreviews()
}

func (a *App) handleSearchKeys(key string) tea.Cmd {
	switch key {
	case "enter":
		a.currentMode = ListMode
		return nil
	case "esc":
		a.currentMode = ListMode
		if a.query == "" {
			return nil
		}
		a.query = ""
	case "backspace":
		if a.query == "" {
			return nil
		}
		r := []rune(a.query)
		a.query = string(r[:len(r)-1])
	case "ctrl+u":
		a.query = ""
	default:
		if len([]rune(key)) != 1 {
			return nil
		}
		a.query += key
	}

	return a.refilter()
}

func (a *App) handleOptionsKeys(key string) tea.Cmd {
	switch key {
	case "q":
		return tea.Quit
	case "up", "k", "shift+tab":
		a.optionFocus = (a.optionFocus + len(optionNames) - 1) % len(optionNames)
	case "down", "j", "tab", "o":
		a.optionFocus = (a.optionFocus + 1) % len(optionNames)
	case "left", "h":
		a.changeOption(-1)
	case "right", "l", " ":
		a.changeOption(1)
	case "enter", "esc":
		a.currentMode = ListMode
	}
	return nil
}

func (a *App) handleModulePickerKeys(key string) tea.Cmd {
	switch key {
	case "q":
		return tea.Quit
	case "up", "k":
		if a.moduleCursor > 0 {
			a.moduleCursor--
		}
	case "down", "j":
		if a.moduleCursor < len(a.modules)-1 {
			a.moduleCursor++
		}
	case "enter":
		a.setModule(a.moduleCursor)
		a.currentMode = ListMode
		return a.setStatus("Saving to "+a.module.Name, 2)
	case "esc":
		a.currentMode = ListMode
	}
	return nil
}

func (a *App) handleHelpKeys(key string) tea.Cmd {
	if key == "esc" || key == "q" {
		a.currentMode = a.previousMode
	}
	return nil
}

func (a *App) toggleHelp() tea.Cmd {
	if a.currentMode == HelpMode {
		a.currentMode = a.previousMode
	} else {
		a.previousMode = a.currentMode
		a.currentMode = HelpMode
	}
	return nil
}

func (a *App) handleEscape() tea.Cmd {
	if a.statusMessage != "" {
		a.statusMessage = ""
		a.statusID++
	}
	return nil
}

// cycle steps through values from cur, wrapping at both ends.
func cycle[T comparable](values []T, cur T, delta int) T {
	i := max(slices.Index(values, cur), 0)
	n := len(values)
	return values[((i+delta)%n+n)%n]
}

// changeOption steps the focused option. Previews for the new options are
// requested right away, failed ones included; rasters already drawn for them
// come from the cache.
func (a *App) changeOption(delta int) {
	state := a.session.State()
	opts := state.Options()

	switch a.optionFocus {
	case optStyle:
		opts = opts.WithStyle(cycle(symbol.Styles(), opts.Style, delta))
	case optWeight:
		opts = opts.WithWeight(cycle(symbol.Weights(), opts.Weight, delta))
	case optGrade:
		opts = opts.WithGrade(cycle(symbol.Grades(), opts.Grade, delta))
	case optSize:
		opts = opts.WithSize(cycle(symbol.Sizes(), opts.Size, delta))
	case optFilled:
		opts = opts.WithFilled(!opts.Filled)
	}

	state.SetOptions(opts)
	a.retryPreviews()
}

// confirm saves the selection into the chosen module off the UI loop.
func (a *App) confirm() tea.Cmd {
	if a.saving {
		return nil
	}
	if a.module == nil {
		a.setError("No target module", "press m to choose one")
		return nil
	}
	n := len(a.session.State().Selected())
	if n == 0 {
		a.setError("Nothing selected", "press space to select icons")
		return nil
	}

	a.saving = true
	a.statusMessage = fmt.Sprintf("Saving %d icon(s) to %s...", n, a.module.Name)
	a.statusID++

	s, module := a.session, *a.module
	return func() tea.Msg {
		files, err := s.Confirm(context.Background(), module)
		return ConfirmDoneMsg{Files: files, Error: err}
	}
}

func (a *App) handleConfirmDone(msg ConfirmDoneMsg) tea.Cmd {
	a.saving = false
	if msg.Error != nil {
		if !errors.Is(msg.Error, session.ErrDisposed) {
			a.setError(msg.Error.Error(), "")
		}
		return nil
	}

	var total uint64
	for _, f := range msg.Files {
		total += uint64(f.Size)
	}
	a.session.State().ClearSelection()

	status := fmt.Sprintf("%s Saved %d drawable(s) (%s)", IconCheck, len(msg.Files), humanize.Bytes(total))
	if a.module != nil {
		status += " to " + a.module.Name
	}
	return a.setStatus(status, 5)
}

// openEditor runs the configured editor in the foreground. Without one the
// file just stays saved.
func (a *App) openEditor(file session.File) tea.Cmd {
	cmd, ok := a.project.EditorCommand(file)
	if !ok {
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return EditorClosedMsg{File: file, Error: err}
	})
}

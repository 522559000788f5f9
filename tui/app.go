package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/Abhimanyu14/material-symbols/android"
	"github.com/Abhimanyu14/material-symbols/config"
	"github.com/Abhimanyu14/material-symbols/fetcher"
	"github.com/Abhimanyu14/material-symbols/render"
	"github.com/Abhimanyu14/material-symbols/session"
	"github.com/Abhimanyu14/material-symbols/symbol"
)

// Options wires the picker to a project and to the remote sources.
type Options struct {
	Config   *config.Config
	Project  *android.Project
	Module   string
	Defaults symbol.Options
	Catalog  *fetcher.Catalog
	Assets   *fetcher.Assets
}

type App struct {
	session *session.Session
	project *android.Project
	layout  *Layout
	theme   *Theme

	currentMode  Mode
	previousMode Mode

	cursor      int
	query       string
	filterSeq   int
	optionFocus int

	modules      []session.Module
	moduleCursor int
	module       *session.Module
	wantModule   string

	previewPx   int
	pending     map[render.RasterKey]bool
	previewErrs map[symbol.PreviewKey]error

	loading bool
	saving  bool

	statusMessage string
	statusID      int
}

func NewApp(s *session.Session, project *android.Project, module string, previewPx int) *App {
	return &App{
		session:     s,
		project:     project,
		layout:      NewLayout(),
		theme:       DefaultTheme(),
		currentMode: ListMode,
		wantModule:  module,
		previewPx:   previewPx,
		pending:     make(map[render.RasterKey]bool),
		previewErrs: make(map[symbol.PreviewKey]error),
		loading:     true,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCatalog(), a.loadModules())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.layout.Update(msg.Width, msg.Height)
		a.requestPreviews()

	case tea.KeyMsg:
		if cmd := a.handleKeyPress(msg.String()); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case CatalogLoadedMsg:
		a.loading = false
		if msg.Error != nil {
			if !errors.Is(msg.Error, session.ErrDisposed) {
				a.setError("Failed to load the icon catalog", msg.Error.Error())
			}
			break
		}
		a.clampCursor()
		a.requestPreviews()
		cmds = append(cmds, a.setStatus(fmt.Sprintf("Loaded %s icons", humanize.Comma(int64(msg.Count))), 3))

	case ModulesLoadedMsg:
		if msg.Error != nil {
			a.setError("Failed to list modules", msg.Error.Error())
			break
		}
		a.modules = msg.Modules
		a.pickModule()

	case FilterAppliedMsg:
		if msg.Seq != a.filterSeq {
			logrus.WithFields(logrus.Fields{"seq": msg.Seq, "current": a.filterSeq}).Debug("dropping stale filter")
			break
		}
		a.session.State().ApplyFilter(msg.Text, msg.Icons)
		a.clampCursor()
		a.requestPreviews()

	case DispatchMsg:
		msg.Fn()

	case HostErrorMsg:
		a.setError(msg.Message, "")

	case OpenEditorMsg:
		if cmd := a.openEditor(msg.File); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case EditorClosedMsg:
		if msg.Error != nil {
			a.setError("Editor exited with an error", msg.Error.Error())
		}

	case ConfirmDoneMsg:
		if cmd := a.handleConfirmDone(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case StatusTickMsg:
		if msg.ID == a.statusID {
			a.statusMessage = ""
		}
	}

	return a, tea.Batch(cmds...)
}

func (a *App) loadCatalog() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		err := s.LoadCatalog(context.Background())
		return CatalogLoadedMsg{Count: s.State().CatalogSize(), Error: err}
	}
}

func (a *App) loadModules() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		modules, err := s.Modules(context.Background())
		return ModulesLoadedMsg{Modules: modules, Error: err}
	}
}

// pickModule selects the requested module, falling back to "app" and then to
// the first module found.
func (a *App) pickModule() {
	want := strings.TrimPrefix(a.wantModule, ":")
	if want == "" {
		want = "app"
	}
	for i, m := range a.modules {
		if m.Name == want {
			a.setModule(i)
			return
		}
	}
	if a.wantModule != "" {
		a.setError("Unknown module", a.wantModule)
	}
	if len(a.modules) > 0 {
		a.setModule(0)
	}
}

func (a *App) setModule(i int) {
	m := a.modules[i]
	a.module = &m
	a.moduleCursor = i
}

// refilter recomputes the view for the current query off the UI loop. Results
// for older queries are dropped on arrival.
func (a *App) refilter() tea.Cmd {
	a.filterSeq++
	seq, text := a.filterSeq, a.query
	catalog := a.session.State().Catalog()
	return func() tea.Msg {
		return FilterAppliedMsg{Seq: seq, Text: text, Icons: session.FilterIcons(catalog, text)}
	}
}

func (a *App) clampCursor() {
	n := len(a.session.State().Filtered())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) currentIcon() (symbol.Icon, bool) {
	icons := a.session.State().Filtered()
	if a.cursor < 0 || a.cursor >= len(icons) {
		return symbol.Icon{}, false
	}
	return icons[a.cursor], true
}

// visibleRange returns the window of the filtered list shown in rows lines.
func (a *App) visibleRange(n, rows int) (start, end int) {
	if a.cursor >= rows {
		start = a.cursor - rows + 1
	}
	end = min(start+rows, n)
	return start, end
}

// requestPreviews starts loading the rasters of the visible rows. Each one
// is requested at most once while it is in flight; failed ones are not
// requested again.
func (a *App) requestPreviews() {
	icons := a.session.State().Filtered()
	start, end := a.visibleRange(len(icons), a.layout.Calculate(a.previewPx).ListRows)
	opts := a.session.State().Options()
	for _, icon := range icons[start:end] {
		a.requestPreview(icon, opts)
	}
}

// retryPreviews forgets failed previews so the visible rows request them
// again, and reports how many were dropped.
func (a *App) retryPreviews() int {
	n := len(a.previewErrs)
	clear(a.previewErrs)
	a.requestPreviews()
	return n
}

func (a *App) requestPreview(icon symbol.Icon, opts symbol.Options) {
	key := symbol.PreviewKeyFor(icon, opts)
	rk := render.RasterKey{Preview: key, Px: a.previewPx}
	if a.pending[rk] || a.previewErrs[key] != nil {
		return
	}

	a.pending[rk] = true
	_, ok := a.session.RequestPreview(icon, opts, a.previewPx, func(_ image.Image, err error) {
		delete(a.pending, rk)
		if err != nil {
			a.previewErrs[key] = err
			logrus.WithError(err).WithField("preview", key.String()).Debug("preview failed")
		}
	})
	if ok {
		delete(a.pending, rk)
	}
}

func (a *App) setStatus(message string, seconds int) tea.Cmd {
	a.statusMessage = message
	a.statusID++
	id := a.statusID
	return tea.Tick(time.Duration(seconds)*time.Second, func(time.Time) tea.Msg {
		return StatusTickMsg{ID: id}
	})
}

func (a *App) setError(message, details string) {
	errorMsg := message
	if details != "" {
		errorMsg += ": " + details
	}
	a.statusMessage = IconCross + " " + errorMsg
	a.statusID++
}

func (a *App) View() string {
	if !a.layout.IsMinimumSize() {
		return "Terminal too small. Minimum size: 60x20"
	}
	if a.currentMode == HelpMode {
		return a.renderHelp()
	}

	layout := a.layout.Calculate(a.previewPx)

	var left string
	if a.currentMode == ModulePickerMode {
		left = a.renderModulePicker(layout.ListPanelWidth, layout.ContentHeight)
	} else {
		left = a.renderIconList(layout.ListPanelWidth, layout.ContentHeight, layout.ListRows)
	}

	mainContent := left
	if layout.ShowPreview {
		mainContent = lipgloss.JoinHorizontal(
			lipgloss.Top,
			left,
			a.renderPreviewPanel(layout.PreviewPanelWidth, layout.ContentHeight),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		mainContent,
		a.renderStatusBar(),
	)
}

func (a *App) panelStyle(width, height int, active bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(a.theme.PanelBorder).
		Width(width-2).
		Height(height-2).
		Padding(0, 1)
	if active {
		return style.BorderForeground(ColorPrimary)
	}
	return style.BorderForeground(ColorBorder)
}

func (a *App) renderIconList(width, height, rows int) string {
	theme := a.theme
	state := a.session.State()
	icons := state.Filtered()
	opts := state.Options()

	var lines []string

	header := IconSymbols + " Material Symbols"
	if n := len(state.Selected()); n > 0 {
		header += " " + StatusBadge(fmt.Sprintf("%d selected", n), "info", theme)
	}
	lines = append(lines, theme.HeaderStyle.Render(header))

	switch {
	case a.currentMode == SearchMode:
		lines = append(lines, IconSearch+" "+a.query+theme.FocusedStyle.Render("_"))
	case a.query != "":
		lines = append(lines, IconSearch+" "+theme.HighlightStyle.Render(a.query))
	default:
		lines = append(lines, theme.MutedTextStyle.Render(IconSearch+" press / to search"))
	}
	lines = append(lines, Separator(width-6, "─", ColorBorderLight))

	start, end := a.visibleRange(len(icons), rows)
	nameWidth := max(width-14, 10)

	for i := start; i < end; i++ {
		icon := icons[i]

		var line string
		if i == a.cursor {
			line = IconArrowRight + " "
		} else {
			line = "  "
		}

		if state.IsSelected(icon) {
			line += theme.CheckedStyle.Render("[" + IconCheck + "] ")
		} else {
			line += theme.MutedTextStyle.Render("[ ] ")
		}

		if img, ok := a.session.Previews().Lookup(symbol.PreviewKeyFor(icon, opts), a.previewPx); ok {
			line += renderThumbnail(img, theme)
		} else {
			line += theme.MutedTextStyle.Render(strings.Repeat("·", thumbCols))
		}
		line += " "

		title := truncate(icon.Title, nameWidth)
		if i == a.cursor {
			line += theme.SelectedItemStyle.Render(title)
		} else {
			line += theme.NormalTextStyle.Render(title)
		}
		lines = append(lines, line)
	}

	if a.loading {
		lines = append(lines, theme.MutedTextStyle.Render("Loading catalog..."))
	} else if len(icons) == 0 {
		lines = append(lines, theme.MutedTextStyle.Render("No icons match"))
	}

	contentHeight := height - 2
	for len(lines) < contentHeight-1 {
		lines = append(lines, "")
	}

	footer := fmt.Sprintf("%d/%s icons", min(a.cursor+1, len(icons)), humanize.Comma(int64(len(icons))))
	if len(icons) > rows {
		footer += fmt.Sprintf(" │ %d%%", a.cursor*100/max(len(icons)-1, 1))
	}
	lines = append(lines, theme.MutedTextStyle.Render(footer))

	active := a.currentMode == ListMode || a.currentMode == SearchMode
	return a.panelStyle(width, height, active).Render(strings.Join(lines, "\n"))
}

func (a *App) renderModulePicker(width, height int) string {
	theme := a.theme
	var lines []string

	lines = append(lines, theme.HeaderStyle.Render(IconModule+" Target module"))
	lines = append(lines, Separator(width-6, "─", ColorBorderLight))

	for i, m := range a.modules {
		line := "  "
		if i == a.moduleCursor {
			line = IconArrowRight + " "
		}
		name := m.Name
		if a.module != nil && a.module.Name == m.Name {
			name += " " + IconCheck
		}
		rel, err := filepath.Rel(a.project.Root, m.Path)
		if err != nil {
			rel = m.Path
		}
		if i == a.moduleCursor {
			line += theme.SelectedItemStyle.Render(name)
		} else {
			line += theme.NormalTextStyle.Render(name)
		}
		line += " " + theme.MutedTextStyle.Render(truncate(rel, max(width-len(name)-10, 8)))
		lines = append(lines, line)
	}

	return a.panelStyle(width, height, true).Render(strings.Join(lines, "\n"))
}

var optionNames = []string{"Style", "Weight", "Grade", "Size", "Filled"}

const (
	optStyle = iota
	optWeight
	optGrade
	optSize
	optFilled
)

func optionValue(opts symbol.Options, field int) string {
	switch field {
	case optStyle:
		return opts.Style.Label()
	case optWeight:
		return opts.Weight.Label()
	case optGrade:
		return opts.Grade.Label()
	case optSize:
		return opts.Size.Label()
	default:
		if opts.Filled {
			return "on"
		}
		return "off"
	}
}

func (a *App) renderPreviewPanel(width, height int) string {
	theme := a.theme
	state := a.session.State()
	opts := state.Options()

	var lines []string
	lines = append(lines, theme.HeaderStyle.Render("Preview"))
	lines = append(lines, Separator(width-6, "─", ColorBorderLight))

	icon, ok := a.currentIcon()
	if ok {
		key := symbol.PreviewKeyFor(icon, opts)
		lines = append(lines, theme.TitleStyle.Render(truncate(icon.Title, width-8)))
		if img, ok := a.session.Previews().Lookup(key, a.previewPx); ok {
			lines = append(lines, RenderPreview(img, theme))
		} else if err := a.previewErrs[key]; err != nil {
			lines = append(lines, ErrorText("Preview unavailable", theme))
		} else {
			lines = append(lines, theme.MutedTextStyle.Render("Loading preview..."))
		}
		lines = append(lines, theme.MutedTextStyle.Render(truncate(symbol.FileName(icon, opts), width-6)))
	} else {
		lines = append(lines, theme.MutedTextStyle.Render("No icon selected"))
	}
	lines = append(lines, "")

	for i, name := range optionNames {
		label := theme.OptionLabelStyle.Render(name)
		value := optionValue(opts, i)
		if a.currentMode == OptionsMode && i == a.optionFocus {
			value = theme.FocusedStyle.Render(IconArrowLeft + " " + value + " " + IconArrowRight)
		} else {
			value = theme.OptionValueStyle.Render(value)
		}
		lines = append(lines, label+" "+value)
	}
	lines = append(lines, "")

	module := theme.MutedTextStyle.Render("(none)")
	if a.module != nil {
		module = theme.NormalTextStyle.Render(a.module.Name)
	}
	lines = append(lines, theme.OptionLabelStyle.Render("Module")+" "+module)

	return a.panelStyle(width, height, a.currentMode == OptionsMode).Render(strings.Join(lines, "\n"))
}

func (a *App) renderStatusBar() string {
	return a.theme.StatusBarStyle.Render(a.statusLine())
}

func (a *App) statusLine() string {
	theme := a.theme
	separator := theme.MutedTextStyle.Render(" │ ")

	if a.statusMessage != "" {
		if strings.HasPrefix(a.statusMessage, IconCross) {
			dismissHelp := theme.MutedTextStyle.Render(" │ Press ESC to dismiss")
			return theme.ErrorStyle.Render(a.statusMessage) + dismissHelp
		}
		if rest, ok := strings.CutPrefix(a.statusMessage, IconCheck); ok {
			return SuccessText(strings.TrimSpace(rest), theme)
		}
		return theme.NormalTextStyle.Render(a.statusMessage)
	}

	var hints []string

	switch a.currentMode {
	case ListMode:
		hints = []string{
			KeyHelp("↑↓", "navigate", theme),
			KeyHelp("Space", "select", theme),
			KeyHelp("/", "search", theme),
			KeyHelp("o", "options", theme),
			KeyHelp("←→", "change", theme),
			KeyHelp("m", "module", theme),
			KeyHelp("r", "retry", theme),
			KeyHelp("Enter", "save", theme),
			KeyHelp("?", "help", theme),
			KeyHelp("q", "quit", theme),
		}
	case SearchMode:
		hints = []string{
			KeyHelp("Type", "search", theme),
			KeyHelp("Enter", "done", theme),
			KeyHelp("Esc", "clear", theme),
			KeyHelp("Ctrl+U", "erase", theme),
		}
	case OptionsMode:
		hints = []string{
			KeyHelp("↑↓", "option", theme),
			KeyHelp("←→", "change", theme),
			KeyHelp("Enter/Esc", "done", theme),
		}
	case ModulePickerMode:
		hints = []string{
			KeyHelp("↑↓", "navigate", theme),
			KeyHelp("Enter", "choose", theme),
			KeyHelp("Esc", "cancel", theme),
		}
	default:
		return SuccessText("Ready", theme)
	}

	return strings.Join(hints, separator)
}

func (a *App) renderHelp() string {
	return helpBox + "\n\n" + a.theme.HelpStyle.Render("Press esc to return...")
}

const helpBox = `╔══════════════════════════════════════════════════════════════╗
║                     symbolPicker Help                        ║
╠══════════════════════════════════════════════════════════════╣
║ Icon list:                                                   ║
║   ↑/↓, k/j    Move                                           ║
║   PgUp/PgDn   Page up/down                                   ║
║   Space       Select or unselect icon                        ║
║   c           Clear the selection                            ║
║   r           Retry failed previews                          ║
║   /           Search by title                                ║
║   ←/→, h/l    Change the focused option                      ║
║   o           Edit options                                   ║
║   m           Choose the target module                       ║
║   Enter       Save the selection as drawables                ║
║                                                              ║
║ Options:                                                     ║
║   ↑/↓, k/j    Focus style, weight, grade, size or fill       ║
║   ←/→, h/l    Change value                                   ║
║   Enter, Esc  Back to the list                               ║
║                                                              ║
║ Search:                                                      ║
║   Type        Filter icons                                   ║
║   Enter       Keep filter                                    ║
║   Esc         Clear filter                                   ║
║   Ctrl+U      Erase query                                    ║
║                                                              ║
║ Global:                                                      ║
║   ?           Show/hide this help                            ║
║   q, Ctrl+C   Quit                                           ║
╚══════════════════════════════════════════════════════════════╝`

func initLogging() error {
	logDir := filepath.Join(os.TempDir(), "symbolPicker")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}
	logFile := filepath.Join(logDir, "tui.log")
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	logrus.SetOutput(f)
	logrus.WithField("ts", time.Now().Format(time.RFC3339)).Info("tui session start")
	return nil
}

// Run shows the picker until the user quits, then disposes the session.
func Run(opts Options) error {
	if err := initLogging(); err != nil {
		return err
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var p *tea.Program
	send := func(msg tea.Msg) { p.Send(msg) }

	s := session.New(context.Background(), session.Config{
		AssetHost: cfg.AssetHost,
		Workers:   cfg.Workers,
		Options:   opts.Defaults,
		Dispatch:  func(fn func()) { send(DispatchMsg{Fn: fn}) },
	}, session.Deps{
		Host:    &host{Project: opts.Project, send: send},
		Catalog: opts.Catalog,
		SVG:     opts.Assets,
		Text:    opts.Assets,
	})
	defer s.Dispose()

	app := NewApp(s, opts.Project, opts.Module, cfg.PreviewPx)
	p = tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

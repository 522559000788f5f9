package tui

type Layout struct {
	WindowWidth  int
	WindowHeight int
	Breakpoints  LayoutBreakpoints
}

type LayoutBreakpoints struct {
	MinWidth     int
	MinHeight    int
	PreviewWidth int
}

type AdaptiveLayout struct {
	ListPanelWidth    int
	PreviewPanelWidth int
	ContentHeight     int
	ListRows          int
	ShowPreview       bool
}

func NewLayout() *Layout {
	return &Layout{
		Breakpoints: LayoutBreakpoints{
			MinWidth:     60,
			MinHeight:    20,
			PreviewWidth: 90,
		},
	}
}

func (l *Layout) Update(width, height int) {
	l.WindowWidth = width
	l.WindowHeight = height
}

// Calculate splits the window for a preview of previewPx pixels. The preview
// panel is dropped when the list would get too narrow.
func (l *Layout) Calculate(previewPx int) AdaptiveLayout {
	contentHeight := l.WindowHeight - 1

	previewWidth := 0
	if l.WindowWidth >= l.Breakpoints.PreviewWidth {
		previewWidth = max(previewPx+6, 36)
		if l.WindowWidth-previewWidth < 40 {
			previewWidth = 0
		}
	}

	listWidth := l.WindowWidth - previewWidth

	// border, header, separator, footer
	listRows := max(contentHeight-5, 1)

	return AdaptiveLayout{
		ListPanelWidth:    listWidth,
		PreviewPanelWidth: previewWidth,
		ContentHeight:     contentHeight,
		ListRows:          listRows,
		ShowPreview:       previewWidth > 0,
	}
}

func (l *Layout) IsMinimumSize() bool {
	return l.WindowWidth >= l.Breakpoints.MinWidth &&
		l.WindowHeight >= l.Breakpoints.MinHeight
}

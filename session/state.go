package session

import (
	"context"
	"strings"
	"sync"

	"github.com/Abhimanyu14/material-symbols/symbol"
)

// CatalogSource lists icon names. *fetcher.Catalog implements it.
type CatalogSource interface {
	FetchNames(ctx context.Context) ([]string, error)
}

// State holds the catalog, the filtered view, the selection and the current
// options. It is safe for concurrent use.
type State struct {
	loadMu sync.Mutex

	mu       sync.RWMutex
	loaded   bool
	catalog  []symbol.Icon
	filter   string
	filtered []symbol.Icon
	selected []symbol.Icon
	members  map[string]struct{}
	opts     symbol.Options
}

func NewState(opts symbol.Options) *State {
	return &State{
		members: make(map[string]struct{}),
		opts:    opts,
	}
}

// LoadCatalog fetches the catalog once. Later calls, including concurrent
// ones, return without fetching again. On error the state stays empty.
func (s *State) LoadCatalog(ctx context.Context, src CatalogSource) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.Loaded() {
		return nil
	}

	names, err := src.FetchNames(ctx)
	if err != nil {
		return err
	}
	icons := symbol.Icons(names)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = icons
	s.filtered = FilterIcons(icons, s.filter)
	s.loaded = true
	return nil
}

func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// FilterIcons keeps the icons whose title contains text, ignoring case. Blank
// text keeps everything. The result never aliases icons.
func FilterIcons(icons []symbol.Icon, text string) []symbol.Icon {
	needle := strings.ToLower(strings.TrimSpace(text))
	out := make([]symbol.Icon, 0, len(icons))
	for _, icon := range icons {
		if needle == "" || strings.Contains(strings.ToLower(icon.Title), needle) {
			out = append(out, icon)
		}
	}
	return out
}

// SetFilter recomputes the filtered view. The selection is untouched.
func (s *State) SetFilter(text string) []symbol.Icon {
	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()

	view := FilterIcons(catalog, text)
	s.ApplyFilter(text, view)
	return view
}

// ApplyFilter publishes a view computed elsewhere with FilterIcons.
func (s *State) ApplyFilter(text string, view []symbol.Icon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = text
	s.filtered = view
}

func (s *State) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Catalog returns a copy of the full catalog.
func (s *State) Catalog() []symbol.Icon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]symbol.Icon(nil), s.catalog...)
}

func (s *State) CatalogSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.catalog)
}

// Filtered returns a copy of the current view.
func (s *State) Filtered() []symbol.Icon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]symbol.Icon(nil), s.filtered...)
}

// ToggleSelect adds or removes icon. Selection order is kept.
func (s *State) ToggleSelect(icon symbol.Icon, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, member := s.members[icon.Key()]
	switch {
	case selected && !member:
		s.members[icon.Key()] = struct{}{}
		s.selected = append(s.selected, icon)
	case !selected && member:
		delete(s.members, icon.Key())
		for i, sel := range s.selected {
			if sel.Equal(icon) {
				s.selected = append(s.selected[:i], s.selected[i+1:]...)
				break
			}
		}
	}
}

func (s *State) IsSelected(icon symbol.Icon) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[icon.Key()]
	return ok
}

// Selected returns the selection in the order icons were picked.
func (s *State) Selected() []symbol.Icon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]symbol.Icon(nil), s.selected...)
}

func (s *State) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.members = make(map[string]struct{})
}

func (s *State) Options() symbol.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

func (s *State) SetOptions(opts symbol.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}

package symbol

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Icon is a catalog entry. Identity is Name alone; Title is derived for display
// and must never take part in comparisons.
type Icon struct {
	Name  string
	Title string
}

func NewIcon(name string) Icon {
	return Icon{Name: name, Title: TitleFor(name)}
}

// Icons converts catalog names into icons, preserving order.
func Icons(names []string) []Icon {
	icons := make([]Icon, 0, len(names))
	for _, n := range names {
		icons = append(icons, NewIcon(n))
	}
	return icons
}

// TitleFor turns "arrow_back" into "Arrow back".
func TitleFor(name string) string {
	t := strings.ReplaceAll(name, "_", " ")
	r, size := utf8.DecodeRuneInString(t)
	if r == utf8.RuneError {
		return t
	}
	return string(unicode.ToTitle(r)) + t[size:]
}

func (i Icon) Key() string { return i.Name }

func (i Icon) Equal(other Icon) bool { return i.Name == other.Name }

func (i Icon) String() string { return i.Name }

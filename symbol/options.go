package symbol

import (
	"fmt"
	"strconv"
	"strings"
)

// Style selects the icon family variant.
type Style int

const (
	StyleOutlined Style = iota
	StyleRounded
	StyleSharp
)

var styleWire = map[Style]string{
	StyleOutlined: "outlined",
	StyleRounded:  "rounded",
	StyleSharp:    "sharp",
}

// Styles returns every style in display order.
func Styles() []Style {
	return []Style{StyleOutlined, StyleRounded, StyleSharp}
}

// Wire is the lowercase form used in asset paths and file names.
func (s Style) Wire() string {
	if w, ok := styleWire[s]; ok {
		return w
	}
	return styleWire[DefaultStyle]
}

// Label is the human form shown in pickers, e.g. "Rounded".
func (s Style) Label() string {
	w := s.Wire()
	return strings.ToUpper(w[:1]) + w[1:]
}

func ParseStyle(v string) (Style, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for s, w := range styleWire {
		if w == v {
			return s, nil
		}
	}
	return DefaultStyle, fmt.Errorf("invalid style: %q", v)
}

// Weight is the stroke weight, 100 through 700.
type Weight int

const (
	Weight100 Weight = 100
	Weight200 Weight = 200
	Weight300 Weight = 300
	Weight400 Weight = 400
	Weight500 Weight = 500
	Weight600 Weight = 600
	Weight700 Weight = 700
)

func Weights() []Weight {
	return []Weight{Weight100, Weight200, Weight300, Weight400, Weight500, Weight600, Weight700}
}

func (w Weight) Value() int { return int(w) }

func (w Weight) Label() string { return strconv.Itoa(int(w)) }

func ParseWeight(v string) (Weight, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return DefaultWeight, fmt.Errorf("invalid weight: %q", v)
	}
	for _, w := range Weights() {
		if int(w) == n {
			return w, nil
		}
	}
	return DefaultWeight, fmt.Errorf("invalid weight: %d", n)
}

// Grade adjusts stroke thickness without changing the glyph size.
type Grade int

const (
	GradeNegative25 Grade = -25
	Grade0          Grade = 0
	Grade200        Grade = 200
)

func Grades() []Grade {
	return []Grade{GradeNegative25, Grade0, Grade200}
}

func (g Grade) Value() int { return int(g) }

func (g Grade) Label() string { return strconv.Itoa(int(g)) }

// Segment encodes the grade for asset paths: "grad200", "gradN25".
func (g Grade) Segment() string {
	if g < 0 {
		return "gradN" + strconv.Itoa(-int(g))
	}
	return "grad" + strconv.Itoa(int(g))
}

// fileSuffix encodes the grade for file names: "_g200", "_gn25".
func (g Grade) fileSuffix() string {
	if g < 0 {
		return "_gn" + strconv.Itoa(-int(g))
	}
	return "_g" + strconv.Itoa(int(g))
}

func ParseGrade(v string) (Grade, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return DefaultGrade, fmt.Errorf("invalid grade: %q", v)
	}
	for _, g := range Grades() {
		if int(g) == n {
			return g, nil
		}
	}
	return DefaultGrade, fmt.Errorf("invalid grade: %d", n)
}

// Size is the optical size in dp, which is also the asset pixel size.
type Size int

const (
	Size20 Size = 20
	Size24 Size = 24
	Size40 Size = 40
	Size48 Size = 48
)

func Sizes() []Size {
	return []Size{Size20, Size24, Size40, Size48}
}

func (s Size) Value() int { return int(s) }

func (s Size) Label() string { return strconv.Itoa(int(s)) + " dp" }

func ParseSize(v string) (Size, error) {
	v = strings.TrimSuffix(strings.TrimSpace(strings.ToLower(v)), "dp")
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return DefaultSize, fmt.Errorf("invalid size: %q", v)
	}
	for _, s := range Sizes() {
		if int(s) == n {
			return s, nil
		}
	}
	return DefaultSize, fmt.Errorf("invalid size: %d", n)
}

const (
	DefaultFilled = false
	DefaultGrade  = Grade0
	DefaultSize   = Size24
	DefaultStyle  = StyleRounded
	DefaultWeight = Weight400
)

// Options is an immutable set of render options. The With* methods return
// modified copies.
type Options struct {
	Filled bool
	Grade  Grade
	Size   Size
	Style  Style
	Weight Weight
}

func DefaultOptions() Options {
	return Options{
		Filled: DefaultFilled,
		Grade:  DefaultGrade,
		Size:   DefaultSize,
		Style:  DefaultStyle,
		Weight: DefaultWeight,
	}
}

func (o Options) WithFilled(filled bool) Options {
	o.Filled = filled
	return o
}

func (o Options) WithGrade(g Grade) Options {
	o.Grade = g
	return o
}

func (o Options) WithSize(s Size) Options {
	o.Size = s
	return o
}

func (o Options) WithStyle(s Style) Options {
	o.Style = s
	return o
}

func (o Options) WithWeight(w Weight) Options {
	o.Weight = w
	return o
}

func (o Options) String() string {
	return fmt.Sprintf("style=%s weight=%d grade=%d filled=%t size=%d",
		o.Style.Wire(), o.Weight, o.Grade, o.Filled, o.Size)
}

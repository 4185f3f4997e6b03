package imaging

import (
	"fmt"
	"strings"
)

// Layout selects how Compose arranges its inputs
type Layout int

const (
	// Horizontal places images left to right, top-aligned
	Horizontal Layout = iota
	// Vertical stacks images top to bottom, left-aligned
	Vertical
	// Grid places images in a near-square grid of uniform cells
	Grid
)

var layoutNames = map[Layout]string{
	Horizontal: "horizontal",
	Vertical:   "vertical",
	Grid:       "grid",
}

// Layouts lists every supported layout in declaration order
func Layouts() []Layout {
	return []Layout{Horizontal, Vertical, Grid}
}

// ParseLayout maps a layout name to its Layout. Names are matched exactly.
func ParseLayout(name string) (Layout, error) {
	for l, n := range layoutNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedLayout, name)
}

func (l Layout) String() string {
	if n, ok := layoutNames[l]; ok {
		return n
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// MarshalText implements encoding.TextMarshaler
func (l Layout) MarshalText() ([]byte, error) {
	n, ok := layoutNames[l]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedLayout, int(l))
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Layout) UnmarshalText(text []byte) error {
	parsed, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// LayoutNames returns the accepted names joined for help text
func LayoutNames() string {
	names := make([]string, 0, len(layoutNames))
	for _, l := range Layouts() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}

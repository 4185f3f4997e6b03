package rdisplay

import (
	"errors"
	"image"
)

var (
	// ErrNoPrimaryMonitor no display is flagged as primary
	ErrNoPrimaryMonitor = errors.New("no primary monitor found")
	// ErrInvalidRegion the clamped capture region has zero area
	ErrInvalidRegion = errors.New("invalid capture region")
	// ErrCaptureBackend both the direct and the fallback capture failed
	ErrCaptureBackend = errors.New("capture backend failure")
)

// Display is a single attached screen as reported by a Backend. Every query
// may fail independently of the others.
type Display interface {
	Name() (string, error)
	Bounds() (image.Rectangle, error)
	IsPrimary() (bool, error)
}

// Backend grabs pixels from the attached displays
type Backend interface {
	Displays() ([]Display, error)
	// CaptureDisplayRegion captures rect, expressed relative to the
	// display's top-left corner.
	CaptureDisplayRegion(d Display, rect image.Rectangle) (*image.RGBA, error)
	CaptureFullDisplay(d Display) (*image.RGBA, error)
}

// Monitor describes a display's geometry
type Monitor struct {
	Name    string `json:"name"`
	Width   uint32 `json:"width"`
	Height  uint32 `json:"height"`
	X       int32  `json:"x"`
	Y       int32  `json:"y"`
	Primary bool   `json:"primary"`
}

// Region is a display-relative capture request. X and Y may be negative.
type Region struct {
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Service captures regions of the primary display
type Service interface {
	Monitors() ([]Monitor, error)
	PrimaryMonitor() (Monitor, error)
	PrimaryDimensions() (width, height uint32, err error)
	CaptureRegion(region Region) (*image.RGBA, error)
	CaptureFullScreen() (*image.RGBA, error)
}

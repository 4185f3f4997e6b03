package rdisplay

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

var errDisplayGone = errors.New("display is no longer active")

// XBackend implements Backend with github.com/kbinani/screenshot
type XBackend struct{}

// xDisplay is an active display addressed by its screenshot index
type xDisplay struct {
	index int
}

// Displays returns the active displays. Bounds are re-read on every query.
func (*XBackend) Displays() ([]Display, error) {
	numScreens := screenshot.NumActiveDisplays()
	displays := make([]Display, numScreens)
	for i := 0; i < numScreens; i++ {
		displays[i] = &xDisplay{index: i}
	}
	return displays, nil
}

// CaptureDisplayRegion captures rect relative to the display origin
func (x *XBackend) CaptureDisplayRegion(d Display, rect image.Rectangle) (*image.RGBA, error) {
	bounds, err := d.Bounds()
	if err != nil {
		return nil, err
	}
	return screenshot.CaptureRect(rect.Add(bounds.Min))
}

// CaptureFullDisplay captures the whole display
func (x *XBackend) CaptureFullDisplay(d Display) (*image.RGBA, error) {
	bounds, err := d.Bounds()
	if err != nil {
		return nil, err
	}
	return screenshot.CaptureRect(bounds)
}

func (d *xDisplay) Name() (string, error) {
	if _, err := d.Bounds(); err != nil {
		return "", err
	}
	return fmt.Sprintf("display-%d", d.index), nil
}

func (d *xDisplay) Bounds() (image.Rectangle, error) {
	if d.index >= screenshot.NumActiveDisplays() {
		return image.Rectangle{}, errDisplayGone
	}
	bounds := screenshot.GetDisplayBounds(d.index)
	if bounds.Empty() {
		return image.Rectangle{}, fmt.Errorf("display %d reports empty bounds", d.index)
	}
	return bounds, nil
}

// IsPrimary reports whether the display sits at the desktop origin, which is
// where every supported platform places the primary display.
func (d *xDisplay) IsPrimary() (bool, error) {
	bounds, err := d.Bounds()
	if err != nil {
		return false, err
	}
	return bounds.Min == image.Point{}, nil
}

// NewScreenService returns a Service capturing the local screens
func NewScreenService(logger *zap.Logger) Service {
	return NewCapturer(&XBackend{}, logger)
}

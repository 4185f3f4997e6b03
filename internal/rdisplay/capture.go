package rdisplay

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

// Capturer implements Service on top of a Backend. It holds no mutable
// state, so a single instance can serve concurrent callers.
type Capturer struct {
	monitors monitorSource
	backend  Backend
	logger   *zap.Logger
}

// NewCapturer creates a Capturer for the given backend
func NewCapturer(backend Backend, logger *zap.Logger) *Capturer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Capturer{
		monitors: monitorSource{backend: backend},
		backend:  backend,
		logger:   logger,
	}
}

// Monitors returns the currently attached displays
func (c *Capturer) Monitors() ([]Monitor, error) {
	return c.monitors.listMonitors()
}

// PrimaryMonitor returns the display flagged as primary
func (c *Capturer) PrimaryMonitor() (Monitor, error) {
	_, mon, err := c.monitors.primary()
	return mon, err
}

// PrimaryDimensions returns the primary display's width and height in pixels
func (c *Capturer) PrimaryDimensions() (uint32, uint32, error) {
	mon, err := c.PrimaryMonitor()
	if err != nil {
		return 0, 0, err
	}
	return mon.Width, mon.Height, nil
}

// ClampRegion fits region inside a monitor of the given size. The result is
// always contained in [0, size.X) x [0, size.Y); an empty result is reported
// as ErrInvalidRegion.
func ClampRegion(region Region, size image.Point) (image.Rectangle, error) {
	mw, mh := int64(size.X), int64(size.Y)
	x := clamp(int64(region.X), 0, mw)
	y := clamp(int64(region.Y), 0, mh)
	w := min(int64(region.Width), mw-x)
	h := min(int64(region.Height), mh-y)
	if w < 1 || h < 1 {
		return image.Rectangle{}, fmt.Errorf("%w: %dx%d at (%d,%d) on a %dx%d monitor",
			ErrInvalidRegion, region.Width, region.Height, region.X, region.Y, size.X, size.Y)
	}
	return image.Rect(int(x), int(y), int(x+w), int(y+h)), nil
}

// CaptureRegion captures region from the primary display. When the direct
// region capture fails the whole display is captured once and cropped.
func (c *Capturer) CaptureRegion(region Region) (*image.RGBA, error) {
	display, mon, err := c.monitors.primary()
	if err != nil {
		return nil, err
	}
	rect, err := ClampRegion(region, mon.size())
	if err != nil {
		return nil, err
	}

	img, directErr := c.backend.CaptureDisplayRegion(display, rect)
	if directErr == nil {
		directErr = checkSize(img, rect.Size())
	}
	if directErr == nil {
		return toOrigin(img), nil
	}

	c.logger.Warn("Region capture failed, falling back to full display",
		zap.String("monitor", mon.Name),
		zap.Stringer("rect", rect),
		zap.Error(directErr))

	full, fullErr := c.backend.CaptureFullDisplay(display)
	if fullErr != nil {
		return nil, fmt.Errorf("%w: region capture: %w; full display capture: %w",
			ErrCaptureBackend, directErr, fullErr)
	}
	cropped, err := crop(full, rect)
	if err != nil {
		return nil, fmt.Errorf("%w: region capture: %w; crop: %w", ErrCaptureBackend, directErr, err)
	}
	return cropped, nil
}

// CaptureFullScreen captures the primary display unmodified
func (c *Capturer) CaptureFullScreen() (*image.RGBA, error) {
	display, _, err := c.monitors.primary()
	if err != nil {
		return nil, err
	}
	img, err := c.backend.CaptureFullDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCaptureBackend, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty full display capture", ErrCaptureBackend)
	}
	return toOrigin(img), nil
}

func checkSize(img *image.RGBA, want image.Point) error {
	if img == nil {
		return errors.New("backend returned no image")
	}
	if got := img.Bounds().Size(); got != want {
		return fmt.Errorf("backend returned %dx%d, want %dx%d", got.X, got.Y, want.X, want.Y)
	}
	return nil
}

// crop copies rect (relative to the image's top-left corner) out of full
func crop(full *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	if full == nil {
		return nil, errors.New("backend returned no image")
	}
	bounds := full.Bounds()
	src := rect.Add(bounds.Min).Intersect(bounds)
	if src.Size() != rect.Size() {
		return nil, fmt.Errorf("full capture %dx%d does not contain %v", bounds.Dx(), bounds.Dy(), rect)
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	xdraw.Copy(dst, image.Point{}, full, src, xdraw.Src, nil)
	return dst, nil
}

// toOrigin returns img re-based so its bounds start at (0,0)
func toOrigin(img *image.RGBA) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Copy(dst, image.Point{}, img, bounds, xdraw.Src, nil)
	return dst
}

func clamp(v, lo, hi int64) int64 {
	return max(lo, min(v, hi))
}

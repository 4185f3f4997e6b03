package rdisplay

import (
	"errors"
	"image"
	"image/color"
	"sync"
)

type fakeDisplay struct {
	name       string
	bounds     image.Rectangle
	primary    bool
	nameErr    error
	boundsErr  error
	primaryErr error
}

func (d *fakeDisplay) Name() (string, error) {
	return d.name, d.nameErr
}

func (d *fakeDisplay) Bounds() (image.Rectangle, error) {
	return d.bounds, d.boundsErr
}

func (d *fakeDisplay) IsPrimary() (bool, error) {
	return d.primary, d.primaryErr
}

type fakeBackend struct {
	displays   []Display
	listErr    error
	regionErr  error
	fullErr    error
	regionSize *image.Point

	mu          sync.Mutex
	regionCalls int
	fullCalls   int
	lastRegion  image.Rectangle
}

var errBackend = errors.New("backend exploded")

// pixelAt is the color the fake display shows at display-relative (x, y)
func pixelAt(x, y int) color.RGBA {
	return color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 0xff}
}

func gradient(rect image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			img.SetRGBA(x, y, pixelAt(rect.Min.X+x, rect.Min.Y+y))
		}
	}
	return img
}

func (b *fakeBackend) Displays() ([]Display, error) {
	return b.displays, b.listErr
}

func (b *fakeBackend) CaptureDisplayRegion(d Display, rect image.Rectangle) (*image.RGBA, error) {
	b.mu.Lock()
	b.regionCalls++
	b.lastRegion = rect
	b.mu.Unlock()
	if b.regionErr != nil {
		return nil, b.regionErr
	}
	if b.regionSize != nil {
		return gradient(image.Rectangle{Min: rect.Min, Max: rect.Min.Add(*b.regionSize)}), nil
	}
	return gradient(rect), nil
}

func (b *fakeBackend) CaptureFullDisplay(d Display) (*image.RGBA, error) {
	b.mu.Lock()
	b.fullCalls++
	b.mu.Unlock()
	if b.fullErr != nil {
		return nil, b.fullErr
	}
	bounds, _ := d.Bounds()
	return gradient(image.Rect(0, 0, bounds.Dx(), bounds.Dy())), nil
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		displays: []Display{
			&fakeDisplay{name: "side", bounds: image.Rect(-1280, 0, 0, 1024)},
			&fakeDisplay{name: "main", bounds: image.Rect(0, 0, 1920, 1080), primary: true},
		},
	}
}

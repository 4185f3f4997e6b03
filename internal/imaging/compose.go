// Package imaging lays out captured images on a shared canvas and resizes
// them to bounded dimensions.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

var (
	// ErrEmptyInput Compose was called without images
	ErrEmptyInput = errors.New("no images to compose")
	// ErrUnsupportedLayout the layout is not one of Layouts()
	ErrUnsupportedLayout = errors.New("unsupported layout")
	// ErrEmptyCanvas every input has zero area, so the canvas would too
	ErrEmptyCanvas = errors.New("composition has zero area")
)

// placement is where one input goes on the canvas
type placement struct {
	src image.Image
	at  image.Point
}

// Compose arranges images on a single canvas in input order. The canvas
// starts fully transparent black; areas no image covers keep that value.
// Pixels that would land outside the canvas are dropped.
func Compose(images []image.Image, layout Layout) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, ErrEmptyInput
	}

	var (
		size   image.Point
		places []placement
	)
	switch layout {
	case Horizontal:
		size, places = horizontal(images)
	case Vertical:
		size, places = vertical(images)
	case Grid:
		size, places = grid(images)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLayout, layout)
	}
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyCanvas, size.X, size.Y)
	}

	canvas := image.NewRGBA(image.Rectangle{Max: size})
	for _, p := range places {
		sr := p.src.Bounds()
		// xdraw.Copy clips to the canvas, so mismatched sizes never write
		// outside it.
		xdraw.Copy(canvas, p.at, p.src, sr, xdraw.Src, nil)
	}
	return canvas, nil
}

// ComposeNamed is Compose with the layout given by name
func ComposeNamed(images []image.Image, layout string) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, ErrEmptyInput
	}
	l, err := ParseLayout(layout)
	if err != nil {
		return nil, err
	}
	return Compose(images, l)
}

func horizontal(images []image.Image) (image.Point, []placement) {
	places := make([]placement, len(images))
	var size image.Point
	for i, img := range images {
		b := img.Bounds()
		places[i] = placement{src: img, at: image.Pt(size.X, 0)}
		size.X += b.Dx()
		size.Y = max(size.Y, b.Dy())
	}
	return size, places
}

func vertical(images []image.Image) (image.Point, []placement) {
	places := make([]placement, len(images))
	var size image.Point
	for i, img := range images {
		b := img.Bounds()
		places[i] = placement{src: img, at: image.Pt(0, size.Y)}
		size.Y += b.Dy()
		size.X = max(size.X, b.Dx())
	}
	return size, places
}

// GridShape returns the column and row count used for n images
func GridShape(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}

// grid sizes every cell to the largest input in each dimension
func grid(images []image.Image) (image.Point, []placement) {
	cols, rows := GridShape(len(images))
	var cell image.Point
	for _, img := range images {
		b := img.Bounds()
		cell.X = max(cell.X, b.Dx())
		cell.Y = max(cell.Y, b.Dy())
	}
	places := make([]placement, len(images))
	for i, img := range images {
		row, col := i/cols, i%cols
		places[i] = placement{src: img, at: image.Pt(col*cell.X, row*cell.Y)}
	}
	return image.Pt(cols*cell.X, rows*cell.Y), places
}

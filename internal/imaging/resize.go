package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// ErrInvalidBounds a resize bound is zero or the image has no area
var ErrInvalidBounds = errors.New("invalid resize bounds")

// FitSize returns the largest size with the aspect ratio of src that fits in
// maxWidth x maxHeight. Sizes already inside the bounds are returned as is.
func FitSize(src image.Point, maxWidth, maxHeight uint) image.Point {
	if uint(src.X) <= maxWidth && uint(src.Y) <= maxHeight {
		return src
	}
	scale := math.Min(float64(maxWidth)/float64(src.X), float64(maxHeight)/float64(src.Y))
	w := min(max(int(math.Round(float64(src.X)*scale)), 1), int(maxWidth))
	h := min(max(int(math.Round(float64(src.Y)*scale)), 1), int(maxHeight))
	return image.Pt(w, h)
}

// Resize scales img down to fit in maxWidth x maxHeight with a Lanczos3
// filter, preserving its aspect ratio. An image that already fits is
// returned without resampling.
func Resize(img *image.RGBA, maxWidth, maxHeight uint) (*image.RGBA, error) {
	if maxWidth == 0 || maxHeight == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBounds, maxWidth, maxHeight)
	}
	size := img.Bounds().Size()
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("%w: source is %dx%d", ErrInvalidBounds, size.X, size.Y)
	}
	target := FitSize(size, maxWidth, maxHeight)
	if target == size {
		return img, nil
	}
	return ToRGBA(resize.Resize(uint(target.X), uint(target.Y), img, resize.Lanczos3)), nil
}

// Bound is Resize where a zero bound leaves that dimension unconstrained.
// With both bounds zero img is returned unchanged.
func Bound(img *image.RGBA, maxWidth, maxHeight uint) (*image.RGBA, error) {
	if maxWidth == 0 && maxHeight == 0 {
		return img, nil
	}
	size := img.Bounds().Size()
	if maxWidth == 0 {
		maxWidth = uint(max(size.X, 1))
	}
	if maxHeight == 0 {
		maxHeight = uint(max(size.Y, 1))
	}
	return Resize(img, maxWidth, maxHeight)
}

// ToRGBA returns img as a zero-origin *image.RGBA, converting if needed
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	return dst
}

package encoding

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrUnsupportedCodec no encoder is registered for the codec
	ErrUnsupportedCodec = errors.New("codec not supported")
	// ErrInvalidDataURL the input is neither a data URL nor raw base64
	ErrInvalidDataURL = errors.New("invalid base64 data URL")
)

// Service creates encoder instances
type Service interface {
	NewEncoder(codec Codec, opts Options) (Encoder, error)
}

// Encoder turns an image into a file payload
type Encoder interface {
	Encode(image.Image) ([]byte, error)
	MimeType() string
}

// Options tunes the encoders that support it
type Options struct {
	// JPEGQuality ranges 1..100, zero picks DefaultJPEGQuality
	JPEGQuality int
}

// DefaultJPEGQuality is used when Options.JPEGQuality is zero
const DefaultJPEGQuality = 85

// Codec can be png, jpeg or pdf
type Codec int

const (
	// PNGCodec png
	PNGCodec Codec = iota
	// JPEGCodec jpeg
	JPEGCodec
	// PDFCodec single page pdf
	PDFCodec
)

var codecNames = map[Codec]string{
	PNGCodec:  "png",
	JPEGCodec: "jpeg",
	PDFCodec:  "pdf",
}

// ParseCodec maps a format name to a Codec; "jpg" is accepted for jpeg
func ParseCodec(name string) (Codec, error) {
	if name == "jpg" {
		return JPEGCodec, nil
	}
	for c, n := range codecNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedCodec, name)
}

func (c Codec) String() string {
	if n, ok := codecNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Codec(%d)", int(c))
}

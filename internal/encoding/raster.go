package encoding

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

// PNGEncoder lossless png encoder
type PNGEncoder struct {
	encoder png.Encoder
}

func newPNGEncoder(Options) (Encoder, error) {
	return &PNGEncoder{encoder: png.Encoder{CompressionLevel: png.DefaultCompression}}, nil
}

// Encode encodes the image as png
func (e *PNGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// MimeType image/png
func (*PNGEncoder) MimeType() string { return "image/png" }

// JPEGEncoder lossy jpeg encoder, drops the alpha channel
type JPEGEncoder struct {
	quality int
}

func newJPEGEncoder(opts Options) (Encoder, error) {
	quality := opts.JPEGQuality
	if quality == 0 {
		quality = DefaultJPEGQuality
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality %d out of range 1..100", quality)
	}
	return &JPEGEncoder{quality: quality}, nil
}

// Encode encodes the image as jpeg
func (e *JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// MimeType image/jpeg
func (*JPEGEncoder) MimeType() string { return "image/jpeg" }

func init() {
	registeredEncoders[PNGCodec] = newPNGEncoder
	registeredEncoders[JPEGCodec] = newJPEGEncoder
}

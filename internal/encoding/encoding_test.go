package encoding

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 0xff, A: 0xff})
			}
		}
	}
	return img
}

func TestParseCodec(t *testing.T) {
	tests := map[string]Codec{"png": PNGCodec, "jpeg": JPEGCodec, "jpg": JPEGCodec, "pdf": PDFCodec}
	for name, want := range tests {
		got, err := ParseCodec(name)
		if err != nil || got != want {
			t.Errorf("ParseCodec(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseCodec("gif"); !errors.Is(err, ErrUnsupportedCodec) {
		t.Errorf("ParseCodec(gif) error = %v, want ErrUnsupportedCodec", err)
	}
}

func TestEncoderServiceSupportsAll(t *testing.T) {
	svc := &EncoderService{}
	for c := range codecNames {
		if !svc.Supports(c) {
			t.Errorf("Supports(%v) = false", c)
		}
	}
	if _, err := svc.NewEncoder(Codec(99), Options{}); !errors.Is(err, ErrUnsupportedCodec) {
		t.Errorf("NewEncoder(99) error = %v, want ErrUnsupportedCodec", err)
	}
}

func TestPNGDataURLRoundTrip(t *testing.T) {
	enc, err := NewEncoderService().NewEncoder(PNGCodec, Options{})
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	src := checker(9, 4)
	url, err := EncodeDataURL(enc, src)
	if err != nil {
		t.Fatalf("EncodeDataURL() error = %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("data URL prefix = %q", url[:min(len(url), 30)])
	}
	decoded, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("DecodeDataURL() error = %v", err)
	}
	if decoded.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", decoded.Bounds(), src.Bounds())
	}
	r, _, _, a := decoded.At(0, 0).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("pixel(0,0) = %v, want opaque red", decoded.At(0, 0))
	}

	bare := strings.TrimPrefix(url, "data:image/png;base64,")
	if _, err := DecodeDataURL(bare); err != nil {
		t.Errorf("DecodeDataURL(bare base64) error = %v", err)
	}
}

func TestDecodeDataURLErrors(t *testing.T) {
	for _, in := range []string{"data:image/png;base64", "not base64!!"} {
		if _, err := DecodeDataURL(in); !errors.Is(err, ErrInvalidDataURL) {
			t.Errorf("DecodeDataURL(%q) error = %v, want ErrInvalidDataURL", in, err)
		}
	}
}

func TestJPEGQuality(t *testing.T) {
	svc := NewEncoderService()
	if _, err := svc.NewEncoder(JPEGCodec, Options{JPEGQuality: 101}); err == nil {
		t.Errorf("NewEncoder(quality 101) succeeded")
	}
	enc, err := svc.NewEncoder(JPEGCodec, Options{})
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	payload, err := enc.Encode(checker(16, 16))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.HasPrefix(payload, []byte{0xff, 0xd8}) {
		t.Errorf("payload is not a jpeg stream")
	}
}

func TestPDFEncoder(t *testing.T) {
	enc, err := NewEncoderService().NewEncoder(PDFCodec, Options{})
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	payload, err := enc.Encode(checker(40, 20))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF-")) {
		t.Errorf("payload does not start with a pdf header")
	}
	if enc.MimeType() != "application/pdf" {
		t.Errorf("MimeType() = %q", enc.MimeType())
	}
	if _, err := enc.Encode(image.NewRGBA(image.Rectangle{})); err == nil {
		t.Errorf("Encode(empty) succeeded")
	}
}

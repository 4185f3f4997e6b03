package encoding

import (
	"bytes"
	"fmt"
	"image"

	"github.com/jung-kurt/gofpdf"
)

const (
	pixelsPerInch = 96
	mmPerInch     = 25.4
	pdfImageName  = "composite"
)

func pixelsToMm(pixels int) float64 {
	return float64(pixels) * mmPerInch / pixelsPerInch
}

// PDFEncoder renders the image on a single page sized to it at 96 DPI
type PDFEncoder struct {
	png Encoder
}

func newPDFEncoder(opts Options) (Encoder, error) {
	inner, err := newPNGEncoder(opts)
	if err != nil {
		return nil, err
	}
	return &PDFEncoder{png: inner}, nil
}

// Encode embeds the image as png on a page of the same size
func (e *PDFEncoder) Encode(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("encode pdf: empty image")
	}
	payload, err := e.png.Encode(img)
	if err != nil {
		return nil, err
	}

	wMm, hMm := pixelsToMm(b.Dx()), pixelsToMm(b.Dy())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: wMm, Ht: hMm},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(pdfImageName, opt, bytes.NewReader(payload))
	pdf.ImageOptions(pdfImageName, 0, 0, wMm, hMm, false, opt, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return out.Bytes(), nil
}

// MimeType application/pdf
func (*PDFEncoder) MimeType() string { return "application/pdf" }

func init() {
	registeredEncoders[PDFCodec] = newPDFEncoder
}

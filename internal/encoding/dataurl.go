package encoding

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
)

const dataURLPrefix = "data:"

// ToDataURL wraps payload in a base64 data URL
func ToDataURL(mimeType string, payload []byte) string {
	return dataURLPrefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

// EncodeDataURL encodes img with enc and wraps it in a data URL
func EncodeDataURL(enc Encoder, img image.Image) (string, error) {
	payload, err := enc.Encode(img)
	if err != nil {
		return "", err
	}
	return ToDataURL(enc.MimeType(), payload), nil
}

// DecodeDataURL decodes a "data:image/...;base64," URL, or bare base64, into
// an image.
func DecodeDataURL(s string) (image.Image, error) {
	content := s
	if strings.HasPrefix(s, "data:image/") {
		_, after, found := strings.Cut(s, ",")
		if !found {
			return nil, ErrInvalidDataURL
		}
		content = after
	}
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

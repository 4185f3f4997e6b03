package encoding

import (
	"fmt"
)

type encoderFactory = func(opts Options) (Encoder, error)

// Index of supported codecs, each encoder registers itself from its own
// file's init.
var registeredEncoders = make(map[Codec]encoderFactory, 3)

// EncoderService creates instances of encoders
type EncoderService struct {
}

// NewEncoderService creates an encoder factory
func NewEncoderService() Service {
	return &EncoderService{}
}

// NewEncoder creates an instance of an encoder of the selected codec
func (*EncoderService) NewEncoder(codec Codec, opts Options) (Encoder, error) {
	factory, found := registeredEncoders[codec]
	if !found {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCodec, codec)
	}
	return factory(opts)
}

// Supports returns a boolean indicating if the codec is supported
func (*EncoderService) Supports(codec Codec) bool {
	_, found := registeredEncoders[codec]
	return found
}

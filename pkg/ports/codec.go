package ports

import (
	"github.com/user/wmstamp/pkg/pipeline"
)

// EncodeOptions configures image encoding.
type EncodeOptions struct {
	JPEGQuality int  // 1-100
	Optimize    bool // requested entropy optimisation for JPEG (best effort)
	WebPQuality int  // 0-100
}

// ImageCodec converts between encoded bytes and in-memory images.
type ImageCodec interface {
	// Decode parses data into an Image, detecting its color mode and any
	// embedded orientation tag. The orientation is reported, not applied.
	Decode(data []byte) (pipeline.Image, error)

	// Encode serialises img in the format implied by the extension of path.
	Encode(img pipeline.Image, path string, opts EncodeOptions) ([]byte, error)

	// Supports reports whether files with the given path can be encoded.
	Supports(path string) bool
}

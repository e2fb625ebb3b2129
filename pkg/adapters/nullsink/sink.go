// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/wmstamp/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveTextLayer does nothing.
func (s *Sink) SaveTextLayer(source string, img image.Image) error {
	return nil
}

// SaveOverlay does nothing.
func (s *Sink) SaveOverlay(source string, img image.Image) error {
	return nil
}

// SaveRunJSON does nothing.
func (s *Sink) SaveRunJSON(data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

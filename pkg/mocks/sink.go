package mocks

import (
	"image"
	"sync"

	"github.com/user/wmstamp/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	TextLayers map[string]image.Image
	Overlays   map[string]image.Image
	RunJSON    []byte

	SaveRunJSONFunc func(data []byte) error
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:    enabled,
		TextLayers: make(map[string]image.Image),
		Overlays:   make(map[string]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveTextLayer(source string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TextLayers[source] = img
	return nil
}

func (m *DebugSink) SaveOverlay(source string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Overlays[source] = img
	return nil
}

func (m *DebugSink) SaveRunJSON(data []byte) error {
	if m.SaveRunJSONFunc != nil {
		return m.SaveRunJSONFunc(data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

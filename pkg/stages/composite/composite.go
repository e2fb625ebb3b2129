// Package composite burns a text watermark into a single image.
package composite

import (
	"context"
	"fmt"
	"image"

	"github.com/user/wmstamp/pkg/pipeline"
	"github.com/user/wmstamp/pkg/ports"
	"github.com/user/wmstamp/pkg/stages/textlayer"
)

// Compositor places a rotated text layer at the bottom-right corner of an
// image and blends it in. The caller's image is never modified.
type Compositor struct {
	layers pipeline.Stage[pipeline.TextLayerInput, *image.NRGBA]
	sink   ports.DebugSink
	logger ports.Logger
}

// NewStage creates a compositor that builds text rasters with layers.
func NewStage(layers pipeline.Stage[pipeline.TextLayerInput, *image.NRGBA], sink ports.DebugSink, logger ports.Logger) *Compositor {
	return &Compositor{
		layers: layers,
		sink:   sink,
		logger: logger.WithComponent("composite"),
	}
}

// Composite is Execute without cancellation.
func (c *Compositor) Composite(in pipeline.CompositeInput) (pipeline.Image, error) {
	return c.Execute(context.Background(), in)
}

// Execute returns the watermarked image with the same dimensions as the
// oriented source, in the source's color mode family.
func (c *Compositor) Execute(ctx context.Context, in pipeline.CompositeInput) (pipeline.Image, error) {
	if in.Source.Pixels == nil {
		return pipeline.Image{}, fmt.Errorf("%w: no source image", pipeline.ErrInvalidInput)
	}

	base := Orient(in.Source.Pixels, in.Source.Orientation)
	w, h := base.Bounds().Dx(), base.Bounds().Dy()

	fontSize := textlayer.FontSize(w, h, in.Params.Scale)
	margin := textlayer.Margin(w, h, in.Params.MarginRatio)

	layer, err := c.layers.Execute(ctx, pipeline.TextLayerInput{
		Text:     in.Params.Text,
		FontSize: fontSize,
		Opacity:  in.Params.Opacity,
		Angle:    in.Params.Angle,
		Font:     in.Font,
	})
	if err != nil {
		return pipeline.Image{}, fmt.Errorf("build text layer: %w", err)
	}
	c.logger.Debug("Text layer %dx%d, font size %d, margin %d", layer.Bounds().Dx(), layer.Bounds().Dy(), fontSize, margin)

	at := Anchor(w, h, layer.Bounds().Dx(), layer.Bounds().Dy(), margin)
	c.logger.Debug("Watermark anchored at (%d,%d)", at.X, at.Y)

	overlay := NewOverlay(w, h)
	PasteMasked(overlay, layer, at)

	if c.sink != nil && c.sink.Enabled() {
		label := in.Label
		if label == "" {
			label = "image"
		}
		if err := c.sink.SaveTextLayer(label, layer); err != nil {
			c.logger.Warn("Failed to save debug image: %s", err.Error())
		}
		if err := c.sink.SaveOverlay(label, overlay); err != nil {
			c.logger.Warn("Failed to save debug image: %s", err.Error())
		}
	}

	blended := AlphaComposite(base, overlay)
	pixels, mode := RestoreMode(blended, in.Source.Mode)

	return pipeline.Image{
		Pixels: pixels,
		Mode:   mode,
	}, nil
}

// Ensure Compositor implements pipeline.Stage
var _ pipeline.Stage[pipeline.CompositeInput, pipeline.Image] = (*Compositor)(nil)

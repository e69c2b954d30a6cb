package timeline

import (
	"fmt"
	"math"

	"timeline-editor/internal/config"
)

// Viewport maps seconds to horizontal pixels under a zoom factor and scroll
// offset. Changing zoom or scroll never touches stored intervals.
type Viewport struct {
	basePPS       float64
	zoom          float64
	minZoom       float64
	maxZoom       float64
	scroll        float64
	totalDuration float64
	width         float64
}

// ViewportOptions configures a Viewport. Zero values fall back to the
// defaults in internal/config.
type ViewportOptions struct {
	BasePixelsPerSecond float64
	MinZoom             float64
	MaxZoom             float64
	Zoom                float64
}

// NewViewport creates a viewport positioned at time zero.
func NewViewport(opts ViewportOptions) (*Viewport, error) {
	if opts.BasePixelsPerSecond == 0 {
		opts.BasePixelsPerSecond = config.BasePixelsPerSecond
	}
	if opts.MinZoom == 0 {
		opts.MinZoom = config.MinZoom
	}
	if opts.MaxZoom == 0 {
		opts.MaxZoom = config.MaxZoom
	}
	if opts.Zoom == 0 {
		opts.Zoom = config.DefaultZoom
	}

	if opts.BasePixelsPerSecond < 0 || math.IsNaN(opts.BasePixelsPerSecond) {
		return nil, fmt.Errorf("%w: base pixels per second %v", ErrConfiguration, opts.BasePixelsPerSecond)
	}
	if opts.MinZoom < 0 || opts.MaxZoom < opts.MinZoom {
		return nil, fmt.Errorf("%w: zoom range [%v, %v]", ErrConfiguration, opts.MinZoom, opts.MaxZoom)
	}

	v := &Viewport{
		basePPS: opts.BasePixelsPerSecond,
		minZoom: opts.MinZoom,
		maxZoom: opts.MaxZoom,
		zoom:    1,
	}
	if err := v.SetZoom(opts.Zoom); err != nil {
		return nil, err
	}
	return v, nil
}

// PixelsPerSecond is the effective scale, base * zoom.
func (v *Viewport) PixelsPerSecond() float64 {
	return v.basePPS * v.zoom
}

// BasePixelsPerSecond returns the scale at zoom 1.0.
func (v *Viewport) BasePixelsPerSecond() float64 {
	return v.basePPS
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// Scroll returns the scroll offset in pixels.
func (v *Viewport) Scroll() float64 {
	return v.scroll
}

// TotalDuration returns the timeline length in seconds.
func (v *Viewport) TotalDuration() float64 {
	return v.totalDuration
}

// Width returns the visible width in pixels.
func (v *Viewport) Width() float64 {
	return v.width
}

// TimeToPixel converts seconds to a viewport-local x coordinate.
func (v *Viewport) TimeToPixel(t float64) float64 {
	return t*v.PixelsPerSecond() - v.scroll
}

// PixelToTime converts a viewport-local x coordinate to seconds.
func (v *Viewport) PixelToTime(x float64) float64 {
	return (x + v.scroll) / v.PixelsPerSecond()
}

// DurationToPixels converts a length in seconds to a width in pixels.
func (v *Viewport) DurationToPixels(d float64) float64 {
	return d * v.PixelsPerSecond()
}

// PixelsToDuration converts a pixel distance to seconds.
func (v *Viewport) PixelsToDuration(px float64) float64 {
	return px / v.PixelsPerSecond()
}

// ContentWidth is the full timeline width in pixels at the current zoom.
func (v *Viewport) ContentWidth() float64 {
	return v.totalDuration * v.PixelsPerSecond()
}

// MaxScroll is the largest valid scroll offset.
func (v *Viewport) MaxScroll() float64 {
	return math.Max(0, v.ContentWidth()-v.width)
}

// SetZoom sets the zoom factor, clamped to the configured range. Non-positive
// or non-finite values are rejected. The scroll offset is re-clamped.
func (v *Viewport) SetZoom(zoom float64) error {
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		return fmt.Errorf("%w: zoom factor %v", ErrConfiguration, zoom)
	}
	v.zoom = clamp(zoom, v.minZoom, v.maxZoom)
	v.clampScroll()
	return nil
}

// ZoomAt changes zoom while keeping the time under anchorX at the same pixel.
func (v *Viewport) ZoomAt(anchorX, zoom float64) error {
	anchorTime := v.PixelToTime(anchorX)
	if err := v.SetZoom(zoom); err != nil {
		return err
	}
	v.SetScroll(anchorTime*v.PixelsPerSecond() - anchorX)
	return nil
}

// SetScroll sets the scroll offset clamped to [0, ContentWidth - Width].
func (v *Viewport) SetScroll(px float64) {
	if math.IsNaN(px) {
		return
	}
	v.scroll = px
	v.clampScroll()
}

// ScrollBy moves the scroll offset by dx pixels.
func (v *Viewport) ScrollBy(dx float64) {
	v.SetScroll(v.scroll + dx)
}

// ScrollToTime scrolls so that t sits at the left edge.
func (v *Viewport) ScrollToTime(t float64) {
	v.SetScroll(t * v.PixelsPerSecond())
}

// SetTotalDuration sets the timeline length. Negative values become zero.
func (v *Viewport) SetTotalDuration(seconds float64) {
	v.totalDuration = math.Max(0, seconds)
	v.clampScroll()
}

// SetWidth sets the visible width in pixels.
func (v *Viewport) SetWidth(px float64) {
	v.width = math.Max(0, px)
	v.clampScroll()
}

// ClampTime limits t to [0, TotalDuration]. With no duration set only the
// lower bound applies.
func (v *Viewport) ClampTime(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if v.totalDuration > 0 && t > v.totalDuration {
		return v.totalDuration
	}
	return t
}

// VisibleRange returns the time span currently on screen.
func (v *Viewport) VisibleRange() Range {
	return Range{Start: v.PixelToTime(0), End: v.PixelToTime(v.width)}
}

func (v *Viewport) clampScroll() {
	v.scroll = clamp(v.scroll, 0, v.MaxScroll())
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

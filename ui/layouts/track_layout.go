package layouts

import (
	"fyne.io/fyne/v2"
)

// HeaderColumnLayout places a fixed-width header column left of the timeline
type HeaderColumnLayout struct {
	HeaderWidth float32
}

// NewHeaderColumnLayout creates a layout with the given header column width
func NewHeaderColumnLayout(headerWidth float32) *HeaderColumnLayout {
	return &HeaderColumnLayout{HeaderWidth: headerWidth}
}

// Layout arranges the objects: [0] = headers, [1] = timeline
func (l *HeaderColumnLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}

	headers := objects[0]
	headers.Resize(fyne.NewSize(l.HeaderWidth, size.Height))
	headers.Move(fyne.NewPos(0, 0))

	timeline := objects[1]
	timeline.Resize(fyne.NewSize(size.Width-l.HeaderWidth, size.Height))
	timeline.Move(fyne.NewPos(l.HeaderWidth, 0))
}

// MinSize returns the minimum size needed for the layout
func (l *HeaderColumnLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(l.HeaderWidth, 0)
	}

	headersMin := objects[0].MinSize()
	timelineMin := objects[1].MinSize()

	return fyne.NewSize(
		l.HeaderWidth+timelineMin.Width,
		fyne.Max(headersMin.Height, timelineMin.Height),
	)
}

// TrackRowsLayout stacks track headers so each lines up with its band:
// rows of RowHeight separated by Gap.
type TrackRowsLayout struct {
	RowHeight float32
	Gap       float32
}

// NewTrackRowsLayout creates a rows layout matching the timeline's bands
func NewTrackRowsLayout(rowHeight, gap float32) *TrackRowsLayout {
	return &TrackRowsLayout{RowHeight: rowHeight, Gap: gap}
}

// Layout places objects[i] at i*(RowHeight+Gap)
func (l *TrackRowsLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	y := float32(0)
	for _, o := range objects {
		o.Resize(fyne.NewSize(size.Width, l.RowHeight))
		o.Move(fyne.NewPos(0, y))
		y += l.RowHeight + l.Gap
	}
}

// MinSize returns the height of all rows
func (l *TrackRowsLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.NewSize(0, 0)
	}
	width := float32(0)
	for _, o := range objects {
		width = fyne.Max(width, o.MinSize().Width)
	}
	n := float32(len(objects))
	return fyne.NewSize(width, n*l.RowHeight+(n-1)*l.Gap)
}

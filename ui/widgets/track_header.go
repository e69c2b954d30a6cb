package widgets

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"timeline-editor/internal/timeline"
	appTheme "timeline-editor/ui/theme"
)

// TrackHeader labels one track band and carries its lock toggle.
type TrackHeader struct {
	widget.BaseWidget

	OnLockToggled func(trackID string, locked bool)

	track timeline.Track

	title  *canvas.Text
	detail *canvas.Text
	lock   *widget.Check
}

// NewTrackHeader creates a header for a track snapshot.
func NewTrackHeader(track timeline.Track) *TrackHeader {
	h := &TrackHeader{track: track}
	h.ExtendBaseWidget(h)
	return h
}

// TrackID returns the id of the labelled track.
func (h *TrackHeader) TrackID() string {
	return h.track.ID
}

// SetTrack updates the header from a fresh snapshot.
func (h *TrackHeader) SetTrack(track timeline.Track) {
	h.track = track
	if h.title == nil {
		return
	}
	h.title.Text = track.ID
	h.title.Refresh()
	h.detail.Text = h.detailText()
	h.detail.Refresh()
	if h.lock.Checked != track.Locked {
		h.lock.SetChecked(track.Locked)
	}
}

func (h *TrackHeader) detailText() string {
	text := fmt.Sprintf("%s · %d items", h.track.Kind, len(h.track.Items))
	if n := len(h.track.Overflowed()); n > 0 {
		text += fmt.Sprintf(" · %d overflow", n)
	}
	return text
}

// Build creates the header content
func (h *TrackHeader) Build() fyne.CanvasObject {
	th := fyne.CurrentApp().Settings().Theme()
	variant := fyne.CurrentApp().Settings().ThemeVariant()

	h.title = canvas.NewText(h.track.ID, th.Color(theme.ColorNameForeground, variant))
	h.title.TextStyle = fyne.TextStyle{Bold: true}
	h.title.TextSize = 14

	h.detail = canvas.NewText(h.detailText(), th.Color(appTheme.ColorNameTextSecondary, variant))
	h.detail.TextSize = 11

	h.lock = widget.NewCheck("Locked", func(locked bool) {
		if locked == h.track.Locked {
			return
		}
		if h.OnLockToggled != nil {
			h.OnLockToggled(h.track.ID, locked)
		}
	})
	h.lock.SetChecked(h.track.Locked)

	swatch := canvas.NewRectangle(appTheme.KindColor(h.track.Kind))
	swatch.SetMinSize(fyne.NewSize(4, 0))

	bg := canvas.NewRectangle(th.Color(appTheme.ColorNameSurface, variant))
	return container.NewStack(
		bg,
		container.NewBorder(nil, nil, swatch, nil,
			container.NewPadded(container.NewVBox(h.title, h.detail, h.lock)),
		),
	)
}

// CreateRenderer implements fyne.Widget
func (h *TrackHeader) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.Build())
}

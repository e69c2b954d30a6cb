package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	appTheme "timeline-editor/ui/theme"
)

// Toolbar is the top bar with file, zoom and transport controls
type Toolbar struct {
	widget.BaseWidget

	OnOpenSubtitles func()
	OnExportTrack   func()
	OnSaveProject   func()
	OnLoadProject   func()
	OnZoomIn        func()
	OnZoomOut       func()
	OnPlayToggled   func(playing bool)

	playing   bool
	playBtn   *widget.Button
	timeLabel *widget.Label
	zoomLabel *widget.Label
	status    *widget.Label
}

// NewToolbar creates the toolbar
func NewToolbar() *Toolbar {
	t := &Toolbar{}
	t.ExtendBaseWidget(t)
	return t
}

func call(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}

// createCard wraps controls in a rounded block
func createCard(content fyne.CanvasObject) fyne.CanvasObject {
	bg := canvas.NewRectangle(color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	bg.CornerRadius = 8
	return container.NewStack(bg, container.NewPadded(content))
}

// Build creates the toolbar UI
func (t *Toolbar) Build() fyne.CanvasObject {
	fileCard := createCard(container.NewHBox(
		widget.NewButtonWithIcon("Open SRT", theme.FolderOpenIcon(), call(t.OnOpenSubtitles)),
		widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), call(t.OnExportTrack)),
		widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), call(t.OnSaveProject)),
		widget.NewButtonWithIcon("Load", theme.FolderIcon(), call(t.OnLoadProject)),
	))

	t.zoomLabel = widget.NewLabel("100%")
	zoomCard := createCard(container.NewHBox(
		widget.NewButtonWithIcon("", theme.ZoomOutIcon(), call(t.OnZoomOut)),
		t.zoomLabel,
		widget.NewButtonWithIcon("", theme.ZoomInIcon(), call(t.OnZoomIn)),
	))

	t.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		t.SetPlaying(!t.playing)
		if t.OnPlayToggled != nil {
			t.OnPlayToggled(t.playing)
		}
	})
	t.timeLabel = widget.NewLabel(FormatClock(0))
	transportCard := createCard(container.NewHBox(t.playBtn, t.timeLabel))

	t.status = widget.NewLabel("")
	t.status.Truncation = fyne.TextTruncateEllipsis

	content := container.NewBorder(nil, nil,
		container.NewHBox(fileCard, zoomCard, transportCard),
		nil,
		container.NewHBox(layout.NewSpacer(), t.status),
	)

	bg := canvas.NewRectangle(appTheme.ColorToolbar)
	return container.NewStack(bg, container.NewPadded(content))
}

// CreateRenderer implements fyne.Widget
func (t *Toolbar) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.Build())
}

// SetPlaying switches the transport button between play and pause.
func (t *Toolbar) SetPlaying(playing bool) {
	t.playing = playing
	if t.playBtn == nil {
		return
	}
	if playing {
		t.playBtn.SetIcon(theme.MediaPauseIcon())
	} else {
		t.playBtn.SetIcon(theme.MediaPlayIcon())
	}
}

// SetTime shows the playhead position.
func (t *Toolbar) SetTime(seconds float64) {
	if t.timeLabel != nil {
		t.timeLabel.SetText(FormatClock(seconds))
	}
}

// SetZoom shows the zoom factor as a percentage.
func (t *Toolbar) SetZoom(zoom float64) {
	if t.zoomLabel != nil {
		t.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	}
}

// SetStatus shows a one-line message.
func (t *Toolbar) SetStatus(message string) {
	if t.status != nil {
		t.status.SetText(message)
	}
}

// FormatClock renders seconds as m:ss.t
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	tenths := int(seconds*10 + 0.5)
	return fmt.Sprintf("%d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}

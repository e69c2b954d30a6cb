package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"timeline-editor/internal/config"
	"timeline-editor/internal/logger"
	"timeline-editor/internal/timeline"
	appTheme "timeline-editor/ui/theme"
)

type dragMode int

const (
	dragNone dragMode = iota
	dragItem
	dragPan
	dragAbandoned
)

// Timeline paints a session's tracks and feeds pointer input back into it.
// Dragging an item moves it; dragging empty space pans; ctrl+wheel zooms
// around the cursor and the wheel scrolls. A secondary click cancels a drag.
type Timeline struct {
	widget.BaseWidget

	OnCommitted func(timeline.Interval)
	OnError     func(error)

	session *timeline.Session
	log     *logger.Logger
	mode    dragMode
}

var (
	_ fyne.Draggable    = (*Timeline)(nil)
	_ fyne.Scrollable   = (*Timeline)(nil)
	_ desktop.Mouseable = (*Timeline)(nil)
)

// NewTimeline creates a timeline widget over session.
func NewTimeline(session *timeline.Session, log *logger.Logger) *Timeline {
	if log == nil {
		log = logger.Discard()
	}
	t := &Timeline{
		session: session,
		log:     log.Named("timeline-widget"),
	}
	t.ExtendBaseWidget(t)
	return t
}

// Dragged implements fyne.Draggable. The first event of a gesture decides
// whether it moves an item or pans the view.
func (t *Timeline) Dragged(e *fyne.DragEvent) {
	x, y := float64(e.Position.X), float64(e.Position.Y)

	if t.mode == dragNone {
		startX, startY := x-float64(e.Dragged.DX), y-float64(e.Dragged.DY)
		if t.session.PointerDown(startX, startY) {
			t.mode = dragItem
		} else {
			t.mode = dragPan
		}
	}

	switch t.mode {
	case dragItem:
		if _, ok := t.session.PointerMove(x, y); !ok {
			t.log.Debug("drag left the timeline, cancelled")
			t.mode = dragAbandoned
		}
	case dragPan:
		t.session.Viewport().ScrollBy(-float64(e.Dragged.DX))
	}
	t.Refresh()
}

// DragEnd implements fyne.Draggable.
func (t *Timeline) DragEnd() {
	mode := t.mode
	t.mode = dragNone
	if mode != dragItem {
		return
	}

	iv, err := t.session.PointerUp()
	if err != nil {
		t.log.Warn("drop rejected: %v", err)
		if t.OnError != nil {
			t.OnError(err)
		}
	} else if iv.ID != "" && t.OnCommitted != nil {
		t.OnCommitted(iv)
	}
	t.Refresh()
}

// Scrolled implements fyne.Scrollable.
func (t *Timeline) Scrolled(e *fyne.ScrollEvent) {
	view := t.session.Viewport()
	if zoomModifierHeld() {
		zoom := view.Zoom() * config.ZoomStep
		if e.Scrolled.DY < 0 {
			zoom = view.Zoom() / config.ZoomStep
		}
		view.ZoomAt(float64(e.Position.X), zoom)
	} else {
		delta := e.Scrolled.DX
		if delta == 0 {
			delta = e.Scrolled.DY
		}
		view.ScrollBy(-float64(delta))
	}
	t.Refresh()
}

func zoomModifierHeld() bool {
	app := fyne.CurrentApp()
	if app == nil {
		return false
	}
	drv, ok := app.Driver().(desktop.Driver)
	if !ok {
		return false
	}
	mods := drv.CurrentKeyModifiers()
	return mods&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0
}

// MouseDown implements desktop.Mouseable.
func (t *Timeline) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonSecondary || t.mode != dragItem {
		return
	}
	t.session.PointerCancel()
	t.mode = dragAbandoned
	t.Refresh()
}

// MouseUp implements desktop.Mouseable.
func (t *Timeline) MouseUp(_ *desktop.MouseEvent) {}

// ZoomBy multiplies the zoom by factor, keeping the view centre fixed.
func (t *Timeline) ZoomBy(factor float64) {
	view := t.session.Viewport()
	if err := view.ZoomAt(view.Width()/2, view.Zoom()*factor); err != nil {
		t.log.Warn("zoom: %v", err)
	}
	t.Refresh()
}

// SetPlayhead moves the playhead and returns what each track shows there.
// The view pages to the playhead when it leaves the screen, unless an item
// is being dragged.
func (t *Timeline) SetPlayhead(seconds float64) map[string][]timeline.Interval {
	showing := t.session.TimeUpdate(seconds)
	t.follow(t.session.Playhead())
	t.Refresh()
	return showing
}

func (t *Timeline) follow(at float64) {
	view := t.session.Viewport()
	if view.Width() == 0 || t.session.Drag().State() == timeline.DragActive {
		return
	}
	if !view.VisibleRange().Contains(at) {
		view.ScrollToTime(at)
	}
}

// CreateRenderer implements fyne.Widget
func (t *Timeline) CreateRenderer() fyne.WidgetRenderer {
	playhead := canvas.NewLine(appTheme.ColorPlayhead)
	playhead.StrokeWidth = 2
	guide := canvas.NewLine(appTheme.ColorSnapGuide)
	guide.StrokeWidth = 1
	guide.Hide()

	r := &timelineRenderer{
		playhead: playhead,
		guide:    guide,
		widget:   t,
	}
	r.update(t.Size())
	return r
}

type timelineRenderer struct {
	bands    []*canvas.Rectangle
	items    []*canvas.Rectangle
	labels   []*canvas.Text
	playhead *canvas.Line
	guide    *canvas.Line
	objects  []fyne.CanvasObject
	widget   *Timeline
}

func (r *timelineRenderer) Destroy() {}

func (r *timelineRenderer) Layout(size fyne.Size) {
	s := r.widget.session
	s.Viewport().SetWidth(float64(size.Width))
	s.Drag().SetBounds(float64(size.Width), float64(size.Height))
	r.update(size)
}

func (r *timelineRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, float32(r.widget.session.ContentHeight()))
}

func (r *timelineRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *timelineRenderer) Refresh() {
	r.update(r.widget.Size())
}

func (r *timelineRenderer) update(size fyne.Size) {
	th := fyne.CurrentApp().Settings().Theme()
	variant := fyne.CurrentApp().Settings().ThemeVariant()
	s := r.widget.session
	store := s.Store()
	view := s.Viewport()

	trackIDs := store.TrackIDs()
	bandHeight := float32(float64(store.MaxLanes()) * s.LaneHeight())
	for len(r.bands) < len(trackIDs) {
		r.bands = append(r.bands, canvas.NewRectangle(color.Transparent))
	}
	r.bands = r.bands[:len(trackIDs)]
	for i, id := range trackIDs {
		top, _ := s.TrackTop(id)
		band := r.bands[i]
		if store.Locked(id) {
			band.FillColor = th.Color(appTheme.ColorNameTrackLocked, variant)
		} else {
			band.FillColor = th.Color(appTheme.ColorNameTrackBand, variant)
		}
		band.Move(fyne.NewPos(0, float32(top)))
		band.Resize(fyne.NewSize(size.Width, bandHeight))
		band.Refresh()
	}

	hints := s.RenderHints()
	for len(r.items) < len(hints) {
		rect := canvas.NewRectangle(color.Transparent)
		rect.CornerRadius = th.Size(appTheme.SizeNameItemRadius)
		label := canvas.NewText("", color.White)
		label.TextSize = th.Size(appTheme.SizeNameItemText)
		r.items = append(r.items, rect)
		r.labels = append(r.labels, label)
	}
	r.items = r.items[:len(hints)]
	r.labels = r.labels[:len(hints)]

	for i, h := range hints {
		rect, label := r.items[i], r.labels[i]
		fill := color.Color(appTheme.KindColor(h.Kind))
		if h.Collision {
			fill = th.Color(appTheme.ColorNameCollision, variant)
		}
		if h.Dragging {
			fill = appTheme.WithAlpha(fill, 200)
		}
		rect.FillColor = fill
		rect.StrokeWidth = 0
		if h.Overflow {
			rect.StrokeColor = th.Color(appTheme.ColorNameOverflow, variant)
			rect.StrokeWidth = 2
		}
		pos := fyne.NewPos(float32(h.PixelLeft), float32(h.PixelTop)+1)
		rect.Move(pos)
		rect.Resize(fyne.NewSize(float32(h.PixelWidth), float32(h.Height)-2))
		rect.Refresh()

		label.Text = fitText(h.Text, float32(h.PixelWidth)-8, label.TextSize)
		label.Color = th.Color(theme.ColorNameForeground, variant)
		label.Move(pos.Add(fyne.NewPos(4, (float32(h.Height)-label.MinSize().Height)/2)))
		label.Refresh()
	}

	height := fyne.Max(size.Height, float32(s.ContentHeight()))
	x := float32(view.TimeToPixel(s.Playhead()))
	r.playhead.Position1 = fyne.NewPos(x, 0)
	r.playhead.Position2 = fyne.NewPos(x, height)
	r.playhead.StrokeColor = th.Color(appTheme.ColorNamePlayhead, variant)
	r.playhead.Refresh()

	if p, ok := s.Drag().Preview(); ok && p.Snapped {
		gx := float32(view.TimeToPixel(p.SnapTarget))
		r.guide.Position1 = fyne.NewPos(gx, 0)
		r.guide.Position2 = fyne.NewPos(gx, height)
		r.guide.Show()
	} else {
		r.guide.Hide()
	}
	r.guide.Refresh()

	r.objects = make([]fyne.CanvasObject, 0, len(r.bands)+2*len(r.items)+2)
	for _, b := range r.bands {
		r.objects = append(r.objects, b)
	}
	for i := range r.items {
		r.objects = append(r.objects, r.items[i], r.labels[i])
	}
	r.objects = append(r.objects, r.guide, r.playhead)
}

// fitText trims s so it roughly fits width at the given text size.
func fitText(s string, width, textSize float32) string {
	if width <= 0 {
		return ""
	}
	maxRunes := int(width / (textSize * 0.6))
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 1 {
		return ""
	}
	return string(runes[:maxRunes-1]) + "…"
}

package layouts

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

func rect(w, h float32) *canvas.Rectangle {
	r := canvas.NewRectangle(nil)
	r.SetMinSize(fyne.NewSize(w, h))
	return r
}

func TestHeaderColumnLayout(t *testing.T) {
	headers, body := rect(10, 50), rect(300, 120)
	l := NewHeaderColumnLayout(160)

	l.Layout([]fyne.CanvasObject{headers, body}, fyne.NewSize(1000, 400))

	if headers.Size() != fyne.NewSize(160, 400) || headers.Position() != fyne.NewPos(0, 0) {
		t.Errorf("headers at %v size %v", headers.Position(), headers.Size())
	}
	if body.Size() != fyne.NewSize(840, 400) || body.Position() != fyne.NewPos(160, 0) {
		t.Errorf("timeline at %v size %v", body.Position(), body.Size())
	}

	if got := l.MinSize([]fyne.CanvasObject{headers, body}); got != fyne.NewSize(460, 120) {
		t.Errorf("MinSize() = %v, want {460 120}", got)
	}
}

func TestTrackRowsLayout(t *testing.T) {
	rows := []fyne.CanvasObject{rect(80, 10), rect(120, 10), rect(90, 10)}
	l := NewTrackRowsLayout(108, 12)

	l.Layout(rows, fyne.NewSize(160, 500))

	for i, row := range rows {
		wantY := float32(i) * 120
		if row.Position().Y != wantY {
			t.Errorf("row %d y = %v, want %v", i, row.Position().Y, wantY)
		}
		if row.Size() != fyne.NewSize(160, 108) {
			t.Errorf("row %d size = %v, want {160 108}", i, row.Size())
		}
	}

	if got := l.MinSize(rows); got != fyne.NewSize(120, 348) {
		t.Errorf("MinSize() = %v, want {120 348}", got)
	}
	if got := l.MinSize(nil); got != fyne.NewSize(0, 0) {
		t.Errorf("MinSize(nil) = %v, want zero", got)
	}
}

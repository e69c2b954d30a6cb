package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"timeline-editor/internal/config"
	"timeline-editor/internal/logger"
	"timeline-editor/internal/timeline"
	"timeline-editor/models"
	"timeline-editor/ui/layouts"
	appTheme "timeline-editor/ui/theme"
	"timeline-editor/ui/widgets"
)

// EditorUI is the main editor window content
type EditorUI struct {
	window   fyne.Window
	settings *models.Settings
	session  *timeline.Session
	log      *logger.Logger

	// UI Components
	toolbar    *widgets.Toolbar
	timeline   *widgets.Timeline
	headers    map[string]*widgets.TrackHeader
	headerRows *fyne.Container
	nowShowing *widget.Label

	stopPlayback context.CancelFunc
}

// NewEditorUI creates the editor UI around an existing session
func NewEditorUI(w fyne.Window, settings *models.Settings, session *timeline.Session, log *logger.Logger) *EditorUI {
	if log == nil {
		log = logger.Discard()
	}
	ui := &EditorUI{
		window:   w,
		settings: settings,
		session:  session,
		log:      log.Named("ui"),
		headers:  make(map[string]*widgets.TrackHeader),
	}

	session.SetEvents(timeline.Events{
		OnCommitted: func(id string, r timeline.Range) {
			ui.setStatus(fmt.Sprintf("Moved to %s - %s", widgets.FormatClock(r.Start), widgets.FormatClock(r.End)))
		},
		OnSnapped: func(id string, target float64) {
			ui.setStatus(fmt.Sprintf("Snapped to %s", widgets.FormatClock(target)))
		},
		OnCollision: func(id string, colliding bool) {
			if colliding {
				ui.setStatus("Overlaps another item in this lane")
			}
		},
		OnOverflow: func(trackID string, ids []string) {
			ui.setStatus(fmt.Sprintf("Track %s needs more than %d lanes; %d items share a lane",
				trackID, session.Store().MaxLanes(), len(ids)))
		},
		OnTrackChanged: func(trackID string) {
			ui.refreshTrack(trackID)
		},
	})
	return ui
}

// Build creates the complete UI layout
func (ui *EditorUI) Build() fyne.CanvasObject {
	ui.toolbar = widgets.NewToolbar()
	ui.toolbar.OnOpenSubtitles = ui.onOpenSubtitles
	ui.toolbar.OnExportTrack = ui.onExportTrack
	ui.toolbar.OnSaveProject = ui.onSaveProject
	ui.toolbar.OnLoadProject = ui.onLoadProject
	ui.toolbar.OnZoomIn = func() { ui.zoom(config.ZoomStep) }
	ui.toolbar.OnZoomOut = func() { ui.zoom(1 / config.ZoomStep) }
	ui.toolbar.OnPlayToggled = ui.onPlayToggled

	ui.timeline = widgets.NewTimeline(ui.session, ui.log)
	ui.timeline.OnError = func(err error) { ui.setStatus(err.Error()) }

	ui.nowShowing = widget.NewLabel("")
	ui.nowShowing.Wrapping = fyne.TextWrapWord

	bandHeight := float32(float64(ui.session.Store().MaxLanes()) * ui.session.LaneHeight())
	gap := float32(ui.session.TrackGap())
	ui.headerRows = container.New(layouts.NewTrackRowsLayout(bandHeight, gap))
	ui.rebuildHeaders()

	th := fyne.CurrentApp().Settings().Theme()
	tracks := container.New(
		layouts.NewHeaderColumnLayout(th.Size(appTheme.SizeNameTrackHeaderWidth)),
		ui.headerRows,
		ui.timeline,
	)

	content := container.NewBorder(
		ui.toolbar,
		container.NewPadded(ui.nowShowing),
		nil, nil,
		container.NewVScroll(tracks),
	)
	ui.toolbar.SetZoom(ui.session.Viewport().Zoom())
	return content
}

// Shutdown stops background playback.
func (ui *EditorUI) Shutdown() {
	if ui.stopPlayback != nil {
		ui.stopPlayback()
		ui.stopPlayback = nil
	}
}

func (ui *EditorUI) setStatus(message string) {
	if ui.toolbar != nil {
		ui.toolbar.SetStatus(message)
	}
}

func (ui *EditorUI) rebuildHeaders() {
	if ui.headerRows == nil {
		return
	}
	ui.headers = make(map[string]*widgets.TrackHeader)
	ui.headerRows.RemoveAll()
	store := ui.session.Store()
	for _, id := range store.TrackIDs() {
		track, _ := store.Track(id)
		header := widgets.NewTrackHeader(track)
		header.OnLockToggled = ui.onLockToggled
		ui.headers[id] = header
		ui.headerRows.Add(header)
	}
	ui.headerRows.Refresh()
}

func (ui *EditorUI) refreshTrack(trackID string) {
	header, ok := ui.headers[trackID]
	if !ok {
		ui.rebuildHeaders()
	} else if track, found := ui.session.Store().Track(trackID); found {
		header.SetTrack(track)
	}
	if ui.timeline != nil {
		ui.timeline.Refresh()
	}
}

// refreshAll resyncs every view with the session after bulk changes.
func (ui *EditorUI) refreshAll() {
	ui.rebuildHeaders()
	if ui.timeline != nil {
		ui.timeline.Refresh()
	}
}

func (ui *EditorUI) onLockToggled(trackID string, locked bool) {
	if err := ui.session.Store().SetLocked(trackID, locked); err != nil {
		ui.log.Error("lock %s: %v", trackID, err)
		return
	}
	if track, ok := ui.session.Store().Track(trackID); ok {
		ui.headers[trackID].SetTrack(track)
	}
	ui.timeline.Refresh()
}

func (ui *EditorUI) zoom(factor float64) {
	ui.timeline.ZoomBy(factor)
	ui.toolbar.SetZoom(ui.session.Viewport().Zoom())
}

// OpenSubtitles imports SRT files and reports the outcome in the status line
func (ui *EditorUI) OpenSubtitles(paths ...string) {
	added, rejected, failed := 0, 0, 0
	for _, report := range ImportSubtitleFiles(context.Background(), ui.session, paths) {
		if report.Err != nil {
			failed++
			ui.log.Error("import %s: %v", report.Path, report.Err)
			dialog.ShowError(fmt.Errorf("%s: %w", report.Path, report.Err), ui.window)
			continue
		}
		for _, r := range report.Rejected {
			ui.log.Warn("import %s: %v", report.Path, r)
		}
		added += report.Added
		rejected += len(report.Rejected)
	}
	ui.refreshAll()
	ui.setStatus(fmt.Sprintf("Imported %d cues from %d files (%d rejected)", added, len(paths)-failed, rejected))
}

func (ui *EditorUI) onOpenSubtitles() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		ui.OpenSubtitles(path)
	}, ui.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".srt"}))
	fd.Show()
}

func (ui *EditorUI) onExportTrack() {
	ids := ui.session.Store().TrackIDs()
	if len(ids) == 0 {
		dialog.ShowInformation("Nothing to export", "The timeline has no tracks yet.", ui.window)
		return
	}
	selector := widget.NewSelect(ids, nil)
	selector.SetSelected(ids[0])

	dialog.ShowForm("Export track", "Choose file", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Track", selector)},
		func(confirmed bool) {
			if !confirmed {
				return
			}
			trackID := selector.Selected
			save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
				if err != nil || writer == nil {
					return
				}
				path := writer.URI().Path()
				writer.Close()
				n, err := ExportTrack(ui.session, trackID, path)
				if err != nil {
					ui.log.Error("export %s: %v", trackID, err)
					dialog.ShowError(err, ui.window)
					return
				}
				ui.setStatus(fmt.Sprintf("Exported %d cues from %s", n, trackID))
			}, ui.window)
			save.SetFileName(trackID + ".srt")
			save.Show()
		}, ui.window)
}

func (ui *EditorUI) onSaveProject() {
	path := ui.settings.ProjectPath
	if err := SaveProject(context.Background(), ui.session, path, ui.log); err != nil {
		ui.log.Error("save project: %v", err)
		dialog.ShowError(err, ui.window)
		return
	}
	ui.setStatus("Saved " + path)
}

func (ui *EditorUI) onLoadProject() {
	path := ui.settings.ProjectPath
	ui.Shutdown()
	ui.toolbar.SetPlaying(false)
	if err := LoadProject(context.Background(), ui.session, path, ui.log); err != nil {
		ui.log.Error("load project: %v", err)
		dialog.ShowError(err, ui.window)
		return
	}
	ui.refreshAll()
	ui.setStatus("Loaded " + path)
}

// Restore loads the configured project if it exists and makes sure every
// kind has a track.
func (ui *EditorUI) Restore() error {
	defer ui.refreshAll()
	defer ui.session.EnsureKindTracks()

	path := ui.settings.ProjectPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return LoadProject(context.Background(), ui.session, path, ui.log)
}

func (ui *EditorUI) onPlayToggled(playing bool) {
	ui.Shutdown()
	if !playing {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	ui.stopPlayback = cancel

	from := ui.session.Playhead()
	if from >= ui.session.Viewport().TotalDuration() {
		from = 0
	}
	started := time.Now()
	clock := timeline.ClockFunc(func() float64 {
		return from + time.Since(started).Seconds()
	})

	go func() {
		timeline.PollClock(ctx, clock, ui.settings.PlaybackPollInterval, func(t float64) {
			fyne.Do(func() {
				if ctx.Err() == nil {
					ui.onTime(t)
				}
			})
		})
	}()
}

func (ui *EditorUI) onTime(t float64) {
	showing := ui.timeline.SetPlayhead(t)
	playhead := ui.session.Playhead()
	ui.toolbar.SetTime(playhead)

	trackIDs := make([]string, 0, len(showing))
	for id := range showing {
		trackIDs = append(trackIDs, id)
	}
	sort.Strings(trackIDs)

	var lines []string
	for _, id := range trackIDs {
		for _, iv := range showing[id] {
			lines = append(lines, fmt.Sprintf("%s: %s", id, iv.Payload.Text))
		}
	}
	ui.nowShowing.SetText(strings.Join(lines, "\n"))

	if playhead >= ui.session.Viewport().TotalDuration() {
		ui.Shutdown()
		ui.toolbar.SetPlaying(false)
	}
}

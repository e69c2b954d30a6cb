package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timeline-editor/internal/subtitle"
	"timeline-editor/internal/timeline"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,000
你好世界

2
00:00:02,000 --> 00:00:04,500
Hello world

3
00:00:05,000 --> 00:00:06,000
[door slams]

4
00:00:07,000 --> 00:00:08,000

`

func newSession(t *testing.T) *timeline.Session {
	t.Helper()
	s, err := timeline.NewSession(timeline.SessionOptions{})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestImportSubtitles(t *testing.T) {
	s := newSession(t)
	path := writeFile(t, "episode.srt", sampleSRT)

	added, rejected, err := ImportSubtitles(s, path)
	if err != nil {
		t.Fatalf("ImportSubtitles() error = %v", err)
	}
	if added != 3 || len(rejected) != 0 {
		t.Fatalf("ImportSubtitles() = %d, %v; want 3 and none rejected", added, rejected)
	}

	tests := []struct {
		track string
		text  string
	}{
		{"main", "你好世界"},
		{"translation", "Hello world"},
		{"description", "[door slams]"},
	}
	for _, tt := range tests {
		track, ok := s.Store().Track(tt.track)
		if !ok || len(track.Items) != 1 {
			t.Fatalf("track %s = %+v, want one item", tt.track, track)
		}
		if got := track.Items[0]; got.Payload.Text != tt.text || got.Payload.Source != "episode.srt" {
			t.Errorf("track %s item = %+v, want text %q from episode.srt", tt.track, got.Payload, tt.text)
		}
	}

	if got := s.MediaDuration(); got != 6 {
		t.Errorf("MediaDuration() = %v, want 6", got)
	}
}

func TestImportSubtitles_MissingFile(t *testing.T) {
	s := newSession(t)
	_, _, err := ImportSubtitles(s, filepath.Join(t.TempDir(), "missing.srt"))
	if err == nil {
		t.Fatal("ImportSubtitles() should fail for a missing file")
	}
	if ids := s.Store().TrackIDs(); len(ids) != 0 {
		t.Errorf("failed import created tracks %v", ids)
	}
}

func TestExportTrack(t *testing.T) {
	s := newSession(t)
	if _, _, err := ImportSubtitles(s, writeFile(t, "in.srt", sampleSRT)); err != nil {
		t.Fatalf("ImportSubtitles() error = %v", err)
	}
	if err := s.Store().UpdateRange(firstID(t, s, "translation"), 10, 12.5); err != nil {
		t.Fatalf("UpdateRange() error = %v", err)
	}

	out := filepath.Join(t.TempDir(), "translation.srt")
	n, err := ExportTrack(s, "translation", out)
	if err != nil {
		t.Fatalf("ExportTrack() error = %v", err)
	}
	if n != 1 {
		t.Errorf("ExportTrack() = %d cues, want 1", n)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(content), "00:00:10,000 --> 00:00:12,500") {
		t.Errorf("export missing moved timing:\n%s", content)
	}

	subs, err := subtitle.ParseSRTFile(out)
	if err != nil {
		t.Fatalf("ParseSRTFile(export) error = %v", err)
	}
	if len(subs) != 1 || subs[0].Text != "Hello world" {
		t.Errorf("re-parsed export = %+v", subs)
	}
}

func TestExportTrack_UnknownTrack(t *testing.T) {
	s := newSession(t)
	_, err := ExportTrack(s, "nope", filepath.Join(t.TempDir(), "x.srt"))
	if !errors.Is(err, timeline.ErrNotFound) {
		t.Errorf("ExportTrack() error = %v, want ErrNotFound", err)
	}
}

func TestSaveAndLoadProject(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "projects", "demo.db")

	src := newSession(t)
	if _, _, err := ImportSubtitles(src, writeFile(t, "in.srt", sampleSRT)); err != nil {
		t.Fatalf("ImportSubtitles() error = %v", err)
	}
	if err := SaveProject(ctx, src, path, nil); err != nil {
		t.Fatalf("SaveProject() error = %v", err)
	}

	dst := newSession(t)
	if err := LoadProject(ctx, dst, path, nil); err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	for _, id := range src.Store().TrackIDs() {
		if got, want := dst.Store().Len(id), src.Store().Len(id); got != want {
			t.Errorf("track %s has %d items after load, want %d", id, got, want)
		}
	}
}

func firstID(t *testing.T, s *timeline.Session, trackID string) string {
	t.Helper()
	track, ok := s.Store().Track(trackID)
	if !ok || len(track.Items) == 0 {
		t.Fatalf("track %s is empty", trackID)
	}
	return track.Items[0].ID
}

func TestImportSubtitleFiles(t *testing.T) {
	s := newSession(t)
	first := writeFile(t, "a.srt", "1\n00:00:00,000 --> 00:00:02,000\nHello\n")
	second := writeFile(t, "b.srt", "1\n00:00:10,000 --> 00:00:12,000\nWorld\n")
	missing := filepath.Join(t.TempDir(), "missing.srt")

	reports := ImportSubtitleFiles(context.Background(), s, []string{first, missing, second})
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	if reports[0].Err != nil || reports[0].Added != 1 {
		t.Errorf("report[0] = %+v", reports[0])
	}
	if reports[1].Err == nil || reports[1].Path != missing {
		t.Errorf("report[1] = %+v, want an error for %s", reports[1], missing)
	}
	if reports[2].Err != nil || reports[2].Added != 1 {
		t.Errorf("report[2] = %+v", reports[2])
	}

	track, _ := s.Store().Track("translation")
	if len(track.Items) != 2 || track.Items[0].Payload.Source != "a.srt" || track.Items[1].Payload.Source != "b.srt" {
		t.Errorf("translation items = %+v", track.Items)
	}
	if s.MediaDuration() != 12 {
		t.Errorf("MediaDuration() = %v, want 12", s.MediaDuration())
	}
}

package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"timeline-editor/internal/logger"
	"timeline-editor/internal/project"
	"timeline-editor/internal/subtitle"
	"timeline-editor/internal/timeline"
	"timeline-editor/internal/worker"
)

// ImportSubtitles parses an SRT file into the session. Cues are classified
// onto the kind tracks. It returns the number of cues stored and the cues
// rejected by the store; a parse failure adds nothing.
func ImportSubtitles(s *timeline.Session, path string) (int, []error, error) {
	subs, err := subtitle.ParseSRTFile(path)
	if err != nil {
		return 0, nil, err
	}
	added, rejected := ingestList(s, subs, path)
	return added, rejected, nil
}

// ImportReport summarises importing one subtitle file.
type ImportReport struct {
	Path     string
	Added    int
	Rejected []error
	Err      error
}

// ImportSubtitleFiles parses several SRT files concurrently, then ingests
// them into the session one after another in the given order.
func ImportSubtitleFiles(ctx context.Context, s *timeline.Session, paths []string) []ImportReport {
	parsed := worker.Map(ctx, paths, runtime.NumCPU(), func(_ context.Context, job worker.Job[string]) (subtitle.List, error) {
		return subtitle.ParseSRTFile(job.Data)
	}, nil)

	reports := make([]ImportReport, len(paths))
	for i, r := range parsed {
		reports[i].Path = paths[i]
		if r.Err != nil {
			reports[i].Err = r.Err
			continue
		}
		reports[i].Added, reports[i].Rejected = ingestList(s, r.Value, paths[i])
	}
	return reports
}

func ingestList(s *timeline.Session, subs subtitle.List, path string) (int, []error) {
	added, rejected := s.Ingest(subs.Cues(filepath.Base(path)))
	if media := subtitle.DurationToSeconds(subs.TotalDuration()); media > s.MediaDuration() {
		s.SetMediaDuration(media)
	}
	return added, rejected
}

// ExportTrack writes one track as an SRT file.
func ExportTrack(s *timeline.Session, trackID, path string) (int, error) {
	track, ok := s.Store().Track(trackID)
	if !ok {
		return 0, fmt.Errorf("%w: track %q", timeline.ErrNotFound, trackID)
	}
	subs := subtitle.FromTrack(track)
	if err := subtitle.WriteSRTFile(path, subs); err != nil {
		return 0, err
	}
	return len(subs), nil
}

// SaveProject snapshots the session into the project database at path.
func SaveProject(ctx context.Context, s *timeline.Session, path string, log *logger.Logger) error {
	db, err := project.Open(path, log)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.SaveSession(ctx, s)
}

// LoadProject replaces the session's tracks with the project stored at path.
func LoadProject(ctx context.Context, s *timeline.Session, path string, log *logger.Logger) error {
	db, err := project.Open(path, log)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.LoadInto(ctx, s)
}

package project

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"timeline-editor/internal/timeline"
)

const metaMediaDuration = "media_duration"

// SaveSession replaces the stored project with the session's tracks, in one
// transaction.
func (d *DB) SaveSession(ctx context.Context, s *timeline.Session) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM intervals", "DELETE FROM tracks", "DELETE FROM meta"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear project: %w", err)
		}
	}

	store := s.Store()
	count := 0
	for pos, trackID := range store.TrackIDs() {
		track, _ := store.Track(trackID)
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tracks (id, kind, locked, position) VALUES (?, ?, ?, ?)",
			track.ID, string(track.Kind), boolToInt(track.Locked), pos,
		); err != nil {
			return fmt.Errorf("failed to save track %s: %w", track.ID, err)
		}

		for i, iv := range track.Items {
			var forced sql.NullInt64
			if iv.HasForcedLane {
				forced = sql.NullInt64{Int64: int64(iv.ForcedLane), Valid: true}
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO intervals
					(id, track_id, start_seconds, end_seconds, text, source, continuation, forced_lane, assigned_kind, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				iv.ID, track.ID, iv.Start, iv.End, iv.Payload.Text, iv.Payload.Source,
				boolToInt(iv.Payload.Continuation), forced, string(iv.AssignedKind), i,
			); err != nil {
				return fmt.Errorf("failed to save interval %s: %w", iv.ID, err)
			}
			count++
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO meta (key, value) VALUES (?, ?)",
		metaMediaDuration, strconv.FormatFloat(s.MediaDuration(), 'g', -1, 64),
	); err != nil {
		return fmt.Errorf("failed to save media duration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	d.log.Info("saved %d tracks, %d intervals", len(store.TrackIDs()), count)
	return nil
}

type storedTrack struct {
	id     string
	kind   timeline.Kind
	locked bool
}

// LoadInto replaces the session's tracks with the stored project. Tracks are
// locked only after their items are in place.
func (d *DB) LoadInto(ctx context.Context, s *timeline.Session) error {
	tracks, err := d.loadTracks(ctx)
	if err != nil {
		return err
	}
	items, err := d.loadIntervals(ctx)
	if err != nil {
		return err
	}
	mediaDuration, err := d.loadMediaDuration(ctx)
	if err != nil {
		return err
	}

	store := s.Store()
	scratch, err := timeline.NewStore(store.MaxLanes(), nil)
	if err != nil {
		return err
	}
	if err := restore(scratch, tracks, items); err != nil {
		d.log.Warn("project rejected, session left unchanged: %v", err)
		return err
	}

	for _, id := range store.TrackIDs() {
		store.RemoveTrack(id)
	}
	if err := restore(store, tracks, items); err != nil {
		return err
	}
	s.SetMediaDuration(mediaDuration)

	d.log.Info("loaded %d tracks", len(tracks))
	return nil
}

// restore replays stored tracks into store. LoadInto runs it against a
// scratch store first so a bad row never touches the live session.
func restore(store *timeline.Store, tracks []storedTrack, items map[string][]timeline.Interval) error {
	for _, t := range tracks {
		if err := store.AddTrack(t.id, t.kind); err != nil {
			return fmt.Errorf("failed to restore track %s: %w", t.id, err)
		}
	}
	for _, t := range tracks {
		for _, iv := range items[t.id] {
			if _, err := store.Add(t.id, iv); err != nil {
				return fmt.Errorf("failed to restore interval %s: %w", iv.ID, err)
			}
		}
	}
	for _, t := range tracks {
		if t.locked {
			if err := store.SetLocked(t.id, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *DB) loadTracks(ctx context.Context) ([]storedTrack, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT id, kind, locked FROM tracks ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []storedTrack
	for rows.Next() {
		var t storedTrack
		var kind string
		var locked int
		if err := rows.Scan(&t.id, &kind, &locked); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		t.kind = timeline.Kind(kind)
		t.locked = locked != 0
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func (d *DB) loadIntervals(ctx context.Context) (map[string][]timeline.Interval, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT id, track_id, start_seconds, end_seconds, text, source, continuation, forced_lane, assigned_kind
		FROM intervals
		ORDER BY track_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query intervals: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]timeline.Interval)
	for rows.Next() {
		var iv timeline.Interval
		var trackID, assigned string
		var continuation int
		var forced sql.NullInt64
		if err := rows.Scan(&iv.ID, &trackID, &iv.Start, &iv.End, &iv.Payload.Text, &iv.Payload.Source,
			&continuation, &forced, &assigned); err != nil {
			return nil, fmt.Errorf("failed to scan interval: %w", err)
		}
		iv.Payload.Continuation = continuation != 0
		if forced.Valid {
			iv.ForcedLane = int(forced.Int64)
			iv.HasForcedLane = true
		}
		iv.AssignedKind = timeline.Kind(assigned)
		items[trackID] = append(items[trackID], iv)
	}
	return items, rows.Err()
}

func (d *DB) loadMediaDuration(ctx context.Context) (float64, error) {
	var value string
	err := d.conn.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", metaMediaDuration).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query media duration: %w", err)
	}
	return strconv.ParseFloat(value, 64)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

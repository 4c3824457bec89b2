package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ledgerpro/internal/core"

	"github.com/rs/zerolog"
)

const backupFilePrefix = "ledgerpro_backup_"

// BackupFileName is the name used for exports and scheduled backups taken on
// the given day.
func BackupFileName(at time.Time) string {
	return backupFilePrefix + at.Format("2006-01-02") + ".json"
}

// IntervalDuration maps the settings value to a period. Off and unknown
// values return zero.
func IntervalDuration(i core.BackupInterval) time.Duration {
	switch i {
	case core.Backup12h:
		return 12 * time.Hour
	case core.BackupDaily:
		return 24 * time.Hour
	case core.BackupWeekly:
		return 7 * 24 * time.Hour
	case core.BackupMonthly:
		return 30 * 24 * time.Hour
	case core.BackupYearly:
		return 365 * 24 * time.Hour
	}
	return 0
}

// BackupSource is what the scheduler backs up. The application service
// implements it so the read and the timestamp update happen under its lock.
type BackupSource interface {
	BackupSnapshot(ctx context.Context) (core.Snapshot, error)
	RecordBackup(ctx context.Context, at time.Time) error
}

// Scheduler writes a backup file into dir whenever the configured interval has
// elapsed since the last one.
type Scheduler struct {
	source BackupSource
	dir    string
	every  time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewScheduler(source BackupSource, dir string, log zerolog.Logger) *Scheduler {
	return &Scheduler{source: source, dir: dir, every: time.Minute, now: time.Now, log: log}
}

// Run checks once immediately and then every minute until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()
	for {
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error().Err(err).Msg("scheduled backup failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce writes a backup if one is due and returns the file written, or ""
// when nothing was due.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	snap, err := s.source.BackupSnapshot(ctx)
	if err != nil {
		return "", err
	}
	interval := IntervalDuration(snap.Settings.AutoBackupInterval)
	if interval == 0 {
		return "", nil
	}

	now := s.now()
	last := time.UnixMilli(snap.Settings.LastBackupTimestamp)
	if snap.Settings.LastBackupTimestamp != 0 && now.Sub(last) < interval {
		return "", nil
	}

	path, err := WriteBackupFile(s.dir, snap, now)
	if err != nil {
		return "", err
	}
	if err := s.source.RecordBackup(ctx, now); err != nil {
		return path, fmt.Errorf("record backup time: %w", err)
	}
	s.log.Info().Str("file", path).Msg("backup written")
	return path, nil
}

// WriteBackupFile writes snap as BackupFileName(at) inside dir.
func WriteBackupFile(dir string, snap core.Snapshot, at time.Time) (string, error) {
	data, err := Encode(snap)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, BackupFileName(at))
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// ListBackups returns the backup files in dir, newest first.
func ListBackups(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), backupFilePrefix) || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, filepath.Join(dir, e.Name()))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

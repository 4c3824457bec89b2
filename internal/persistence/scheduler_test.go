package persistence

import (
	"context"
	"os"
	"testing"
	"time"

	"ledgerpro/internal/core"

	"github.com/rs/zerolog"
)

type fakeSource struct {
	snap     core.Snapshot
	recorded []time.Time
}

func (f *fakeSource) BackupSnapshot(context.Context) (core.Snapshot, error) {
	return f.snap, nil
}

func (f *fakeSource) RecordBackup(_ context.Context, at time.Time) error {
	f.recorded = append(f.recorded, at)
	f.snap.Settings.LastBackupTimestamp = at.UnixMilli()
	return nil
}

func TestScheduler_RunOnce(t *testing.T) {
	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		interval core.BackupInterval
		last     time.Time
		wantFile bool
	}{
		{"never backed up", core.BackupDaily, time.Time{}, true},
		{"daily, 25h ago", core.BackupDaily, now.Add(-25 * time.Hour), true},
		{"daily, 2h ago", core.BackupDaily, now.Add(-2 * time.Hour), false},
		{"12h, 13h ago", core.Backup12h, now.Add(-13 * time.Hour), true},
		{"weekly, 3 days ago", core.BackupWeekly, now.Add(-72 * time.Hour), false},
		{"off", core.BackupOff, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := core.DefaultSettings()
			settings.AutoBackupInterval = tt.interval
			if !tt.last.IsZero() {
				settings.LastBackupTimestamp = tt.last.UnixMilli()
			}
			src := &fakeSource{snap: core.Snapshot{Settings: settings}}
			dir := t.TempDir()
			s := NewScheduler(src, dir, zerolog.Nop())
			s.now = func() time.Time { return now }

			path, err := s.RunOnce(context.Background())
			if err != nil {
				t.Fatalf("RunOnce failed: %v", err)
			}
			if !tt.wantFile {
				if path != "" || len(src.recorded) != 0 {
					t.Errorf("expected no backup, got %q", path)
				}
				return
			}
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("backup file missing: %v", err)
			}
			if got, want := path, dir+"/ledgerpro_backup_2024-05-02.json"; got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
			if len(src.recorded) != 1 || !src.recorded[0].Equal(now) {
				t.Errorf("backup time not recorded: %v", src.recorded)
			}

			again, err := s.RunOnce(context.Background())
			if err != nil || again != "" {
				t.Errorf("second run right after should not back up: %q, %v", again, err)
			}
		})
	}
}

func TestListBackups(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ledgerpro_backup_2024-01-01.json", "ledgerpro_backup_2024-03-01.json", "notes.txt"} {
		if err := os.WriteFile(dir+"/"+name, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := ListBackups(dir)
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(got) != 2 || got[0] != dir+"/ledgerpro_backup_2024-03-01.json" {
		t.Errorf("unexpected listing: %v", got)
	}
}

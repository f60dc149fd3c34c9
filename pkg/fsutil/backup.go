package fsutil

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxBackups is the number of backups kept per file.
const DefaultMaxBackups = 5

// BackupInfix separates the original file name from the backup timestamp.
const BackupInfix = ".backup."

// BackupPath returns the backup path for path taken at time at:
// <path>.backup.<unix-epoch-seconds>.
func BackupPath(path string, at time.Time) string {
	return path + BackupInfix + strconv.FormatInt(at.Unix(), 10)
}

// Backup describes one backup file on disk.
type Backup struct {
	// Path is the absolute path of the backup.
	Path string

	// Timestamp is the epoch second encoded in the file name, or 0 if it does not parse.
	Timestamp int64

	// ModTime is the backup file's modification time.
	ModTime time.Time
}

// BackupManager creates timestamped copies of a file before it is
// overwritten and prunes old copies.
type BackupManager struct {
	// MaxBackups is the number of backups retained per file. Values below 1
	// are treated as DefaultMaxBackups.
	MaxBackups int

	now func() time.Time
}

// BackupOption configures a BackupManager.
type BackupOption func(*BackupManager)

// WithClock overrides the clock used to stamp backup names.
func WithClock(now func() time.Time) BackupOption {
	return func(m *BackupManager) {
		m.now = now
	}
}

// NewBackupManager returns a manager retaining maxBackups copies per file.
func NewBackupManager(maxBackups int, opts ...BackupOption) *BackupManager {
	m := &BackupManager{
		MaxBackups: maxBackups,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *BackupManager) limit() int {
	if m.MaxBackups < 1 {
		return DefaultMaxBackups
	}
	return m.MaxBackups
}

// CreateBackup copies the current content of path to a timestamped sibling
// and then prunes old backups. It returns the backup path, or "" when path
// does not exist and there is nothing to protect.
//
// Pruning is best-effort and never fails the call.
func (m *BackupManager) CreateBackup(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("create backup: %w", ctx.Err())
	default:
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read original for backup: %w", err)
	}

	stat, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("stat original for backup: %w", err)
	}

	backupPath := BackupPath(absPath, m.now())
	if err := WriteAtomic(ctx, backupPath, content, stat.Mode()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	m.CleanupOldBackups(absPath)

	return backupPath, nil
}

// CleanupOldBackups deletes the oldest backups of path beyond MaxBackups and
// returns how many were removed. Listing and deletion failures are ignored.
func (m *BackupManager) CleanupOldBackups(path string) int {
	backups, err := m.ListBackups(path)
	if err != nil {
		return 0
	}

	excess := len(backups) - m.limit()
	if excess <= 0 {
		return 0
	}

	removed := 0
	for _, backup := range backups[:excess] {
		if err := os.Remove(backup.Path); err == nil {
			removed++
		}
	}
	return removed
}

// ListBackups returns the backups of path, oldest first. Entries are ordered
// by modification time, then by the timestamp in their name.
func (m *BackupManager) ListBackups(path string) ([]Backup, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	dir := filepath.Dir(absPath)
	prefix := filepath.Base(absPath) + BackupInfix

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	var backups []Backup
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}

		suffix := strings.TrimPrefix(name, prefix)
		stamp, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			// Leftover temp files from an interrupted write are not backups.
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, Backup{
			Path:      filepath.Join(dir, name),
			Timestamp: stamp,
			ModTime:   info.ModTime(),
		})
	}

	slices.SortFunc(backups, func(a, b Backup) int {
		if c := a.ModTime.Compare(b.ModTime); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})

	return backups, nil
}

// RestoreLatest atomically replaces path with its most recent backup.
// It returns the backup that was used, or "" when there are none.
func (m *BackupManager) RestoreLatest(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("restore backup: %w", ctx.Err())
	default:
	}

	backups, err := m.ListBackups(path)
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", nil
	}

	latest := backups[len(backups)-1]
	content, err := os.ReadFile(latest.Path)
	if err != nil {
		return "", fmt.Errorf("read backup: %w", err)
	}

	stat, err := os.Stat(latest.Path)
	if err != nil {
		return "", fmt.Errorf("stat backup: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	if _, err := WriteAtomicIfChanged(ctx, absPath, content, stat.Mode()); err != nil {
		return "", fmt.Errorf("restore from backup: %w", err)
	}

	return latest.Path, nil
}

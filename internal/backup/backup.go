// Package backup creates timestamped copies of the store next to it. It
// works on bytes, not blobs: a SQLite store is one file, a file store is a
// directory of per-key files.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rhysbell/ritual/internal/constants"
)

// Info describes one backup on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for the store at storePath.
type Manager struct {
	storePath string
	backupDir string
}

func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), constants.BackupDirName),
	}
}

// GetBackupDir returns the backup directory path.
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup copies the store into the backup directory and rotates old
// backups beyond constants.MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	info, err := os.Stat(m.storePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("store does not exist: %s", m.storePath)
		}
		return "", fmt.Errorf("failed to access store: %w", err)
	}

	name := constants.BackupFilePrefix + time.Now().Format("20060102-150405")
	if !info.IsDir() {
		name += filepath.Ext(m.storePath)
	}
	dest := filepath.Join(m.backupDir, name)

	// Second backup within the same second
	counter := 1
	for {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d", name, counter))
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup name")
		}
	}

	if info.IsDir() {
		err = copyDir(m.storePath, dest)
	} else {
		err = copyFile(m.storePath, dest)
	}
	if err != nil {
		return "", fmt.Errorf("failed to copy store: %w", err)
	}

	if err := m.rotateBackups(); err != nil {
		// Rotation failure should not fail the backup itself
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}

	return dest, nil
}

// ListBackups returns all backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), constants.BackupFilePrefix) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: fi.ModTime(),
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// RestoreBackup replaces the store with the given backup. The current store
// is backed up first so a bad restore can itself be undone.
func (m *Manager) RestoreBackup(backupPath string) error {
	info, err := os.Stat(backupPath)
	if err != nil {
		return fmt.Errorf("failed to access backup: %w", err)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		if _, err := m.CreateBackup(); err != nil {
			return fmt.Errorf("failed to back up current store before restore: %w", err)
		}
		if err := os.RemoveAll(m.storePath); err != nil {
			return fmt.Errorf("failed to remove current store: %w", err)
		}
	}

	if info.IsDir() {
		return copyDir(backupPath, m.storePath)
	}
	return copyFile(backupPath, m.storePath)
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.RemoveAll(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func copyDir(src, dest string) error {
	if err := os.MkdirAll(dest, 0700); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			// The store directory holds flat per-key files plus the backup
			// directory itself; nested directories are never part of the store.
			continue
		}
		if err := copyFile(filepath.Join(src, entry.Name()), filepath.Join(dest, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

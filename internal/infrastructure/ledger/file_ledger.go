// File: internal/infrastructure/ledger/file_ledger.go

// Package ledger implements the pending-credential store: a single JSON file
// mapping provider emails to encrypted RocketChat passwords. An entry exists
// exactly while a shadow chat account has been created but the local user
// record has not been committed, and is consumed on the next login attempt.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/apurv-1/RC4Community/internal/domain/repository"
)

// FileLedger reads and rewrites the whole mapping on every mutation. A mutex
// serializes read-modify-write cycles within the process and writes go
// through a temp file plus rename, so a crash never leaves a torn file.
type FileLedger struct {
	path string
	mu   sync.Mutex
}

// NewFileLedger creates a ledger backed by the file at path. The file is
// created lazily on the first Put.
func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Get returns the stored credential for email and whether an entry exists.
func (l *FileLedger) Get(email string) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return "", false, err
	}
	credential, ok := entries[email]
	return credential, ok, nil
}

// Put adds or overwrites the entry for email and persists synchronously.
func (l *FileLedger) Put(email, credential string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return err
	}
	entries[email] = credential
	return l.store(entries)
}

// Remove deletes the entry for email and persists synchronously. Removing an
// absent entry is a no-op.
func (l *FileLedger) Remove(email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return err
	}
	if _, ok := entries[email]; !ok {
		return nil
	}
	delete(entries, email)
	return l.store(entries)
}

func (l *FileLedger) load() (map[string]string, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse ledger file: %w", err)
	}
	return entries, nil
}

func (l *FileLedger) store(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".ledger-*")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close ledger file: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}

var _ repository.PendingCredentialStore = (*FileLedger)(nil)

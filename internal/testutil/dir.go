// Package testutil provides reusable test utilities for jot tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDir represents a temporary data directory for testing.
type TestDir struct {
	Path string
	t    *testing.T
}

// NewTestDir creates a data directory with an empty notes/
// subdirectory.
func NewTestDir(t *testing.T) *TestDir {
	t.Helper()
	d := &TestDir{Path: t.TempDir(), t: t}
	if err := os.MkdirAll(filepath.Join(d.Path, "notes"), 0755); err != nil {
		t.Fatalf("failed to create notes directory: %v", err)
	}
	return d
}

// NotesDir returns the notes directory path.
func (d *TestDir) NotesDir() string {
	return filepath.Join(d.Path, "notes")
}

// AttachmentsDir returns the attachments directory path.
func (d *TestDir) AttachmentsDir() string {
	return filepath.Join(d.Path, "attachments")
}

// WriteNote writes a note file under notes/.
func (d *TestDir) WriteNote(name, content string) {
	d.t.Helper()
	d.writeFile(filepath.Join("notes", name), content)
}

// WriteAttachment writes a file under attachments/.
func (d *TestDir) WriteAttachment(name, content string) {
	d.t.Helper()
	d.writeFile(filepath.Join("attachments", name), content)
}

// Touch sets a note file's modification time.
func (d *TestDir) Touch(name string, mtime time.Time) {
	d.t.Helper()
	path := filepath.Join(d.NotesDir(), name)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		d.t.Fatalf("failed to set mtime on %s: %v", name, err)
	}
}

// Remove deletes a note file.
func (d *TestDir) Remove(name string) {
	d.t.Helper()
	if err := os.Remove(filepath.Join(d.NotesDir(), name)); err != nil {
		d.t.Fatalf("failed to remove %s: %v", name, err)
	}
}

// ReadNote reads a note file's content.
func (d *TestDir) ReadNote(name string) string {
	d.t.Helper()
	data, err := os.ReadFile(filepath.Join(d.NotesDir(), name))
	if err != nil {
		d.t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

func (d *TestDir) writeFile(relPath, content string) {
	d.t.Helper()
	fullPath := filepath.Join(d.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		d.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		d.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}

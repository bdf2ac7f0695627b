// Package cache persists parsed note metadata between runs as a single
// gob blob keyed by file name, with the file modification time observed
// at parse time. The cache is a performance optimization only: the live
// directory listing always decides membership.
package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calidris/jot/internal/atomicfile"
	"github.com/calidris/jot/internal/note"
)

// FileName is the cache blob file name inside the data directory's
// .notable folder.
const FileName = "cache.gob"

// Entry holds cached metadata for a single note file.
type Entry struct {
	Mtime    time.Time // file mtime when the header was parsed
	Snapshot note.Snapshot
}

// Load deserializes the persisted mapping. A missing file is the
// first-run state and yields an empty mapping; so does a blob that
// fails to decode, since the cache can always be rebuilt from disk.
func Load(path string) map[string]Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]Entry{}
	}
	var entries map[string]Entry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entries); err != nil {
		return map[string]Entry{}
	}
	if entries == nil {
		entries = map[string]Entry{}
	}
	return entries
}

// Save serializes the full mapping in one pass and overwrites the
// target file. Entries carry metadata snapshots only; bodies are never
// persisted.
func Save(path string, entries map[string]Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entries); err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

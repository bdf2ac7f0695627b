// Package repo owns the set of notes for a data directory. Opening a
// repository reconciles a persisted metadata cache against the live
// directory listing, using file modification time as the staleness
// signal; closing persists the cache back.
package repo

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/calidris/jot/internal/cache"
	"github.com/calidris/jot/internal/note"
)

// Data directory layout.
const (
	NotesDirName       = "notes"
	AttachmentsDirName = "attachments"
	SystemDirName      = ".notable"
)

// ErrInvalidDataDir indicates the data directory has no notes/
// subdirectory.
var ErrInvalidDataDir = errors.New("invalid data directory")

// Stats counts what reconciliation did during Open.
type Stats struct {
	Parsed    int // files parsed fresh (new or changed)
	CacheHits int // files reused from the cache
	Removed   int // cache entries dropped (file gone from disk)
	Skipped   int // files excluded after a parse/read failure
}

// Repository is an open session over one data directory.
type Repository struct {
	root      string
	notesDir  string
	attachDir string
	cachePath string
	log       *slog.Logger

	notes   map[string]*note.Note
	tracked map[string]time.Time

	attachments     []string
	attachmentsRead bool

	open  bool
	stats Stats
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger injects the observer used for reconciliation and skip
// reporting. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(r *Repository) {
		if log != nil {
			r.log = log
		}
	}
}

// Open validates the data directory, loads the cache, and reconciles it
// against the live listing. A note that fails to read or parse is
// reported and excluded rather than failing the whole open.
func Open(root string, opts ...Option) (*Repository, error) {
	r := &Repository{
		root:      root,
		notesDir:  filepath.Join(root, NotesDirName),
		attachDir: filepath.Join(root, AttachmentsDirName),
		cachePath: filepath.Join(root, SystemDirName, cache.FileName),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		notes:     make(map[string]*note.Note),
		tracked:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(r)
	}

	info, err := os.Stat(r.notesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s has no %s subdirectory", ErrInvalidDataDir, root, NotesDirName)
		}
		return nil, fmt.Errorf("stat %s: %w", r.notesDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidDataDir, r.notesDir)
	}

	live, err := r.listNotes()
	if err != nil {
		return nil, err
	}
	r.reconcile(live, cache.Load(r.cachePath))
	r.open = true
	return r, nil
}

// listNotes stats every note file in notes/ and returns the live
// name -> mtime map.
func (r *Repository) listNotes() (map[string]time.Time, error) {
	entries, err := os.ReadDir(r.notesDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.notesDir, err)
	}
	live := make(map[string]time.Time, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), note.Extension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			r.log.Warn("skipping unreadable note", "name", entry.Name(), "error", err)
			r.stats.Skipped++
			continue
		}
		live[entry.Name()] = info.ModTime()
	}
	return live, nil
}

// reconcile diffs the cache against the live listing. Unchanged files
// are reused without a re-parse; new and changed files are parsed
// fresh; cache entries with no live file are dropped.
func (r *Repository) reconcile(live map[string]time.Time, cached map[string]cache.Entry) {
	for name, mtime := range live {
		if entry, ok := cached[name]; ok && entry.Mtime.Equal(mtime) {
			r.notes[name] = note.FromSnapshot(r.notesDir, entry.Snapshot)
			r.tracked[name] = mtime
			r.stats.CacheHits++
			continue
		}
		n, err := note.Open(r.notesDir, name)
		if err != nil {
			r.log.Warn("skipping note", "name", name, "error", err)
			r.stats.Skipped++
			continue
		}
		r.notes[name] = n
		r.tracked[name] = mtime
		r.stats.Parsed++
	}
	for name := range cached {
		if _, ok := live[name]; !ok {
			r.stats.Removed++
		}
	}
	r.log.Debug("reconciled notes directory",
		"parsed", r.stats.Parsed,
		"cache_hits", r.stats.CacheHits,
		"removed", r.stats.Removed,
		"skipped", r.stats.Skipped)
}

// Close persists the cache (content-stripped snapshots) and releases
// directory-bound state. Closing an already-closed repository is a
// no-op.
func (r *Repository) Close() error {
	if !r.open {
		return nil
	}
	entries := make(map[string]cache.Entry, len(r.notes))
	for name, n := range r.notes {
		mtime, ok := r.tracked[name]
		if !ok {
			// Added during this session; only persist if it
			// made it to disk.
			info, err := os.Stat(n.Path())
			if err != nil {
				continue
			}
			mtime = info.ModTime()
		}
		entries[name] = cache.Entry{Mtime: mtime, Snapshot: n.Snapshot()}
	}
	if err := cache.Save(r.cachePath, entries); err != nil {
		return err
	}
	r.open = false
	r.notes = nil
	r.tracked = nil
	return nil
}

// Root returns the data directory root.
func (r *Repository) Root() string { return r.root }

// NotesDir returns the notes directory path.
func (r *Repository) NotesDir() string { return r.notesDir }

// AttachmentsDir returns the attachments directory path.
func (r *Repository) AttachmentsDir() string { return r.attachDir }

// Stats returns reconciliation counters from Open.
func (r *Repository) Stats() Stats { return r.stats }

// SelectAll returns the active notes (neither deleted nor archived),
// ordered by file name.
func (r *Repository) SelectAll() []*note.Note {
	out := make([]*note.Note, 0, len(r.notes))
	for _, n := range r.notes {
		if n.Active() {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// All returns every note in the set, inactive included, ordered by file
// name.
func (r *Repository) All() []*note.Note {
	out := make([]*note.Note, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// OpenNote fetches a note by file name, reading and caching it if it is
// not in the in-memory set yet.
func (r *Repository) OpenNote(name string) (*note.Note, error) {
	if n, ok := r.notes[name]; ok {
		return n, nil
	}
	n, err := note.Open(r.notesDir, name)
	if err != nil {
		return nil, err
	}
	r.notes[name] = n
	return n, nil
}

// AddNote constructs a new note and inserts it into the in-memory set.
// Nothing is persisted until SaveNote or an explicit note.Save.
func (r *Repository) AddNote(opts note.CreateOptions) (*note.Note, error) {
	n, err := note.Create(r.notesDir, opts)
	if err != nil {
		return nil, err
	}
	r.notes[n.Name()] = n
	return n, nil
}

// SaveNote writes a note and records its new modification time, so the
// next reconciliation treats the cached entry as fresh.
func (r *Repository) SaveNote(n *note.Note) error {
	if err := n.Save(); err != nil {
		return err
	}
	if info, err := os.Stat(n.Path()); err == nil {
		r.tracked[n.Name()] = info.ModTime()
	}
	return nil
}

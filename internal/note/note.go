// Package note implements the on-disk note entity: a markdown file
// with an optional YAML metadata header and a free-form body.
package note

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/calidris/jot/internal/atomicfile"
	"github.com/calidris/jot/internal/meta"
)

// Extension is the note file extension.
const Extension = ".md"

// NotebookPrefix is the reserved tag prefix that marks notebook
// membership. A tag "Notebooks/Kitchen" places the note in notebook
// "Kitchen" and is hidden from the plain tag view.
const NotebookPrefix = "Notebooks/"

var (
	// ErrNotFound indicates an open of a nonexistent note file.
	ErrNotFound = errors.New("note not found")
	// ErrExists indicates a create colliding with an existing file.
	ErrExists = errors.New("note already exists")
	// ErrParse indicates a malformed metadata header.
	ErrParse = errors.New("invalid note header")
)

// Body load states. The body is read explicitly, never as a side
// effect of construction.
type contentState int

const (
	contentNotLoaded contentState = iota
	contentLoaded
)

// Note represents one on-disk document. Identity is the file name,
// unique within its directory.
type Note struct {
	dir  string
	name string

	title       string
	created     time.Time
	modified    time.Time
	tags        []string // raw tags, notebook-prefixed included
	attachments []string
	deleted     bool
	archived    bool
	extra       *meta.Map // unrecognized header fields, order preserved

	content string
	state   contentState
}

// Open opens an existing note file, parsing its header. The body is
// deferred until Content is called.
func Open(dir, name string) (*Note, error) {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	n := &Note{dir: dir, name: name, extra: meta.NewMap()}
	header, _, hasHeader := SplitHeader(string(data))
	if hasHeader {
		m, err := meta.Decode([]byte(header))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, name, err)
		}
		n.applyMetadata(m)
	}
	n.applyDefaults(info.ModTime())
	return n, nil
}

// CreateOptions configures note creation.
type CreateOptions struct {
	// Title is the display title. Derived from FileName if empty.
	Title string
	// FileName is the target file name. Derived from Title if empty.
	FileName string
	// Overwrite allows creating over an existing file.
	Overwrite bool
}

// Create constructs a new note with current timestamps and empty
// content. Nothing is written to disk until Save.
func Create(dir string, opts CreateOptions) (*Note, error) {
	title := opts.Title
	name := opts.FileName
	switch {
	case title == "" && name == "":
		return nil, fmt.Errorf("either a title or a file name is required")
	case name == "":
		name = slug.Make(title) + Extension
	case title == "":
		title = TitleFromFileName(name)
	}
	if !strings.EqualFold(filepath.Ext(name), Extension) {
		name += Extension
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	}

	now := time.Now().UTC()
	return &Note{
		dir:      dir,
		name:     name,
		title:    title,
		created:  now,
		modified: now,
		extra:    meta.NewMap(),
		state:    contentLoaded,
	}, nil
}

// TitleFromFileName derives a title from a file name by stripping the
// note extension (case-insensitively).
func TitleFromFileName(name string) string {
	if strings.EqualFold(filepath.Ext(name), Extension) {
		return name[:len(name)-len(Extension)]
	}
	return name
}

// Name returns the note's file name.
func (n *Note) Name() string { return n.name }

// Dir returns the directory containing the note file.
func (n *Note) Dir() string { return n.dir }

// Path returns the absolute path of the note file.
func (n *Note) Path() string { return filepath.Join(n.dir, n.name) }

// Title returns the display title.
func (n *Note) Title() string { return n.title }

// SetTitle updates the title.
func (n *Note) SetTitle(title string) {
	n.title = title
	n.touch()
}

// Created returns the creation timestamp.
func (n *Note) Created() time.Time { return n.created }

// Modified returns the last-modified timestamp.
func (n *Note) Modified() time.Time { return n.modified }

// Deleted reports the deleted metadata flag. This is a flag, not file
// removal.
func (n *Note) Deleted() bool { return n.deleted }

// SetDeleted updates the deleted flag.
func (n *Note) SetDeleted(deleted bool) {
	n.deleted = deleted
	n.touch()
}

// Archived reports the archived metadata flag.
func (n *Note) Archived() bool { return n.archived }

// SetArchived updates the archived flag.
func (n *Note) SetArchived(archived bool) {
	n.archived = archived
	n.touch()
}

// Active reports whether the note is neither deleted nor archived.
func (n *Note) Active() bool { return !n.deleted && !n.archived }

// Tags returns the note's tags minus notebook-membership tags.
func (n *Note) Tags() []string {
	out := make([]string, 0, len(n.tags))
	for _, t := range n.tags {
		if !strings.HasPrefix(t, NotebookPrefix) {
			out = append(out, t)
		}
	}
	return out
}

// RawTags returns all tags, notebook-prefixed included.
func (n *Note) RawTags() []string {
	out := make([]string, len(n.tags))
	copy(out, n.tags)
	return out
}

// Notebooks returns the notebooks this note belongs to, derived from
// notebook-prefixed tags.
func (n *Note) Notebooks() []string {
	var out []string
	for _, t := range n.tags {
		if strings.HasPrefix(t, NotebookPrefix) {
			out = append(out, strings.TrimPrefix(t, NotebookPrefix))
		}
	}
	return out
}

// HasTag reports membership in the plain tag view.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// InNotebook reports membership in a notebook.
func (n *Note) InNotebook(notebook string) bool {
	for _, nb := range n.Notebooks() {
		if nb == notebook {
			return true
		}
	}
	return false
}

// AddTag appends a tag if not already present.
func (n *Note) AddTag(tag string) {
	for _, t := range n.tags {
		if t == tag {
			return
		}
	}
	n.tags = append(n.tags, tag)
	n.touch()
}

// RemoveTag removes a tag.
func (n *Note) RemoveTag(tag string) {
	for i, t := range n.tags {
		if t == tag {
			n.tags = append(n.tags[:i], n.tags[i+1:]...)
			n.touch()
			return
		}
	}
}

// AddToNotebook adds notebook membership by tagging.
func (n *Note) AddToNotebook(notebook string) {
	n.AddTag(NotebookPrefix + notebook)
}

// Attachments returns the note's attachment identifiers.
func (n *Note) Attachments() []string {
	out := make([]string, len(n.attachments))
	copy(out, n.attachments)
	return out
}

// AddAttachment appends an attachment identifier if not already listed.
func (n *Note) AddAttachment(name string) {
	for _, a := range n.attachments {
		if a == name {
			return
		}
	}
	n.attachments = append(n.attachments, name)
	n.touch()
}

// Content returns the body text, reading it from disk on first access
// if the backing file exists.
func (n *Note) Content() (string, error) {
	if err := n.LoadContent(); err != nil {
		return "", err
	}
	return n.content, nil
}

// Loaded reports whether the body has been read or assigned.
func (n *Note) Loaded() bool { return n.state == contentLoaded }

// LoadContent reads the body from disk if it has not been loaded yet.
// A missing backing file leaves the body empty.
func (n *Note) LoadContent() error {
	if n.state == contentLoaded {
		return nil
	}
	data, err := os.ReadFile(n.Path())
	if err != nil {
		if os.IsNotExist(err) {
			n.state = contentLoaded
			return nil
		}
		return fmt.Errorf("read %s: %w", n.name, err)
	}
	_, body, _ := SplitHeader(string(data))
	n.content = body
	n.state = contentLoaded
	return nil
}

// SetContent replaces the body text.
func (n *Note) SetContent(content string) {
	n.content = content
	n.state = contentLoaded
	n.touch()
}

// Metadata assembles the full ordered metadata map: recognized fields
// first, then unrecognized fields in their original order.
func (n *Note) Metadata() *meta.Map {
	m := meta.NewMap()
	m.Set("title", meta.String(n.title))
	m.Set("created", meta.Time(n.created))
	m.Set("modified", meta.Time(n.modified))
	if len(n.tags) > 0 {
		m.Set("tags", meta.StringList(n.tags))
	}
	if len(n.attachments) > 0 {
		m.Set("attachments", meta.StringList(n.attachments))
	}
	if n.deleted {
		m.Set("deleted", meta.Bool(true))
	}
	if n.archived {
		m.Set("archived", meta.Bool(true))
	}
	for _, key := range n.extra.Keys() {
		v, _ := n.extra.Get(key)
		m.Set(key, v)
	}
	return m
}

// Lookup resolves a metadata path against the full metadata view.
func (n *Note) Lookup(p meta.Path) (meta.Value, bool) {
	return n.Metadata().Lookup(p)
}

// SetMeta stores a metadata value at a path. Recognized top-level keys
// update the corresponding typed field.
func (n *Note) SetMeta(p meta.Path, v meta.Value) error {
	if len(p) == 1 {
		switch p[0] {
		case "title":
			s, ok := v.AsString()
			if !ok {
				return fmt.Errorf("title must be a string")
			}
			n.SetTitle(s)
			return nil
		case "created":
			t, ok := v.AsTime()
			if !ok {
				return fmt.Errorf("created must be a timestamp")
			}
			n.created = t
			n.touch()
			return nil
		case "modified":
			t, ok := v.AsTime()
			if !ok {
				return fmt.Errorf("modified must be a timestamp")
			}
			n.modified = t
			return nil
		case "tags":
			tags, ok := v.AsStringList()
			if !ok {
				return fmt.Errorf("tags must be a list of strings")
			}
			n.tags = dedupe(tags)
			n.touch()
			return nil
		case "attachments":
			atts, ok := v.AsStringList()
			if !ok {
				return fmt.Errorf("attachments must be a list of strings")
			}
			n.attachments = dedupe(atts)
			n.touch()
			return nil
		case "deleted":
			b, ok := v.AsBool()
			if !ok {
				return fmt.Errorf("deleted must be a boolean")
			}
			n.SetDeleted(b)
			return nil
		case "archived":
			b, ok := v.AsBool()
			if !ok {
				return fmt.Errorf("archived must be a boolean")
			}
			n.SetArchived(b)
			return nil
		}
	}
	if err := n.extra.SetPath(p, v); err != nil {
		return err
	}
	n.touch()
	return nil
}

// Save serializes the metadata header and body and writes the file.
// The body is loaded first if it has not been read, so a metadata-only
// edit cannot truncate an unread body.
func (n *Note) Save() error {
	if err := n.LoadContent(); err != nil {
		return err
	}
	data, err := n.Serialize()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(n.dir, 0755); err != nil {
		return fmt.Errorf("create notes directory: %w", err)
	}
	if err := atomicfile.WriteFile(n.Path(), data, 0); err != nil {
		return fmt.Errorf("write %s: %w", n.name, err)
	}
	return nil
}

// Serialize renders the full file: header block, blank separator, body.
func (n *Note) Serialize() ([]byte, error) {
	header, err := n.Metadata().Encode()
	if err != nil {
		return nil, fmt.Errorf("encode header for %s: %w", n.name, err)
	}
	var b strings.Builder
	b.WriteString(headerDelim + "\n")
	b.Write(header)
	b.WriteString(headerDelim + "\n")
	b.WriteString("\n")
	b.WriteString(n.content)
	return []byte(b.String()), nil
}

// touch stamps the modification time. Every mutation funnels through
// here.
func (n *Note) touch() {
	n.modified = time.Now().UTC()
}

// applyMetadata extracts recognized fields from a decoded header map
// and keeps the remainder verbatim.
func (n *Note) applyMetadata(m *meta.Map) {
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		switch key {
		case "title":
			if s, ok := v.AsString(); ok {
				n.title = s
				continue
			}
		case "created":
			if t, ok := v.AsTime(); ok {
				n.created = t
				continue
			}
		case "modified":
			if t, ok := v.AsTime(); ok {
				n.modified = t
				continue
			}
		case "tags":
			if tags, ok := v.AsStringList(); ok {
				n.tags = dedupe(tags)
				continue
			}
		case "attachments":
			if atts, ok := v.AsStringList(); ok {
				n.attachments = dedupe(atts)
				continue
			}
		case "deleted":
			if b, ok := v.AsBool(); ok {
				n.deleted = b
				continue
			}
		case "archived":
			if b, ok := v.AsBool(); ok {
				n.archived = b
				continue
			}
		}
		// Unrecognized key, or a recognized key with an unusable
		// type: preserve as-is so it round-trips.
		n.extra.Set(key, v)
	}
}

// applyDefaults fills missing recognized fields after parse.
func (n *Note) applyDefaults(mtime time.Time) {
	if n.title == "" {
		n.title = TitleFromFileName(n.name)
	}
	if n.created.IsZero() {
		if !mtime.IsZero() {
			n.created = mtime.UTC()
		} else {
			n.created = time.Now().UTC()
		}
	}
	if n.modified.IsZero() {
		n.modified = n.created
	}
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

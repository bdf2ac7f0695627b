package repo

import (
	"regexp"
	"sort"
	"strings"

	"github.com/calidris/jot/internal/meta"
	"github.com/calidris/jot/internal/note"
)

// Filter primitives. Each accepts an optional input set (nil defaults
// to SelectAll) and narrows it.

// FilterByTag keeps notes having the tag (exact membership in the plain
// tag view).
func (r *Repository) FilterByTag(in []*note.Note, tag string) []*note.Note {
	if in == nil {
		in = r.SelectAll()
	}
	var out []*note.Note
	for _, n := range in {
		if n.HasTag(tag) {
			out = append(out, n)
		}
	}
	return out
}

// FilterByNotebook keeps notes belonging to the notebook.
func (r *Repository) FilterByNotebook(in []*note.Note, notebook string) []*note.Note {
	if in == nil {
		in = r.SelectAll()
	}
	var out []*note.Note
	for _, n := range in {
		if n.InNotebook(notebook) {
			out = append(out, n)
		}
	}
	return out
}

// FilterByTitle keeps notes whose title matches the pattern,
// case-insensitively. The pattern is tried as a regular expression
// first; one that does not compile falls back to a substring match.
func (r *Repository) FilterByTitle(in []*note.Note, pattern string) []*note.Note {
	if in == nil {
		in = r.SelectAll()
	}
	re, err := regexp.Compile("(?i)" + pattern)
	var out []*note.Note
	for _, n := range in {
		if err == nil {
			if re.MatchString(n.Title()) {
				out = append(out, n)
			}
		} else if strings.Contains(strings.ToLower(n.Title()), strings.ToLower(pattern)) {
			out = append(out, n)
		}
	}
	return out
}

// FilterByMeta keeps notes whose metadata value at path equals want.
func (r *Repository) FilterByMeta(in []*note.Note, path meta.Path, want meta.Value) []*note.Note {
	if in == nil {
		in = r.SelectAll()
	}
	var out []*note.Note
	for _, n := range in {
		if v, ok := n.Lookup(path); ok && v.Equal(want) {
			out = append(out, n)
		}
	}
	return out
}

// FilterByMetaPresence keeps notes that have any value at path.
func (r *Repository) FilterByMetaPresence(in []*note.Note, path meta.Path) []*note.Note {
	if in == nil {
		in = r.SelectAll()
	}
	var out []*note.Note
	for _, n := range in {
		if _, ok := n.Lookup(path); ok {
			out = append(out, n)
		}
	}
	return out
}

// Query composes the selection pipeline: every requested notebook, then
// every requested tag (AND semantics), then the title pattern.
// IncludeInactive widens the input set to deleted and archived notes.
type Query struct {
	Notebooks       []string
	Tags            []string
	Title           string
	IncludeInactive bool
}

// Select runs the query over the active set and sorts the result by
// title, case-sensitive ordinal order.
func (r *Repository) Select(q Query) []*note.Note {
	out := r.SelectAll()
	if q.IncludeInactive {
		out = r.All()
	}
	for _, nb := range q.Notebooks {
		out = r.FilterByNotebook(out, nb)
		if len(out) == 0 {
			return nil
		}
	}
	for _, tag := range q.Tags {
		out = r.FilterByTag(out, tag)
		if len(out) == 0 {
			return nil
		}
	}
	if q.Title != "" {
		out = r.FilterByTitle(out, q.Title)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title() < out[j].Title() })
	return out
}

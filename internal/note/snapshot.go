package note

import (
	"time"

	"github.com/calidris/jot/internal/meta"
)

// Snapshot is an immutable, content-free copy of a note's metadata,
// suitable for cache persistence. Taking a snapshot copies the metadata
// so later mutation of the live note cannot leak into a persisted
// cache.
type Snapshot struct {
	Name        string
	Title       string
	Created     time.Time
	Modified    time.Time
	Tags        []string
	Attachments []string
	Deleted     bool
	Archived    bool
	Extra       *meta.Map
}

// Snapshot captures the note's metadata, body excluded.
func (n *Note) Snapshot() Snapshot {
	return Snapshot{
		Name:        n.name,
		Title:       n.title,
		Created:     n.created,
		Modified:    n.modified,
		Tags:        n.RawTags(),
		Attachments: n.Attachments(),
		Deleted:     n.deleted,
		Archived:    n.archived,
		Extra:       n.extra.Clone(),
	}
}

// FromSnapshot reconstructs a note from cached metadata. The body
// remains unloaded and is read from disk on demand.
func FromSnapshot(dir string, s Snapshot) *Note {
	extra := s.Extra
	if extra == nil {
		extra = meta.NewMap()
	}
	return &Note{
		dir:         dir,
		name:        s.Name,
		title:       s.Title,
		created:     s.Created,
		modified:    s.Modified,
		tags:        dedupe(s.Tags),
		attachments: dedupe(s.Attachments),
		deleted:     s.Deleted,
		archived:    s.Archived,
		extra:       extra,
	}
}

package repo

import (
	"fmt"
	"os"
	"sort"
)

// Attachments lists file names present in the attachments directory,
// sorted. The listing is read lazily and cached for the life of the
// open repository. A missing attachments directory is an empty
// inventory, not an error.
func (r *Repository) Attachments() ([]string, error) {
	if r.attachmentsRead {
		return r.attachments, nil
	}
	entries, err := os.ReadDir(r.attachDir)
	if err != nil {
		if os.IsNotExist(err) {
			r.attachmentsRead = true
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", r.attachDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		r.attachments = append(r.attachments, entry.Name())
	}
	sort.Strings(r.attachments)
	r.attachmentsRead = true
	return r.attachments, nil
}

// LinkedAttachments records, for every active note, which attachments
// it references through inline links or its attachment list. The result
// maps attachment name to the titles of referencing notes, in file-name
// order, each title at most once per attachment. Callers derive
// orphaned (present but unreferenced) and missing (referenced but
// absent) attachments from this map and Attachments.
func (r *Repository) LinkedAttachments() (map[string][]string, error) {
	refs := make(map[string][]string)
	for _, n := range r.SelectAll() {
		linked, err := n.LinkedAttachments()
		if err != nil {
			r.log.Warn("skipping note content", "name", n.Name(), "error", err)
			continue
		}
		names := append(linked, n.Attachments()...)
		seen := make(map[string]struct{}, len(names))
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			refs[name] = append(refs[name], n.Title())
		}
	}
	return refs, nil
}

package repo

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/calidris/jot/internal/meta"
	"github.com/calidris/jot/internal/note"
	"github.com/calidris/jot/internal/testutil"
)

const appleNote = `---
title: Apple
created: 2020-05-08T17:28:35.772Z
modified: 2020-05-08T17:30:00.000Z
tags: [Fruit, Notebooks/Kitchen]
---

Apples keep.
`

const bananaNote = `---
title: Banana
tags: [Fruit]
archived: true
---

Bananas do not.
`

func seed(t *testing.T) *testutil.TestDir {
	t.Helper()
	dir := testutil.NewTestDir(t)
	dir.WriteNote("a.md", appleNote)
	dir.WriteNote("b.md", bananaNote)
	return dir
}

func names(notes []*note.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Name())
	}
	return out
}

func TestOpenInvalidDataDir(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, ErrInvalidDataDir) {
		t.Errorf("err = %v, want ErrInvalidDataDir", err)
	}
}

func TestOpenColdThenWarm(t *testing.T) {
	dir := seed(t)

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := r.Stats(); got.Parsed != 2 || got.CacheHits != 0 {
		t.Errorf("cold stats = %+v, want 2 parsed", got)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	r, err = Open(dir.Path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r.Close()
	if got := r.Stats(); got.Parsed != 0 || got.CacheHits != 2 {
		t.Errorf("warm stats = %+v, want 2 cache hits", got)
	}

	// Cached snapshots must carry full metadata.
	n, err := r.OpenNote("a.md")
	if err != nil {
		t.Fatalf("open note: %v", err)
	}
	if n.Title() != "Apple" {
		t.Errorf("title = %q", n.Title())
	}
	if !n.HasTag("Fruit") || !n.InNotebook("Kitchen") {
		t.Errorf("tags = %v, notebooks = %v", n.Tags(), n.Notebooks())
	}
	body, err := n.Content()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if body != "Apples keep.\n" {
		t.Errorf("content = %q", body)
	}
}

func TestChangedFileIsReparsed(t *testing.T) {
	dir := seed(t)

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r.Close()

	dir.WriteNote("a.md", "---\ntitle: Apricot\n---\n\nnew body\n")
	dir.Touch("a.md", time.Now().Add(2*time.Second))

	r, err = Open(dir.Path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r.Close()
	if got := r.Stats(); got.Parsed != 1 || got.CacheHits != 1 {
		t.Errorf("stats = %+v, want 1 parsed, 1 cache hit", got)
	}
	n, err := r.OpenNote("a.md")
	if err != nil {
		t.Fatalf("open note: %v", err)
	}
	if n.Title() != "Apricot" {
		t.Errorf("title = %q, want Apricot", n.Title())
	}
}

func TestRemovedFileDropsFromCache(t *testing.T) {
	dir := seed(t)

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r.Close()

	dir.Remove("b.md")

	r, err = Open(dir.Path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := r.Stats(); got.Removed != 1 || got.CacheHits != 1 {
		t.Errorf("stats = %+v, want 1 removed, 1 cache hit", got)
	}
	if got := names(r.All()); !reflect.DeepEqual(got, []string{"a.md"}) {
		t.Errorf("all = %v", got)
	}
	r.Close()

	// The dropped entry must not resurrect on the next open.
	r, err = Open(dir.Path)
	if err != nil {
		t.Fatalf("third open: %v", err)
	}
	defer r.Close()
	if got := r.Stats(); got.Removed != 0 || got.CacheHits != 1 || got.Parsed != 0 {
		t.Errorf("stats = %+v", got)
	}
}

func TestBadNoteIsSkipped(t *testing.T) {
	dir := seed(t)
	dir.WriteNote("bad.md", "---\n[broken: yaml\n---\n\nbody\n")

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	if got := r.Stats(); got.Skipped != 1 || got.Parsed != 2 {
		t.Errorf("stats = %+v, want 1 skipped, 2 parsed", got)
	}
	if got := names(r.All()); !reflect.DeepEqual(got, []string{"a.md", "b.md"}) {
		t.Errorf("all = %v", got)
	}
}

func TestNonNoteFilesIgnored(t *testing.T) {
	dir := seed(t)
	dir.WriteNote("README.txt", "not a note\n")
	dir.WriteNote("upper.MD", "---\ntitle: Upper\n---\n\nbody\n")

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	if got := names(r.All()); !reflect.DeepEqual(got, []string{"a.md", "b.md", "upper.MD"}) {
		t.Errorf("all = %v", got)
	}
}

func TestSelectAllExcludesInactive(t *testing.T) {
	dir := seed(t)
	dir.WriteNote("c.md", "---\ntitle: Gone\ndeleted: true\n---\n")

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	if got := names(r.SelectAll()); !reflect.DeepEqual(got, []string{"a.md"}) {
		t.Errorf("active = %v, want only a.md", got)
	}
	if got := names(r.All()); !reflect.DeepEqual(got, []string{"a.md", "b.md", "c.md"}) {
		t.Errorf("all = %v", got)
	}
}

func TestSelectExcludesArchived(t *testing.T) {
	dir := seed(t)

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	// Both notes carry the Fruit tag; only the unarchived one selects.
	if got := names(r.Select(Query{Tags: []string{"Fruit"}})); !reflect.DeepEqual(got, []string{"a.md"}) {
		t.Errorf("select tag=Fruit = %v, want [a.md]", got)
	}
	if got := names(r.Select(Query{Notebooks: []string{"Kitchen"}})); !reflect.DeepEqual(got, []string{"a.md"}) {
		t.Errorf("select notebook=Kitchen = %v, want [a.md]", got)
	}
}

func TestSelectIncludeInactive(t *testing.T) {
	dir := seed(t)

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	// Widening to inactive notes must still apply the tag filter.
	got := names(r.Select(Query{Tags: []string{"Fruit"}, IncludeInactive: true}))
	if !reflect.DeepEqual(got, []string{"a.md", "b.md"}) {
		t.Errorf("select inactive tag=Fruit = %v, want [a.md b.md]", got)
	}
	got = names(r.Select(Query{Tags: []string{"Fruit"}}))
	if !reflect.DeepEqual(got, []string{"a.md"}) {
		t.Errorf("select tag=Fruit = %v, want [a.md]", got)
	}
}

func TestFilterByMeta(t *testing.T) {
	dir := testutil.NewTestDir(t)
	dir.WriteNote("a.md", "---\ntitle: Pasta\nrecipe:\n  servings: 4\n---\n")
	dir.WriteNote("b.md", "---\ntitle: Soup\nrecipe:\n  servings: 2\n---\n")
	dir.WriteNote("c.md", "---\ntitle: Stub\nrecipe: none\n---\n")

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	tests := []struct {
		name string
		path string
		want meta.Value
		out  []string
	}{
		{"nested number", "recipe.servings", meta.Number(4), []string{"a.md"}},
		{"string leaf", "recipe", meta.String("none"), []string{"c.md"}},
		{"no match", "recipe.servings", meta.Number(9), nil},
		{"path through scalar", "recipe.servings.unit", meta.String("g"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(r.FilterByMeta(r.SelectAll(), meta.ParsePath(tt.path), tt.want))
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.out) {
				t.Errorf("filter %s = %v, want %v", tt.path, got, tt.out)
			}
		})
	}
}

func TestFilterByMetaPresence(t *testing.T) {
	dir := testutil.NewTestDir(t)
	dir.WriteNote("a.md", "---\ntitle: Pasta\nrecipe:\n  servings: 4\n---\n")
	dir.WriteNote("b.md", "---\ntitle: Soup\nrecipe:\n  servings: 2\n---\n")
	dir.WriteNote("c.md", "---\ntitle: Stub\nrecipe: none\n---\n")

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	got := names(r.FilterByMetaPresence(r.SelectAll(), meta.ParsePath("recipe.servings")))
	if !reflect.DeepEqual(got, []string{"a.md", "b.md"}) {
		t.Errorf("presence recipe.servings = %v, want [a.md b.md]", got)
	}
	if got := r.FilterByMetaPresence(r.SelectAll(), meta.ParsePath("recipe.missing")); len(got) != 0 {
		t.Errorf("presence recipe.missing = %v, want none", names(got))
	}
}

func TestSelect(t *testing.T) {
	dir := testutil.NewTestDir(t)
	dir.WriteNote("a.md", "---\ntitle: Apple Pie\ntags: [Recipe, Notebooks/Kitchen]\n---\n")
	dir.WriteNote("b.md", "---\ntitle: Banana Bread\ntags: [Recipe, Sweet, Notebooks/Kitchen]\n---\n")
	dir.WriteNote("c.md", "---\ntitle: Car (Garage) Notes\ntags: [Notebooks/Garage]\n---\n")

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"all sorted by title", Query{}, []string{"a.md", "b.md", "c.md"}},
		{"notebook", Query{Notebooks: []string{"Kitchen"}}, []string{"a.md", "b.md"}},
		{"tag and notebook", Query{Notebooks: []string{"Kitchen"}, Tags: []string{"Sweet"}}, []string{"b.md"}},
		{"conjunctive tags", Query{Tags: []string{"Recipe", "Sweet"}}, []string{"b.md"}},
		{"no match", Query{Tags: []string{"Recipe"}, Notebooks: []string{"Garage"}}, nil},
		{"title regex", Query{Title: "^banana"}, []string{"b.md"}},
		{"title bad regex falls back to substring", Query{Title: "(garage"}, []string{"c.md"}},
		{"title substring case-insensitive", Query{Title: "BREAD"}, []string{"b.md"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(r.Select(tt.q))
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("select %+v = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestAddAndSaveNote(t *testing.T) {
	dir := testutil.NewTestDir(t)

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	n, err := r.AddNote(note.CreateOptions{Title: "Grocery List"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if n.Name() != "grocery-list.md" {
		t.Errorf("name = %q", n.Name())
	}
	n.AddTag("Errands")
	if err := r.SaveNote(n); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	r, err = Open(dir.Path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r.Close()
	if got := r.Stats(); got.Parsed != 0 || got.CacheHits != 1 {
		t.Errorf("stats = %+v, want the saved note as a cache hit", got)
	}
	n, err = r.OpenNote("grocery-list.md")
	if err != nil {
		t.Fatalf("open note: %v", err)
	}
	if n.Title() != "Grocery List" || !n.HasTag("Errands") {
		t.Errorf("title = %q, tags = %v", n.Title(), n.Tags())
	}
}

func TestCloseSkipsUnsavedAddedNote(t *testing.T) {
	dir := testutil.NewTestDir(t)

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := r.AddNote(note.CreateOptions{Title: "Draft"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	r, err = Open(dir.Path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r.Close()
	if len(r.All()) != 0 {
		t.Errorf("unsaved note leaked into the set: %v", names(r.All()))
	}
}

func TestCloseIdempotent(t *testing.T) {
	dir := seed(t)
	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestAttachments(t *testing.T) {
	dir := testutil.NewTestDir(t)
	dir.WriteNote("a.md", "---\ntitle: Apple\nattachments: [apple.png]\n---\n\nSee [scan](@attachment/shared.pdf).\n")
	dir.WriteNote("b.md", "---\ntitle: Banana\n---\n\nAlso [scan](@attachment/shared.pdf).\n")
	dir.WriteAttachment("apple.png", "png")
	dir.WriteAttachment("orphan.bin", "bin")

	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	present, err := r.Attachments()
	if err != nil {
		t.Fatalf("attachments: %v", err)
	}
	if !reflect.DeepEqual(present, []string{"apple.png", "orphan.bin"}) {
		t.Errorf("present = %v", present)
	}

	refs, err := r.LinkedAttachments()
	if err != nil {
		t.Fatalf("linked: %v", err)
	}
	want := map[string][]string{
		"apple.png":  {"Apple"},
		"shared.pdf": {"Apple", "Banana"},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Errorf("refs = %v, want %v", refs, want)
	}
}

func TestAttachmentsDirMissing(t *testing.T) {
	dir := seed(t)
	r, err := Open(dir.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	present, err := r.Attachments()
	if err != nil {
		t.Fatalf("attachments: %v", err)
	}
	if len(present) != 0 {
		t.Errorf("present = %v, want empty", present)
	}
}

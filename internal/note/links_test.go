package note

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLinks(t *testing.T) {
	dir := t.TempDir()
	body := "See [the site](https://example.com) and " +
		"[scan](@attachment/receipt.png).\n\n" +
		"Bare (parens) and [no destination]() too.\n"
	writeNote(t, dir, "links.md", "---\ntitle: Links\n---\n\n"+body)

	n, err := Open(dir, "links.md")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	links, err := n.Links()
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	want := []string{"https://example.com", "@attachment/receipt.png", ""}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("links = %v, want %v", links, want)
	}

	attached, err := n.LinkedAttachments()
	if err != nil {
		t.Fatalf("linked attachments: %v", err)
	}
	if !reflect.DeepEqual(attached, []string{"receipt.png"}) {
		t.Errorf("linked attachments = %v", attached)
	}
}

func TestLinksNone(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "plain.md", "no links here\n")

	n, err := Open(dir, "plain.md")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	links, err := n.Links()
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("links = %v, want none", links)
	}
}

func TestExistingAndMissingAttachments(t *testing.T) {
	dir := t.TempDir()
	attachDir := filepath.Join(dir, "attachments")
	if err := os.MkdirAll(attachDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(attachDir, "here.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeNote(t, dir, "a.md", "---\ntitle: A\nattachments: [here.png, gone.png]\n---\n\nbody\n")

	n, err := Open(dir, "a.md")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := n.ExistingAttachments(attachDir); !reflect.DeepEqual(got, []string{"here.png"}) {
		t.Errorf("existing = %v", got)
	}
	if got := n.MissingAttachments(attachDir); !reflect.DeepEqual(got, []string{"gone.png"}) {
		t.Errorf("missing = %v", got)
	}
}

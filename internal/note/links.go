package note

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// AttachmentLinkPrefix marks an inline link destination as an
// attachment reference, e.g. [scan](@attachment/receipt.png).
const AttachmentLinkPrefix = "@attachment/"

// linkRe matches markdown inline links [label](destination). Labels and
// destinations cannot contain brackets/parens; nesting is not parsed.
var linkRe = regexp.MustCompile(`\[[^\]\[]*\]\(([^()]*)\)`)

// Links returns the destinations of markdown inline links in the body,
// in order of appearance, non-overlapping.
func (n *Note) Links() ([]string, error) {
	content, err := n.Content()
	if err != nil {
		return nil, err
	}
	matches := linkRe.FindAllStringSubmatch(content, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out, nil
}

// LinkedAttachments returns link destinations that reference
// attachments, with the reference prefix stripped.
func (n *Note) LinkedAttachments() ([]string, error) {
	links, err := n.Links()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, l := range links {
		if strings.HasPrefix(l, AttachmentLinkPrefix) {
			out = append(out, strings.TrimPrefix(l, AttachmentLinkPrefix))
		}
	}
	return out, nil
}

// ExistingAttachments returns the listed attachments that have a
// same-named file in attachDir.
func (n *Note) ExistingAttachments(attachDir string) []string {
	var out []string
	for _, a := range n.attachments {
		if _, err := os.Stat(filepath.Join(attachDir, a)); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// MissingAttachments returns the listed attachments with no file in
// attachDir.
func (n *Note) MissingAttachments(attachDir string) []string {
	var out []string
	for _, a := range n.attachments {
		if _, err := os.Stat(filepath.Join(attachDir, a)); err != nil {
			out = append(out, a)
		}
	}
	return out
}

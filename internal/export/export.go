// Package export prepares a note for an external document renderer:
// the first top-level heading is stripped from the body and promoted to
// the title metadata field, and every other heading is demoted one
// level.
package export

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/calidris/jot/internal/meta"
)

// Document is the renderer hand-off: a metadata map and the transformed
// body.
type Document struct {
	Metadata *meta.Map
	Body     string
}

// heading is a markdown heading located in the source.
type heading struct {
	level  int
	text   string
	line   int // 0-indexed line of the heading text
	setext bool
}

// Transform applies the export rewrite. The input metadata map is not
// mutated.
func Transform(metadata *meta.Map, body string) *Document {
	out := metadata.Clone()
	if out == nil {
		out = meta.NewMap()
	}

	lines := strings.Split(body, "\n")
	headings := extractHeadings(body)

	removed := make(map[int]bool)
	replaced := make(map[int]string)
	promoted := false

	for _, h := range headings {
		if !promoted && h.level == 1 {
			out.Set("title", meta.String(h.text))
			removed[h.line] = true
			if h.setext {
				removed[h.line+1] = true
			}
			promoted = true
			continue
		}
		level := h.level + 1
		if level > 6 {
			level = 6
		}
		replaced[h.line] = strings.Repeat("#", level) + " " + h.text
		if h.setext {
			removed[h.line+1] = true
		}
	}

	var b strings.Builder
	for i, line := range lines {
		if removed[i] {
			continue
		}
		if repl, ok := replaced[i]; ok {
			line = repl
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}

	body = b.String()
	if promoted {
		body = strings.TrimLeft(body, "\n")
	}
	return &Document{Metadata: out, Body: body}
}

// Serialize renders the document back to the hybrid header+body format
// handed to the external renderer.
func (d *Document) Serialize() ([]byte, error) {
	header, err := d.Metadata.Encode()
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(d.Body)
	return []byte(b.String()), nil
}

// extractHeadings finds markdown headings with their line numbers using
// goldmark, so fenced code blocks and other non-heading '#' lines are
// never rewritten.
func extractHeadings(content string) []heading {
	var headings []heading

	md := goldmark.New()
	reader := text.NewReader([]byte(content))
	doc := md.Parser().Parse(reader)

	lineStarts := computeLineStarts(content)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}

		var textBuilder strings.Builder
		for i := 0; i < h.Lines().Len(); i++ {
			seg := h.Lines().At(i)
			textBuilder.Write([]byte(content)[seg.Start:seg.Stop])
		}
		headingText := strings.TrimSpace(textBuilder.String())
		if headingText == "" {
			return ast.WalkContinue, nil
		}

		line := offsetToLine(lineStarts, h.Lines().At(0).Start)
		setext := !strings.HasPrefix(strings.TrimLeft(lineAt(content, lineStarts, line), " "), "#")

		headings = append(headings, heading{
			level:  h.Level,
			text:   headingText,
			line:   line,
			setext: setext,
		})
		return ast.WalkContinue, nil
	})

	return headings
}

// computeLineStarts computes the byte offset of each line start.
func computeLineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}

func lineAt(content string, lineStarts []int, line int) string {
	start := lineStarts[line]
	end := len(content)
	if line+1 < len(lineStarts) {
		end = lineStarts[line+1] - 1
	}
	return content[start:end]
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calidris/jot/internal/meta"
	"github.com/calidris/jot/internal/note"
	"github.com/calidris/jot/internal/repo"
	"github.com/calidris/jot/internal/ui"
)

// NoteSummary is the JSON shape for a note in listings.
type NoteSummary struct {
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	Notebooks []string `json:"notebooks,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Created   string   `json:"created"`
	Modified  string   `json:"modified"`
	Deleted   bool     `json:"deleted,omitempty"`
	Archived  bool     `json:"archived,omitempty"`
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List notes",
	Long: `Lists active notes, optionally narrowed by notebook, tag, and title.

Multiple --tag or --notebook flags intersect (AND semantics). The title
pattern matches case-insensitively, as a regular expression when it
compiles and as a substring otherwise.

--meta narrows by a metadata value at a dotted key path, --has-meta by
the key's presence. Values coerce like 'jot meta set': boolean, number,
timestamp, then string.

Examples:
  jot ls
  jot ls --notebook Kitchen --tag Fruit
  jot ls --title '^Recipe'
  jot ls --all            # include deleted and archived notes
  jot ls --meta recipe.servings=4
  jot ls --has-meta reviewed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metaFilters, _ := cmd.Flags().GetStringArray("meta")
		hasMeta, _ := cmd.Flags().GetStringArray("has-meta")
		for _, expr := range metaFilters {
			if _, _, err := parseMetaFilter(expr); err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
		}

		r, err := openRepo()
		if err != nil {
			return handleError(ErrDirInvalid, err, "")
		}
		defer r.Close()

		tags, _ := cmd.Flags().GetStringArray("tag")
		notebooks, _ := cmd.Flags().GetStringArray("notebook")
		title, _ := cmd.Flags().GetString("title")
		all, _ := cmd.Flags().GetBool("all")

		notes := r.Select(repo.Query{
			Notebooks:       notebooks,
			Tags:            tags,
			Title:           title,
			IncludeInactive: all,
		})
		for _, expr := range metaFilters {
			if len(notes) == 0 {
				break
			}
			path, want, _ := parseMetaFilter(expr)
			notes = r.FilterByMeta(notes, path, want)
		}
		for _, key := range hasMeta {
			if len(notes) == 0 {
				break
			}
			notes = r.FilterByMetaPresence(notes, meta.ParsePath(key))
		}

		if isJSONOutput() {
			items := make([]NoteSummary, len(notes))
			for i, n := range notes {
				items[i] = summarize(n)
			}
			outputSuccess(map[string]interface{}{"notes": items}, &Meta{Count: len(items)})
			return nil
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}

		table := ui.NewTable(4)
		table.SetHeader("TITLE", "NOTEBOOKS", "TAGS", "MODIFIED")
		for _, n := range notes {
			table.AddRow(
				n.Title(),
				strings.Join(n.Notebooks(), ", "),
				strings.Join(n.Tags(), ", "),
				n.Modified().Format("2006-01-02"),
			)
		}
		fmt.Print(table.String())
		return nil
	},
}

// parseMetaFilter splits a key.path=value expression into a metadata
// path and the coerced value to match.
func parseMetaFilter(expr string) (meta.Path, meta.Value, error) {
	key, raw, ok := strings.Cut(expr, "=")
	if !ok || key == "" {
		return nil, meta.Null(), fmt.Errorf("invalid meta filter %q: want key.path=value", expr)
	}
	return meta.ParsePath(key), coerceValue(raw), nil
}

func summarize(n *note.Note) NoteSummary {
	return NoteSummary{
		Name:      n.Name(),
		Title:     n.Title(),
		Notebooks: n.Notebooks(),
		Tags:      n.Tags(),
		Created:   n.Created().Format(meta.TimeLayout),
		Modified:  n.Modified().Format(meta.TimeLayout),
		Deleted:   n.Deleted(),
		Archived:  n.Archived(),
	}
}

func init() {
	lsCmd.Flags().StringArrayP("tag", "t", nil, "Filter by tag (repeatable, AND)")
	lsCmd.Flags().StringArrayP("notebook", "b", nil, "Filter by notebook (repeatable, AND)")
	lsCmd.Flags().String("title", "", "Filter by title (case-insensitive regex/substring)")
	lsCmd.Flags().Bool("all", false, "Include deleted and archived notes")
	lsCmd.Flags().StringArray("meta", nil, "Filter by metadata value (key.path=value, repeatable, AND)")
	lsCmd.Flags().StringArray("has-meta", nil, "Filter by metadata key presence (repeatable, AND)")
	rootCmd.AddCommand(lsCmd)
}

package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calidris/jot/internal/note"
	"github.com/calidris/jot/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a note",
	Long: `Prints a note's body. When stdout is a terminal the markdown is
rendered; use --raw for the unrendered text. --meta prints the full
serialized file including the metadata header.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return handleError(ErrDirInvalid, err, "")
		}
		defer r.Close()

		n, err := r.OpenNote(noteFileName(args[0]))
		if err != nil {
			if errors.Is(err, note.ErrNotFound) {
				return handleError(ErrNoteNotFound, err, "Run 'jot ls' to list notes")
			}
			return handleError(ErrFileReadError, err, "")
		}

		withMeta, _ := cmd.Flags().GetBool("meta")
		raw, _ := cmd.Flags().GetBool("raw")

		if withMeta {
			if err := n.LoadContent(); err != nil {
				return handleError(ErrFileReadError, err, "")
			}
			data, err := n.Serialize()
			if err != nil {
				return handleError(ErrNoteInvalid, err, "")
			}
			fmt.Print(string(data))
			return nil
		}

		content, err := n.Content()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"note":    summarize(n),
				"content": content,
			}, nil)
			return nil
		}

		display := ui.NewDisplayContext()
		if raw || !display.IsTTY {
			fmt.Print(content)
			return nil
		}
		rendered, err := ui.RenderMarkdown(content, display.TermWidth, getConfig().UI.CodeTheme)
		if err != nil {
			fmt.Print(content)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

// noteFileName normalizes a CLI note argument to a file name.
// Extension matching is case-insensitive, so "NOTE.MD" stays as is.
func noteFileName(arg string) string {
	if strings.EqualFold(filepath.Ext(arg), note.Extension) {
		return arg
	}
	return arg + note.Extension
}

func init() {
	showCmd.Flags().Bool("meta", false, "Print the full file including the metadata header")
	showCmd.Flags().Bool("raw", false, "Print the body without terminal rendering")
	rootCmd.AddCommand(showCmd)
}

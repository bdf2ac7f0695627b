package cli

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calidris/jot/internal/note"
	"github.com/calidris/jot/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Open a note in your editor",
	Long: `Opens a note file in the configured editor ('editor' in the config
file, falling back to $EDITOR). With neither set, the note path is
printed instead.`,
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

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": n.Path()}, nil)
			return nil
		}
		openInEditorOrPrintPath(n.Path())
		return nil
	},
}

// openInEditorOrPrintPath launches the configured editor on path, or
// prints the path when no editor is configured. Compound editor
// commands ("open -a Cursor") go through the shell.
func openInEditorOrPrintPath(path string) {
	editor := getConfig().GetEditor()
	if editor == "" {
		fmt.Printf("Open: %s\n", path)
		fmt.Println("(Set 'editor' in ~/.config/jot/config.toml or $EDITOR to open automatically)")
		return
	}

	var c *exec.Cmd
	if strings.Contains(editor, " ") {
		c = exec.Command("sh", "-c", editor+" "+shellQuote(path))
	} else {
		c = exec.Command(editor, path)
	}
	if err := c.Start(); err != nil {
		fmt.Println(ui.Warningf("failed to open editor %q: %v", editor, err))
		fmt.Printf("Open: %s\n", path)
	}
}

// shellQuote single-quotes a string for safe interpolation into a
// shell command.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}

func init() {
	rootCmd.AddCommand(editCmd)
}

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/calidris/jot/internal/meta"
	"github.com/calidris/jot/internal/note"
	"github.com/calidris/jot/internal/ui"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Read or write note metadata",
}

var metaGetCmd = &cobra.Command{
	Use:   "get <name> <key>",
	Short: "Print a metadata value",
	Long: `Prints the metadata value at a dotted key path.

Examples:
  jot meta get pasta.md title
  jot meta get pasta.md recipe.servings`,
	Args: cobra.ExactArgs(2),
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

		path := meta.ParsePath(args[1])
		v, ok := n.Lookup(path)
		if !ok {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("no metadata at %q in %s", path.String(), n.Name()), "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"key": path.String(), "value": v.Display()}, nil)
			return nil
		}
		fmt.Println(v.Display())
		return nil
	},
}

var metaSetCmd = &cobra.Command{
	Use:   "set <name> <key> <value>",
	Short: "Set a metadata value and save the note",
	Args:  cobra.ExactArgs(3),
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

		path := meta.ParsePath(args[1])
		if err := n.SetMeta(path, coerceValue(args[2])); err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if err := r.SaveNote(n); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"note": summarize(n)}, nil)
			return nil
		}
		fmt.Println(ui.Successf("set %s on %s", path.String(), n.Name()))
		return nil
	},
}

// coerceValue interprets a CLI string argument as the most specific
// metadata value: boolean, number, timestamp, then string.
func coerceValue(s string) meta.Value {
	switch s {
	case "true":
		return meta.Bool(true)
	case "false":
		return meta.Bool(false)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return meta.Number(f)
	}
	if t, err := meta.ParseTime(s); err == nil {
		return meta.Time(t)
	}
	return meta.String(s)
}

func init() {
	metaCmd.AddCommand(metaGetCmd)
	metaCmd.AddCommand(metaSetCmd)
	rootCmd.AddCommand(metaCmd)
}

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calidris/jot/internal/export"
	"github.com/calidris/jot/internal/note"
	"github.com/calidris/jot/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a note for an external renderer",
	Long: `Rewrites a note for hand-off to an external document renderer: the
first top-level heading is stripped from the body and promoted to the
title field, and every other heading is demoted one level.

Writes to stdout unless -o is given.`,
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

		content, err := n.Content()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		doc := export.Transform(n.Metadata(), content)
		data, err := doc.Serialize()
		if err != nil {
			return handleError(ErrNoteInvalid, err, "")
		}

		outPath, _ := cmd.Flags().GetString("output")
		if outPath == "" {
			fmt.Print(string(data))
			return nil
		}
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		if !isJSONOutput() {
			fmt.Println(ui.Successf("exported %s", ui.Accent.Render(outPath)))
		} else {
			outputSuccess(map[string]interface{}{"path": outPath}, nil)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file path")
	rootCmd.AddCommand(exportCmd)
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calidris/jot/internal/note"
	"github.com/calidris/jot/internal/ui"
)

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a note",
	Long: `Creates a note with current timestamps and writes it to the notes
directory. The file name is derived from the title unless --file is
given.

Examples:
  jot new "Shopping list"
  jot new "Pasta" --notebook Kitchen --tag Recipe
  jot new --file inbox.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return handleError(ErrDirInvalid, err, "")
		}
		defer r.Close()

		title := ""
		if len(args) == 1 {
			title = args[0]
		}
		fileName, _ := cmd.Flags().GetString("file")
		force, _ := cmd.Flags().GetBool("force")
		tags, _ := cmd.Flags().GetStringArray("tag")
		notebooks, _ := cmd.Flags().GetStringArray("notebook")

		if title == "" && fileName == "" {
			return handleErrorMsg(ErrMissingArgument, "specify a title or --file", "")
		}

		n, err := r.AddNote(note.CreateOptions{
			Title:     title,
			FileName:  fileName,
			Overwrite: force,
		})
		if err != nil {
			if errors.Is(err, note.ErrExists) {
				return handleError(ErrNoteExists, err, "Use --force to overwrite")
			}
			return handleError(ErrInvalidInput, err, "")
		}

		for _, tag := range tags {
			n.AddTag(tag)
		}
		for _, nb := range notebooks {
			n.AddToNotebook(nb)
		}

		if err := r.SaveNote(n); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"note": summarize(n)}, nil)
			return nil
		}
		fmt.Println(ui.Successf("created %s", ui.Accent.Render(n.Name())))
		return nil
	},
}

func init() {
	newCmd.Flags().String("file", "", "Explicit file name")
	newCmd.Flags().StringArrayP("tag", "t", nil, "Tag the new note (repeatable)")
	newCmd.Flags().StringArrayP("notebook", "b", nil, "Add to notebook (repeatable)")
	newCmd.Flags().Bool("force", false, "Overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}

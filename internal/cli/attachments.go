package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calidris/jot/internal/ui"
)

var attachmentsCmd = &cobra.Command{
	Use:   "attachments",
	Short: "List attachments and their referencing notes",
	Long: `Lists files in the attachments directory along with the notes that
reference them.

  --orphans   only attachments no note references
  --missing   only attachments notes reference but that do not exist`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return handleError(ErrDirInvalid, err, "")
		}
		defer r.Close()

		present, err := r.Attachments()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		refs, err := r.LinkedAttachments()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		orphans, _ := cmd.Flags().GetBool("orphans")
		missing, _ := cmd.Flags().GetBool("missing")

		presentSet := make(map[string]bool, len(present))
		for _, name := range present {
			presentSet[name] = true
		}

		switch {
		case orphans:
			var names []string
			for _, name := range present {
				if len(refs[name]) == 0 {
					names = append(names, name)
				}
			}
			return printNames("orphaned", names)
		case missing:
			var names []string
			for name := range refs {
				if !presentSet[name] {
					names = append(names, name)
				}
			}
			sort.Strings(names)
			return printNames("missing", names)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"attachments": present,
				"references":  refs,
			}, &Meta{Count: len(present)})
			return nil
		}

		if len(present) == 0 && len(refs) == 0 {
			fmt.Println("No attachments found.")
			return nil
		}
		table := ui.NewTable(2)
		table.SetHeader("ATTACHMENT", "REFERENCED BY")
		for _, name := range present {
			table.AddRow(name, strings.Join(refs[name], ", "))
		}
		fmt.Print(table.String())
		var absent []string
		for name := range refs {
			if !presentSet[name] {
				absent = append(absent, name)
			}
		}
		sort.Strings(absent)
		for _, name := range absent {
			fmt.Println(ui.Warningf("%s referenced by %s but missing", name, strings.Join(refs[name], ", ")))
		}
		return nil
	},
}

func printNames(kind string, names []string) error {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{kind: names}, &Meta{Count: len(names)})
		return nil
	}
	if len(names) == 0 {
		fmt.Printf("No %s attachments.\n", kind)
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func init() {
	attachmentsCmd.Flags().Bool("orphans", false, "Only unreferenced attachments")
	attachmentsCmd.Flags().Bool("missing", false, "Only referenced-but-absent attachments")
	rootCmd.AddCommand(attachmentsCmd)
}

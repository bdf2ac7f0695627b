package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// CountedName is the JSON shape for tag and notebook listings.
type CountedName struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags with note counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return handleError(ErrDirInvalid, err, "")
		}
		defer r.Close()

		counts := make(map[string]int)
		for _, n := range r.SelectAll() {
			for _, tag := range n.Tags() {
				counts[tag]++
			}
		}
		return printCounted("tags", counts)
	},
}

var notebooksCmd = &cobra.Command{
	Use:   "notebooks",
	Short: "List notebooks with note counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return handleError(ErrDirInvalid, err, "")
		}
		defer r.Close()

		counts := make(map[string]int)
		for _, n := range r.SelectAll() {
			for _, nb := range n.Notebooks() {
				counts[nb]++
			}
		}
		return printCounted("notebooks", counts)
	},
}

func printCounted(kind string, counts map[string]int) error {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	if isJSONOutput() {
		items := make([]CountedName, len(names))
		for i, name := range names {
			items[i] = CountedName{Name: name, Count: counts[name]}
		}
		outputSuccess(map[string]interface{}{kind: items}, &Meta{Count: len(items)})
		return nil
	}

	if len(names) == 0 {
		fmt.Printf("No %s found.\n", kind)
		return nil
	}
	for _, name := range names {
		noun := "notes"
		if counts[name] == 1 {
			noun = "note"
		}
		fmt.Printf("  %-24s %d %s\n", name, counts[name], noun)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(notebooksCmd)
}

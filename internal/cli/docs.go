package cli

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/calidris/jot/docs"
	"github.com/calidris/jot/internal/ui"
)

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the built-in guide",
	Long: `Prints a guide topic bundled with the binary. Without an argument
the available topics are listed.

For command help, use: jot help <command>`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := docsTopics()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
				return nil
			}
			fmt.Println("Topics:")
			for _, t := range topics {
				fmt.Printf("  %s\n", ui.Accent.Render(t))
			}
			fmt.Println("\nRead one with: jot docs <topic>")
			return nil
		}

		topic := strings.TrimSuffix(args[0], ".md")
		data, err := fs.ReadFile(builtindocs.FS, path.Join("guide", topic+".md"))
		if err != nil {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown topic %q (known: %s)", topic, strings.Join(topics, ", ")), "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"topic": topic, "content": string(data)}, nil)
			return nil
		}
		display := ui.NewDisplayContext()
		if display.IsTTY {
			if rendered, err := ui.RenderMarkdown(string(data), display.TermWidth, getConfig().UI.CodeTheme); err == nil {
				fmt.Print(rendered)
				return nil
			}
		}
		fmt.Print(string(data))
		return nil
	},
}

func docsTopics() ([]string, error) {
	entries, err := fs.ReadDir(builtindocs.FS, "guide")
	if err != nil {
		return nil, fmt.Errorf("read built-in docs: %w", err)
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		topics = append(topics, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics, nil
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/c360studio/patternbook/catalog"
)

func listCmd(app *appContext) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.requireCatalog()
			if err != nil {
				return err
			}

			seq, err := c.All()
			if category != "" {
				cat := catalog.Category(category)
				if !cat.Valid() {
					return fmt.Errorf("unknown category %q (want pattern or smell)", category)
				}
				seq, err = c.ByCategory(cat)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tTITLE")
			for entry := range seq {
				fmt.Fprintf(w, "%s\t%s\t%s\n", entry.ID, entry.Category, entry.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category (pattern or smell)")
	return cmd
}

func showCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.requireCatalog()
			if err != nil {
				return err
			}

			entry, err := c.FindByID(args[0])
			if err != nil {
				return err
			}

			printEntry(entry)
			return nil
		},
	}
}

func searchCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search entries by title and summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.requireCatalog()
			if err != nil {
				return err
			}

			seq, err := c.Search(args[0])
			if err != nil {
				return err
			}

			found := 0
			for entry := range seq {
				fmt.Printf("%s (%s): %s\n", entry.ID, entry.Category, entry.Summary)
				found++
			}
			if found == 0 {
				fmt.Printf("no entries match %q\n", args[0])
			}
			return nil
		},
	}
}

func relatedCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "related <id>",
		Short: "Show entries related to one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.requireCatalog()
			if err != nil {
				return err
			}

			related, err := c.Related(args[0])
			if err != nil {
				return err
			}

			if len(related) == 0 {
				fmt.Printf("%s has no related entries\n", args[0])
				return nil
			}
			for _, entry := range related {
				fmt.Printf("%s (%s): %s\n", entry.ID, entry.Category, entry.Summary)
			}
			return nil
		},
	}
}

func validateCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog and print a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, report, err := app.buildCatalog()
			if report != nil {
				fmt.Print(report.Format())
			}
			if err != nil {
				return fmt.Errorf("catalog is invalid")
			}
			return nil
		},
	}
}

func printEntry(entry *catalog.Entry) {
	fmt.Printf("%s (%s)\n", entry.Title, entry.Category)
	fmt.Printf("id: %s\n", entry.ID)
	if entry.SourcePath != "" {
		fmt.Printf("source: %s\n", entry.SourcePath)
	}
	fmt.Printf("\n%s\n", entry.Summary)

	if len(entry.Related) > 0 {
		fmt.Printf("\nrelated: %s\n", strings.Join(entry.Related, ", "))
	}

	if !entry.Example.Empty() {
		fmt.Printf("\nexample (%s):\n", entry.Example.Language)
		if entry.Example.Before != "" {
			fmt.Printf("\n  before:\n%s\n", indent(entry.Example.Before, "    "))
		}
		if entry.Example.After != "" {
			fmt.Printf("\n  after:\n%s\n", indent(entry.Example.After, "    "))
		}
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/curator-labs/curator/internal/errdefs"
	"github.com/curator-labs/curator/internal/taxonomy"
	"github.com/spf13/cobra"
)

var (
	categoriesKind string
	categoriesJSON bool
)

func init() {
	categoriesCmd.Flags().StringVar(&categoriesKind, "kind", "", "Filter by taxonomy parent: domains or teams")
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(categoriesCmd)
}

// categoryEntry represents a discovered category for display.
type categoryEntry struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Items int    `json:"items"`
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List discovered categories with unit counts",
	Long:  `List the categories discovered under domains/ and teams/, with the number of content units in each.`,
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	var kinds []taxonomy.Kind
	switch categoriesKind {
	case "":
		kinds = []taxonomy.Kind{taxonomy.KindDomain, taxonomy.KindTeam}
	case "domains":
		kinds = []taxonomy.Kind{taxonomy.KindDomain}
	case "teams":
		kinds = []taxonomy.Kind{taxonomy.KindTeam}
	default:
		return errdefs.Format("unknown kind %q; expected domains or teams", categoriesKind)
	}

	var entries []categoryEntry
	for _, kind := range kinds {
		cats, err := taxonomy.Discover(libraryRoot(), kind)
		if err != nil {
			return err
		}
		for _, cat := range cats {
			entries = append(entries, categoryEntry{
				Kind:  taxonomy.ParentDir(kind),
				Name:  cat.Name,
				Items: cat.Items,
			})
		}
	}

	if categoriesJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling categories: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No categories discovered yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tCATEGORY\tITEMS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\n", e.Kind, e.Name, e.Items)
	}
	return w.Flush()
}

package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/curator-labs/curator/internal/catalogindex"
	"github.com/curator-labs/curator/internal/config"
	"github.com/curator-labs/curator/internal/scaffold"
	"github.com/curator-labs/curator/internal/taxonomy"
	"github.com/curator-labs/curator/internal/unit"
	"github.com/curator-labs/curator/internal/validation"
	"github.com/spf13/cobra"
)

// Shared flags for all create subcommands.
var (
	createConfigFile  string
	createCategory    string
	createDescription string
	createTier        string
)

// Package-only flags.
var (
	createTools      []string
	createReferences []string
)

func init() {
	createCmd.PersistentFlags().StringVar(&createConfigFile, "config", "", "Declarative creation config (YAML file)")
	createCmd.PersistentFlags().StringVar(&createCategory, "category", "", "Category the unit belongs to (created on demand)")
	createCmd.PersistentFlags().StringVar(&createDescription, "description", "", "One-line summary for the unit")
	createCmd.PersistentFlags().StringVar(&createTier, "tier", "", "Support tier: core, supported, experimental, or deprecated")
	rootCmd.AddCommand(createCmd)

	createPackageCmd.Flags().StringSliceVar(&createTools, "tools", nil, "Stub tool scripts to generate (comma-separated)")
	createPackageCmd.Flags().StringSliceVar(&createReferences, "references", nil, "Stub reference documents to generate (comma-separated)")

	createCmd.AddCommand(createDefinitionCmd)
	createCmd.AddCommand(createPackageCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Scaffold a new content unit",
	Long:  `Create a definition document or a package from built-in templates, re-validate it, and record it in its category catalog.`,
}

var createDefinitionCmd = &cobra.Command{
	Use:   "definition <name>",
	Short: "Scaffold a new definition document",
	Long: `Scaffold a single-file definition document under domains/<category>/.
Definition names carry the reserved "def-" prefix.

Examples:
  curator create definition def-error-budgets --category site-reliability
  curator create definition def-api-style --config request.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(unit.KindDefinition, args)
		if err != nil {
			return err
		}
		return runCreate(cmd, cfg)
	},
}

var createPackageCmd = &cobra.Command{
	Use:   "package <name>",
	Short: "Scaffold a new package",
	Long: `Scaffold a package directory under teams/<category>/ with its primary
document, executable tool stubs, reference stubs, and assets directory.

Example:
  curator create package quality-scan --category audits --tools scan.sh --references playbook.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(unit.KindPackage, args)
		if err != nil {
			return err
		}
		return runCreate(cmd, cfg)
	},
}

// buildConfig assembles the creation config from, in priority order: the
// declarative config file, command-line flags, and interactive prompts for
// whatever is still missing.
func buildConfig(kind unit.Kind, args []string) (*scaffold.Config, error) {
	var cfg *scaffold.Config
	if createConfigFile != "" {
		loaded, err := scaffold.LoadConfigFile(createConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if cfg.Kind == "" {
			cfg.Kind = kind
		}
	} else {
		cfg = &scaffold.Config{Kind: kind}
	}

	if len(args) > 0 {
		cfg.Name = args[0]
	}
	if createCategory != "" {
		cfg.Category = createCategory
	}
	if createDescription != "" {
		cfg.Description = createDescription
	}
	if createTier != "" {
		cfg.Tier = createTier
	}
	if len(createTools) > 0 {
		cfg.Tools = createTools
	}
	if len(createReferences) > 0 {
		cfg.References = createReferences
	}

	if err := promptMissing(cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults(config.Get(config.KeyDefaultTier))
	if cfg.Author == "" {
		cfg.Author = config.Get(config.KeyAuthor)
	}
	return cfg, nil
}

// promptMissing interactively collects required fields that neither the
// config file nor flags supplied.
func promptMissing(cfg *scaffold.Config) error {
	needTools := cfg.Kind == unit.KindPackage && len(cfg.Tools) == 0
	needRefs := cfg.Kind == unit.KindPackage && len(cfg.References) == 0
	if cfg.Name != "" && cfg.Category != "" && !needTools && !needRefs {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)
	var err error
	if cfg.Name == "" {
		if cfg.Name, err = promptString(reader, os.Stdout, "Name", ""); err != nil {
			return err
		}
	}
	if cfg.Category == "" {
		if cfg.Category, err = promptString(reader, os.Stdout, "Category", ""); err != nil {
			return err
		}
	}
	if needTools {
		if cfg.Tools, err = promptList(reader, os.Stdout, "Tools"); err != nil {
			return err
		}
	}
	if needRefs {
		if cfg.References, err = promptList(reader, os.Stdout, "References"); err != nil {
			return err
		}
	}
	return nil
}

// runCreate drives the creation flow: resolve or create the category,
// scaffold the unit, re-validate it, and record it in the catalog.
func runCreate(cmd *cobra.Command, cfg *scaffold.Config) error {
	root := libraryRoot()

	if err := cfg.Validate(); err != nil {
		return err
	}

	kind := taxonomy.KindDomain
	if cfg.Kind == unit.KindPackage {
		kind = taxonomy.KindTeam
	}
	_, found, err := taxonomy.Lookup(root, kind, cfg.Category)
	if err != nil {
		return err
	}
	if !found {
		if _, err := taxonomy.Create(root, kind, cfg.Category); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created category %s/%s\n", taxonomy.ParentDir(kind), cfg.Category)
	}

	result, err := scaffold.Scaffold(root, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s at %s\n", cfg.Kind, result.UnitPath)
	for _, f := range result.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
	}

	// Re-validate the freshly created unit before recording it.
	report, err := validation.ValidatePath(result.UnitPath, validation.Options{})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	report.Render(cmd.OutOrStdout())
	if !report.Passed() {
		checksFailed = true
		fmt.Fprintln(cmd.OutOrStdout(), "\nUnit failed validation; not recorded in the catalog.")
		return nil
	}

	if err := catalogindex.Append(result.Category, cfg.Name, cfg.Description); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nRecorded %s in %s\n", cfg.Name, result.Category.IndexPath)
	return nil
}

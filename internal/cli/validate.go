package cli

import (
	"encoding/json"
	"io"

	"github.com/curator-labs/curator/internal/errdefs"
	"github.com/curator-labs/curator/internal/validation"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	validateAll        bool
	validateCleanCheck bool
	validateFormat     string
)

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "Validate every unit in the library")
	validateCmd.Flags().BoolVar(&validateCleanCheck, "clean-check", false, "Include the workspace-cleanliness check for packages")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format: text, json, or yaml")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate content units",
	Long: `Run the check suite against one unit (a definition file or a package
directory) or, with --all, against every unit discovered in the library.

Exit codes: 0 all required checks passed, 1 one or more checks failed,
2 the target could not be read, 3 the configuration was malformed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	switch validateFormat {
	case "text", "json", "yaml":
	default:
		return errdefs.Format("unknown format %q; expected text, json, or yaml", validateFormat)
	}

	opts := validation.Options{CleanCheck: validateCleanCheck}
	out := cmd.OutOrStdout()

	if validateAll {
		summary, err := validation.ValidateAll(libraryRoot(), opts)
		if err != nil {
			return err
		}
		if err := emit(out, summary, func() { summary.Render(out) }); err != nil {
			return err
		}
		if summary.Failed > 0 {
			checksFailed = true
		}
		return nil
	}

	if len(args) != 1 {
		return errdefs.Format("expected a unit path or --all")
	}

	report, err := validation.ValidatePath(args[0], opts)
	if err != nil {
		return err
	}
	if err := emit(out, report, func() { report.Render(out) }); err != nil {
		return err
	}
	if !report.Passed() {
		checksFailed = true
	}
	return nil
}

// emit writes v in the requested format; renderText covers the default.
func emit(out io.Writer, v any, renderText func()) error {
	switch validateFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(v)
	default:
		renderText()
		return nil
	}
}

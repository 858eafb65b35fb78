package cli

import (
	"fmt"
	"os"

	"github.com/curator-labs/curator/internal/branding"
	"github.com/curator-labs/curator/internal/config"
	"github.com/curator-labs/curator/internal/errdefs"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// checksFailed is set by commands whose checks failed without a hard error,
// so Execute can honor the exit-code contract (1 = checks failed).
var checksFailed bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds and validates the structured content units of a library
repository: definition documents under domains/ and packages under teams/,
each recorded in its category's catalog.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code: 0 all checks passed, 1 checks failed,
// 2 unreadable target, 3 malformed configuration.
func Execute(version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", branding.CLIName(), err)
		return errdefs.ExitCode(err)
	}
	if checksFailed {
		return errdefs.ExitCheckFailed
	}
	return errdefs.ExitOK
}

// libraryRoot returns the content library root for this invocation.
func libraryRoot() string {
	return config.LibraryRoot()
}

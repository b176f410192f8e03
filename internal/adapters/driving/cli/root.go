// Package cli provides the sercha-integrations command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	jsonLogs   bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "sercha-integrations",
	Short: "OAuth integrations and item listing for third-party providers",
	Long: `sercha-integrations runs the OAuth authorization code flow against
third-party providers (HubSpot, Notion), caches the resulting credentials
per organisation and user, and lists provider records as normalised items.

Run "sercha-integrations serve" to start the HTTP service.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		logger.SetJSON(jsonLogs)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default ~/.sercha-integrations/config.toml)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	defer closeServices()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

// Package cli wires the smsgrab commands.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersion is called from main to inject build-time version info.
func SetVersion(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

var rootCmd = &cobra.Command{
	Use:   "smsgrab",
	Short: "SMSGrab — rent virtual numbers and catch their OTPs",
	Long: `SMSGrab rents virtual phone numbers from the SMSHub API, watches them
for incoming one-time passcodes, and lets you cancel or replace numbers
interactively.

Get started:
  smsgrab config init
  smsgrab run`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

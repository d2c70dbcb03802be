package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smsgrab/smsgrab/internal/cli/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print smsgrab version",
	Run: func(cmd *cobra.Command, args []string) {
		jsonOut, _ := cmd.Flags().GetBool("json")
		if jsonOut {
			json.NewEncoder(os.Stdout).Encode(map[string]any{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			})
			return
		}
		fmt.Printf("%s smsgrab %s (commit: %s, built: %s)\n", ui.BrandEmoji, buildVersion, buildCommit, buildDate)
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Output in JSON format")
}

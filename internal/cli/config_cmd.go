package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smsgrab/smsgrab/internal/cli/ui"
	"github.com/smsgrab/smsgrab/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage smsgrab configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented default smsgrab.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "smsgrab.toml"
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.GenerateDefault(path); err != nil {
			return err
		}
		fmt.Printf("%s Wrote %s\n", ui.StyleSuccess.Render(ui.SymbolCheck), path)
		fmt.Println(ui.StyleHint.Render("  Fill in vendor.api_key, country_code, service and max_price, then: smsgrab run"))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Peek(path)
		if err != nil {
			return err
		}
		validationErr := cfg.Validate()

		// Never echo the credential.
		if cfg.Vendor.APIKey != "" {
			cfg.Vendor.APIKey = "[redacted]"
		}
		out, err := cfg.ToTOML()
		if err != nil {
			return err
		}
		fmt.Print(out)
		if validationErr != nil {
			fmt.Println(ui.StyleWarning.Render(ui.SymbolWarning + " " + validationErr.Error()))
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configShowCmd.Flags().String("config", "", "Path to smsgrab.toml config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

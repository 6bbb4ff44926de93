package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load the configuration file, apply defaults and report whether it is valid.

Examples:
  dissector validate -c /etc/dissector/config.yml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.ValidateAndApplyDefaults(); err != nil {
			return fmt.Errorf("INVALID: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "VALID: source=%s workers=%d output=%s/%s\n",
			cfg.Capture.Source,
			cfg.Pipeline.Workers,
			cfg.Output.Format,
			cfg.Output.Payload,
		)
		return nil
	},
}

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"firestige.xyz/dissector/internal/config"
)

var readCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "Dissect frames from a pcap or pcapng file",
	Long: `Dissect every frame of an offline capture file and print the result.

Examples:
  dissector read trace.pcap
  dissector read trace.pcapng --format json --payload none`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Capture.Source = config.SourceFile
		cfg.Capture.File.Path = args[0]

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runDissect(ctx, cfg, cmd.OutOrStdout())
	},
}

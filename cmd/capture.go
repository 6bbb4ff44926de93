package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"firestige.xyz/dissector/internal/config"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Dissect live frames from a network interface",
	Long: `Capture frames from an AF_PACKET ring (Linux only) and dissect them
until interrupted with SIGINT or SIGTERM.

Examples:
  dissector capture -i eth0
  dissector capture -i eth0 --tcp-only --fanout 42 --workers 4`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Capture.Source = config.SourceAFPacket
		if cmd.Flags().Changed("interface") {
			cfg.Capture.AFPacket.Interface = captureIface
		}
		if cmd.Flags().Changed("tcp-only") {
			cfg.Capture.AFPacket.TCPOnly = captureTCPOnly
		}
		if cmd.Flags().Changed("fanout") {
			cfg.Capture.AFPacket.FanoutID = captureFanout
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runDissect(ctx, cfg, cmd.OutOrStdout())
	},
}

var (
	captureIface   string
	captureTCPOnly bool
	captureFanout  uint16
)

func init() {
	captureCmd.Flags().StringVarP(&captureIface, "interface", "i", "",
		"network interface to capture on")
	captureCmd.Flags().BoolVar(&captureTCPOnly, "tcp-only", false,
		"drop non IPv4/TCP frames in the kernel")
	captureCmd.Flags().Uint16Var(&captureFanout, "fanout", 0,
		"AF_PACKET fanout group id (0 = disabled)")
}

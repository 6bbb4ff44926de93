// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile   string
	outputFormat string
	payloadMode  string
	workers      int
	maxPayload   int
	trimToTotal  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dissector",
	Short: "Dissector - layered Ethernet/IPv4/TCP frame dissector",
	Long: `Dissector decodes captured link-layer frames into their Ethernet, IPv4
and TCP headers and the application payload that follows them.

Frames come from a pcap/pcapng file or a live AF_PACKET ring and are
printed as text, JSON or YAML.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (defaults only when empty)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "",
		"output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&payloadMode, "payload", "",
		"payload rendering: hex, text or none")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0,
		"number of dissect workers (0 = one per CPU)")
	rootCmd.PersistentFlags().IntVar(&maxPayload, "max-payload", 0,
		"payload bytes to print per packet (0 = all)")
	rootCmd.PersistentFlags().BoolVar(&trimToTotal, "trim", false,
		"cut payload at the IPv4 total length, dropping link-layer padding")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(validateCmd)
}

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"firestige.xyz/dissector/internal/config"
	"firestige.xyz/dissector/internal/core/decoder"
	"firestige.xyz/dissector/internal/log"
	"firestige.xyz/dissector/internal/metrics"
	"firestige.xyz/dissector/internal/pipeline"
	"firestige.xyz/dissector/internal/sink/console"
	"firestige.xyz/dissector/internal/source"
)

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.GlobalConfig, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = outputFormat
	}
	if flags.Changed("payload") {
		cfg.Output.Payload = payloadMode
	}
	if flags.Changed("max-payload") {
		cfg.Output.MaxPayloadBytes = maxPayload
	}
	if flags.Changed("workers") {
		cfg.Pipeline.Workers = workers
	}
	if flags.Changed("trim") {
		cfg.Decoder.TrimToTotalLen = trimToTotal
	}
	return cfg, nil
}

// runDissect wires source, decoder and sink for cfg and runs until the
// source is exhausted or ctx is cancelled.
func runDissect(ctx context.Context, cfg *config.GlobalConfig, out io.Writer) error {
	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return err
	}
	if err := log.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	if cfg.Metrics.Enabled {
		srv := metrics.NewServer(cfg.Metrics.Listen, cfg.Metrics.Path)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer srv.Stop(context.Background())
	}

	src, err := source.New(cfg.Capture)
	if err != nil {
		return err
	}
	sink, err := console.NewSink(out, cfg.Output)
	if err != nil {
		return err
	}
	defer sink.Close()

	p := pipeline.NewBuilder().
		WithName(cfg.Capture.Source).
		WithSource(src).
		WithDecoder(decoder.NewStandardDecoder(decoder.Config{TrimToTotalLen: cfg.Decoder.TrimToTotalLen})).
		WithSink(sink).
		WithWorkers(cfg.Pipeline.Workers).
		WithBufferSize(cfg.Pipeline.BufferSize).
		Build()
	return p.Run(ctx)
}

// Package config handles global configuration loading using viper.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Capture source kinds.
const (
	SourceFile     = "file"
	SourceAFPacket = "afpacket"
)

// GlobalConfig represents the top-level configuration.
// Maps to the `dissector:` root key in YAML.
type GlobalConfig struct {
	Log      LogConfig      `mapstructure:"log"`
	Capture  CaptureConfig  `mapstructure:"capture"`
	Decoder  DecoderConfig  `mapstructure:"decoder"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Output   OutputConfig   `mapstructure:"output"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ─── Capture ───

// CaptureConfig selects and configures the frame source.
type CaptureConfig struct {
	Source   string         `mapstructure:"source"` // file | afpacket
	File     FileConfig     `mapstructure:"file"`
	AFPacket AFPacketConfig `mapstructure:"afpacket"`
}

// FileConfig configures offline pcap / pcapng reading.
type FileConfig struct {
	Path string `mapstructure:"path"`
}

// AFPacketConfig configures the Linux TPACKET_V3 ring.
type AFPacketConfig struct {
	Interface    string `mapstructure:"interface"`
	SnapLen      int    `mapstructure:"snap_len"`
	BufferSizeMB int    `mapstructure:"buffer_size_mb"`
	TimeoutMs    int    `mapstructure:"timeout_ms"`
	FanoutID     uint16 `mapstructure:"fanout_id"`
	TCPOnly      bool   `mapstructure:"tcp_only"` // install an IPv4+TCP BPF filter
}

// ─── Decoder ───

// DecoderConfig contains frame decoder options.
type DecoderConfig struct {
	TrimToTotalLen bool `mapstructure:"trim_to_total_len"`
}

// ─── Pipeline ───

// PipelineConfig contains capture-to-output pipeline settings.
type PipelineConfig struct {
	Workers    int `mapstructure:"workers"`     // 0 = GOMAXPROCS
	BufferSize int `mapstructure:"buffer_size"` // frame channel capacity
}

// ─── Output ───

// OutputConfig controls how dissected packets are rendered.
type OutputConfig struct {
	Format          string `mapstructure:"format"`  // text | json | yaml
	Payload         string `mapstructure:"payload"` // hex | text | none
	MaxPayloadBytes int    `mapstructure:"max_payload_bytes"`
}

// ─── Metrics ───

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
	Path    string `mapstructure:"path"`
}

// ─── Log ───

// LogConfig contains logging settings.
type LogConfig struct {
	Level        string           `mapstructure:"level"`   // trace / debug / info / warn / error
	Format       string           `mapstructure:"format"`  // pattern / json
	Pattern      string           `mapstructure:"pattern"` // e.g. "%time [%level] %msg %field%n"
	Time         string           `mapstructure:"time"`    // Go time layout
	ReportCaller bool             `mapstructure:"report_caller"`
	Outputs      LogOutputsConfig `mapstructure:"outputs"`
}

// LogOutputsConfig contains log output destinations besides stdout.
type LogOutputsConfig struct {
	File FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig configures file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`  // MB
	MaxAgeDays int  `mapstructure:"max_age_days"` // Days
	MaxBackups int  `mapstructure:"max_backups"`
	Compress   bool `mapstructure:"compress"`
}

// ─── Loading ───

// configRoot is the top-level wrapper matching the YAML structure `dissector: ...`.
type configRoot struct {
	Dissector GlobalConfig `mapstructure:"dissector"`
}

// Load loads configuration from file; an empty path yields the defaults.
// The YAML file uses `dissector:` as root key; env vars use the DISSECTOR_
// prefix (e.g. DISSECTOR_LOG_LEVEL).
func Load(path string) (*GlobalConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// key "dissector.log.level" → env "DISSECTOR_LOG_LEVEL"
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Dissector

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration.
// All keys use the "dissector." prefix to match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("dissector.log.level", "info")
	v.SetDefault("dissector.log.format", "pattern")
	v.SetDefault("dissector.log.pattern", "%time [%level] %msg %field%n")
	v.SetDefault("dissector.log.time", "2006-01-02 15:04:05.000")
	v.SetDefault("dissector.log.report_caller", false)
	v.SetDefault("dissector.log.outputs.file.enabled", false)
	v.SetDefault("dissector.log.outputs.file.path", "/var/log/dissector/dissector.log")
	v.SetDefault("dissector.log.outputs.file.rotation.max_size_mb", 100)
	v.SetDefault("dissector.log.outputs.file.rotation.max_age_days", 30)
	v.SetDefault("dissector.log.outputs.file.rotation.max_backups", 5)
	v.SetDefault("dissector.log.outputs.file.rotation.compress", true)

	// Capture defaults
	v.SetDefault("dissector.capture.source", SourceAFPacket)
	v.SetDefault("dissector.capture.file.path", "")
	v.SetDefault("dissector.capture.afpacket.interface", "eth0")
	v.SetDefault("dissector.capture.afpacket.snap_len", 65536)
	v.SetDefault("dissector.capture.afpacket.buffer_size_mb", 8)
	v.SetDefault("dissector.capture.afpacket.timeout_ms", 100)
	v.SetDefault("dissector.capture.afpacket.fanout_id", 0)
	v.SetDefault("dissector.capture.afpacket.tcp_only", false)

	// Decoder defaults
	v.SetDefault("dissector.decoder.trim_to_total_len", false)

	// Pipeline defaults
	v.SetDefault("dissector.pipeline.workers", 1)
	v.SetDefault("dissector.pipeline.buffer_size", 1024)

	// Output defaults
	v.SetDefault("dissector.output.format", "text")
	v.SetDefault("dissector.output.payload", "hex")
	v.SetDefault("dissector.output.max_payload_bytes", 0)

	// Metrics defaults
	v.SetDefault("dissector.metrics.enabled", false)
	v.SetDefault("dissector.metrics.listen", ":9091")
	v.SetDefault("dissector.metrics.path", "/metrics")
}

// ValidateAndApplyDefaults validates configuration and applies runtime defaults.
// It is also called after CLI flags override loaded values.
func (cfg *GlobalConfig) ValidateAndApplyDefaults() error {
	// ── Log ──
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be trace/debug/info/warn/error)", cfg.Log.Level)
	}
	if cfg.Log.Format != "pattern" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be pattern/json)", cfg.Log.Format)
	}
	if cfg.Log.Outputs.File.Enabled && cfg.Log.Outputs.File.Path == "" {
		return fmt.Errorf("log.outputs.file.path is required when file output is enabled")
	}

	// ── Capture ──
	switch cfg.Capture.Source {
	case SourceFile:
		// path is checked when the source is opened; the CLI fills it in
	case SourceAFPacket:
		if cfg.Capture.AFPacket.Interface == "" {
			return fmt.Errorf("capture.afpacket.interface is required for source %q", SourceAFPacket)
		}
		if cfg.Capture.AFPacket.SnapLen <= 0 {
			return fmt.Errorf("capture.afpacket.snap_len must be positive, got %d", cfg.Capture.AFPacket.SnapLen)
		}
		if cfg.Capture.AFPacket.BufferSizeMB <= 0 {
			return fmt.Errorf("capture.afpacket.buffer_size_mb must be positive, got %d", cfg.Capture.AFPacket.BufferSizeMB)
		}
	default:
		return fmt.Errorf("unsupported capture.source: %s (must be file/afpacket)", cfg.Capture.Source)
	}

	// ── Pipeline ──
	if cfg.Pipeline.Workers < 0 {
		return fmt.Errorf("pipeline.workers must not be negative, got %d", cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.Workers == 0 {
		cfg.Pipeline.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Pipeline.BufferSize <= 0 {
		cfg.Pipeline.BufferSize = 1024
	}

	// ── Output ──
	switch cfg.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s (must be text/json/yaml)", cfg.Output.Format)
	}
	switch cfg.Output.Payload {
	case "hex", "text", "none":
	default:
		return fmt.Errorf("invalid output payload mode: %s (must be hex/text/none)", cfg.Output.Payload)
	}
	if cfg.Output.MaxPayloadBytes < 0 {
		return fmt.Errorf("output.max_payload_bytes must not be negative, got %d", cfg.Output.MaxPayloadBytes)
	}

	// ── Metrics ──
	if cfg.Metrics.Enabled && cfg.Metrics.Listen == "" {
		return fmt.Errorf("metrics.listen is required when metrics.enabled=true")
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	return nil
}

// Package config provides configuration management for the headr CLI.
//
// Values are layered, lowest to highest: built-in defaults, a YAML config
// file, HEADR_* environment variables, then command-line flags that were
// explicitly set.
package config

// Config holds all CLI configuration options.
type Config struct {
	Lines          string `koanf:"lines"`
	Bytes          string `koanf:"bytes"` // empty means line mode
	Headers        string `koanf:"headers"`
	ZeroTerminated bool   `koanf:"zero_terminated"`
	InvalidLines   string `koanf:"invalid_lines"`
	LogLevel       string `koanf:"log_level"`

	// ConfigFile is the file the values were read from, if any.
	ConfigFile string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultLines        = "10"
	DefaultHeaders      = "auto"
	DefaultInvalidLines = "skip"
	DefaultLogLevel     = "warn"
)

// EnvPrefix is the prefix of environment variables read by LoadConfig.
const EnvPrefix = "HEADR_"

// configFileNames are looked up in the working directory, in order.
var configFileNames = []string{".headr.yaml", ".headr.yml"}

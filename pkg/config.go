package dupdigest

import (
	"fmt"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the dupdigest configuration
type Config struct {
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	Default string // Digest algorithm
}

// OutputConfig represents output format configuration
type OutputConfig struct {
	Format   string // text, fdupes, json, yaml
	Relative bool   // Report paths relative to the scanned root
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // 0=quiet, 1=summary, 2=per-directory, 3=trace
	Debug string // Comma-separated debug flags
}

// SymlinkConfig represents symlink handling configuration
type SymlinkConfig struct {
	Mode string // all, contained, none
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	HashBuffer string // Read buffer size for hashing (default: "1MiB")
}

// ScanConfig represents traversal configuration
type ScanConfig struct {
	IgnoreFile string // File of regex patterns to skip
}

// AllConfig represents all configuration options
type AllConfig struct {
	Hash        *HashConfig
	Output      *OutputConfig
	Verbose     *VerboseConfig
	Symlink     *SymlinkConfig
	Performance *PerformanceConfig
	Scan        *ScanConfig
}

// NewConfig returns a configuration holding only built-in defaults
func NewConfig() *Config {
	return &Config{ini: ini.Empty()}
}

// LoadConfig loads configuration from an ini file. The file is never written.
func LoadConfig(configPath string) (*Config, error) {
	iniFile, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return &Config{
		configPath: configPath,
		ini:        iniFile,
	}, nil
}

// Path returns the file the configuration was loaded from, if any
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) stringValue(section, key, fallback string) string {
	if !c.ini.HasSection(section) {
		return fallback
	}
	s := c.ini.Section(section)
	if !s.HasKey(key) {
		return fallback
	}
	if v := s.Key(key).String(); v != "" {
		return v
	}
	return fallback
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	return &HashConfig{
		Default: c.stringValue("filehash", "default", DefaultHashAlgorithm),
	}
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	outputConfig := &OutputConfig{
		Format: c.stringValue("output", "format", DefaultOutputFormat),
	}

	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if section.HasKey("relative") {
			if relative, err := section.Key("relative").Bool(); err == nil {
				outputConfig.Relative = relative
			}
		}
	}

	return outputConfig
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{
		Debug: c.stringValue("verbose", "debug", ""),
	}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
	}

	return verboseConfig
}

// GetSymlinkConfig returns the symlink configuration
func (c *Config) GetSymlinkConfig() *SymlinkConfig {
	return &SymlinkConfig{
		Mode: c.stringValue("symlink", "mode", DefaultSymlinkMode),
	}
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	return &PerformanceConfig{
		HashBuffer: c.stringValue("performance", "hash_buffer", DefaultHashBuffer),
	}
}

// GetScanConfig returns the scan configuration
func (c *Config) GetScanConfig() *ScanConfig {
	return &ScanConfig{
		IgnoreFile: c.stringValue("scan", "ignore_file", ""),
	}
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Hash:        c.GetHashConfig(),
		Output:      c.GetOutputConfig(),
		Verbose:     c.GetVerboseConfig(),
		Symlink:     c.GetSymlinkConfig(),
		Performance: c.GetPerformanceConfig(),
		Scan:        c.GetScanConfig(),
	}
}

// overrideKeys maps override names to their section and key
var overrideKeys = map[string][2]string{
	"default":     {"filehash", "default"},
	"format":      {"output", "format"},
	"relative":    {"output", "relative"},
	"level":       {"verbose", "level"},
	"debug":       {"verbose", "debug"},
	"mode":        {"symlink", "mode"},
	"hash_buffer": {"performance", "hash_buffer"},
	"ignore_file": {"scan", "ignore_file"},
}

// Set stores a value in the in-memory configuration
func (c *Config) Set(section, key, value string) {
	c.ini.Section(section).Key(key).SetValue(value)
}

// ApplyOverrides applies command-line overrides to the configuration
// Accepts strings like "default:sha256", "format:json", "level:2", "debug:scan"
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		target, ok := overrideKeys[key]
		if !ok {
			return fmt.Errorf("unsupported override key '%s' (supported: default, format, relative, level, debug, mode, hash_buffer, ignore_file)", key)
		}
		c.Set(target[0], target[1], value)
	}

	return nil
}

// Validate checks every configured value
func (c *Config) Validate() error {
	all := c.GetAllConfig()

	if err := ValidateHashAlgorithm(all.Hash.Default); err != nil {
		return err
	}
	if err := ValidateOutputFormat(all.Output.Format); err != nil {
		return err
	}
	if err := ValidateVerboseLevel(all.Verbose.Level); err != nil {
		return err
	}
	if err := ValidateSymlinkMode(all.Symlink.Mode); err != nil {
		return err
	}
	if _, err := ParseHumanSize(all.Performance.HashBuffer); err != nil {
		return fmt.Errorf("invalid hash_buffer: %w", err)
	}
	if c.ini.HasSection("verbose") && c.ini.Section("verbose").HasKey("level") {
		if _, err := c.ini.Section("verbose").Key("level").Int(); err != nil {
			return fmt.Errorf("invalid verbose level: %s", c.ini.Section("verbose").Key("level").String())
		}
	}
	return nil
}

// ValidateVerboseLevel validates that a verbose level is valid
func ValidateVerboseLevel(level int) error {
	if level < 0 || level > 3 {
		return fmt.Errorf("invalid verbose level: %d (supported: 0-3)", level)
	}
	return nil
}

// Options builds finder options from the configuration
func (c *Config) Options() (Options, error) {
	if err := c.Validate(); err != nil {
		return Options{}, err
	}
	all := c.GetAllConfig()

	bufferSize, err := ParseHumanSize(all.Performance.HashBuffer)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Algorithm:   all.Hash.Default,
		BufferSize:  bufferSize,
		SymlinkMode: all.Symlink.Mode,
		Relative:    all.Output.Relative,
	}

	if all.Scan.IgnoreFile != "" {
		im, err := LoadIgnoreFile(all.Scan.IgnoreFile)
		if err != nil {
			return Options{}, err
		}
		opts.Ignore = im
	}

	return opts, nil
}

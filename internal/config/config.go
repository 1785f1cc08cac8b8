// Package config resolves fsusage settings from a YAML file, the environment
// and the command line.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ianschenck/envflag"
	"gopkg.in/yaml.v3"

	"github.com/cloudfoundry/fsusage"
)

const DefaultLogLevel = "warn"

// File is the optional YAML defaults file.
type File struct {
	Color      bool   `yaml:"color"`
	JSON       bool   `yaml:"json"`
	Quiet      bool   `yaml:"quiet"`
	PseudoFS   bool   `yaml:"pseudofs"`
	LogLevel   string `yaml:"log_level"`
	Textfile   string `yaml:"textfile"`    // Prometheus textfile output path
	MountsFile string `yaml:"mounts_file"` // Mount table to read (default: /proc/self/mounts)
}

// Env holds the settings read from FSUSAGE_* environment variables.
type Env struct {
	ConfigFile string
	LogLevel   string
	MountsFile string
}

// Config is the resolved run configuration.
type Config struct {
	Color      bool
	JSON       bool
	Quiet      bool
	PseudoFS   bool
	LogLevel   string
	Textfile   string
	MountsFile string
}

// LoadEnv parses the environment. It must be called at most once per process.
func LoadEnv() Env {
	var env Env
	envflag.StringVar(&env.ConfigFile, "FSUSAGE_CONFIG", "", "Path to a YAML defaults file")
	envflag.StringVar(&env.LogLevel, "FSUSAGE_LOG_LEVEL", "", "Log level (debug, info, warn, error)")
	envflag.StringVar(&env.MountsFile, "FSUSAGE_MOUNTS", "", "Mount table to read")
	envflag.Parse()
	return env
}

// Load reads a YAML defaults file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return f, nil
}

func Default() Config {
	return Config{LogLevel: DefaultLogLevel}
}

// ApplyFile overlays the values set in f.
func (c *Config) ApplyFile(f *File) {
	c.Color = c.Color || f.Color
	c.JSON = c.JSON || f.JSON
	c.Quiet = c.Quiet || f.Quiet
	c.PseudoFS = c.PseudoFS || f.PseudoFS
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.Textfile != "" {
		c.Textfile = f.Textfile
	}
	if f.MountsFile != "" {
		c.MountsFile = f.MountsFile
	}
}

// ApplyEnv overlays the values set in env.
func (c *Config) ApplyEnv(env Env) {
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
	if env.MountsFile != "" {
		c.MountsFile = env.MountsFile
	}
}

// Validate rejects option combinations that cannot be rendered together.
func (c *Config) Validate() error {
	if c.Color && c.JSON {
		return &fsusage.UsageError{Err: errors.New("--color and --json are mutually exclusive")}
	}
	if c.JSON && c.Quiet {
		return &fsusage.UsageError{Err: errors.New("--json and --quiet are mutually exclusive")}
	}
	return nil
}

func (c *Config) Display() fsusage.DisplayConfig {
	mode := fsusage.ModeVerbose
	switch {
	case c.JSON:
		mode = fsusage.ModeJSON
	case c.Quiet:
		mode = fsusage.ModeQuiet
	}
	return fsusage.DisplayConfig{
		Color:    c.Color,
		Mode:     mode,
		PseudoFS: c.PseudoFS,
	}
}

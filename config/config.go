// Package config loads tarobot settings from TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	truntime "github.com/gosuda/tarobot/runtime"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "TAROBOT_CONFIG"

type Config struct {
	Limits LimitsConfig `toml:"limits"`
	Robot  RobotConfig  `toml:"robot"`
	Log    LogConfig    `toml:"log"`
}

type LimitsConfig struct {
	MaxCallDepth      int `toml:"max_call_depth"`
	MaxLoopIterations int `toml:"max_loop_iterations"`
}

type RobotConfig struct {
	// StepDelay paces the animated runner between two robot primitives.
	StepDelay Duration `toml:"step_delay"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration wraps time.Duration for TOML parsing.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Default() *Config {
	l := truntime.DefaultLimits()
	return &Config{
		Limits: LimitsConfig{
			MaxCallDepth:      l.MaxCallDepth,
			MaxLoopIterations: l.MaxLoopIterations,
		},
		Robot: RobotConfig{StepDelay: Duration{150 * time.Millisecond}},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path falls back to
// $TAROBOT_CONFIG; a missing file yields the defaults. Unknown keys are an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return cfg, nil
	}
	path = os.ExpandEnv(path)

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Limits.MaxCallDepth <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_call_depth must be positive, got %d", c.Limits.MaxCallDepth))
	}
	if c.Limits.MaxLoopIterations <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_loop_iterations must be positive, got %d", c.Limits.MaxLoopIterations))
	}
	if c.Robot.StepDelay.Duration < 0 {
		errs = append(errs, fmt.Errorf("robot.step_delay must not be negative, got %s", c.Robot.StepDelay))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// RuntimeLimits converts the [limits] table for the interpreter.
func (c *Config) RuntimeLimits() truntime.Limits {
	return truntime.Limits{
		MaxCallDepth:      c.Limits.MaxCallDepth,
		MaxLoopIterations: c.Limits.MaxLoopIterations,
	}
}

// LogLevel returns the configured level, or info when it does not parse.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Package config loads runtime settings from a YAML file, an optional .env
// file and REXOS_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDB           = "REXOS_DB"
	EnvLogLevel     = "REXOS_LOG_LEVEL"
	EnvNoteDebounce = "REXOS_NOTE_DEBOUNCE"
	EnvSaveRetries  = "REXOS_SAVE_RETRIES"
	EnvReportDir    = "REXOS_REPORT_DIR"
)

type Config struct {
	DBPath       string   `yaml:"db_path"`
	LogLevel     string   `yaml:"log_level"`
	NoteDebounce Duration `yaml:"note_debounce"`
	SaveRetries  int      `yaml:"save_retries"`
	ReportDir    string   `yaml:"report_dir"`
}

// Duration reads "1s"-style strings from YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("decode duration: %w", err)
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func Default() Config {
	return Config{
		LogLevel:     "warn",
		NoteDebounce: Duration{time.Second},
		SaveRetries:  3,
	}
}

// Load reads path when it exists, then applies .env and environment
// overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	// .env is optional; existing environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup(EnvDB); ok {
		cfg.DBPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvReportDir); ok {
		cfg.ReportDir = v
	}
	if v, ok := lookup(EnvNoteDebounce); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvNoteDebounce, err)
		}
		cfg.NoteDebounce = Duration{d}
	}
	if v, ok := lookup(EnvSaveRetries); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvSaveRetries, err)
		}
		cfg.SaveRetries = n
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (c Config) Validate() error {
	if c.SaveRetries < 0 {
		return fmt.Errorf("save_retries must be >= 0")
	}
	if c.NoteDebounce.Duration < 0 {
		return fmt.Errorf("note_debounce must be >= 0")
	}
	return nil
}

// Write stores c as YAML at path, refusing to overwrite an existing file
// unless force is set.
func Write(path string, c Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Package config loads lockviz settings from flags, environment and an optional YAML file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/zerr"
)

// Setting keys, as written in the settings file.
const (
	KeyLockfile       = "lockfile"
	KeyRootManifest   = "root_manifest"
	KeyDebounce       = "debounce"
	KeyStatusInterval = "status_interval"
	KeyJSONLogs       = "json_logs"
	KeyTrace          = "trace"
)

// Default timings of a watch session.
const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultStatusInterval = 10 * time.Second
)

// flagKeys maps command line flag names to setting keys.
var flagKeys = map[string]string{
	"lockfile":      KeyLockfile,
	"root-manifest": KeyRootManifest,
	"debounce":      KeyDebounce,
	"interval":      KeyStatusInterval,
	"json-logs":     KeyJSONLogs,
	"trace":         KeyTrace,
}

// Settings are the resolved options of one lockviz invocation.
type Settings struct {
	// Lockfile is an explicit lockfile path. Empty means discover from the working directory.
	Lockfile string `mapstructure:"lockfile"`

	// RootManifest is the package.json that importer keys are relative to.
	RootManifest string `mapstructure:"root_manifest"`

	Debounce       time.Duration `mapstructure:"debounce"`
	StatusInterval time.Duration `mapstructure:"status_interval"`
	JSONLogs       bool          `mapstructure:"json_logs"`
	Trace          bool          `mapstructure:"trace"`

	// ConfigFile is the settings file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Settings {
	return Settings{
		RootManifest:   domain.DefaultRootManifestPath,
		Debounce:       DefaultDebounce,
		StatusInterval: DefaultStatusInterval,
	}
}

// Options control where Load looks for settings.
type Options struct {
	// ConfigFile is an explicit settings file. It must exist when set.
	ConfigFile string

	// Dir is searched for domain.SettingsFileName when ConfigFile is empty.
	Dir string

	// Flags are bound by name; only flags set on the command line override other sources.
	Flags *pflag.FlagSet
}

// Load resolves settings. Precedence from highest to lowest is flags, environment
// variables prefixed with domain.EnvPrefix, the settings file, then Defaults.
func Load(opts Options) (Settings, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault(KeyLockfile, defaults.Lockfile)
	v.SetDefault(KeyRootManifest, defaults.RootManifest)
	v.SetDefault(KeyDebounce, defaults.Debounce)
	v.SetDefault(KeyStatusInterval, defaults.StatusInterval)
	v.SetDefault(KeyJSONLogs, defaults.JSONLogs)
	v.SetDefault(KeyTrace, defaults.Trace)

	v.SetEnvPrefix(domain.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	configFile, err := settingsFile(opts)
	if err != nil {
		return Settings{}, err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configFile)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, zerr.With(zerr.Wrap(err, "failed to bind flag"), "flag", name)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, zerr.Wrap(err, "failed to decode settings")
	}
	s.ConfigFile = configFile
	if s.RootManifest == "" {
		s.RootManifest = domain.DefaultRootManifestPath
	}
	return s, nil
}

func settingsFile(opts Options) (string, error) {
	if opts.ConfigFile != "" {
		return opts.ConfigFile, nil
	}
	if opts.Dir == "" {
		return "", nil
	}

	path := filepath.Join(opts.Dir, domain.SettingsFileName)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return path, nil
	case errors.Is(err, os.ErrNotExist):
		return "", nil
	default:
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
}

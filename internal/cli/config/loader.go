package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/leapstack-labs/examsched/internal/config"
)

// loggerKey is used to store the logger in a command context.
type loggerKey struct{}

// envPrefix prefixes environment variables mapped to config keys.
const envPrefix = "EXAMSCHED_"

// maxUpwardSearchLevels limits how far up the tree to look for a config file.
const maxUpwardSearchLevels = 10

// pathFlags are flags holding paths, keyed by flag name.
var pathFlags = map[string]string{
	"data-dir": "data_dir",
	"state":    "state_path",
}

var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// ResetConfig resets the package state. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
//
// Relative paths from the config file or defaults resolve against the
// directory of the config file, or the working directory when there is
// none. Relative paths given as flags resolve against the working
// directory.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	// 1. defaults
	if err := k.Load(confmap.Provider(intconfig.Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. config file
	root := cwd
	if cfgFile == "" {
		if dir := intconfig.FindRoot(cwd, maxUpwardSearchLevels); dir != "" {
			cfgFile = intconfig.FindConfigFile(dir)
		}
	}
	configFileUsed = cfgFile
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		if abs, err := filepath.Abs(cfgFile); err == nil {
			root = filepath.Dir(abs)
		}
	}

	// 3. environment: EXAMSCHED_DATA_DIR -> data_dir
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. explicitly set flags
	flagPaths := map[string]string{}
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := pathFlags[f.Name]; ok {
				key = mapped
				flagPaths[key] = f.Value.String()
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. decode
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(delimiterHook()),
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. resolve paths
	cfg.Root = root
	if _, ok := flagPaths["data_dir"]; ok {
		cfg.DataDir = resolvePathRelativeTo(cfg.DataDir, cwd)
	} else {
		cfg.DataDir = resolvePathRelativeTo(cfg.DataDir, root)
	}
	if cfg.StatePath != ":memory:" {
		if _, ok := flagPaths["state_path"]; ok {
			cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, cwd)
		} else {
			cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, root)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	currentConfig = &cfg
	return &cfg, nil
}

// delimiterHook expands backslash escapes in Delimiter values.
func delimiterHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(Delimiter(""))
	return func(from, to reflect.Type, data any) (any, error) {
		if to != target || from.Kind() != reflect.String {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		if !strings.Contains(s, `\`) {
			return s, nil
		}
		unquoted, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
		if err != nil {
			return nil, fmt.Errorf("invalid instructor_delimiter %q: %w", s, err)
		}
		return unquoted, nil
	}
}

// resolvePathRelativeTo resolves path against baseDir unless it is empty
// or absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// GetConfigFileUsed returns the path to the config file in use, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the configuration loaded by the last LoadConfig.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// The commands package reads it without importing the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

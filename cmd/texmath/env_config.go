package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-texmath/internal/config"
)

// envPrefix marks the variables read by texmath.
const envPrefix = "TEXMATH_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath   string   // TEXMATH_CONFIG: config file name or path
	WrapTag      string   // TEXMATH_WRAP_TAG: element wrapping math spans
	MatchTimeout string   // TEXMATH_MATCH_TIMEOUT: Go duration
	Macros       []string // TEXMATH_MACROS: macro files, separated like PATH
	InputDir     string   // TEXMATH_INPUT_DIR: default input directory
	OutputDir    string   // TEXMATH_OUTPUT_DIR: default output directory
	Workers      int      // TEXMATH_WORKERS: parallel workers
}

// knownEnvVars lists valid TEXMATH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEXMATH_CONFIG":        true,
	"TEXMATH_WRAP_TAG":      true,
	"TEXMATH_MATCH_TIMEOUT": true,
	"TEXMATH_MACROS":        true,
	"TEXMATH_INPUT_DIR":     true,
	"TEXMATH_OUTPUT_DIR":    true,
	"TEXMATH_WORKERS":       true,
}

// loadEnvConfig reads configuration through getenv.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:   getenv("TEXMATH_CONFIG"),
		WrapTag:      getenv("TEXMATH_WRAP_TAG"),
		MatchTimeout: getenv("TEXMATH_MATCH_TIMEOUT"),
		InputDir:     getenv("TEXMATH_INPUT_DIR"),
		OutputDir:    getenv("TEXMATH_OUTPUT_DIR"),
	}

	if macros := getenv("TEXMATH_MACROS"); macros != "" {
		for _, p := range filepath.SplitList(macros) {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Macros = append(cfg.Macros, p)
			}
		}
	}

	// Invalid counts are ignored, the flag default applies
	if workers := getenv("TEXMATH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized TEXMATH_* variables.
// Helps catch typos like TEXMATH_WRAPTAG instead of TEXMATH_WRAP_TAG.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			warnLabel.Fprint(w, "warning:")
			fmt.Fprintf(w, " unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.WrapTag != "" {
		cfg.Math.WrapTag = env.WrapTag
	}
	if env.MatchTimeout != "" {
		cfg.Math.MatchTimeout = env.MatchTimeout
	}
	if len(env.Macros) > 0 {
		cfg.Macros.Files = env.Macros
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}

// loadConfig resolves the configuration shared by every command:
// the config file (flag, then TEXMATH_CONFIG), then environment overrides.
func loadConfig(flagConfig string, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

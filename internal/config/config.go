package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/atomicstack/treemenu/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envMenu      = "TREEMENU_MENU"
	envQuitKey   = "TREEMENU_QUIT_KEY"
	envDirKey    = "TREEMENU_DIR_KEY"
	envScript    = "TREEMENU_SCRIPT"
	envWidth     = "TREEMENU_WIDTH"
	envNoColor   = "TREEMENU_NO_COLOR"
	envVerbose   = "TREEMENU_VERBOSE"
	envTrace     = "TREEMENU_TRACE"
	envLogFile   = "TREEMENU_LOG_FILE"
	defaultQuit  = "c"
	defaultDir   = "d"
	scriptSplits = ","
)

// UsageError is returned when the command line cannot be parsed. Usage
// holds the flag summary the parser produced.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("treemenu", flag.ContinueOnError)
	var usage strings.Builder
	fs.SetOutput(&usage)

	menuPath := fs.String("menu", envOrDefault(env, envMenu, ""), "path to a TOML menu file (built-in demo when empty)")
	quitKey := fs.String("quit-key", envOrDefault(env, envQuitKey, defaultQuit), "letter that quits the whole menu together with ctrl")
	dirKey := fs.String("dir-key", envOrDefault(env, envDirKey, defaultDir), "letter that prints the current directory together with ctrl (empty disables)")
	script := fs.String("script", envOrDefault(env, envScript, ""), "comma separated key names to replay on an off-screen terminal, printing the final screen")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "screen width in cells for -script (0 uses 80)")
	noColor := fs.Bool("no-color", envOrBool(env, envNoColor, false), "draw without colors")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "echo commands run by exec actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, &UsageError{Err: err, Usage: usage.String()}
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	quit, err := parseLetter("quit-key", *quitKey)
	if err != nil {
		return Config{}, err
	}
	dir, err := parseLetter("dir-key", *dirKey)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			MenuPath:     strings.TrimSpace(*menuPath),
			QuitKey:      quit,
			DirectoryKey: dir,
			Script:       splitScript(*script),
			Width:        *width,
			Monochrome:   *noColor,
			Verbose:      *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"menu":     *menuPath,
			"quit-key": *quitKey,
			"dir-key":  *dirKey,
			"script":   *script,
			"width":    strconv.Itoa(*width),
			"no-color": strconv.FormatBool(*noColor),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// controlAliased lists letters whose ctrl chord shares a byte with
// backspace (h), tab (i), line feed (j) or carriage return (m).
const controlAliased = "hijm"

// parseLetter accepts a single ASCII letter, or an empty value meaning
// unbound.
func parseLetter(name, value string) (rune, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(trimmed)
	if size != len(trimmed) || r > unicode.MaxASCII || !unicode.IsLetter(r) {
		return 0, fmt.Errorf("%s must be a single letter (got %q)", name, value)
	}
	if strings.ContainsRune(controlAliased, r) {
		return 0, fmt.Errorf("%s cannot be %q: ctrl+%c arrives as backspace, tab or enter", name, value, r)
	}
	return r, nil
}

func splitScript(value string) []string {
	var keys []string
	for _, part := range strings.Split(value, scriptSplits) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, flag.ErrHelp) {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprint(os.Stderr, usageErr.Usage)
		}
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects combinations that parse individually but cannot work
// together.
func Validate(cfg Config) error {
	if cfg.App.QuitKey == 0 {
		return fmt.Errorf("quit-key is required")
	}
	if cfg.App.DirectoryKey != 0 && cfg.App.DirectoryKey == cfg.App.QuitKey {
		return fmt.Errorf("quit-key and dir-key must differ (both %q)", cfg.App.QuitKey)
	}
	return nil
}

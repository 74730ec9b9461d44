package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mithrel/mdserve/internal/logging"
	"github.com/mithrel/mdserve/internal/segment"
)

const appName = "mdserve"

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for defaults and the TOML generator.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "http_addr", Default: "127.0.0.1:8080", Comment: "Listen address for the local web server (port 0 picks a free port)"},
		{Key: "open_browser", Default: true, Comment: "Open a browser window once the server is listening"},

		{Key: "log.level", Default: "INFO", Comment: "Log level: DEBUG, CRITICAL, FATAL, ERROR, WARNING, WARN, INFO, NOTSET"},
		{Key: "log.dir", Default: "./logs/", Comment: "Directory for <year>-<month>-server.log; empty disables the log file"},

		{Key: "page.title", Default: "Markdown Server", Comment: "Browser window title; empty uses the first heading of the document"},

		{Key: "segment.lang", Default: segment.DefaultLang, Comment: "Fence language tag that marks a diagram block"},
		{Key: "segment.unterminated", Default: string(segment.PolicyText), Comment: "Unclosed diagram fence: text (keep as text), diagram (rest is a diagram) or error"},

		{Key: "render.mermaid_url", Default: "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs", Comment: "ES module URL for mermaid.js"},
		{Key: "render.mermaid_theme", Default: "default", Comment: "Mermaid theme: default, neutral, dark, forest, base"},
		{Key: "render.code_style", Default: "github", Comment: "Chroma style for highlighted code blocks"},
		{Key: "render.unsafe_html", Default: true, Comment: "Pass raw HTML in markdown through; false sanitizes the output"},
		{Key: "render.live_links", Default: true, Comment: "Show an 'Open in mermaid.live' link under each diagram"},

		{Key: "terminal.style", Default: "dark", Comment: "Glamour style for the render command (dark, light, dracula, notty, ...)"},
		{Key: "terminal.width", Default: 0, Comment: "Word wrap for the render command; 0 uses the terminal width"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// Flags bound by the caller override all of these.
func Load(ctx context.Context, v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// A missing file in the search path is fine; a named file must exist.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: MDSERVE_* (e.g. MDSERVE_LOG_LEVEL)
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("segment.lang")) == "" {
		v.Set("segment.lang", segment.DefaultLang)
	}
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

// CheckConfigValidity reports every invalid setting in one error.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	addr := strings.TrimSpace(v.GetString("http_addr"))
	if addr == "" {
		errs = append(errs, errors.New("http_addr is required"))
	} else if _, _, err := net.SplitHostPort(addr); err != nil {
		errs = append(errs, fmt.Errorf("http_addr %q is not host:port", addr))
	}
	if _, err := logging.ParseLevel(v.GetString("log.level")); err != nil {
		errs = append(errs, err)
	}
	if lang := v.GetString("segment.lang"); strings.ContainsAny(lang, " \t\n`") {
		errs = append(errs, fmt.Errorf("segment.lang %q must be a single word", lang))
	}
	if _, err := segment.ParsePolicy(v.GetString("segment.unterminated")); err != nil {
		errs = append(errs, fmt.Errorf("segment.unterminated: %w", err))
	}
	if strings.TrimSpace(v.GetString("render.mermaid_url")) == "" {
		errs = append(errs, errors.New("render.mermaid_url is required"))
	}
	if v.GetInt("terminal.width") < 0 {
		errs = append(errs, errors.New("terminal.width must not be negative"))
	}
	return errors.Join(errs...)
}

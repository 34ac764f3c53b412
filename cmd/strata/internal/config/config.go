// Package config loads the optional strata.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up in the project root.
const FileName = "strata.yaml"

// Defaults for a project without a window section.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultPort   = 9930
)

// Config represents strata.yaml.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Window  WindowConfig  `yaml:"window"`
	Theme   string        `yaml:"theme,omitempty"`
	Catalog CatalogConfig `yaml:"catalog"`
	Debug   DebugConfig   `yaml:"debug"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// WindowConfig sets the surface size used by headless commands.
type WindowConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Dark   bool    `yaml:"dark,omitempty"`
}

// CatalogConfig names the message catalogs. Fallback resolves keys the
// primary catalog lacks.
type CatalogConfig struct {
	Path     string `yaml:"path,omitempty"`
	Fallback string `yaml:"fallback,omitempty"`
}

// DebugConfig configures `strata serve`.
type DebugConfig struct {
	Port int `yaml:"port,omitempty"`
}

// Resolved contains resolved configuration values. Paths are absolute.
type Resolved struct {
	Root            string
	ModulePath      string
	AppName         string
	Width           float64
	Height          float64
	Dark            bool
	ThemePath       string
	CatalogPath     string
	FallbackCatalog string
	DebugPort       int
}

// LoadOptional reads strata.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads strata.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	if cfg.Window.Width < 0 || cfg.Window.Height < 0 {
		return nil, fmt.Errorf("window size must not be negative (got %vx%v)", cfg.Window.Width, cfg.Window.Height)
	}
	width, height := cfg.Window.Width, cfg.Window.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}

	port := cfg.Debug.Port
	if port == 0 {
		port = DefaultPort
	}
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("debug.port out of range (got %d)", port)
	}

	return &Resolved{
		Root:            dir,
		ModulePath:      modulePath,
		AppName:         appName,
		Width:           width,
		Height:          height,
		Dark:            cfg.Window.Dark,
		ThemePath:       abs(dir, cfg.Theme),
		CatalogPath:     abs(dir, cfg.Catalog.Path),
		FallbackCatalog: abs(dir, cfg.Catalog.Fallback),
		DebugPort:       port,
	}, nil
}

// FindProjectRoot walks up from start to the first directory holding
// strata.yaml or go.mod. Without either, start itself is the root.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for d := dir; ; {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(d, marker)); err == nil {
				return d, nil
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			return dir, nil
		}
		d = parent
	}
}

// modulePath returns the module path from go.mod, or "" when there is none.
func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "strata_app"
	}
	return base
}

func abs(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

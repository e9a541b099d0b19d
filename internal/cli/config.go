package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pedigraph/pedigraph/pkg/pipeline"
)

// Config holds optional user defaults loaded from a TOML file. Flags always
// win over the config file; the config file wins over built-in defaults.
//
// Example ~/.config/pedigraph/config.toml:
//
//	[layout]
//	horizontal_spacing = 48.0
//	node_width = 140.0
//	child_order = "birthdate"
//
//	[render]
//	formats = ["svg", "png"]
//	scale = 2.0
//	junction_dots = true
//
//	[serve]
//	addr = ":8080"
//	redis_addr = "localhost:6379"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "pedigraph"
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Serve  ServeConfig  `toml:"serve"`
}

// LayoutConfig mirrors the engine options that make sense as user defaults.
type LayoutConfig struct {
	HorizontalSpacing float64 `toml:"horizontal_spacing"`
	VerticalSpacing   float64 `toml:"vertical_spacing"`
	NodeWidth         float64 `toml:"node_width"`
	NodeHeight        float64 `toml:"node_height"`
	SpouseGap         float64 `toml:"spouse_gap"`
	ChildOrder        string  `toml:"child_order"`
	GenerationLabels  bool    `toml:"generation_labels"`
}

// RenderConfig holds default artifact settings.
type RenderConfig struct {
	Formats      []string `toml:"formats"`
	Scale        float64  `toml:"scale"`
	JunctionDots bool     `toml:"junction_dots"`
	RowLabels    bool     `toml:"row_labels"`
}

// ServeConfig holds server defaults for the serve command.
type ServeConfig struct {
	Addr          string `toml:"addr"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// LoadConfig reads the config file at path, or the default location when path
// is empty. A missing file is not an error; an unreadable or malformed file is.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns the XDG config location (~/.config/pedigraph/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Apply copies configured values onto pipeline options. Zero values are left
// alone so the pipeline's own defaults still apply.
func (c Config) Apply(opts *pipeline.Options) {
	if c.Layout.HorizontalSpacing > 0 {
		opts.HorizontalSpacing = c.Layout.HorizontalSpacing
	}
	if c.Layout.VerticalSpacing > 0 {
		opts.VerticalSpacing = c.Layout.VerticalSpacing
	}
	if c.Layout.NodeWidth > 0 {
		opts.NodeWidth = c.Layout.NodeWidth
	}
	if c.Layout.NodeHeight > 0 {
		opts.NodeHeight = c.Layout.NodeHeight
	}
	if c.Layout.SpouseGap > 0 {
		opts.SpouseGap = c.Layout.SpouseGap
	}
	if c.Layout.ChildOrder != "" {
		opts.ChildOrder = c.Layout.ChildOrder
	}
	if c.Layout.GenerationLabels {
		opts.ShowGenerationLabels = true
	}

	if len(c.Render.Formats) > 0 {
		opts.Formats = append([]string(nil), c.Render.Formats...)
	}
	if c.Render.Scale > 0 {
		opts.Scale = c.Render.Scale
	}
	if c.Render.JunctionDots {
		opts.JunctionDots = true
	}
	if c.Render.RowLabels {
		opts.RowLabels = true
	}
}

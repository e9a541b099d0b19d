package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pedigraph/pedigraph/pkg/pipeline"
)

func TestLoadConfig_MissingDefaultIsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Config{}) {
		t.Errorf("cfg = %+v, want zero", cfg)
	}
}

func TestLoadConfig_MissingExplicitPathFails(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig() accepted a missing explicit path")
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[layout\nbroken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() accepted malformed TOML")
	}
}

func TestLoadConfig_Values(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[layout]
horizontal_spacing = 48.0
node_width = 140.0
child_order = "birthdate"

[render]
formats = ["svg", "png"]
scale = 2.0
junction_dots = true

[serve]
addr = ":9090"
redis_addr = "redis:6379"
mongo_uri = "mongodb://db:27017"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Layout.HorizontalSpacing != 48 || cfg.Layout.NodeWidth != 140 {
		t.Errorf("layout config = %+v", cfg.Layout)
	}
	if cfg.Layout.ChildOrder != "birthdate" {
		t.Errorf("ChildOrder = %q", cfg.Layout.ChildOrder)
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Scale != 2 || !cfg.Render.JunctionDots {
		t.Errorf("render config = %+v", cfg.Render)
	}
	if cfg.Serve.Addr != ":9090" || cfg.Serve.RedisAddr != "redis:6379" {
		t.Errorf("serve config = %+v", cfg.Serve)
	}
}

func TestConfig_Apply(t *testing.T) {
	cfg := Config{
		Layout: LayoutConfig{NodeWidth: 150, ChildOrder: "birthdate"},
		Render: RenderConfig{Formats: []string{"png"}, Scale: 3},
	}

	var opts pipeline.Options
	cfg.Apply(&opts)

	if opts.NodeWidth != 150 {
		t.Errorf("NodeWidth = %v, want 150", opts.NodeWidth)
	}
	if opts.ChildOrder != "birthdate" {
		t.Errorf("ChildOrder = %q", opts.ChildOrder)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "png" {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Scale != 3 {
		t.Errorf("Scale = %v", opts.Scale)
	}
}

func TestConfig_ApplyLeavesZeroValuesAlone(t *testing.T) {
	opts := pipeline.Options{NodeWidth: 99}
	Config{}.Apply(&opts)
	if opts.NodeWidth != 99 {
		t.Errorf("NodeWidth = %v, want 99", opts.NodeWidth)
	}
	if opts.Formats != nil {
		t.Errorf("Formats = %v, want nil", opts.Formats)
	}
}

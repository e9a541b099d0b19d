package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pedigraph/pedigraph/pkg/graph"
)

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

// isolateEnv points the XDG directories at temp dirs so tests never touch
// the real user cache or config.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeTreeFile(t *testing.T, dir string) string {
	t.Helper()
	tree := graph.Tree{
		Name: "Test Family",
		Persons: []graph.Person{
			{ID: "a", Name: "Ada", Spouses: []string{"b"}},
			{ID: "b", Name: "Ben", Spouses: []string{"a"}},
			{ID: "c", Name: "Cal", Parents: []string{"a", "b"}},
		},
	}
	path := filepath.Join(dir, "family.json")
	if err := graph.WriteTreeFile(tree, path); err != nil {
		t.Fatalf("write tree file: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := newTestCLI()
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	c := newTestCLI()
	root := c.RootCommand()

	want := []string{"layout", "render", "export", "serve", "inspect", "cache", "completion"}
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeTreeFile(t, dir)

	if err := runCommand(t, "layout", input, "--no-cache"); err != nil {
		t.Fatalf("layout command error = %v", err)
	}

	out := filepath.Join(dir, "family.layout.json")
	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("read layout output: %v", err)
	}
	if len(l.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(l.Nodes))
	}
	if len(l.Junctions) != 1 {
		t.Errorf("junctions = %d, want 1", len(l.Junctions))
	}
}

func TestLayoutCommand_ExplicitOutput(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeTreeFile(t, dir)
	out := filepath.Join(dir, "custom.json")

	if err := runCommand(t, "layout", input, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("layout command error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestLayoutCommand_InvalidTree(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	tree := graph.Tree{Persons: []graph.Person{
		{ID: "a", Parents: []string{"ghost"}},
	}}
	if err := graph.WriteTreeFile(tree, path); err != nil {
		t.Fatalf("write tree file: %v", err)
	}

	if err := runCommand(t, "layout", path, "--no-cache"); err == nil {
		t.Error("layout accepted a tree with dangling references")
	}
}

func TestRenderCommand_SVG(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeTreeFile(t, dir)

	if err := runCommand(t, "render", input, "--no-cache"); err != nil {
		t.Fatalf("render command error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "family.svg"))
	if err != nil {
		t.Fatalf("read svg output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Error("output is not an SVG document")
	}
}

func TestRenderCommand_MultipleFormats(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeTreeFile(t, dir)

	if err := runCommand(t, "render", input, "-f", "svg,json", "--no-cache"); err != nil {
		t.Fatalf("render command error = %v", err)
	}
	for _, name := range []string{"family.svg", "family.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}

func TestRenderCommand_InvalidFormat(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeTreeFile(t, dir)

	if err := runCommand(t, "render", input, "-f", "gif"); err == nil {
		t.Error("render accepted an unsupported format")
	}
}

func TestExportCommand_DOT(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeTreeFile(t, dir)

	if err := runCommand(t, "export", input, "-f", "dot"); err != nil {
		t.Fatalf("export command error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "family.dot"))
	if err != nil {
		t.Fatalf("read dot output: %v", err)
	}
	if !bytes.Contains(data, []byte(`"a" -> "c"`)) {
		t.Error("dot output missing parent edge")
	}
}

func TestExportCommand_InvalidFormat(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeTreeFile(t, dir)

	if err := runCommand(t, "export", input, "-f", "png"); err == nil {
		t.Error("export accepted an unsupported format")
	}
}

func TestCachePathCommand(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != filepath.Join(cacheHome, appName) {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,json", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("", "tree.json", ".layout.json"); got != "tree.layout.json" {
		t.Errorf("outputPath derived = %q", got)
	}
	if got := outputPath("explicit.json", "tree.json", ".layout.json"); got != "explicit.json" {
		t.Errorf("outputPath explicit = %q", got)
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		format string
		multi  bool
		want   string
	}{
		{"", "tree.json", "svg", false, "tree.svg"},
		{"out.svg", "tree.json", "svg", false, "out.svg"},
		{"", "tree.json", "png", true, "tree.png"},
		{"base.svg", "tree.json", "png", true, "base.png"},
		{"base", "tree.json", "pdf", true, "base.pdf"},
	}
	for _, tt := range tests {
		if got := artifactPath(tt.output, tt.input, tt.format, tt.multi); got != tt.want {
			t.Errorf("artifactPath(%q, %q, %q, %v) = %q, want %q",
				tt.output, tt.input, tt.format, tt.multi, got, tt.want)
		}
	}
}

func TestLayoutCommand_RespectsConfigFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	configDir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	config := "[layout]\nnode_width = 200.0\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	dir := t.TempDir()
	input := writeTreeFile(t, dir)
	if err := runCommand(t, "layout", input, "--no-cache"); err != nil {
		t.Fatalf("layout command error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "family.layout.json"))
	if err != nil {
		t.Fatalf("read layout output: %v", err)
	}
	var l graph.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatalf("unmarshal layout: %v", err)
	}
	if len(l.Nodes) == 0 || l.Nodes[0].Width != 200 {
		t.Errorf("config node_width not applied, nodes = %+v", l.Nodes)
	}
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Output != "ReactPackageProvider.g.cs" {
		t.Errorf("expected default output 'ReactPackageProvider.g.cs', got %s", cfg.Output)
	}
	if cfg.Jobs != runtime.NumCPU() {
		t.Errorf("expected default jobs %d, got %d", runtime.NumCPU(), cfg.Jobs)
	}
	if !cfg.BuiltinReferences {
		t.Error("expected builtin references by default")
	}
	if cfg.AllowErrors {
		t.Error("expected allow_errors to default to false")
	}
	if cfg.Watch.Debounce != 300*time.Millisecond {
		t.Errorf("expected default debounce 300ms, got %s", cfg.Watch.Debounce)
	}
	if len(cfg.Sources) != 0 {
		t.Errorf("expected no default sources, got %v", cfg.Sources)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
sources: [obj/SampleApp.json]
references: [refs]
output: Generated/Provider.g.cs
namespace: SampleApp.Generated
jobs: 2
allow_errors: true
builtin_references: false
watch:
  debounce: 1s
`
	if err := os.WriteFile(filepath.Join(tmpDir, "modulegen.yml"), []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if !reflect.DeepEqual(cfg.Sources, []string{"obj/SampleApp.json"}) {
		t.Errorf("unexpected sources %v", cfg.Sources)
	}
	if !reflect.DeepEqual(cfg.References, []string{"refs"}) {
		t.Errorf("unexpected references %v", cfg.References)
	}
	if cfg.Output != "Generated/Provider.g.cs" {
		t.Errorf("expected output 'Generated/Provider.g.cs', got %s", cfg.Output)
	}
	if cfg.Namespace != "SampleApp.Generated" {
		t.Errorf("expected namespace 'SampleApp.Generated', got %s", cfg.Namespace)
	}
	if cfg.Jobs != 2 {
		t.Errorf("expected jobs 2, got %d", cfg.Jobs)
	}
	if !cfg.AllowErrors || cfg.BuiltinReferences {
		t.Errorf("expected boolean overrides, got allow_errors=%v builtin_references=%v", cfg.AllowErrors, cfg.BuiltinReferences)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %s", cfg.Watch.Debounce)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "modulegen.yaml"), []byte("namespace: FromFile\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MODULEGEN_NAMESPACE", "FromEnv")
	t.Setenv("MODULEGEN_ALLOW_ERRORS", "true")
	t.Setenv("MODULEGEN_WATCH_DEBOUNCE", "50ms")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Namespace != "FromEnv" {
		t.Errorf("expected environment to win, got %s", cfg.Namespace)
	}
	if !cfg.AllowErrors {
		t.Error("expected MODULEGEN_ALLOW_ERRORS to apply")
	}
	if cfg.Watch.Debounce != 50*time.Millisecond {
		t.Errorf("expected debounce 50ms, got %s", cfg.Watch.Debounce)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid namespace", "namespace: 1Sample\n"},
		{"trailing dot", "namespace: Sample.\n"},
		{"empty output", "output: \"\"\n"},
		{"negative jobs", "jobs: -1\n"},
		{"malformed yaml", "sources: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if err := os.WriteFile(filepath.Join(tmpDir, "modulegen.yml"), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(tmpDir); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "modulegen.yml")

	cfg := Default()
	cfg.Sources = []string{"obj/App.json"}
	cfg.Namespace = "App"
	cfg.Jobs = 4

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestValidNamespace(t *testing.T) {
	tests := []struct {
		ns   string
		want bool
	}{
		{"App", true},
		{"Sample.App_2", true},
		{"_Internal", true},
		{"", false},
		{"2App", false},
		{"App..Core", false},
		{"App-Core", false},
	}

	for _, tt := range tests {
		if got := ValidNamespace(tt.ns); got != tt.want {
			t.Errorf("ValidNamespace(%q) = %v, want %v", tt.ns, got, tt.want)
		}
	}
}

func TestGetProjectRoot(t *testing.T) {
	// Create nested directory structure
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	// Create project root with modulegen.yml
	os.WriteFile(filepath.Join(tmpDir, "modulegen.yml"), []byte(""), 0644)

	// Create nested subdirectory
	subDir := filepath.Join(tmpDir, "src", "deep", "nested")
	os.MkdirAll(subDir, 0755)
	os.Chdir(subDir)

	root, err := GetProjectRoot()
	if err != nil {
		t.Fatalf("expected to find project root, got error: %v", err)
	}

	// On macOS, /tmp is symlinked to /private/tmp, so resolve both paths
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedTmpDir, _ := filepath.EvalSymlinks(tmpDir)

	if resolvedRoot != resolvedTmpDir {
		t.Errorf("expected project root to be %s, got %s", resolvedTmpDir, resolvedRoot)
	}
}

func TestGetProjectRootNotInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if _, err := GetProjectRoot(); err == nil {
		t.Error("expected error when not in a project, got nil")
	}
}

func TestFindFile(t *testing.T) {
	tmpDir := t.TempDir()
	if got := FindFile(tmpDir); got != "" {
		t.Errorf("expected no config file, got %s", got)
	}

	path := filepath.Join(tmpDir, "modulegen.yaml")
	os.WriteFile(path, []byte(""), 0644)
	if got := FindFile(tmpDir); got != path {
		t.Errorf("expected %s, got %s", path, got)
	}
}

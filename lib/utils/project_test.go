package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectProjectFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{
			"toml config",
			"bundle.toml",
			"name = \"testing\"\nmain = \"src/index.ts\"\nminify = true\nexternal = [\"lodash\"]\n",
		},
		{
			"json config",
			"bundle.json",
			`{"name": "testing", "main": "src/index.ts", "minify": true, "external": ["lodash"]}`,
		},
		{
			"jsonc config",
			"bundle.jsonc",
			"{\n// deployment bundle\n\"name\": \"testing\", \"main\": \"src/index.ts\", \"minify\": true, \"external\": [\"lodash\"]\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			err := os.WriteFile(filepath.Join(dir, tt.filename), []byte(tt.content), 0644)
			if err != nil {
				t.Fatal(err)
			}

			config, err := DetectProjectFile(&dir)
			if err != nil {
				t.Fatalf("expected config, got error: %v", err)
			}

			if config.Name != "testing" {
				t.Errorf("Name = %q, want %q", config.Name, "testing")
			}
			if config.Main != "src/index.ts" {
				t.Errorf("Main = %q, want %q", config.Main, "src/index.ts")
			}
			if !config.Minify {
				t.Error("expected Minify to be true")
			}
			if len(config.External) != 1 || config.External[0] != "lodash" {
				t.Errorf("External = %v, want [lodash]", config.External)
			}
		})
	}
}

func TestDetectProjectFileMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := DetectProjectFile(&dir)
	if err == nil {
		t.Fatal("expected an error when no config file exists")
	}
	if !IsConfigError(err) {
		t.Errorf("expected a ConfigError, got %T", err)
	}
}

func TestDetectProjectFileWithoutMain(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "bundle.json"), []byte(`{"name": "testing"}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	_, err = DetectProjectFile(&dir)
	if err == nil {
		t.Fatal("expected an error when main is missing")
	}
	if !IsConfigError(err) {
		t.Errorf("expected a ConfigError, got %T", err)
	}
}

func TestDetectProjectFileBroken(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "bundle.toml"), []byte("main = [broken"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	_, err = DetectProjectFile(&dir)
	if err == nil {
		t.Fatal("expected an error for a broken config file")
	}
	if !IsConfigError(err) {
		t.Errorf("expected a ConfigError, got %T", err)
	}
}

package utils

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
)

// ProjectConfig is the parsed bundle.toml / bundle.json / bundle.jsonc
// file found at the project root.
type ProjectConfig struct {
	Name        string            `json:"name" toml:"name"`
	Main        string            `json:"main" toml:"main"`
	OutDir      string            `json:"out_dir" toml:"out_dir"`
	BuildScript string            `json:"build_script" toml:"build_script"`
	Minify      bool              `json:"minify" toml:"minify"`
	Sourcemap   bool              `json:"sourcemap" toml:"sourcemap"`
	External    []string          `json:"external" toml:"external"`
	Define      map[string]string `json:"define" toml:"define"`
	Assets      *AssetsConfig     `json:"assets" toml:"assets"`
}

type AssetsConfig struct {
	Directory string `json:"directory" toml:"directory"`
}

func DetectProjectFile(root *string) (*ProjectConfig, error) {
	rootDir := ""
	if root != nil {
		rootDir = *root
	}

	paths := []string{rootDir + "/bundle.toml", rootDir + "/bundle.json", rootDir + "/bundle.jsonc"}

	content := ""
	usedPath := ""

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}

		usedPath = path
		content = string(data)
	}

	if content == "" || usedPath == "" {
		return nil, Configf("no bundle configuration file found in %s", rootDir)
	}

	config := &ProjectConfig{}
	switch filepath.Ext(usedPath) {
	case ".json", ".jsonc":
		err := json.Unmarshal(jsonc.ToJSON([]byte(content)), config)
		if err != nil {
			return nil, Configf("could not parse %s: %v", usedPath, err)
		}
	case ".toml":
		err := toml.Unmarshal([]byte(content), config)
		if err != nil {
			return nil, Configf("could not parse %s: %v", usedPath, err)
		}
	default:
		return nil, Configf("invalid bundle configuration file %s", usedPath)
	}

	if config.Main == "" {
		return nil, Configf("%s is missing the `main` entrypoint", usedPath)
	}

	return config, nil
}

package bundler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"micromachine.dev/bundle-utils/lib/utils"
)

type Bundle struct {
	RootDir        string
	PackageManager string
	Environment    string
	Project        *utils.ProjectConfig
	Plugins        []api.Plugin
}

// Pack bundles the project entrypoint into the output directory and
// copies static assets when the project config names an asset
// directory.
func (b *Bundle) Pack() error {
	absDir, err := filepath.Abs(b.RootDir)
	if err != nil {
		slog.Error(fmt.Sprintf("✗ %v", err))
		return fmt.Errorf("could not resolve absolute path: %w", err)
	}

	err = os.MkdirAll(filepath.Join(absDir, b.GetOutputDir()), 0755)

	if err != nil {
		slog.Error(fmt.Sprintf("✗ %v", err))
		return fmt.Errorf("could not create output directory: %w", err)
	}

	start := time.Now()
	utils.LogWithColor(utils.Cyan, "Bundling application...")

	sourcemap := api.SourceMapNone
	if b.Project.Sourcemap {
		sourcemap = api.SourceMapLinked
	}

	define := map[string]string{
		"process.env.NODE_ENV": toJSString(b.Environment),
	}
	for key, value := range b.Project.Define {
		define[key] = toJSString(value)
	}

	result := api.Build(api.BuildOptions{
		Plugins:        b.Plugins,
		EntryPoints:    []string{b.Project.Main},
		Outdir:         b.GetModuleDir(),
		AbsWorkingDir:  absDir,
		Bundle:         true,
		Write:          true,
		AllowOverwrite: true,
		Splitting:      true,
		Format:         api.FormatESModule,
		Platform:       api.PlatformNeutral,
		TreeShaking:    api.TreeShakingTrue,
		Loader:         map[string]api.Loader{".js": api.LoaderJSX, ".mjs": api.LoaderJSX, ".cjs": api.LoaderJSX},

		Target:            api.ESNext,
		MinifyWhitespace:  b.Project.Minify,
		MinifyIdentifiers: b.Project.Minify,
		MinifySyntax:      b.Project.Minify,
		KeepNames:         true,
		Sourcemap:         sourcemap,
		Define:            define,
	})

	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			slog.Error(fmt.Sprintf("✗ %v", msg.Text))
		}

		return fmt.Errorf("bundle failed with %d error(s)", len(result.Errors))
	}

	elapsed := time.Since(start)
	utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Bundling completed in %s", elapsed))

	return b.copyAssets(absDir)
}

func (b *Bundle) copyAssets(absDir string) error {
	if b.Project.Assets == nil || b.Project.Assets.Directory == "" {
		return nil
	}

	dir := filepath.Join(absDir, b.Project.Assets.Directory)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		slog.Error(fmt.Sprintf("✗ %v", err))
		return fmt.Errorf("could not stat assets directory: %w", err)
	}

	now := time.Now()
	utils.LogWithColor(utils.Default, "Copying assets...")

	modulePathDir := filepath.Join(absDir, filepath.Dir(b.Project.Main))
	err := copyDir(dir, b.GetAssetDir(), []string{modulePathDir})
	if err != nil {
		slog.Error(fmt.Sprintf("✗ %v", err))
		return fmt.Errorf("could not copy assets: %w", err)
	}

	elapsed := time.Since(now)
	utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Assets copied in %s", elapsed))
	return nil
}

// RunBuildScript runs the project's own build script through the
// detected package manager before bundling. A project without a
// build_script skips this step.
func (b *Bundle) RunBuildScript() error {
	if b.Project.BuildScript == "" {
		return nil
	}

	cmdName := b.PackageManager + " run " + b.Project.BuildScript

	start := time.Now()
	utils.LogWithColor(utils.Default, fmt.Sprintf("Running `%s`...", cmdName))
	err := b.RunCommand(b.PackageManager, "run", b.Project.BuildScript)

	if err != nil {
		slog.Error(fmt.Sprintf("✗ %v", err))
		return fmt.Errorf("build command failed: %w", err)
	}

	elapsed := time.Since(start)
	utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Completed `%s` in %s", cmdName, elapsed))
	return nil
}

func (b *Bundle) RunCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = b.RootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (b *Bundle) GetOutputDir() string {
	if b.Project != nil && b.Project.OutDir != "" {
		return b.Project.OutDir
	}
	return "./.mmbundle"
}

func (b *Bundle) GetModuleDir() string {
	return filepath.Join(b.GetOutputDir(), "/module")
}

func (b *Bundle) GetAssetDir() string {
	return filepath.Join(b.RootDir, b.GetOutputDir(), "assets")
}

func copyDir(src, dst string, ignorePath []string) error {

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, path)
		target := filepath.Join(dst, rel)

		for _, p := range ignorePath {
			pathRel, err := filepath.Rel(src, p)
			if err != nil {
				continue
			}

			if strings.HasPrefix(rel, pathRel) {
				return nil
			}
		}

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		info, _ := d.Info()
		return os.WriteFile(target, data, info.Mode())
	})
}

func toJSString(val string) string {
	if val == "" {
		return `""`
	}
	// JSON marshal handles escaping
	b, _ := json.Marshal(val)
	return string(b)
}

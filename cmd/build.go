package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"micromachine.dev/bundle-utils/lib/bundler"
	"micromachine.dev/bundle-utils/lib/contrib"
	"micromachine.dev/bundle-utils/lib/utils"
)

var rootDir string
var buildEnv string

// contributions supply optional bundler features: each one registers
// its flags here and hands a configured esbuild plugin to the build.
var contributions = contrib.NewRegistry(
	contrib.NewAliasContribution(contrib.DefaultConfig()),
	contrib.NewExternalContribution(contrib.DefaultConfig(), ".wasm", ".bin", ".html", ".txt"),
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bundles the code for deployment",
	Long: `The build command automates the preparation of your application for deployment.
It performs the following steps:
1. Detects the project's package manager (Bun, PNPM, Yarn or NPM).
2. Locates and parses the bundle configuration file (toml, json, or jsonc).
3. Executes the project's build script, when one is configured.
4. Bundles the entrypoint with esbuild, applying alias and external settings.`,
	Run: func(cmd *cobra.Command, args []string) {
		packageManager, err := utils.DetectPackageManager(&rootDir)

		if err != nil {
			fail(err)
		}

		project, err := utils.DetectProjectFile(&rootDir)

		if err != nil {
			fail(err)
		}

		buildConfig := &contrib.BuildConfig{Externals: project.External}

		if err := contributions.VerifyFlags(cmd.Flags(), buildConfig); err != nil {
			fail(err)
		}

		plugins, err := contributions.CollectPlugins(buildConfig)

		if err != nil {
			fail(err)
		}

		b := bundler.Bundle{
			RootDir:        rootDir,
			PackageManager: *packageManager,
			Environment:    buildEnv,
			Project:        project,
			Plugins:        plugins,
		}

		start := time.Now()
		utils.LogWithColor(utils.Cyan, "Running `mmbundle build`...")

		if err := b.RunBuildScript(); err != nil {
			fail(err)
		}

		if err := b.Pack(); err != nil {
			fail(err)
		}

		elapsed := time.Since(start)
		utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Completed `mmbundle build` in %s", elapsed))
	},
}

// fail reports the error and exits. Configuration mistakes print as
// plain usage problems; everything else goes through slog as an
// internal failure.
func fail(err error) {
	if utils.IsConfigError(err) {
		utils.LogWithColor(utils.Fail, fmt.Sprintf("✗ %v", err))
		os.Exit(2)
	}

	slog.Error(fmt.Sprintf("✗ %v", err))
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.PersistentFlags().StringVarP(&rootDir, "rootdir", "r", ".", "--rootdir ./apps/hello-world")
	buildCmd.PersistentFlags().StringVarP(&buildEnv, "env", "e", "production", "--e production")

	contributions.RegisterFlags(buildCmd.Flags())
}

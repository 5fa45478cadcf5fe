package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mmbundle",
	Short: "Bundles web projects for deployment",
	Long: `mmbundle prepares a JavaScript or TypeScript project for deployment.
It reads the bundle configuration file at the project root, runs the
project's own build script, and bundles the entrypoint with esbuild.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

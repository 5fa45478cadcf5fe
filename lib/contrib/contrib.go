// Package contrib wires optional bundler features into the CLI. A
// contribution can register flags, verify them after parsing, and hand
// a configured esbuild plugin to the build pipeline.
package contrib

import (
	"os"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/pflag"
	"micromachine.dev/bundle-utils/lib/alias"
)

// Config carries the process-wide settings contributions need, instead
// of having them read ambient state. EnvPrefix names the variable
// family used for flag defaults (`<EnvPrefix>_ALIAS` and friends).
type Config struct {
	EnvPrefix string
	LookupEnv func(string) (string, bool)
}

func DefaultConfig() Config {
	return Config{
		EnvPrefix: "MMBUNDLE",
		LookupEnv: os.LookupEnv,
	}
}

// EnvName returns the environment variable backing a flag default.
func (c Config) EnvName(suffix string) string {
	return c.EnvPrefix + "_" + suffix
}

// BuildConfig holds the verified per-invocation settings. Verifiers
// replace raw flag values with their resolved form here.
type BuildConfig struct {
	Aliases   alias.Config
	Externals []string
}

// FlagContribution registers flags and verifies them once parsing is
// done. VerifyFlags writes resolved values into the BuildConfig and
// returns a ConfigError for anything the user got wrong.
type FlagContribution interface {
	RegisterFlags(fs *pflag.FlagSet)
	VerifyFlags(fs *pflag.FlagSet, build *BuildConfig) error
}

// PluginContribution turns verified configuration into an esbuild
// plugin. A nil plugin means the feature is unused for this build.
type PluginContribution interface {
	BuildPlugin(build *BuildConfig) (*api.Plugin, error)
}

// Registry holds the contributions in registration order.
type Registry struct {
	flags   []FlagContribution
	plugins []PluginContribution
}

func NewRegistry(contributions ...any) *Registry {
	r := &Registry{}
	for _, c := range contributions {
		r.Add(c)
	}
	return r
}

func (r *Registry) Add(contribution any) {
	if fc, ok := contribution.(FlagContribution); ok {
		r.flags = append(r.flags, fc)
	}
	if pc, ok := contribution.(PluginContribution); ok {
		r.plugins = append(r.plugins, pc)
	}
}

func (r *Registry) RegisterFlags(fs *pflag.FlagSet) {
	for _, c := range r.flags {
		c.RegisterFlags(fs)
	}
}

func (r *Registry) VerifyFlags(fs *pflag.FlagSet, build *BuildConfig) error {
	for _, c := range r.flags {
		if err := c.VerifyFlags(fs, build); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) CollectPlugins(build *BuildConfig) ([]api.Plugin, error) {
	plugins := make([]api.Plugin, 0, len(r.plugins))
	for _, c := range r.plugins {
		plugin, err := c.BuildPlugin(build)
		if err != nil {
			return nil, err
		}
		if plugin != nil {
			plugins = append(plugins, *plugin)
		}
	}
	return plugins, nil
}

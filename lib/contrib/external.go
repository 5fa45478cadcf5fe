package contrib

import (
	"path/filepath"
	"slices"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/pflag"
	"micromachine.dev/bundle-utils/lib/utils"
)

// ExternalContribution owns the --external flag: imports named there
// are kept out of the bundle. Asset extensions passed at construction
// are always external. `<EnvPrefix>_EXTERNAL` supplies the default
// when the flag is not given.
type ExternalContribution struct {
	config     Config
	extensions []string
	values     []string
}

func NewExternalContribution(config Config, extensions ...string) *ExternalContribution {
	return &ExternalContribution{config: config, extensions: extensions}
}

func (c *ExternalContribution) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringArrayVar(&c.values, "external", nil,
		"keep an import out of the bundle (repeatable)")
}

func (c *ExternalContribution) VerifyFlags(fs *pflag.FlagSet, build *BuildConfig) error {
	raw := c.values

	if !fs.Changed("external") {
		name := c.config.EnvName("EXTERNAL")
		value, ok := c.config.LookupEnv(name)
		if !ok {
			return nil
		}

		var err error
		raw, err = utils.EnvStringList(name, value)
		if err != nil {
			return err
		}
	}

	for _, specifier := range raw {
		if specifier == "" {
			return utils.Configf("--external entries must not be empty")
		}
		if !slices.Contains(build.Externals, specifier) {
			build.Externals = append(build.Externals, specifier)
		}
	}

	return nil
}

func (c *ExternalContribution) BuildPlugin(build *BuildConfig) (*api.Plugin, error) {
	if len(build.Externals) == 0 && len(c.extensions) == 0 {
		return nil, nil
	}

	specifiers := make(map[string]struct{}, len(build.Externals))
	for _, s := range build.Externals {
		specifiers[s] = struct{}{}
	}

	plugin := api.Plugin{
		Name: "external-modules",
		Setup: func(pb api.PluginBuild) {
			pb.OnResolve(api.OnResolveOptions{Filter: ".*"}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				if _, ok := specifiers[args.Path]; ok {
					return api.OnResolveResult{Path: args.Path, External: true}, nil
				}

				if slices.Contains(c.extensions, filepath.Ext(args.Path)) {
					return api.OnResolveResult{Path: args.Path, External: true}, nil
				}

				return api.OnResolveResult{}, nil
			})
		},
	}

	return &plugin, nil
}

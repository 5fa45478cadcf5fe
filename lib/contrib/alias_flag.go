package contrib

import (
	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/pflag"
	"micromachine.dev/bundle-utils/lib/alias"
	"micromachine.dev/bundle-utils/lib/utils"
)

// AliasContribution owns the --alias flag. Values given on the command
// line win; otherwise `<EnvPrefix>_ALIAS` (a JSON array of strings)
// supplies the default; otherwise aliasing stays off.
type AliasContribution struct {
	config Config
	values []string
}

func NewAliasContribution(config Config) *AliasContribution {
	return &AliasContribution{config: config}
}

func (c *AliasContribution) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&c.values, "alias", "a", nil,
		"rewrite an import specifier, find=replacement (repeatable)")
}

func (c *AliasContribution) VerifyFlags(fs *pflag.FlagSet, build *BuildConfig) error {
	raw := c.values

	if !fs.Changed("alias") {
		name := c.config.EnvName("ALIAS")
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

	config, err := alias.Validate(raw)
	if err != nil {
		return err
	}

	build.Aliases = config
	return nil
}

func (c *AliasContribution) BuildPlugin(build *BuildConfig) (*api.Plugin, error) {
	if len(build.Aliases) == 0 {
		return nil, nil
	}

	plugin := alias.Plugin(build.Aliases)
	return &plugin, nil
}

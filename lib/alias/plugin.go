package alias

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Plugin returns an esbuild plugin that rewrites aliased import
// specifiers before module resolution. The replacement is re-resolved
// through the build's own resolver, from the importer's directory, so
// it may be a package name, a relative path or an absolute path.
func Plugin(config Config) api.Plugin {
	replacements := make(map[string]string, len(config))
	keys := make([]string, 0, len(config))

	for _, entry := range config {
		replacements[entry.Find] = entry.Replacement
		keys = append(keys, regexp.QuoteMeta(entry.Find))
	}

	filter := fmt.Sprintf(`^(%s)$`, strings.Join(keys, "|"))

	return api.Plugin{
		Name: "alias",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: filter}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				replacement, ok := replacements[args.Path]
				if !ok {
					return api.OnResolveResult{}, nil
				}

				// Resolving through the plugin itself would loop.
				if args.PluginData == pluginSelf {
					return api.OnResolveResult{}, nil
				}

				result := build.Resolve(replacement, api.ResolveOptions{
					Kind:       args.Kind,
					Importer:   args.Importer,
					ResolveDir: args.ResolveDir,
					PluginData: pluginSelf,
				})

				if len(result.Errors) > 0 {
					return api.OnResolveResult{Errors: result.Errors}, nil
				}

				return api.OnResolveResult{
					Path:      result.Path,
					Namespace: result.Namespace,
					External:  result.External,
				}, nil
			})
		},
	}
}

type pluginDataKey struct{}

var pluginSelf any = pluginDataKey{}

package contrib

import (
	"reflect"
	"testing"

	"github.com/spf13/pflag"
	"micromachine.dev/bundle-utils/lib/utils"
)

func verifyExternal(t *testing.T, contribution *ExternalContribution, args []string, build *BuildConfig) error {
	t.Helper()

	fs := pflag.NewFlagSet("build", pflag.ContinueOnError)
	contribution.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}

	return contribution.VerifyFlags(fs, build)
}

func TestExternalFlagMergesWithProjectConfig(t *testing.T) {
	contribution := NewExternalContribution(testConfig(nil))

	build := &BuildConfig{Externals: []string{"lodash"}}
	err := verifyExternal(t, contribution, []string{"--external", "react", "--external", "lodash"}, build)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"lodash", "react"}
	if !reflect.DeepEqual(build.Externals, want) {
		t.Errorf("Externals = %v, want %v", build.Externals, want)
	}
}

func TestExternalEnvDefault(t *testing.T) {
	contribution := NewExternalContribution(testConfig(map[string]string{
		"MMBUNDLE_EXTERNAL": `["react"]`,
	}))

	build := &BuildConfig{}
	err := verifyExternal(t, contribution, nil, build)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"react"}
	if !reflect.DeepEqual(build.Externals, want) {
		t.Errorf("Externals = %v, want %v", build.Externals, want)
	}
}

func TestExternalRejectsEmptyEntries(t *testing.T) {
	contribution := NewExternalContribution(testConfig(nil))

	build := &BuildConfig{}
	err := verifyExternal(t, contribution, []string{"--external", ""}, build)
	if err == nil {
		t.Fatal("expected an error for an empty entry")
	}
	if !utils.IsConfigError(err) {
		t.Errorf("expected a ConfigError, got %T", err)
	}
}

func TestExternalPluginOnlyWhenConfigured(t *testing.T) {
	contribution := NewExternalContribution(testConfig(nil))

	plugin, err := contribution.BuildPlugin(&BuildConfig{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if plugin != nil {
		t.Error("expected no plugin without externals or extensions")
	}

	plugin, err = contribution.BuildPlugin(&BuildConfig{Externals: []string{"react"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if plugin == nil {
		t.Fatal("expected a plugin")
	}
	if plugin.Name != "external-modules" {
		t.Errorf("plugin name = %q, want %q", plugin.Name, "external-modules")
	}
}

func TestRegistryCollectsPlugins(t *testing.T) {
	registry := NewRegistry(
		NewAliasContribution(testConfig(nil)),
		NewExternalContribution(testConfig(nil), ".wasm"),
	)

	build := &BuildConfig{}
	fs := pflag.NewFlagSet("build", pflag.ContinueOnError)
	registry.RegisterFlags(fs)

	if fs.Lookup("alias") == nil || fs.Lookup("external") == nil {
		t.Fatal("registry did not register contribution flags")
	}

	if err := fs.Parse([]string{"--alias", "a=b"}); err != nil {
		t.Fatal(err)
	}

	if err := registry.VerifyFlags(fs, build); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	plugins, err := registry.CollectPlugins(build)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// alias plugin plus the extension-driven external plugin
	if len(plugins) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(plugins))
	}
	if plugins[0].Name != "alias" {
		t.Errorf("first plugin = %q, want %q", plugins[0].Name, "alias")
	}
}

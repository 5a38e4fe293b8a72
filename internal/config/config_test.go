package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autonixdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
input: ./lib
output: ./doc
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StrategyAuto, cfg.Loader.Strategy)
	assert.Equal(t, []string{".nix"}, cfg.Loader.Extensions)
	assert.Equal(t, DefaultNixdocBinary, cfg.Nixdoc.Binary)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("DOCS_OUT", "/srv/docs")
	path := writeConfig(t, `
input: ./lib
output: ${DOCS_OUT}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/docs", cfg.Output)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsMappedWithoutEntries(t *testing.T) {
	path := writeConfig(t, `
input: ./lib
output: ./doc
loader:
  strategy: mapped
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	path := writeConfig(t, `
input: ./lib
output: ./doc
loader:
  strategy: clever
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateRejectsBadExtension(t *testing.T) {
	path := writeConfig(t, `
input: ./lib
output: ./doc
loader:
  extensions: ["nix"]
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateRejectsBadDebounce(t *testing.T) {
	path := writeConfig(t, `
input: ./lib
output: ./doc
watch:
  debounce: soon
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateRejectsEventsWithoutURL(t *testing.T) {
	path := writeConfig(t, `
input: ./lib
output: ./doc
events:
  enabled: true
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMappedStrategy(t *testing.T) {
	path := writeConfig(t, `
input: ./lib
output: ./doc
loader:
  strategy: mapped
  mappings:
    - source: lib/special.nix
      destination: doc/custom.md
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Loader.Mappings, 1)
	assert.Equal(t, "lib/special.nix", cfg.Loader.Mappings[0].Source)
	assert.Equal(t, "doc/custom.md", cfg.Loader.Mappings[0].Destination)
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default("./lib", "./doc")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "./lib", cfg.Input)
	assert.Equal(t, "./doc", cfg.Output)
	assert.Equal(t, StrategyAuto, cfg.Loader.Strategy)
}

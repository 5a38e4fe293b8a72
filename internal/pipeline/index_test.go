package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIndexListsRenderedInCatalogOrder(t *testing.T) {
	cfg := testConfig(t)
	writeSources(t, cfg.Input, "alpha.nix", "beta.nix", "gamma.nix")
	cfg.Index.Enabled = true
	cfg.Index.Title = "Test library"

	fake := &fakeRenderer{
		skip: map[string]bool{"beta.nix": true},
		output: func(source string) []byte {
			base := strings.TrimSuffix(filepath.Base(source), ".nix")
			return []byte("# Module " + base + "\n\nContents.\n")
		},
	}
	p := newTestPipeline(t, cfg, fake)

	rep := p.Run(context.Background())
	require.Nil(t, rep.Fatal)
	require.NotEmpty(t, rep.IndexPath)

	content, err := os.ReadFile(rep.IndexPath)
	require.NoError(t, err)
	index := string(content)

	assert.True(t, strings.HasPrefix(index, "# Test library\n"))
	assert.Contains(t, index, "- [Module alpha](alpha.md)")
	assert.Contains(t, index, "- [Module gamma](gamma.md)")
	assert.NotContains(t, index, "beta", "skipped modules do not appear in the index")
	assert.Less(t, strings.Index(index, "alpha"), strings.Index(index, "gamma"))
}

func TestWriteIndexDisabledByDefault(t *testing.T) {
	cfg := testConfig(t)
	writeSources(t, cfg.Input, "a.nix")

	p := newTestPipeline(t, cfg, &fakeRenderer{})
	rep := p.Run(context.Background())

	assert.Empty(t, rep.IndexPath)
	_, err := os.Stat(filepath.Join(cfg.Output, "index.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteIndexFallbackTitle(t *testing.T) {
	cfg := testConfig(t)
	writeSources(t, cfg.Input, "untitled.nix")
	cfg.Index.Enabled = true

	// Rendered output without a heading falls back to the file stem.
	fake := &fakeRenderer{output: func(string) []byte {
		return []byte("plain text, no heading\n")
	}}
	p := newTestPipeline(t, cfg, fake)

	rep := p.Run(context.Background())
	require.NotEmpty(t, rep.IndexPath)

	content, err := os.ReadFile(rep.IndexPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "- [untitled](untitled.md)")
}

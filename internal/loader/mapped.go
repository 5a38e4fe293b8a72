package loader

import (
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/autonixdoc/internal/config"
)

// ConfigMappedLoader resolves sources against an ordered list of explicit
// mapping entries. The first matching entry wins; matching is deliberately
// order-sensitive rather than best-match so behavior stays predictable.
// Sources without a matching entry have no mapping and are silently excluded
// from the run, since explicit mapping is opt-in per file.
type ConfigMappedLoader struct {
	sourceRoot string
	entries    []config.MappingEntry
}

// NewConfigMappedLoader creates a loader over the given entries. Entry source
// patterns are matched against the path as emitted by the catalog and against
// its form relative to sourceRoot; glob patterns are supported.
func NewConfigMappedLoader(sourceRoot string, entries []config.MappingEntry) *ConfigMappedLoader {
	return &ConfigMappedLoader{
		sourceRoot: filepath.Clean(sourceRoot),
		entries:    entries,
	}
}

// Resolve returns the destination of the first entry matching source.
func (l *ConfigMappedLoader) Resolve(source string) (string, bool) {
	candidates := []string{filepath.ToSlash(source)}
	if rel, err := filepath.Rel(l.sourceRoot, source); err == nil && !strings.HasPrefix(rel, "..") {
		candidates = append(candidates, filepath.ToSlash(rel))
	}

	for _, e := range l.entries {
		pat := filepath.ToSlash(e.Source)
		for _, c := range candidates {
			if c == pat {
				return e.Destination, true
			}
			if ok, _ := path.Match(pat, c); ok {
				return e.Destination, true
			}
		}
	}
	return "", false
}

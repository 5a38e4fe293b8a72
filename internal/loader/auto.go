package loader

import (
	"path/filepath"
	"strings"
)

// docExtension is the extension of generated documentation files.
const docExtension = ".md"

// AutoLoader mirrors the source tree into the destination tree: the source
// root prefix is substituted with the destination root and the file extension
// is rewritten to ".md". This is the zero-configuration default strategy.
type AutoLoader struct {
	sourceRoot string
	destRoot   string
	extensions map[string]struct{}
}

// NewAutoLoader creates an AutoLoader documenting files whose extension is in
// extensions (e.g. [".nix"]).
func NewAutoLoader(sourceRoot, destRoot string, extensions []string) *AutoLoader {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[ext] = struct{}{}
	}
	return &AutoLoader{
		sourceRoot: filepath.Clean(sourceRoot),
		destRoot:   filepath.Clean(destRoot),
		extensions: set,
	}
}

// Resolve maps sourceRoot/a/b.nix to destRoot/a/b.md. Sources with an
// undocumentable extension, or outside the source root, have no mapping.
func (l *AutoLoader) Resolve(source string) (string, bool) {
	if _, ok := l.extensions[filepath.Ext(source)]; !ok {
		return "", false
	}

	rel, err := filepath.Rel(l.sourceRoot, source)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}

	stem := strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(l.destRoot, stem+docExtension), true
}

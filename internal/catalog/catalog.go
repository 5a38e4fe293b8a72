// Package catalog enumerates candidate source files under a root directory.
package catalog

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	apperrors "git.home.luguber.info/inful/autonixdoc/internal/errors"
	"git.home.luguber.info/inful/autonixdoc/internal/logfields"
)

// Warning records a non-fatal problem encountered during enumeration,
// typically an unreadable subdirectory. Traversal continues past it.
type Warning struct {
	Path   string
	Reason string
}

// Enumerate walks root and returns the candidate source paths in lexical
// order. The ordering is deterministic so repeated runs over an unchanged
// tree produce identical catalogs.
//
// Include and exclude patterns are matched against the root-relative
// slash-separated path and against the file's base name. A path matching any
// exclude pattern is never returned, even when it also matches an include
// pattern. An empty include list admits every file.
//
// An unreadable root is fatal; unreadable subdirectories are reported as
// warnings and their siblings are still traversed.
func Enumerate(root string, include, exclude []string) ([]string, []Warning, error) {
	if _, err := os.ReadDir(root); err != nil {
		return nil, nil, apperrors.UnreadableRoot(root, err)
	}

	var (
		candidates []string
		warnings   []Warning
	)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			slog.Warn("Skipping unreadable path", slog.String("path", p), logfields.Error(err))
			warnings = append(warnings, Warning{Path: p, Reason: err.Error()})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(exclude, rel) {
			return nil
		}
		if len(include) > 0 && !matchesAny(include, rel) {
			return nil
		}

		candidates = append(candidates, p)
		return nil
	})
	if err != nil {
		return nil, warnings, apperrors.UnreadableRoot(root, err)
	}

	return candidates, warnings, nil
}

// matchesAny reports whether rel (a slash-separated root-relative path)
// matches any of the given glob patterns, either as a full path or by its
// base name.
func matchesAny(patterns []string, rel string) bool {
	base := path.Base(rel)
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if !strings.Contains(pat, "/") {
			if ok, _ := path.Match(pat, base); ok {
				return true
			}
		}
	}
	return false
}

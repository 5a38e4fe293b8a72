package nixdoc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Category derives the documentation category for a source file from its
// position in the input tree: path components relative to the input root are
// joined with dots and the file stem appended, so "utils/string/helpers.nix"
// under root becomes "utils.string.helpers".
func Category(inputRoot, source string) (string, error) {
	rel, err := filepath.Rel(inputRoot, source)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("source path %s is not within input directory %s", source, inputRoot)
	}

	stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	if stem == "" {
		return "", fmt.Errorf("source path %s has no file name", source)
	}

	dir := filepath.Dir(rel)
	if dir == "." {
		return stem, nil
	}

	parts := strings.Split(filepath.ToSlash(dir), "/")
	return strings.Join(append(parts, stem), "."), nil
}

// Description extracts the module description passed to nixdoc: the second
// line of the source file. Missing lines yield an empty description.
//
// TODO: make the extraction strategy configurable (first doc comment block
// instead of a fixed line).
func Description(source string) (string, error) {
	f, err := os.Open(source)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if line == 2 {
			return scanner.Text(), nil
		}
	}
	return "", scanner.Err()
}

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/autonixdoc/internal/config"
	"git.home.luguber.info/inful/autonixdoc/internal/markdown"
	"git.home.luguber.info/inful/autonixdoc/internal/report"
)

// WriteIndex produces the aggregate index artifact: one link per successfully
// rendered destination, in catalog order. Gated by configuration; not part of
// the per-file contract.
func WriteIndex(cfg *config.Config, rep *report.RunReport) (string, error) {
	indexPath := cfg.Index.Path
	if indexPath == "" {
		indexPath = filepath.Join(cfg.Output, "index.md")
	}
	indexDir := filepath.Dir(indexPath)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cfg.Index.Title)

	for i := range rep.Entries {
		e := &rep.Entries[i]
		if e.Status != report.StatusRendered {
			continue
		}
		dest := e.Mapping.Destination

		title := ""
		if content, err := os.ReadFile(dest); err == nil {
			title = markdown.ExtractTitle(content)
		}
		if title == "" {
			base := filepath.Base(dest)
			title = strings.TrimSuffix(base, filepath.Ext(base))
		}

		link := dest
		if rel, err := filepath.Rel(indexDir, dest); err == nil {
			link = rel
		}
		fmt.Fprintf(&b, "- [%s](%s)\n", title, filepath.ToSlash(link))
	}

	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(indexPath, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return indexPath, nil
}

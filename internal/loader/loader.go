// Package loader maps candidate source paths to destination documentation
// paths. Strategies are a small closed set, selected by configuration.
package loader

import (
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/autonixdoc/internal/config"
	apperrors "git.home.luguber.info/inful/autonixdoc/internal/errors"
)

// Loader resolves a source path to its destination documentation path.
//
// Resolve must be pure with respect to filesystem state: it never creates
// directories or files and returns the same result for the same input. A
// source the strategy declines to document yields ok=false; this is the
// "no mapping" outcome, distinct from an error.
type Loader interface {
	Resolve(source string) (dest string, ok bool)
}

// Mapping is a resolved (source, destination) pair for one module.
type Mapping struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// FromConfig constructs the configured Loader variant.
func FromConfig(cfg *config.Config) (Loader, error) {
	switch cfg.Loader.Strategy {
	case config.StrategyAuto:
		return NewAutoLoader(cfg.Input, cfg.Output, cfg.Loader.Extensions), nil
	case config.StrategyMapped:
		return NewConfigMappedLoader(cfg.Input, cfg.Loader.Mappings), nil
	default:
		return nil, apperrors.ValidationFailed("loader.strategy", "unknown strategy: "+string(cfg.Loader.Strategy))
	}
}

// ResolveAll resolves the full catalog up front and rejects configurations
// where two distinct sources collide on one destination. The check runs once
// over the whole catalog before any rendering so a configuration mistake
// cannot partially corrupt the output tree.
func ResolveAll(l Loader, sources []string) ([]Mapping, error) {
	mappings := make([]Mapping, 0, len(sources))
	byDest := make(map[string][]string)

	for _, src := range sources {
		dest, ok := l.Resolve(src)
		if !ok {
			continue
		}
		key := filepath.Clean(dest)
		byDest[key] = append(byDest[key], src)
		mappings = append(mappings, Mapping{Source: src, Destination: dest})
	}

	for dest, srcs := range byDest {
		if len(srcs) > 1 {
			sort.Strings(srcs)
			return nil, apperrors.DestinationCollision(dest, srcs)
		}
	}

	return mappings, nil
}

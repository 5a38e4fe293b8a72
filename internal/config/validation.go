package config

import (
	"time"

	apperrors "git.home.luguber.info/inful/autonixdoc/internal/errors"
)

// Validate checks structural configuration invariants. Cross-catalog checks
// (destination collisions) run later in the pipeline, once the catalog exists.
func (c *Config) Validate() error {
	if c.Input == "" {
		return apperrors.ValidationFailed("input", "input directory is required")
	}
	if c.Output == "" {
		return apperrors.ValidationFailed("output", "output directory is required")
	}

	switch c.Loader.Strategy {
	case StrategyAuto:
		for _, ext := range c.Loader.Extensions {
			if ext == "" || ext[0] != '.' {
				return apperrors.ValidationFailed("loader.extensions", "extensions must start with a dot")
			}
		}
	case StrategyMapped:
		if len(c.Loader.Mappings) == 0 {
			return apperrors.ValidationFailed("loader.mappings", "mapped strategy requires at least one entry")
		}
		for _, m := range c.Loader.Mappings {
			if m.Source == "" || m.Destination == "" {
				return apperrors.ValidationFailed("loader.mappings", "entries need both source and destination")
			}
		}
	default:
		return apperrors.ValidationFailed("loader.strategy", "unknown strategy: "+string(c.Loader.Strategy))
	}

	if c.Events.Enabled && c.Events.URL == "" {
		return apperrors.ValidationFailed("events.url", "events are enabled but no NATS URL is set")
	}

	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil || d <= 0 {
		return apperrors.ValidationFailed("watch.debounce", "invalid duration: "+c.Watch.Debounce)
	}
	if c.Watch.Interval != "" {
		if d, err := time.ParseDuration(c.Watch.Interval); err != nil || d <= 0 {
			return apperrors.ValidationFailed("watch.interval", "invalid duration: "+c.Watch.Interval)
		}
	}

	return nil
}

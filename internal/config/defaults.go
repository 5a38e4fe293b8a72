package config

// Default values applied by ApplyDefaults.
const (
	DefaultNixdocBinary = "nixdoc"
	DefaultConcurrency  = 4
	DefaultDebounce     = "2s"
	DefaultHistoryPath  = "autonixdoc.db"
	DefaultMetricsAddr  = ":9090"
	DefaultEventSubject = "autonixdoc.runs"
	DefaultIndexTitle   = "Library reference"
)

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Loader.Strategy == "" {
		c.Loader.Strategy = StrategyAuto
	}
	if len(c.Loader.Extensions) == 0 {
		c.Loader.Extensions = []string{".nix"}
	}
	if c.Nixdoc.Binary == "" {
		c.Nixdoc.Binary = DefaultNixdocBinary
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultDebounce
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = DefaultMetricsAddr
	}
	if c.Events.Subject == "" {
		c.Events.Subject = DefaultEventSubject
	}
	if c.Index.Title == "" {
		c.Index.Title = DefaultIndexTitle
	}
}

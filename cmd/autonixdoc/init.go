package main

import (
	"fmt"
	"log/slog"
	"os"

	apperrors "git.home.luguber.info/inful/autonixdoc/internal/errors"
)

const defaultConfigTemplate = `# autonixdoc configuration
input: ./lib
output: ./doc

loader:
  # auto mirrors the input tree into the output tree (lib/a/b.nix -> doc/a/b.md).
  # mapped uses the explicit mappings list below; unmapped files are skipped.
  strategy: auto
  extensions: [".nix"]
  # mappings:
  #   - source: lib/special.nix
  #     destination: doc/custom.md

# include: ["*.nix"]
# exclude: ["internal/*"]

nixdoc:
  binary: nixdoc
  prefix: lib
  anchor_prefix: lib.

concurrency: 4

index:
  enabled: false
  title: Library reference

history:
  enabled: false
  path: autonixdoc.db

metrics:
  enabled: false
  listen: ":9090"

events:
  enabled: false
  # url: nats://localhost:4222
  # subject: autonixdoc.runs

watch:
  debounce: 2s
  # interval: 1h
`

func runInit(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return apperrors.New(apperrors.CategoryValidation, apperrors.SeverityFatal,
			fmt.Sprintf("configuration file %s already exists (use --force to overwrite)", configPath))
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0o644); err != nil {
		return apperrors.WriteError(configPath, err)
	}

	slog.Info("Configuration file created", "path", configPath)
	return nil
}

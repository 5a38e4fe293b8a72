// Package nixdoc adapts the external nixdoc documentation tool. The tool
// itself is an opaque boundary: it takes a source file and produces markdown
// on stdout, or fails.
package nixdoc

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/autonixdoc/internal/config"
	"git.home.luguber.info/inful/autonixdoc/internal/logfields"
)

// Renderer produces documentation for a single source file. Implementations
// must never abort the caller for a per-file problem; all failure modes are
// expressed through the returned Outcome.
type Renderer interface {
	Render(ctx context.Context, source string) Outcome
}

// Command describes one nixdoc invocation.
type Command struct {
	Category     string
	Description  string
	File         string
	Prefix       string
	AnchorPrefix string
}

// Args returns the nixdoc argument list for this invocation.
func (c Command) Args() []string {
	args := []string{
		"--category", c.Category,
		"--description", c.Description,
		"--file", c.File,
	}
	if c.Prefix != "" {
		args = append(args, "--prefix", c.Prefix)
	}
	if c.AnchorPrefix != "" {
		args = append(args, "--anchor-prefix", c.AnchorPrefix)
	}
	return args
}

// ExecRenderer invokes the nixdoc binary via os/exec.
type ExecRenderer struct {
	binary       string
	prefix       string
	anchorPrefix string
	inputRoot    string
}

// NewExecRenderer creates a renderer invoking the configured nixdoc binary.
func NewExecRenderer(cfg *config.Config) *ExecRenderer {
	return &ExecRenderer{
		binary:       cfg.Nixdoc.Binary,
		prefix:       cfg.Nixdoc.Prefix,
		anchorPrefix: cfg.Nixdoc.AnchorPrefix,
		inputRoot:    cfg.Input,
	}
}

// Render runs nixdoc for source. A non-zero exit from the tool is a Failed
// outcome, never a fatal abort; a run with no documentable items is Skipped.
func (r *ExecRenderer) Render(ctx context.Context, source string) Outcome {
	category, err := Category(r.inputRoot, source)
	if err != nil {
		return Failed(err)
	}

	description, err := Description(source)
	if err != nil {
		return Failed(fmt.Errorf("read description: %w", err))
	}

	cmd := Command{
		Category:     category,
		Description:  description,
		File:         source,
		Prefix:       r.prefix,
		AnchorPrefix: r.anchorPrefix,
	}

	var stdout, stderr bytes.Buffer
	proc := exec.CommandContext(ctx, r.binary, cmd.Args()...)
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	slog.Debug("Invoking nixdoc", logfields.Source(source), slog.String("category", category))

	if err := proc.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return Failed(fmt.Errorf("nixdoc %s: %s", source, msg))
	}

	if len(bytes.TrimSpace(stdout.Bytes())) == 0 {
		return Skipped("no documentable items")
	}

	return Rendered(stdout.Bytes())
}

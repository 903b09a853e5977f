// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/vizkit/vizdocgo/internal/examples"
	"github.com/vizkit/vizdocgo/internal/meta"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr vizdoc <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "vizdoc", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// LoadExamples reads the example corpus named by the --examples flag.
func LoadExamples(cmd *cli.Command) ([]examples.Example, error) {
	dir := cmd.String("examples")
	log.Debugf("loading examples from %s", dir)
	return examples.LoadDir(dir)
}

// GalleryCommandBuilder constructs a cli.Command for the gallery subcommands
// using a consistent pattern. The builder automatically wires metadata, adds
// the tldr flag, and sets up validators.
type GalleryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (gcb *GalleryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      gcb.Name,
		Usage:     gcb.Usage,
		UsageText: gcb.UsageText,
		Metadata: map[string]any{
			"meta": gcb.Meta,
		},
		Flags: append(gcb.Flags, tldrFlag),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: gcb.Action,
	}
}

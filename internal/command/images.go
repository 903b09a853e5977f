// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/vizkit/vizdocgo/internal/config"
	"github.com/vizkit/vizdocgo/internal/images"
	"github.com/vizkit/vizdocgo/internal/meta"
	"github.com/vizkit/vizdocgo/internal/render"
)

// ImagesCommandAction is the action handler for the "images" subcommand. It
// renders every example spec to PNG, skipping the ones whose ledger hash is
// unchanged, and reports what the pass did.
func ImagesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "images") {
		return nil
	}

	config.Config.Namespace = "images"

	list, err := LoadExamples(cmd)
	if err != nil {
		return err
	}

	r := render.NewCLI()
	if binary := cmd.String("renderer"); binary != "" {
		r.Binary = binary
	}

	pass := images.NewPass(
		cmd.String("images"),
		cmd.String("placeholder"),
		cmd.Bool("thumbs"),
		r,
	)
	pass.Force = cmd.Bool("force")

	report, err := pass.Run(ctx, list)
	if err != nil {
		return err
	}

	printReport(report)

	return nil
}

// printReport writes the single-line pass summary to stdout.
func printReport(report images.Report) {
	fmt.Fprintf(os.Stdout,
		"rendered %d (%s), skipped %d, placeholders %d, thumbnails %d in %s\n",
		report.Rendered,
		humanize.IBytes(uint64(report.Bytes)), //nolint:gosec
		report.Skipped,
		report.Placeholders,
		report.Thumbnails,
		report.Elapsed.Round(time.Millisecond),
	)
}

// ImagesCommandBuilder constructs the cli.Command for "images".
func ImagesCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	gcb := GalleryCommandBuilder{
		Name:      "images",
		Usage:     "render example images",
		UsageText: `vizdoc images [options]`,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "re-render every example, ignoring the ledger",
				Value: false,
			},
			NewConfigurableFlag("images", &cli.StringFlag{
				Name:  "renderer",
				Usage: "renderer binary to invoke",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("VIZDOC_RENDERER"),
				),
				Value: render.DefaultBinary,
			}),
			NewPlaceholderFlag("images"),
			NewThumbsFlag("images"),
		}, NewPathFlags("images")...),
		Action: ImagesCommandAction,
		Meta:   meta,
	}
	return gcb.Build()
}

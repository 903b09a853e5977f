// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/vizkit/vizdocgo/internal/config"
	"github.com/vizkit/vizdocgo/internal/examples"
	"github.com/vizkit/vizdocgo/internal/gallery"
	"github.com/vizkit/vizdocgo/internal/images"
	"github.com/vizkit/vizdocgo/internal/meta"
	"github.com/vizkit/vizdocgo/internal/render"
)

// BuildCommandAction is the action handler for the "build" subcommand. It
// runs the full docs build: render the images (incrementally, via the
// ledger), then regenerate the gallery index and per-example pages.
func BuildCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "build") {
		return nil
	}

	config.Config.Namespace = "build"

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

	// Page navigation wants the neighbor links filled in.
	linked := examples.Populate(list, examples.PopulateOptions{})

	b := newGalleryBuilder(cmd)
	if err := b.WriteIndex(linked); err != nil {
		return err
	}
	if err := b.WritePages(linked); err != nil {
		return err
	}

	printReport(report)

	return nil
}

// newGalleryBuilder assembles a gallery.Builder from the command flags and
// the config file, falling back to the stock defaults.
func newGalleryBuilder(cmd *cli.Command) *gallery.Builder {
	b := gallery.NewBuilder()
	b.GalleryDir = cmd.String("gallery")

	//nolint:errcheck
	{
		b.ImageDir, _ = config.GetString("image_ref", gallery.DefaultImageDir)
		b.GalleryRef, _ = config.GetString("gallery_ref", gallery.DefaultGalleryRef)
		b.Title, _ = config.GetString("gallery_title", gallery.DefaultTitle)
	}

	return b
}

// BuildCommandBuilder constructs the cli.Command for "build".
func BuildCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	gcb := GalleryCommandBuilder{
		Name:      "build",
		Usage:     "build images and gallery pages",
		UsageText: `vizdoc build [options]`,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "re-render every example, ignoring the ledger",
				Value: false,
			},
			NewConfigurableFlag("build", &cli.StringFlag{
				Name:  "renderer",
				Usage: "renderer binary to invoke",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("VIZDOC_RENDERER"),
				),
				Value: render.DefaultBinary,
			}),
			NewGalleryFlag("build"),
			NewPlaceholderFlag("build"),
			NewThumbsFlag("build"),
		}, NewPathFlags("build")...),
		Action: BuildCommandAction,
		Meta:   meta,
	}
	return gcb.Build()
}

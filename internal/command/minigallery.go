// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/vizkit/vizdocgo/internal/config"
	"github.com/vizkit/vizdocgo/internal/examples"
	"github.com/vizkit/vizdocgo/internal/gallery"
	"github.com/vizkit/vizdocgo/internal/meta"
)

// MinigalleryCommandAction is the action handler for the "minigallery"
// subcommand. It emits the embeddable thumbnail-strip snippet for a
// (possibly shuffled and truncated) selection of examples.
func MinigalleryCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "minigallery") {
		return nil
	}

	config.Config.Namespace = "minigallery"

	list, err := LoadExamples(cmd)
	if err != nil {
		return err
	}

	list = examples.Populate(list, examples.PopulateOptions{
		Category: cmd.String("category"),
		Shuffle:  cmd.Bool("shuffle"),
		Seed:     int64(cmd.Int("seed")),
		Limit:    cmd.Int("size"),
	})

	var w io.Writer = os.Stdout
	if out := cmd.String("write"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	imageRef, _ := config.GetString("image_ref", gallery.DefaultImageDir) //nolint:errcheck

	return gallery.Minigallery(w, list, gallery.MinigalleryOptions{
		GalleryDir: cmd.String("gallery"),
		ImageDir:   imageRef,
		Titles:     cmd.Bool("titles"),
		Width:      cmd.String("width"),
	})
}

// MinigalleryCommandBuilder constructs the cli.Command for "minigallery".
func MinigalleryCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	gcb := GalleryCommandBuilder{
		Name:      "minigallery",
		Usage:     "emit an embeddable thumbnail strip",
		UsageText: `vizdoc minigallery [options]`,
		Flags: append([]cli.Flag{
			NewConfigurableFlag("minigallery", &cli.StringFlag{
				Name:  "category",
				Usage: "only include examples in this category",
			}),
			&cli.IntFlag{
				Name:  "seed",
				Usage: "shuffle seed",
				Value: examples.DefaultSeed,
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "shuffle the selection deterministically",
				Value: false,
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "number of thumbnails to include",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("minigallery.size", altsrc.StringSourcer(cfg.Source)),
					yaml.YAML("size", altsrc.StringSourcer(cfg.Source)),
				),
				Value: 4, //nolint:mnd
			},
			&cli.BoolWithInverseFlag{
				Name:    "titles",
				Aliases: []string{"t"},
				Usage:   "show example titles under each thumbnail",
				Value:   false,
			},
			NewConfigurableFlag("minigallery", &cli.StringFlag{
				Name:  "width",
				Usage: "per-thumbnail width, e.g. 120px",
			}),
			NewConfigurableFlag("minigallery", &cli.StringFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "write the snippet to this file instead of stdout",
			}),
			NewGalleryFlag("minigallery"),
		}, NewPathFlags("minigallery")...),
		Action: MinigalleryCommandAction,
		Meta:   meta,
	}
	return gcb.Build()
}

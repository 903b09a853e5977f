// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/vizkit/vizdocgo/internal/config"
	"github.com/vizkit/vizdocgo/internal/ledger"
	"github.com/vizkit/vizdocgo/internal/meta"
)

// CleanCommandAction is the action handler for the "clean" subcommand. It
// removes the generated artifacts for the current example corpus: rendered
// images, thumbnails, gallery pages, and the hash ledger. Files not derived
// from the corpus are left alone.
func CleanCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "clean") {
		return nil
	}

	config.Config.Namespace = "clean"

	list, err := LoadExamples(cmd)
	if err != nil {
		return err
	}

	imageDir := cmd.String("images")
	galleryDir := cmd.String("gallery")

	var targets []string
	for _, ex := range list {
		targets = append(targets,
			filepath.Join(imageDir, ex.ImageFile()),
			filepath.Join(imageDir, ex.ThumbFile()),
			filepath.Join(galleryDir, ex.PageFile()),
		)
	}
	targets = append(targets,
		filepath.Join(imageDir, ledger.File),
		filepath.Join(galleryDir, "index.rst"),
	)

	removed := 0
	for _, target := range targets {
		if err := os.Remove(target); err != nil {
			if !os.IsNotExist(err) {
				log.Warnf("failed to remove %s: %v", target, err)
			}
			continue
		}
		log.Debugf("removed %s", target)
		removed++
	}

	fmt.Fprintf(os.Stdout, "removed %d files\n", removed)

	return nil
}

// CleanCommandBuilder constructs the cli.Command for "clean".
func CleanCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	gcb := GalleryCommandBuilder{
		Name:      "clean",
		Usage:     "remove generated images and pages",
		UsageText: `vizdoc clean [options]`,
		Flags: append([]cli.Flag{
			NewGalleryFlag("clean"),
		}, NewPathFlags("clean")...),
		Action: CleanCommandAction,
		Meta:   meta,
	}
	return gcb.Build()
}

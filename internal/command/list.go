// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/vizkit/vizdocgo/internal/config"
	"github.com/vizkit/vizdocgo/internal/meta"
	"github.com/vizkit/vizdocgo/internal/output"
)

// ListCommandAction is the action handler for the "list" subcommand. It
// enumerates the example corpus and emits one row per example, shaped by
// the common --filter/--sort/--output flags.
func ListCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "list") {
		return nil
	}

	config.Config.Namespace = "list"

	list, err := LoadExamples(cmd)
	if err != nil {
		return err
	}

	rows := make([]map[string]interface{}, 0, len(list))
	for _, ex := range list {
		if cat := cmd.String("category"); cat != "" && ex.Category != cat {
			continue
		}
		rows = append(rows, map[string]interface{}{
			"name":     ex.Name,
			"category": ex.Category,
			"title":    ex.Title(),
		})
	}

	rows = output.FilterRows(rows, cmd.String("filter"))
	output.SortRows(rows, cmd.String("sort"))

	return output.Emit(rows, []string{"name", "category", "title"}, cmd, os.Stdout)
}

// ListCommandBuilder constructs the cli.Command for "list".
func ListCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	gcb := GalleryCommandBuilder{
		Name:      "list",
		Usage:     "list example charts",
		UsageText: `vizdoc list [options]`,
		Flags: append(append([]cli.Flag{
			NewConfigurableFlag("list", &cli.StringFlag{
				Name:  "category",
				Usage: "only include examples in this category",
			}),
		}, NewPathFlags("list")...),
			NewGlobalFlags("list")...,
		),
		Action: ListCommandAction,
		Meta:   meta,
	}
	return gcb.Build()
}

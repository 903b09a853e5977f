// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/vizkit/vizdocgo/internal/aws"
	"github.com/vizkit/vizdocgo/internal/config"
	"github.com/vizkit/vizdocgo/internal/meta"
	"github.com/vizkit/vizdocgo/internal/publish"
)

// PublishCommandAction is the action handler for the "publish" subcommand.
// It uploads the generated images and gallery pages to an S3 bucket.
func PublishCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "publish") {
		return nil
	}

	config.Config.Namespace = "publish"

	if cmd.String("bucket") == "" {
		return fmt.Errorf("--bucket is required")
	}

	awsCfg, err := aws.LoadAWSConfig(ctx,
		aws.WithProfile(cmd.String("profile")),
		aws.WithRegion(cmd.String("region")),
	)
	if err != nil {
		return err
	}

	syncer := &publish.Syncer{
		Client: aws.NewS3(awsCfg),
		Bucket: cmd.String("bucket"),
		Prefix: cmd.String("prefix"),
	}

	var count int
	var bytes int64
	for _, dir := range []string{cmd.String("images"), cmd.String("gallery")} {
		n, b, err := syncer.SyncDir(ctx, dir)
		if err != nil {
			return fmt.Errorf("failed to sync %s: %w", dir, err)
		}
		count += n
		bytes += b
	}

	fmt.Fprintf(os.Stdout, "uploaded %d objects (%s) to s3://%s/%s\n",
		count,
		humanize.IBytes(uint64(bytes)), //nolint:gosec
		syncer.Bucket,
		syncer.Prefix,
	)

	return nil
}

// PublishCommandBuilder constructs the cli.Command for "publish".
func PublishCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	gcb := GalleryCommandBuilder{
		Name:      "publish",
		Usage:     "upload generated docs to S3",
		UsageText: `vizdoc publish --bucket BUCKET [options]`,
		Flags: append([]cli.Flag{
			NewConfigurableFlag("publish", &cli.StringFlag{
				Name:  "bucket",
				Usage: "destination S3 bucket",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("VIZDOC_BUCKET"),
				),
			}),
			NewConfigurableFlag("publish", &cli.StringFlag{
				Name:  "prefix",
				Usage: "key prefix within the bucket",
			}),
			NewConfigurableFlag("publish", &cli.StringFlag{
				Name:  "profile",
				Usage: "AWS profile to use",
			}),
			NewConfigurableFlag("publish", &cli.StringFlag{
				Name:  "region",
				Usage: "AWS region to use",
			}),
			NewGalleryFlag("publish"),
		}, NewPathFlags("publish")...),
		Action: PublishCommandAction,
		Meta:   meta,
	}
	return gcb.Build()
}

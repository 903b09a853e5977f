// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/vizkit/vizdocgo/internal/meta"
)

func TestInitApp_RegistersCommands(t *testing.T) {
	app, err := InitApp(context.Background(), []string{"vizdoc"})
	require.NoError(t, err)

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}

	for _, want := range []string{
		"browse", "build", "clean", "images", "list", "minigallery", "publish",
	} {
		assert.Contains(t, names, want)
	}
}

func TestInitApp_FlagsSorted(t *testing.T) {
	app, err := InitApp(context.Background(), []string{"vizdoc", "list"})
	require.NoError(t, err)

	for _, cmd := range app.Commands {
		sorted := sort.SliceIsSorted(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
		assert.True(t, sorted, "flags for %s are not sorted", cmd.Name)
	}
}

func TestGetMeta_Missing(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))
}

func TestGetMeta_RoundTrip(t *testing.T) {
	m := meta.Meta{Args: []string{"vizdoc", "list"}, StartingDir: "/tmp"}
	cmd := &cli.Command{
		Metadata: map[string]any{"meta": m},
	}
	got := GetMeta(cmd)
	assert.Equal(t, m.Args, got.Args)
	assert.Equal(t, "/tmp", got.StartingDir)
}

func TestGalleryCommandBuilder_AppendsTldr(t *testing.T) {
	gcb := GalleryCommandBuilder{
		Name:  "fake",
		Usage: "fake command",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "examples"},
		},
		Action: func(context.Context, *cli.Command) error { return nil },
	}
	cmd := gcb.Build()

	var names []string
	for _, f := range cmd.Flags {
		names = append(names, f.Names()[0])
	}
	assert.Contains(t, names, "tldr")
	assert.Contains(t, names, "examples")
}

func TestOutputValidator(t *testing.T) {
	for _, ok := range []string{"text", "json", "yaml"} {
		assert.NoError(t, FlagValidators(ok, OutputValidator))
	}
	assert.Error(t, FlagValidators("xml", OutputValidator))
}

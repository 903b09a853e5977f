// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/vizkit/vizdocgo/internal/config"
)

func init() {
	cfg, _ = config.Load()
}

var (
	cfg config.Type

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// NewPathFlags returns the flags locating the example corpus and the build
// outputs, each sourced from the env and vizdoc.yaml (namespaced key first,
// bare key second).
func NewPathFlags(ns string) []cli.Flag {
	return []cli.Flag{
		NewConfigurableFlag(ns, &cli.StringFlag{
			Name:    "examples",
			Aliases: []string{"e"},
			Usage:   "directory holding the example chart specs",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("VIZDOC_EXAMPLES"),
			),
			Value: "examples",
		}),
		NewConfigurableFlag(ns, &cli.StringFlag{
			Name:    "images",
			Aliases: []string{"i"},
			Usage:   "directory the rendered images and ledger are written to",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("VIZDOC_IMAGES"),
			),
			Value: "_images",
		}),
	}
}

// NewGalleryFlag locates the directory the .rst pages are written to.
func NewGalleryFlag(ns string) *cli.StringFlag {
	return NewConfigurableFlag(ns, &cli.StringFlag{
		Name:    "gallery",
		Aliases: []string{"g"},
		Usage:   "directory the gallery pages are written to",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("VIZDOC_GALLERY"),
		),
		Value: "gallery",
	})
}

// NewPlaceholderFlag locates the default image substituted when the renderer
// is unavailable.
func NewPlaceholderFlag(ns string) *cli.StringFlag {
	return NewConfigurableFlag(ns, &cli.StringFlag{
		Name:    "placeholder",
		Aliases: []string{"p"},
		Usage:   "default image copied when rendering is unavailable",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("VIZDOC_PLACEHOLDER"),
		),
		Value: "_static/gray-square.png",
	})
}

// NewThumbsFlag toggles thumbnail generation.
func NewThumbsFlag(ns string) *cli.BoolWithInverseFlag {
	flag := &cli.BoolWithInverseFlag{
		Name:  "thumbs",
		Usage: "generate thumbnails alongside full images",
		Value: true,
	}
	if cfg.Source != "" {
		flag.Sources = cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"thumbs", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("thumbs", altsrc.StringSourcer(cfg.Source)),
		)
	}
	return flag
}

// NewGlobalFlags are the output-shaping flags shared by the query-ish
// commands (list).
func NewGlobalFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   term.IsTerminal(int(os.Stdout.Fd())),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	for i, f := range flags {
		if sf, ok := f.(*cli.StringFlag); ok {
			flags[i] = NewConfigurableFlag(ns, sf)
		}
	}

	return
}

// NewConfigurableFlag adds namespaced and global config file sources to the
// given flag's Sources chain.
func NewConfigurableFlag(ns string, flag *cli.StringFlag) *cli.StringFlag {
	if cfg.Source == "" {
		return flag
	}

	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(cfg.Source))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(cfg.Source))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}

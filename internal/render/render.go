// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package render wraps the external vk2png renderer. The process is treated
// as opaque: it either produces an image file or exits abnormally, and the
// caller decides what an abnormal exit means for the rest of its pass.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DefaultBinary is the headless renderer the vizkit distribution ships.
const DefaultBinary = "vk2png"

// Outcome classifies a render attempt. The distinction matters because a
// RendererDown outcome poisons the renderer for the remainder of a pass,
// while OutcomeError is specific to one example.
type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeRendererDown means the renderer binary is missing or its
	// process exited abnormally.
	OutcomeRendererDown
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRendererDown:
		return "renderer-down"
	default:
		return "error"
	}
}

// Renderer is the external collaborator that turns chart specs into images.
type Renderer interface {
	// Available reports whether the renderer can be invoked at all.
	Available() bool
	// Render writes the image for spec to outPath.
	Render(ctx context.Context, spec []byte, outPath string) (Outcome, error)
}

// CLI shells out to the vk2png binary, feeding the spec on stdin.
type CLI struct {
	Binary string
}

// NewCLI returns a CLI renderer for the default binary.
func NewCLI() *CLI {
	return &CLI{Binary: DefaultBinary}
}

// Available reports whether the renderer binary is on PATH.
func (c *CLI) Available() bool {
	_, err := exec.LookPath(c.Binary)
	return err == nil
}

// Render invokes `vk2png - -o <outPath>` with the spec document on stdin.
func (c *CLI) Render(ctx context.Context, spec []byte, outPath string) (Outcome, error) {
	cmd := exec.CommandContext(ctx, c.Binary, "-", "-o", outPath)
	cmd.Stdin = bytes.NewReader(spec)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return classify(err), fmt.Errorf("%s failed for %s: %w (%s)",
			c.Binary, outPath, err, bytes.TrimSpace(stderr.Bytes()))
	}

	return OutcomeOK, nil
}

// classify maps a process error onto an Outcome. A missing binary or an
// abnormal exit both count as the renderer being down; anything else (a
// cancelled context, an I/O error wiring the pipes) is an ordinary error.
func classify(err error) Outcome {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return OutcomeRendererDown
	}
	if errors.Is(err, exec.ErrNotFound) {
		return OutcomeRendererDown
	}
	return OutcomeError
}

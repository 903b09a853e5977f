// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package images drives the incremental image regeneration pass for the
// example gallery. Each example's spec is hashed; images whose recorded hash
// still matches are skipped outright, everything else is re-rendered through
// the external renderer with a placeholder fallback when that renderer is
// broken or absent.
package images

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"

	"github.com/vizkit/vizdocgo/internal/examples"
	"github.com/vizkit/vizdocgo/internal/ledger"
	"github.com/vizkit/vizdocgo/internal/render"
)

// Pass holds everything one regeneration pass needs, including the mutable
// renderer-availability state. A Pass is single-use and assumes exclusive
// access to Dir; concurrent passes against the same directory are
// unsupported.
type Pass struct {
	// Dir is the output image directory, which also hosts the ledger file.
	Dir string
	// Placeholder is the default image copied when rendering is unavailable.
	Placeholder string
	// Thumbnails requests thumbnail generation alongside full images.
	Thumbnails bool
	// Force ignores ledger matches and regenerates everything.
	Force bool

	Renderer render.Renderer

	ledger    *ledger.Ledger
	available bool
}

// Report summarizes a pass for the build log.
type Report struct {
	Rendered     int
	Skipped      int
	Placeholders int
	Thumbnails   int
	// Bytes is the total size of images rendered this pass.
	Bytes   int64
	Elapsed time.Duration
}

// NewPass constructs a pass over the given image directory.
func NewPass(dir, placeholder string, thumbnails bool, r render.Renderer) *Pass {
	return &Pass{
		Dir:         dir,
		Placeholder: placeholder,
		Thumbnails:  thumbnails,
		Renderer:    r,
	}
}

// Run processes the examples sequentially. Individual render failures never
// fail the pass; they downgrade it to placeholder mode. The only errors
// returned are directory creation and ledger persistence failures.
func (p *Pass) Run(ctx context.Context, list []examples.Example) (Report, error) {
	start := time.Now()
	var report Report

	if err := os.MkdirAll(p.Dir, 0o755); err != nil { //nolint:mnd
		return report, fmt.Errorf("failed to create image directory: %w", err)
	}

	p.ledger = ledger.Load(p.Dir)

	p.available = p.Renderer.Available()
	if !p.available {
		log.Warnf("%s is not on PATH: cannot render images", render.DefaultBinary)
	}

	for _, ex := range list {
		filename := ex.ImageFile()
		imagePath := filepath.Join(p.Dir, filename)

		specHash := ledger.HashSpec(ex.Spec)
		if !p.Force && p.ledger.Get(filename) == specHash {
			log.Debugf("unchanged, skipping %s", filename)
			report.Skipped++
			continue
		}

		if p.available {
			outcome, err := p.Renderer.Render(ctx, ex.Spec, imagePath)
			switch outcome {
			case render.OutcomeOK:
				log.Infof("saved %s", imagePath)
				p.ledger.Set(filename, specHash)
				report.Rendered++
				if info, statErr := os.Stat(imagePath); statErr == nil {
					report.Bytes += info.Size()
				}
			case render.OutcomeRendererDown:
				// One abnormal exit poisons the renderer for the rest of
				// the pass. No retries; the next invocation starts fresh.
				log.Warnf("renderer failed, falling back to placeholders: %v", err)
				p.available = false
				p.placeholder(imagePath, &report)
			default:
				log.Warnf("failed to render %s: %v", ex.Name, err)
			}
		} else {
			p.placeholder(imagePath, &report)
		}

		if p.Thumbnails {
			p.thumbnail(ex, imagePath, &report)
		}
	}

	if err := p.ledger.Save(p.Dir); err != nil {
		return report, err
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// placeholder copies the default image into place, but never over an
// existing image: a stale real render beats a gray square.
func (p *Pass) placeholder(imagePath string, report *Report) {
	if _, err := os.Stat(imagePath); err == nil {
		return
	}

	if err := copyFile(p.Placeholder, imagePath); err != nil {
		log.Warnf("failed to copy placeholder to %s: %v", imagePath, err)
		return
	}

	report.Placeholders++
}

// thumbnail derives the scaled-down thumbnail for an example whose image
// step ran this pass. There is no caching here; the spec-hash check on the
// image is the sole gate on regeneration cost.
func (p *Pass) thumbnail(ex examples.Example, imagePath string, report *Report) {
	if _, err := os.Stat(imagePath); err != nil {
		log.Debugf("no image for %s, skipping thumbnail", ex.Name)
		return
	}

	zoom, err := ex.Params.Zoom()
	if err != nil {
		log.Warnf("%s: %v, using 100%%", ex.Name, err)
		zoom = 1.0
	}

	thumbPath := filepath.Join(p.Dir, ex.ThumbFile())
	if err := render.Thumbnail(imagePath, thumbPath, zoom); err != nil {
		log.Warnf("failed to thumbnail %s: %v", ex.Name, err)
		return
	}

	report.Thumbnails++
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

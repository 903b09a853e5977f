// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/png"
	"os"

	"github.com/natefinch/atomic"
	xdraw "golang.org/x/image/draw"
)

// Thumbnail window dimensions. Every thumbnail comes out this size so the
// gallery grid lines up.
const (
	ThumbWidth  = 280
	ThumbHeight = 210
)

// Thumbnail scales imagePath into a fixed-size thumbnail at thumbPath. The
// source is scaled by zoom on top of the fit-to-window factor and anchored
// top-left; any uncovered window area stays white.
func Thumbnail(imagePath, thumbPath string, zoom float64) error {
	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open image %s: %w", imagePath, err)
	}
	defer func() { _ = f.Close() }()

	src, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", imagePath, err)
	}

	bounds := src.Bounds()
	scaleW := float64(ThumbWidth) / float64(bounds.Dx())
	scaleH := float64(ThumbHeight) / float64(bounds.Dy())
	scale := zoom * max(scaleW, scaleH)

	scaled := image.Rect(0, 0,
		int(float64(bounds.Dx())*scale),
		int(float64(bounds.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, ThumbWidth, ThumbHeight))
	stddraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)
	xdraw.ApproxBiLinear.Scale(dst, scaled, src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	if err := atomic.WriteFile(thumbPath, &buf); err != nil {
		return fmt.Errorf("failed to write thumbnail %s: %w", thumbPath, err)
	}

	return nil
}

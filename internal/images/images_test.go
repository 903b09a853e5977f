// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizkit/vizdocgo/internal/examples"
	"github.com/vizkit/vizdocgo/internal/ledger"
	"github.com/vizkit/vizdocgo/internal/render"
)

// fakeRenderer scripts outcomes per call and writes a real PNG on success so
// the thumbnail step has something to decode.
type fakeRenderer struct {
	available bool
	outcomes  []render.Outcome
	calls     int
}

func (f *fakeRenderer) Available() bool {
	return f.available
}

func (f *fakeRenderer) Render(_ context.Context, _ []byte, outPath string) (render.Outcome, error) {
	outcome := render.OutcomeOK
	if f.calls < len(f.outcomes) {
		outcome = f.outcomes[f.calls]
	}
	f.calls++

	if outcome == render.OutcomeOK {
		if err := os.WriteFile(outPath, testPNG(), 0o644); err != nil {
			return render.OutcomeError, err
		}
		return render.OutcomeOK, nil
	}
	return outcome, errors.New("scripted failure")
}

func testPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func testExamples() []examples.Example {
	return []examples.Example{
		{Name: "area-chart", Spec: []byte(`{"mark": "area"}`)},
		{Name: "bar-chart", Spec: []byte(`{"mark": "bar"}`)},
		{Name: "line-chart", Spec: []byte(`{"mark": "line"}`)},
	}
}

func writePlaceholder(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "gray-square.png")
	require.NoError(t, os.WriteFile(path, testPNG(), 0o644))
	return path
}

func TestRun_EmptyLedgerRendersEverything(t *testing.T) {
	dir := t.TempDir()
	placeholder := writePlaceholder(t, t.TempDir())
	r := &fakeRenderer{available: true}

	report, err := NewPass(dir, placeholder, false, r).Run(context.Background(), testExamples())
	require.NoError(t, err)

	assert.Equal(t, 3, r.calls)
	assert.Equal(t, 3, report.Rendered)
	assert.Equal(t, 0, report.Skipped)

	saved := ledger.Load(dir)
	assert.Equal(t, 3, saved.Len())
	assert.Equal(t, ledger.HashSpec([]byte(`{"mark": "bar"}`)), saved.Get("bar-chart.png"))
}

func TestRun_MatchingEntrySkipsRender(t *testing.T) {
	dir := t.TempDir()
	placeholder := writePlaceholder(t, t.TempDir())

	seed := ledger.New()
	seed.Set("bar-chart.png", ledger.HashSpec([]byte(`{"mark": "bar"}`)))
	require.NoError(t, seed.Save(dir))

	r := &fakeRenderer{available: true}
	report, err := NewPass(dir, placeholder, false, r).Run(context.Background(), testExamples())
	require.NoError(t, err)

	// Only the two examples with missing entries get rendered.
	assert.Equal(t, 2, r.calls)
	assert.Equal(t, 2, report.Rendered)
	assert.Equal(t, 1, report.Skipped)
}

func TestRun_StaleEntryUpdatesLedger(t *testing.T) {
	dir := t.TempDir()
	placeholder := writePlaceholder(t, t.TempDir())

	seed := ledger.New()
	seed.Set("bar-chart.png", ledger.HashSpec([]byte(`{"mark": "circle"}`)))
	require.NoError(t, seed.Save(dir))

	r := &fakeRenderer{available: true}
	_, err := NewPass(dir, placeholder, false, r).Run(context.Background(), testExamples())
	require.NoError(t, err)

	saved := ledger.Load(dir)
	assert.Equal(t, ledger.HashSpec([]byte(`{"mark": "bar"}`)), saved.Get("bar-chart.png"))
}

func TestRun_ForceIgnoresLedger(t *testing.T) {
	dir := t.TempDir()
	placeholder := writePlaceholder(t, t.TempDir())

	seed := ledger.New()
	for _, ex := range testExamples() {
		seed.Set(ex.ImageFile(), ledger.HashSpec(ex.Spec))
	}
	require.NoError(t, seed.Save(dir))

	r := &fakeRenderer{available: true}
	pass := NewPass(dir, placeholder, false, r)
	pass.Force = true
	report, err := pass.Run(context.Background(), testExamples())
	require.NoError(t, err)

	assert.Equal(t, 3, r.calls)
	assert.Equal(t, 0, report.Skipped)
}

func TestRun_RendererUnavailableFromStart(t *testing.T) {
	dir := t.TempDir()
	placeholder := writePlaceholder(t, t.TempDir())

	// One image already exists; it must not be clobbered by the placeholder.
	existing := filepath.Join(dir, "bar-chart.png")
	require.NoError(t, os.WriteFile(existing, []byte("real render"), 0o644))

	r := &fakeRenderer{available: false}
	report, err := NewPass(dir, placeholder, false, r).Run(context.Background(), testExamples())
	require.NoError(t, err)

	assert.Equal(t, 0, r.calls, "no render attempts when unavailable")
	assert.Equal(t, 2, report.Placeholders)

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "real render", string(content))

	assert.FileExists(t, filepath.Join(dir, "area-chart.png"))
	assert.FileExists(t, filepath.Join(dir, "line-chart.png"))
}

func TestRun_MidPassFailureStopsRetrying(t *testing.T) {
	dir := t.TempDir()
	placeholder := writePlaceholder(t, t.TempDir())

	r := &fakeRenderer{
		available: true,
		outcomes:  []render.Outcome{render.OutcomeRendererDown},
	}
	report, err := NewPass(dir, placeholder, false, r).Run(context.Background(), testExamples())
	require.NoError(t, err)

	// The first render fails; the remaining two examples must not invoke
	// the renderer again.
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, 0, report.Rendered)
	assert.Equal(t, 3, report.Placeholders)

	// Nothing rendered, so no ledger file is written.
	assert.NoFileExists(t, filepath.Join(dir, ledger.File))
}

func TestRun_PerExampleErrorDoesNotPoisonRenderer(t *testing.T) {
	dir := t.TempDir()
	placeholder := writePlaceholder(t, t.TempDir())

	r := &fakeRenderer{
		available: true,
		outcomes:  []render.Outcome{render.OutcomeError, render.OutcomeOK, render.OutcomeOK},
	}
	report, err := NewPass(dir, placeholder, false, r).Run(context.Background(), testExamples())
	require.NoError(t, err)

	assert.Equal(t, 3, r.calls, "an ordinary error only affects its example")
	assert.Equal(t, 2, report.Rendered)

	saved := ledger.Load(dir)
	assert.Empty(t, saved.Get("area-chart.png"), "failed example gets no ledger entry")
}

func TestRun_Thumbnails(t *testing.T) {
	dir := t.TempDir()
	placeholder := writePlaceholder(t, t.TempDir())

	r := &fakeRenderer{available: true}
	report, err := NewPass(dir, placeholder, true, r).Run(context.Background(), testExamples())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Thumbnails)
	assert.FileExists(t, filepath.Join(dir, "bar-chart-thumb.png"))
	assert.FileExists(t, filepath.Join(dir, "line-chart-thumb.png"))
}

func TestRun_ThumbnailSkippedWithImageStep(t *testing.T) {
	dir := t.TempDir()
	placeholder := writePlaceholder(t, t.TempDir())

	seed := ledger.New()
	for _, ex := range testExamples() {
		seed.Set(ex.ImageFile(), ledger.HashSpec(ex.Spec))
	}
	require.NoError(t, seed.Save(dir))

	r := &fakeRenderer{available: true}
	report, err := NewPass(dir, placeholder, true, r).Run(context.Background(), testExamples())
	require.NoError(t, err)

	// Hash-skipped examples skip the thumbnail step too.
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, 0, report.Thumbnails)
	assert.NoFileExists(t, filepath.Join(dir, "bar-chart-thumb.png"))
}

func TestRun_PlaceholderThumbnails(t *testing.T) {
	dir := t.TempDir()
	placeholder := writePlaceholder(t, t.TempDir())

	r := &fakeRenderer{available: false}
	report, err := NewPass(dir, placeholder, true, r).Run(context.Background(), testExamples())
	require.NoError(t, err)

	// Placeholder copies still get thumbnails so the gallery grid renders.
	assert.Equal(t, 3, report.Placeholders)
	assert.Equal(t, 3, report.Thumbnails)
}

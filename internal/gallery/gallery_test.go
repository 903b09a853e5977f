// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizkit/vizdocgo/internal/examples"
)

func testList() []examples.Example {
	list := []examples.Example{
		{Name: "bar-chart", Category: "basic", Spec: []byte(`{"description": "Bars.", "mark": "bar"}`)},
		{Name: "heatmap", Category: "advanced", Spec: []byte(`{"mark": "rect"}`)},
		{Name: "line-chart", Category: "basic", Spec: []byte(`{"mark": "line"}`)},
	}
	return examples.Populate(list, examples.PopulateOptions{})
}

func TestWriteIndex(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder()
	b.GalleryDir = dir

	require.NoError(t, b.WriteIndex(testList()))

	raw, err := os.ReadFile(filepath.Join(dir, "index.rst"))
	require.NoError(t, err)
	content := string(raw)

	assert.Contains(t, content, ".. _example-gallery:")
	assert.Contains(t, content, "Example Gallery\n---------------")
	// Categories are sorted and each example lands under its own.
	assert.Contains(t, content, ".. _gallery-category-advanced:")
	assert.Contains(t, content, ".. _gallery-category-basic:")
	assert.Contains(t, content, "/_images/bar-chart-thumb.png")
	assert.Contains(t, content, ":ref:`gallery_heatmap`")
	// The hidden toctree lists every example.
	assert.Contains(t, content, "   line-chart")
}

func TestWritePages(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder()
	b.GalleryDir = dir

	list := testList()
	require.NoError(t, b.WritePages(list))

	raw, err := os.ReadFile(filepath.Join(dir, "heatmap.rst"))
	require.NoError(t, err)
	content := string(raw)

	assert.Contains(t, content, ".. _gallery_heatmap:")
	// heatmap sits between bar-chart and line-chart in sorted order.
	assert.Contains(t, content, ":ref:`gallery_bar-chart`")
	assert.Contains(t, content, ":ref:`gallery_line-chart`")
	assert.Contains(t, content, ".. vizdoc-plot::")
	// The spec document is embedded, indented under the directive.
	assert.Contains(t, content, `    {"mark": "rect"}`)

	// End pages drop the missing neighbor link.
	raw, err = os.ReadFile(filepath.Join(dir, "bar-chart.rst"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "< :ref:`gallery_`")
}

func TestMinigallery(t *testing.T) {
	var buf bytes.Buffer
	err := Minigallery(&buf, testList(), MinigalleryOptions{
		Titles: true,
		Width:  "120px",
	})
	require.NoError(t, err)

	content := buf.String()
	assert.Contains(t, content, "/_images/bar-chart-thumb.png")
	assert.Contains(t, content, ":target: gallery/bar-chart.html")
	assert.Contains(t, content, ":width: 120px")
	assert.Contains(t, content, ":ref:`gallery_bar-chart`")
	assert.Contains(t, content, ":figclass: minigallery")
}

func TestMinigallery_NoTitlesNoWidth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Minigallery(&buf, testList(), MinigalleryOptions{}))

	content := buf.String()
	assert.NotContains(t, content, ":width:")
	assert.NotContains(t, content, ":ref:`gallery_bar-chart`")
	assert.Contains(t, content, "clear:left")
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package gallery emits the reStructuredText pages the docs build consumes:
// the gallery index grouped by category, one page per example, and the
// embeddable mini-gallery snippet.
package gallery

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/apex/log"
	"github.com/natefinch/atomic"

	"github.com/vizkit/vizdocgo/internal/examples"
)

// Defaults used when the config file is silent.
const (
	DefaultGalleryDir = "gallery"
	DefaultImageDir   = "/_images"
	DefaultGalleryRef = "example-gallery"
	DefaultTitle      = "Example Gallery"
)

var funcMap = template.FuncMap{
	"underline": func(s, ch string) string {
		return strings.Repeat(ch, len(s))
	},
	"indent": func(n int, s string) string {
		pad := strings.Repeat(" ", n)
		lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = pad + line
			}
		}
		return strings.Join(lines, "\n")
	},
}

var indexTemplate = template.Must(template.New("index").Funcs(funcMap).Parse(`.. This document is auto-generated by vizdoc. Do not modify directly.

.. _{{ .GalleryRef }}:

{{ .Title }}
{{ underline .Title "-" }}

The following examples are automatically generated from the bundled
vizkit example specifications.

{{ range .Groups }}* :ref:` + "`gallery-category-{{ .Name }}`" + `
{{ end }}
{{ range .Groups }}
.. _gallery-category-{{ .Name }}:

{{ .Name }}
{{ underline .Name "~" }}
{{ range .Examples }}
.. figure:: {{ $.ImageDir }}/{{ .ThumbFile }}
    :target: {{ .Name }}.html
    :align: center

    :ref:` + "`{{ .Ref }}`" + `
{{ end }}
.. raw:: html

   <div style='clear:left;'></div>
{{ end }}

.. toctree::
   :hidden:
{{ range .Examples }}
   {{ .Name }}{{ end }}
`))

var pageTemplate = template.Must(template.New("page").Funcs(funcMap).Parse(`.. This document is auto-generated by vizdoc. Do not modify directly.

.. _{{ .Example.Ref }}:

{{ .Example.Title }}
{{ underline .Example.Title "-" }}

{{ if .Example.PrevRef }}< :ref:` + "`{{ .Example.PrevRef }}`" + ` {{ end }}| :ref:` + "`{{ .GalleryRef }}`" + ` |{{ if .Example.NextRef }} :ref:` + "`{{ .Example.NextRef }}`" + ` >{{ end }}

.. vizdoc-plot::
    :code-below:

{{ indent 4 .Spec }}

.. toctree::
   :hidden:
`))

var minigalleryTemplate = template.Must(template.New("minigallery").Parse(`{{ range .Examples }}
.. figure:: {{ $.ImageDir }}/{{ .ThumbFile }}
    :target: {{ $.GalleryDir }}/{{ .Name }}.html
    :align: center
    :figclass: minigallery
    {{ if $.Width }}:width: {{ $.Width }}{{ end }}

    {{ if $.Titles }}:ref:` + "`{{ .Ref }}`" + `{{ end }}
{{ end }}
.. raw:: html

   <div style='clear:left;'></div>
`))

// Builder writes the gallery pages for one docs build.
type Builder struct {
	// GalleryDir is the directory the .rst pages are written into.
	GalleryDir string
	// ImageDir is the path prefix pages use to reference images, as seen by
	// the docs build (typically "/_images"), not a filesystem path.
	ImageDir   string
	GalleryRef string
	Title      string
}

// NewBuilder returns a Builder with the stock defaults filled in.
func NewBuilder() *Builder {
	return &Builder{
		GalleryDir: DefaultGalleryDir,
		ImageDir:   DefaultImageDir,
		GalleryRef: DefaultGalleryRef,
		Title:      DefaultTitle,
	}
}

type categoryGroup struct {
	Name     string
	Examples []examples.Example
}

// groupByCategory buckets examples by category, categories sorted, examples
// keeping their incoming order.
func groupByCategory(list []examples.Example) []categoryGroup {
	var groups []categoryGroup
	for _, category := range examples.Categories(list) {
		group := categoryGroup{Name: category}
		for _, ex := range list {
			if ex.Category == category {
				group.Examples = append(group.Examples, ex)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// WriteIndex renders the gallery index page to <GalleryDir>/index.rst.
func (b *Builder) WriteIndex(list []examples.Example) error {
	data := struct {
		Title      string
		GalleryRef string
		ImageDir   string
		Groups     []categoryGroup
		Examples   []examples.Example
	}{
		Title:      b.Title,
		GalleryRef: b.GalleryRef,
		ImageDir:   b.ImageDir,
		Groups:     groupByCategory(list),
		Examples:   list,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render gallery index: %w", err)
	}

	return b.write("index.rst", &buf)
}

// WritePages renders one .rst page per example into GalleryDir.
func (b *Builder) WritePages(list []examples.Example) error {
	for _, ex := range list {
		data := struct {
			Example    examples.Example
			GalleryRef string
			Spec       string
		}{
			Example:    ex,
			GalleryRef: b.GalleryRef,
			Spec:       string(bytes.TrimSpace(ex.Spec)),
		}

		var buf bytes.Buffer
		if err := pageTemplate.Execute(&buf, data); err != nil {
			return fmt.Errorf("failed to render page for %s: %w", ex.Name, err)
		}

		if err := b.write(ex.PageFile(), &buf); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) write(name string, r io.Reader) error {
	if err := os.MkdirAll(b.GalleryDir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create gallery directory: %w", err)
	}

	path := filepath.Join(b.GalleryDir, name)
	if err := atomic.WriteFile(path, r); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Debugf("wrote %s", path)
	return nil
}

// MinigalleryOptions are the directive parameters passed straight through to
// the snippet; they have no caching implications.
type MinigalleryOptions struct {
	GalleryDir string
	ImageDir   string
	Titles     bool
	Width      string
}

// Minigallery renders the embeddable snippet for the given (already
// populated) examples to w.
func Minigallery(w io.Writer, list []examples.Example, opts MinigalleryOptions) error {
	if opts.GalleryDir == "" {
		opts.GalleryDir = DefaultGalleryDir
	}
	if opts.ImageDir == "" {
		opts.ImageDir = DefaultImageDir
	}

	data := struct {
		Examples   []examples.Example
		GalleryDir string
		ImageDir   string
		Titles     bool
		Width      string
	}{
		Examples:   list,
		GalleryDir: opts.GalleryDir,
		ImageDir:   opts.ImageDir,
		Titles:     opts.Titles,
		Width:      opts.Width,
	}

	if err := minigalleryTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render minigallery: %w", err)
	}

	return nil
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package examples

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// SpecExt is the filename extension of a vizkit chart specification.
const SpecExt = ".vk.json"

// ManifestFile carries per-example metadata (category, gallery parameters)
// alongside the spec documents.
const ManifestFile = "manifest.yaml"

// DefaultCategory is assigned to examples the manifest doesn't mention.
const DefaultCategory = "general"

// GalleryParams are the optional per-example rendering parameters. Each field
// has a documented default applied by its accessor rather than at load time,
// so a zero value always behaves.
type GalleryParams struct {
	// BackgroundSize is a CSS-style percentage ("60%") controlling thumbnail
	// zoom. The alias "contains" and the empty string both mean "100%".
	BackgroundSize string `yaml:"backgroundSize"`
}

// Zoom converts BackgroundSize into a scale factor. "60%" yields 0.6.
func (p GalleryParams) Zoom() (float64, error) {
	size := p.BackgroundSize
	if size == "" || size == "contains" {
		size = "100%"
	}
	pct, err := strconv.Atoi(strings.TrimSuffix(size, "%"))
	if err != nil {
		return 0, fmt.Errorf("bad backgroundSize %q: %w", p.BackgroundSize, err)
	}
	return 0.01 * float64(pct), nil
}

// Example is one chart specification from the bundled corpus. Instances are
// read fresh on every invocation and never mutated after Populate links them.
type Example struct {
	Name     string
	Category string
	// Spec is the raw JSON chart specification document.
	Spec   []byte
	Params GalleryParams
	// PrevRef/NextRef are gallery cross-reference labels filled in by
	// Populate for page navigation. Empty at the ends of the list.
	PrevRef string
	NextRef string
}

// Title returns the example's display title: the spec's description field,
// then its title field, then the de-kebabed name.
func (e Example) Title() string {
	for _, key := range []string{"description", "title"} {
		if v := gjson.GetBytes(e.Spec, key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return strings.Title(strings.ReplaceAll(e.Name, "-", " ")) //nolint:staticcheck
}

// Ref returns the cross-reference label for the example's gallery page.
func (e Example) Ref() string {
	return "gallery_" + e.Name
}

// ImageFile is the output image filename (not a path).
func (e Example) ImageFile() string {
	return e.Name + ".png"
}

// ThumbFile is the thumbnail filename (not a path).
func (e Example) ThumbFile() string {
	return e.Name + "-thumb.png"
}

// PageFile is the generated documentation page filename.
func (e Example) PageFile() string {
	return e.Name + ".rst"
}

type manifestEntry struct {
	Category string        `yaml:"category"`
	Params   GalleryParams `yaml:"galleryParameters"`
}

// LoadDir reads every *.vk.json spec under dir plus the manifest and returns
// the examples sorted by name. A missing manifest is not an error; every
// example just lands in the default category.
func LoadDir(dir string) ([]Example, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read examples dir %s: %w", dir, err)
	}

	manifest := map[string]manifestEntry{}
	if raw, err := os.ReadFile(filepath.Join(dir, ManifestFile)); err == nil {
		if err := yaml.Unmarshal(raw, &manifest); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
		}
	} else {
		log.Debugf("no %s in %s", ManifestFile, dir)
	}

	var result []Example
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SpecExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), SpecExt)

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read example %s: %w", name, err)
		}

		ex := Example{
			Name:     name,
			Category: DefaultCategory,
			Spec:     raw,
		}
		if m, ok := manifest[name]; ok {
			if m.Category != "" {
				ex.Category = m.Category
			}
			ex.Params = m.Params
		}
		result = append(result, ex)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	log.Debugf("loaded %d examples from %s", len(result), dir)
	return result, nil
}

// PopulateOptions control selection and ordering of examples for a page.
type PopulateOptions struct {
	// Category, when non-empty, keeps only matching examples.
	Category string
	// Shuffle reorders deterministically using Seed.
	Shuffle bool
	Seed    int64
	// Limit truncates the list when > 0.
	Limit int
}

// DefaultSeed matches the historical shuffle seed so regenerated pages don't
// churn between builds.
const DefaultSeed = 42

// Populate applies selection options to a name-sorted example list and links
// each survivor to its neighbors for page navigation. The input slice is not
// modified.
func Populate(list []Example, opts PopulateOptions) []Example {
	selected := make([]Example, 0, len(list))
	for _, ex := range list {
		if opts.Category != "" && ex.Category != opts.Category {
			continue
		}
		selected = append(selected, ex)
	}

	if opts.Shuffle {
		seed := opts.Seed
		if seed == 0 {
			seed = DefaultSeed
		}
		rng := rand.New(rand.NewSource(seed)) //nolint:gosec
		rng.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
	}

	if opts.Limit > 0 && opts.Limit < len(selected) {
		selected = selected[:opts.Limit]
	}

	for i := range selected {
		if i > 0 {
			selected[i].PrevRef = selected[i-1].Ref()
		}
		if i < len(selected)-1 {
			selected[i].NextRef = selected[i+1].Ref()
		}
	}

	return selected
}

// Categories returns the distinct categories present, sorted.
func Categories(list []Example) []string {
	seen := map[string]struct{}{}
	for _, ex := range list {
		seen[ex.Category] = struct{}{}
	}
	result := make([]string, 0, len(seen))
	for c := range seen {
		result = append(result, c)
	}
	sort.Strings(result)
	return result
}

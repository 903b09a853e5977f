// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package ledger persists the mapping of generated image filenames to the
// content hash of the chart spec that produced them. The image pass consults
// it to skip renders whose inputs haven't changed.
package ledger

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/natefinch/atomic"
)

// File is the well-known ledger filename inside the image directory.
const File = "_image_hashes.json"

// Ledger maps output image filenames to spec content hashes. An entry
// (filename, H) means the image was last produced from a spec whose hash is H.
type Ledger struct {
	entries map[string]string
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{entries: map[string]string{}}
}

// Load reads the ledger file from dir. A missing or unparsable file degrades
// to an empty ledger so a damaged cache can never fail the pass; it just
// forces full regeneration.
func Load(dir string) *Ledger {
	l := New()

	raw, err := os.ReadFile(filepath.Join(dir, File))
	if err != nil {
		log.Debugf("no ledger in %s, regenerating everything", dir)
		return l
	}

	if err := json.Unmarshal(raw, &l.entries); err != nil {
		log.Warnf("corrupt ledger in %s, regenerating everything: %v", dir, err)
		l.entries = map[string]string{}
	}

	return l
}

// Save writes the ledger wholesale to dir, atomically. An empty ledger is
// never written; a previous non-empty file is left alone in that case.
func (l *Ledger) Save(dir string) error {
	if len(l.entries) == 0 {
		return nil
	}

	raw, err := json.Marshal(l.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	path := filepath.Join(dir, File)
	if err := atomic.WriteFile(path, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("failed to write ledger %s: %w", path, err)
	}

	return nil
}

// Get returns the recorded hash for filename, or "".
func (l *Ledger) Get(filename string) string {
	return l.entries[filename]
}

// Set records the hash for filename.
func (l *Ledger) Set(filename, hash string) {
	l.entries[filename] = hash
}

// Len reports the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Filenames returns the recorded filenames, sorted.
func (l *Ledger) Filenames() []string {
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HashSpec computes the content hash of a JSON chart spec. The document is
// decoded and re-encoded first so that key order doesn't matter: semantically
// equal documents always hash identically. Raw bytes that don't parse as JSON
// are hashed as-is, which is still deterministic.
func HashSpec(raw []byte) string {
	var doc any
	if err := json.Unmarshal(raw, &doc); err == nil {
		if canonical, err := json.Marshal(doc); err == nil {
			raw = canonical
		}
	}
	return encodeKey(raw)
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k []byte) string {
	h := md5.New()
	_, _ = h.Write(k)
	return hex.EncodeToString(h.Sum(nil))
}

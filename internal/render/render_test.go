// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLI_AvailableMissingBinary(t *testing.T) {
	c := &CLI{Binary: "vk2png-definitely-not-installed"}
	assert.False(t, c.Available())
}

func TestCLI_RenderMissingBinary(t *testing.T) {
	c := &CLI{Binary: "vk2png-definitely-not-installed"}

	outcome, err := c.Render(context.Background(),
		[]byte(`{"mark":"bar"}`),
		filepath.Join(t.TempDir(), "out.png"))

	assert.Error(t, err)
	assert.Equal(t, OutcomeRendererDown, outcome)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{name: "abnormal exit", err: &exec.ExitError{}, want: OutcomeRendererDown},
		{name: "binary not found", err: exec.ErrNotFound, want: OutcomeRendererDown},
		{name: "wrapped not found", err: &exec.Error{Name: "vk2png", Err: exec.ErrNotFound}, want: OutcomeRendererDown},
		{name: "other", err: errors.New("boom"), want: OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "ok", OutcomeOK.String())
	assert.Equal(t, "renderer-down", OutcomeRendererDown.String())
	assert.Equal(t, "error", OutcomeError.String())
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/vizkit/vizdocgo/internal/config"
	"github.com/vizkit/vizdocgo/internal/examples"
	"github.com/vizkit/vizdocgo/internal/meta"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2) //nolint:mnd

// browseItem adapts an example for the bubbles list widget.
type browseItem struct {
	ex examples.Example
}

func (i browseItem) Title() string       { return i.ex.Title() }
func (i browseItem) Description() string { return i.ex.Category + "  " + i.ex.Name + examples.SpecExt }
func (i browseItem) FilterValue() string { return i.ex.Name + " " + i.ex.Title() }

// browseModel is the bubbletea model for the example browser. Selecting an
// entry quits and records the selection so the action can print its spec
// path for shell consumption.
type browseModel struct {
	list     list.Model
	selected *examples.Example
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(browseItem); ok {
				m.selected = &item.ex
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	return docStyle.Render(m.list.View())
}

// BrowseCommandAction is the action handler for the "browse" subcommand. It
// opens an interactive picker over the example corpus and prints the chosen
// example's spec path on exit.
func BrowseCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "browse") {
		return nil
	}

	config.Config.Namespace = "browse"

	exs, err := LoadExamples(cmd)
	if err != nil {
		return err
	}

	items := make([]list.Item, 0, len(exs))
	for _, ex := range exs {
		items = append(items, browseItem{ex: ex})
	}

	model := browseModel{
		list: list.New(items, list.NewDefaultDelegate(), 0, 0),
	}
	model.list.Title = "vizkit examples"

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if bm, ok := final.(browseModel); ok && bm.selected != nil {
		fmt.Fprintln(os.Stdout,
			filepath.Join(cmd.String("examples"), bm.selected.Name+examples.SpecExt))
	}

	return nil
}

// BrowseCommandBuilder constructs the cli.Command for "browse".
func BrowseCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	gcb := GalleryCommandBuilder{
		Name:      "browse",
		Usage:     "interactively browse example charts",
		UsageText: `vizdoc browse [options]`,
		Flags:     NewPathFlags("browse"),
		Action:    BrowseCommandAction,
		Meta:      meta,
	}
	return gcb.Build()
}

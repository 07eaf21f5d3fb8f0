package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/duet/internal/shared"
	"github.com/desertthunder/duet/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal interface. A persisted session is
// restored first so the login screen is skipped when a valid token exists.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.sessions.Initialize(); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/duet-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, r.sessions)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

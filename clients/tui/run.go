package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/dohr-michael/todo/internal/tasks"
)

// Run starts the interactive client over store and blocks until the user quits.
func Run(ctx context.Context, store *tasks.Store) error {
	p := tea.NewProgram(New(store), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

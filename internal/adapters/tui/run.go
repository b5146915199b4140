package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Driver runs the display loop against a surface until its context ends.
type Driver interface {
	Run(ctx context.Context) error
}

// Options configures the terminal program.
type Options struct {
	Input io.Reader
	// NoInput detaches the program from stdin.
	NoInput   bool
	Output    io.Writer
	AltScreen bool
}

// Run starts the Bubble Tea program and the driver side by side. Quitting the
// program cancels the driver; a driver failure quits the program.
func Run(ctx context.Context, model tea.Model, newDriver func(Sender) Driver, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	switch {
	case opts.NoInput:
		programOpts = append(programOpts, tea.WithInput(nil))
	case opts.Input != nil:
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	program := tea.NewProgram(model, programOpts...)
	driver := newDriver(program)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run terminal program: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer program.Quit()
		return driver.Run(gctx)
	})

	return g.Wait()
}

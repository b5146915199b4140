package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/lesson-kiosk/internal/adapters/render/plain"
	"github.com/bnema/lesson-kiosk/internal/adapters/tui"
	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type viewOptions struct {
	once   bool
	asJSON bool
	plain  bool
	width  int
}

func addViewFlags(cmd *cobra.Command, opts *viewOptions) {
	cmd.Flags().BoolVar(&opts.once, "once", false, "Fetch once, print the board and exit")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "With --once, print the board as JSON")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print the board as text on every change instead of the full-screen display")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Text width for --plain and --once output (default 100)")
}

// runView shows q in the mode selected by opts until interrupted.
func runView(cmd *cobra.Command, app *app, q domain.Query, opts viewOptions) error {
	if opts.once || opts.asJSON {
		return runOnce(cmd, app, q, application.NewTimeSync(app.client, app.clock, app.logger), opts)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.plain || !isTerminal(cmd.OutOrStdout()) {
		timeSync := application.NewTimeSync(app.client, app.clock, app.logger)
		surface := plain.NewSurface(cmd.OutOrStdout(), app.renderer, opts.width, app.logger)
		return app.newOrchestrator(q, timeSync, surface).Run(ctx)
	}

	// The display owns the terminal from here on.
	if err := app.quietConsole(cmd.ErrOrStderr()); err != nil {
		return err
	}
	timeSync := application.NewTimeSync(app.client, app.clock, app.logger)

	model := tui.NewModel(app.renderer, app.scrollConfig())
	return tui.Run(ctx, model, func(sender tui.Sender) tui.Driver {
		return app.newOrchestrator(q, timeSync, tui.NewProgramSurface(sender))
	}, tui.Options{Output: cmd.OutOrStdout(), AltScreen: true})
}

func runOnce(cmd *cobra.Command, app *app, q domain.Query, timeSync *application.TimeSync, opts viewOptions) error {
	driver := &primeDriver{orchestrator: app.newOrchestrator(q, timeSync, nil)}

	if opts.asJSON {
		driver.board, driver.err = driver.orchestrator.Prime(cmd.Context())
	} else {
		pending := application.RenderBoard(domain.LoadingSnapshot(), q, timeSync.Now(), app.location)
		err := tui.Run(cmd.Context(), tui.NewLoading(app.renderer, pending, opts.width), func(sender tui.Sender) tui.Driver {
			driver.sender = sender
			return driver
		}, tui.Options{Output: cmd.ErrOrStderr(), NoInput: true})
		if err != nil {
			return err
		}
	}

	if err := writeBoardOutput(cmd, app, driver.board, timeSync, opts); err != nil {
		return err
	}

	return driver.err
}

// primeDriver performs the one-shot load and hands the board to the loading
// screen, which then exits.
type primeDriver struct {
	orchestrator *application.Orchestrator
	sender       tui.Sender

	board application.Board
	err   error
}

func (d *primeDriver) Run(ctx context.Context) error {
	d.board, d.err = d.orchestrator.Prime(ctx)
	if d.sender != nil {
		d.sender.Send(tui.BoardMsg{Board: d.board})
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

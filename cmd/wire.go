package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/bnema/lesson-kiosk/internal/adapters/backend"
	"github.com/bnema/lesson-kiosk/internal/adapters/render/board"
	"github.com/bnema/lesson-kiosk/internal/adapters/render/scroll"
	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/config"
	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/bnema/lesson-kiosk/internal/i18n"
	"github.com/bnema/lesson-kiosk/internal/logger"
	"github.com/bnema/lesson-kiosk/internal/ports"
	"github.com/bnema/lesson-kiosk/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the composition root shared by every command. It is filled in by
// load once flags have been parsed.
type app struct {
	viper      *viper.Viper
	configPath string

	cfg      config.Config
	logger   *slog.Logger
	logFile  *os.File
	location *time.Location
	catalog  *i18n.Catalog
	renderer *board.Renderer
	client   *backend.Client
	clock    ports.Clock
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.viper, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.setupLogger(cmd.ErrOrStderr(), false); err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	a.location = loc

	catalog, err := i18n.NewCatalog(cfg.Display.PrimaryLanguage, cfg.Display.SecondaryLanguage)
	if err != nil {
		return fmt.Errorf("wire display languages: %w", err)
	}
	a.catalog = catalog
	a.renderer = board.NewRenderer(catalog, loc)

	if err := a.wireClient(); err != nil {
		return err
	}
	a.clock = ports.SystemClock{}

	a.logger.Debug("Configuration loaded",
		"file", cfg.File,
		"base_url", cfg.Backend.BaseURL,
		"timezone", cfg.Display.Timezone)

	return nil
}

// setupLogger (re)builds the logger. Quiet drops the console handler, which
// the full-screen display needs since it owns the terminal.
func (a *app) setupLogger(console io.Writer, quiet bool) error {
	level, err := logger.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}

	opts := []logger.Option{
		logger.WithLevel(level),
		logger.WithFormat(a.cfg.Log.Format),
		logger.WithConsole(console),
	}
	if quiet {
		opts = append(opts, logger.WithQuiet())
	}

	if a.cfg.Log.File != "" && a.logFile == nil {
		file, err := logger.OpenFile(a.cfg.Log.File)
		if err != nil {
			return err
		}
		a.logFile = file
	}
	if a.logFile != nil {
		opts = append(opts, logger.WithWriter(a.logFile))
	}

	a.logger = logger.New(opts...)
	return nil
}

// wireClient (re)builds the backend client with the current logger.
func (a *app) wireClient() error {
	client, err := backend.New(backend.Config{
		BaseURL:     a.cfg.Backend.BaseURL,
		TimePath:    a.cfg.Backend.TimePath,
		LessonsPath: a.cfg.Backend.LessonsPath,
		FloorPath:   a.cfg.Backend.FloorPath,
		Timeout:     a.cfg.Backend.Timeout,
		UserAgent:   "lesson-kiosk/" + version.Version,
		Location:    a.location,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("wire schedule backend: %w", err)
	}
	a.client = client

	return nil
}

// quietConsole stops console logging for the full-screen display and rewires
// everything that already holds the logger.
func (a *app) quietConsole(console io.Writer) error {
	if err := a.setupLogger(console, true); err != nil {
		return err
	}

	return a.wireClient()
}

func (a *app) close() error {
	if a.logFile == nil {
		return nil
	}

	err := a.logFile.Close()
	a.logFile = nil
	return err
}

func (a *app) cadence() application.Cadence {
	return application.Cadence{
		Tick:                a.cfg.Cadence.Tick,
		LanguageToggleEvery: a.cfg.Cadence.LanguageToggleTicks,
		ResyncEvery:         a.cfg.Cadence.ResyncTicks,
		ReloadEvery:         a.cfg.Cadence.ReloadTicks(),
	}
}

func (a *app) scrollConfig() scroll.Config {
	return scroll.Config{
		Speed: a.cfg.Scroll.Speed,
		Frame: a.cfg.Scroll.Frame,
		Pause: a.cfg.Scroll.Pause,
	}
}

func (a *app) newOrchestrator(q domain.Query, timeSync *application.TimeSync, surface application.Surface) *application.Orchestrator {
	return application.NewOrchestrator(q, a.client, timeSync, surface,
		application.WithCadence(a.cadence()),
		application.WithClock(a.clock),
		application.WithLocation(a.location),
		application.WithLogger(a.logger))
}

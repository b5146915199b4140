// Package config loads kiosk settings from defaults, config.toml, .env and
// KIOSK_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/lesson-kiosk/internal/i18n"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	appDir     = "lesson-kiosk"
	envPrefix  = "KIOSK"
	dotEnvFile = ".env"
)

const (
	KeyBaseURL           = "backend.base_url"
	KeyTimePath          = "backend.time_path"
	KeyLessonsPath       = "backend.lessons_path"
	KeyFloorPath         = "backend.floor_path"
	KeyTimeout           = "backend.timeout"
	KeyTimezone          = "display.timezone"
	KeyPrimaryLanguage   = "display.primary_language"
	KeySecondaryLanguage = "display.secondary_language"
	KeyTick              = "cadence.tick"
	KeyToggleTicks       = "cadence.language_toggle_ticks"
	KeyResyncTicks       = "cadence.resync_ticks"
	KeyReloadAfter       = "cadence.reload_after"
	KeyScrollSpeed       = "scroll.speed"
	KeyScrollFrame       = "scroll.frame"
	KeyScrollPause       = "scroll.pause"
	KeyLogFile           = "log.file"
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"
)

type Config struct {
	Backend Backend
	Display Display
	Cadence Cadence
	Scroll  Scroll
	Log     Log

	// File is the config file that was read, empty when none was found.
	File string
}

type Backend struct {
	BaseURL     string
	TimePath    string
	LessonsPath string
	FloorPath   string
	Timeout     time.Duration
}

type Display struct {
	Timezone          string
	PrimaryLanguage   string
	SecondaryLanguage string
}

type Cadence struct {
	Tick                time.Duration
	LanguageToggleTicks int
	ResyncTicks         int
	// ReloadAfter is the period of the full state reset. Zero disables it.
	ReloadAfter time.Duration
}

type Scroll struct {
	Speed float64
	Frame time.Duration
	Pause time.Duration
}

type Log struct {
	File   string
	Level  string
	Format string
}

func Default() Config {
	return Config{
		Backend: Backend{
			BaseURL:     "http://localhost:5000",
			TimePath:    "/api/time/",
			LessonsPath: "/schedule/lessons",
			FloorPath:   "/schedule/floor",
			Timeout:     10 * time.Second,
		},
		Display: Display{
			Timezone:          "Europe/Rome",
			PrimaryLanguage:   "it",
			SecondaryLanguage: "en",
		},
		Cadence: Cadence{
			Tick:                time.Second,
			LanguageToggleTicks: 15,
			ResyncTicks:         300,
			ReloadAfter:         4 * time.Hour,
		},
		Scroll: Scroll{
			Speed: 1.5,
			Frame: 50 * time.Millisecond,
			Pause: 3 * time.Second,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// DefaultDir is $XDG_CONFIG_HOME/lesson-kiosk or its platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}

	return filepath.Join(base, appDir), nil
}

func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configName+"."+configType), nil
}

// Load resolves the effective configuration into v. An explicit path must
// exist; without one a missing config.toml is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	setDefaults(v, Default())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configType)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault(KeyBaseURL, d.Backend.BaseURL)
	v.SetDefault(KeyTimePath, d.Backend.TimePath)
	v.SetDefault(KeyLessonsPath, d.Backend.LessonsPath)
	v.SetDefault(KeyFloorPath, d.Backend.FloorPath)
	v.SetDefault(KeyTimeout, d.Backend.Timeout)
	v.SetDefault(KeyTimezone, d.Display.Timezone)
	v.SetDefault(KeyPrimaryLanguage, d.Display.PrimaryLanguage)
	v.SetDefault(KeySecondaryLanguage, d.Display.SecondaryLanguage)
	v.SetDefault(KeyTick, d.Cadence.Tick)
	v.SetDefault(KeyToggleTicks, d.Cadence.LanguageToggleTicks)
	v.SetDefault(KeyResyncTicks, d.Cadence.ResyncTicks)
	v.SetDefault(KeyReloadAfter, d.Cadence.ReloadAfter)
	v.SetDefault(KeyScrollSpeed, d.Scroll.Speed)
	v.SetDefault(KeyScrollFrame, d.Scroll.Frame)
	v.SetDefault(KeyScrollPause, d.Scroll.Pause)
	v.SetDefault(KeyLogFile, d.Log.File)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Backend: Backend{
			BaseURL:     strings.TrimSpace(v.GetString(KeyBaseURL)),
			TimePath:    v.GetString(KeyTimePath),
			LessonsPath: v.GetString(KeyLessonsPath),
			FloorPath:   v.GetString(KeyFloorPath),
			Timeout:     v.GetDuration(KeyTimeout),
		},
		Display: Display{
			Timezone:          v.GetString(KeyTimezone),
			PrimaryLanguage:   v.GetString(KeyPrimaryLanguage),
			SecondaryLanguage: v.GetString(KeySecondaryLanguage),
		},
		Cadence: Cadence{
			Tick:                v.GetDuration(KeyTick),
			LanguageToggleTicks: v.GetInt(KeyToggleTicks),
			ResyncTicks:         v.GetInt(KeyResyncTicks),
			ReloadAfter:         v.GetDuration(KeyReloadAfter),
		},
		Scroll: Scroll{
			Speed: v.GetFloat64(KeyScrollSpeed),
			Frame: v.GetDuration(KeyScrollFrame),
			Pause: v.GetDuration(KeyScrollPause),
		},
		Log: Log{
			File:   v.GetString(KeyLogFile),
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		File: v.ConfigFileUsed(),
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.Backend.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s is empty", KeyBaseURL))
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyTimeout))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := i18n.NewCatalog(c.Display.PrimaryLanguage, c.Display.SecondaryLanguage); err != nil {
		errs = append(errs, err)
	}
	if c.Cadence.Tick <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyTick))
	}
	if c.Cadence.LanguageToggleTicks <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyToggleTicks))
	}
	if c.Cadence.ResyncTicks <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyResyncTicks))
	}
	if c.Cadence.ReloadAfter < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyReloadAfter))
	}
	if c.Scroll.Speed <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyScrollSpeed))
	}
	if c.Scroll.Frame <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyScrollFrame))
	}
	if c.Scroll.Pause < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyScrollPause))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%s must be text or json, got %q", KeyLogFormat, c.Log.Format))
	}

	return errors.Join(errs...)
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", KeyTimezone, c.Display.Timezone, err)
	}

	return loc, nil
}

// ReloadTicks converts ReloadAfter into loop ticks, rounding up.
func (c Cadence) ReloadTicks() int {
	if c.ReloadAfter <= 0 || c.Tick <= 0 {
		return 0
	}

	return int((c.ReloadAfter + c.Tick - 1) / c.Tick)
}

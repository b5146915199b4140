package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	configFileMode  = 0o600
	configDirMode   = 0o700
	tempFilePattern = ".config-*.toml.tmp"
)

var ErrConfigExists = errors.New("config file already exists")

type fileSchema struct {
	Backend backendSchema `toml:"backend"`
	Display displaySchema `toml:"display"`
	Cadence cadenceSchema `toml:"cadence"`
	Scroll  scrollSchema  `toml:"scroll"`
	Log     logSchema     `toml:"log"`
}

type backendSchema struct {
	BaseURL     string `toml:"base_url"`
	TimePath    string `toml:"time_path"`
	LessonsPath string `toml:"lessons_path"`
	FloorPath   string `toml:"floor_path"`
	Timeout     string `toml:"timeout"`
}

type displaySchema struct {
	Timezone          string `toml:"timezone"`
	PrimaryLanguage   string `toml:"primary_language"`
	SecondaryLanguage string `toml:"secondary_language"`
}

type cadenceSchema struct {
	Tick                string `toml:"tick"`
	LanguageToggleTicks int    `toml:"language_toggle_ticks"`
	ResyncTicks         int    `toml:"resync_ticks"`
	ReloadAfter         string `toml:"reload_after"`
}

type scrollSchema struct {
	Speed float64 `toml:"speed"`
	Frame string  `toml:"frame"`
	Pause string  `toml:"pause"`
}

type logSchema struct {
	File   string `toml:"file"`
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func toSchema(c Config) fileSchema {
	return fileSchema{
		Backend: backendSchema{
			BaseURL:     c.Backend.BaseURL,
			TimePath:    c.Backend.TimePath,
			LessonsPath: c.Backend.LessonsPath,
			FloorPath:   c.Backend.FloorPath,
			Timeout:     c.Backend.Timeout.String(),
		},
		Display: displaySchema{
			Timezone:          c.Display.Timezone,
			PrimaryLanguage:   c.Display.PrimaryLanguage,
			SecondaryLanguage: c.Display.SecondaryLanguage,
		},
		Cadence: cadenceSchema{
			Tick:                c.Cadence.Tick.String(),
			LanguageToggleTicks: c.Cadence.LanguageToggleTicks,
			ResyncTicks:         c.Cadence.ResyncTicks,
			ReloadAfter:         c.Cadence.ReloadAfter.String(),
		},
		Scroll: scrollSchema{
			Speed: c.Scroll.Speed,
			Frame: c.Scroll.Frame.String(),
			Pause: c.Scroll.Pause.String(),
		},
		Log: logSchema{
			File:   c.Log.File,
			Level:  c.Log.Level,
			Format: c.Log.Format,
		},
	}
}

// Encode renders c as config.toml content.
func Encode(c Config) ([]byte, error) {
	data, err := toml.Marshal(toSchema(c))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return data, nil
}

// WriteFile writes c to path through a temp file and a rename. An existing
// file is only replaced when force is set.
func WriteFile(path string, c Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	data, err := Encode(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}

	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false
	return nil
}

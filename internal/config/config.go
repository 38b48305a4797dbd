package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"

	"github.com/marcus/wsmark/internal/models"
)

const configFile = ".wsmark/config.json"
const lockFile = ".wsmark/config.json.lock"

// Display defaults
const (
	DefaultForeground     = "#FFFFFF"
	DefaultHighlightColor = "#5F5F00"
	DefaultContextLines   = 3
	MaxContextLines       = 50
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether c is a #RGB or #RRGGBB colour
func ValidColor(c string) bool {
	return hexColor.MatchString(c)
}

// Load reads the config from disk
func Load(baseDir string) (*models.Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *models.Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// update runs a load-modify-save cycle under the config flock
func update(baseDir string, fn func(cfg *models.Config) error) error {
	return withConfigLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		if err := fn(cfg); err != nil {
			return err
		}
		return Save(baseDir, cfg)
	})
}

// withConfigLock serializes access to config.json using flock
func withConfigLock(baseDir string, fn func() error) error {
	lockPath := filepath.Join(baseDir, lockFile)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

// Palette returns the configured states, or the defaults when none are set
func Palette(cfg *models.Config) []models.State {
	if cfg == nil || len(cfg.States) == 0 {
		return append([]models.State(nil), models.DefaultStates...)
	}
	return append([]models.State(nil), cfg.States...)
}

// Foreground returns the status text colour
func Foreground(cfg *models.Config) string {
	if cfg == nil || cfg.Foreground == "" {
		return DefaultForeground
	}
	return cfg.Foreground
}

// HighlightColor returns the hotpoint highlight background
func HighlightColor(cfg *models.Config) string {
	if cfg == nil || cfg.HighlightColor == "" {
		return DefaultHighlightColor
	}
	return cfg.HighlightColor
}

// ContextLines returns how many lines to show around a hotpoint
func ContextLines(cfg *models.Config) int {
	if cfg == nil || cfg.ContextLines <= 0 {
		return DefaultContextLines
	}
	return min(cfg.ContextLines, MaxContextLines)
}

// SetState adds a state to the palette, or recolours it if the name exists.
// The first edit copies the default palette so it can be extended.
func SetState(baseDir, name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("state name is empty")
	}
	if !ValidColor(color) {
		return fmt.Errorf("invalid color %q (use #RGB or #RRGGBB)", color)
	}
	return update(baseDir, func(cfg *models.Config) error {
		states := Palette(cfg)
		for i := range states {
			if states[i].Name == name {
				states[i].Color = color
				cfg.States = states
				return nil
			}
		}
		cfg.States = append(states, models.State{Name: name, Color: color})
		return nil
	})
}

// RemoveState drops a state from the palette. The last state cannot be removed.
func RemoveState(baseDir, name string) error {
	return update(baseDir, func(cfg *models.Config) error {
		states := Palette(cfg)
		kept := states[:0]
		for _, s := range states {
			if s.Name != name {
				kept = append(kept, s)
			}
		}
		if len(kept) == len(states) {
			return fmt.Errorf("unknown state: %s", name)
		}
		if len(kept) == 0 {
			return fmt.Errorf("cannot remove the last state")
		}
		cfg.States = kept
		return nil
	})
}

// SettableKeys lists the keys accepted by Set
var SettableKeys = []string{"foreground", "highlight", "context"}

// Set assigns one display setting by key
func Set(baseDir, key, value string) error {
	return update(baseDir, func(cfg *models.Config) error {
		switch key {
		case "foreground", "highlight":
			if !ValidColor(value) {
				return fmt.Errorf("invalid color %q (use #RGB or #RRGGBB)", value)
			}
			if key == "foreground" {
				cfg.Foreground = value
			} else {
				cfg.HighlightColor = value
			}
		case "context":
			var n int
			if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n < 1 || n > MaxContextLines {
				return fmt.Errorf("invalid context %q (1-%d)", value, MaxContextLines)
			}
			cfg.ContextLines = n
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		return nil
	})
}

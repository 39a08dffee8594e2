package config

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"fret-focus/debug"
	"fret-focus/game"
)

// Autosaver writes settings changes back to disk, coalescing bursts of
// changes (holding +, mashing the mode key) into a single write.
type Autosaver struct {
	mu       sync.Mutex
	cfg      *Config
	path     string
	last     game.Settings
	debounce func(func())
}

// NewAutosaver saves cfg to path at most once per quiet period of wait
func NewAutosaver(cfg *Config, path string, wait time.Duration) *Autosaver {
	return &Autosaver{
		cfg:      cfg,
		path:     path,
		last:     cfg.Settings(),
		debounce: debounce.New(wait),
	}
}

// Update records the latest settings; unchanged settings are ignored
func (a *Autosaver) Update(s game.Settings) {
	a.mu.Lock()
	if s == a.last {
		a.mu.Unlock()
		return
	}
	a.last = s
	a.cfg.SetSettings(s)
	a.mu.Unlock()

	a.debounce(a.flush)
}

// Flush writes immediately (called on quit so the last change is not lost)
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg.SaveTo(a.path)
}

func (a *Autosaver) flush() {
	if err := a.Flush(); err != nil {
		debug.Error("config", err, "autosave failed")
		return
	}
	debug.Log("config", "saved %s", a.path)
}

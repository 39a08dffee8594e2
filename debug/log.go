package debug

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	file    *os.File
	logger  zerolog.Logger
	mu      sync.Mutex
	enabled bool
)

// Dir is where the debug log is written
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "fret-focus")
}

// Enable starts debug logging to ~/.config/fret-focus/debug.log.
// The TUI owns stdout, so logs never go to the terminal.
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	os.MkdirAll(Dir(), 0755)

	f, err := os.OpenFile(filepath.Join(Dir(), "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	start(f)
	return nil
}

// EnableWriter logs to an arbitrary writer (used by serve, which has no TUI)
func EnableWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	start(w)
}

// start must be called with mu held
func start(w io.Writer) {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05.000",
		NoColor:    true,
	}
	logger = zerolog.New(out).With().Timestamp().Logger()
	enabled = true
	logger.Debug().Str("cat", "debug").Msg("=== Debug logging started ===")
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
	logger = zerolog.Nop()
}

// Enabled reports whether Log writes anywhere
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}

	logger.Debug().Str("cat", category).Msgf(format, args...)
	if file != nil {
		file.Sync() // flush immediately so we see logs even on crash
	}
}

// Error logs err under category with a message
func Error(category string, err error, msg string) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || err == nil {
		return
	}
	logger.Error().Str("cat", category).Err(err).Msg(msg)
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

// Since is a small helper for timing log lines
func Since(t time.Time) string {
	return time.Since(t).Round(time.Microsecond).String()
}

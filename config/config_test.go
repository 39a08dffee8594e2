package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fret-focus/game"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, game.DefaultSettings(), cfg.Settings())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.SetSettings(game.Settings{
		Count:       5,
		Mode:        game.ModeOctave,
		Accidentals: game.RandomAccidentals,
		Staff:       true,
		Tuning:      game.Tuning{62, 57, 53, 48, 43, 38},
	})
	cfg.AddController(ControllerConfig{PortName: "Fishman TriplePlay", Type: ControllerGuitar, AutoConnect: true, FirstChannel: 1})
	require.NoError(t, cfg.SaveTo(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"mode": "octave"`)
	assert.Contains(t, string(raw), `"accidentals": "random"`)

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, game.Tuning{62, 57, 53, 48, 43, 38}, loaded.Settings().Tuning)
	assert.Len(t, loaded.AutoConnectControllers(), 2)
	require.NotNil(t, loaded.FindController("Fishman TriplePlay"))
	assert.Nil(t, loaded.FindController("nothing"))
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"short tuning", `{"trainer":{"targets":2,"tuning":[64,59]}}`, ErrInvalidTuning},
		{"too many targets", `{"trainer":{"targets":9}}`, ErrInvalidTargets},
		{"no targets", `{"trainer":{"targets":0}}`, ErrInvalidTargets},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0644))

			_, err := LoadFrom(path)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"trainer":{"targets":2,"mode":"lydian"}}`), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestAddControllerReplaces(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddController(ControllerConfig{PortName: "Launchpad X LPX MIDI", Type: ControllerLaunchpadX})
	assert.Len(t, cfg.Controllers, 1)
	assert.Empty(t, cfg.AutoConnectControllers())
}

func TestAutosaver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	saver := NewAutosaver(cfg, path, 10*time.Millisecond)

	// unchanged settings never touch the disk
	saver.Update(cfg.Settings())
	time.Sleep(50 * time.Millisecond)
	assert.NoFileExists(t, path)

	s := cfg.Settings()
	for n := 3; n <= 6; n++ {
		s.Count = n
		saver.Update(s)
	}

	require.Eventually(t, func() bool {
		loaded, err := LoadFrom(path)
		return err == nil && loaded.Trainer.Targets == 6
	}, time.Second, 10*time.Millisecond)
}

func TestAutosaverFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	saver := NewAutosaver(cfg, path, time.Hour)

	s := cfg.Settings()
	s.Hidden = true
	saver.Update(s)
	require.NoError(t, saver.Flush())

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, loaded.Trainer.Hidden)
}

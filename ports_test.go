package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fret-focus/config"
)

func TestAddGuitarPort(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, addGuitarPort(cfg, "TriplePlay Connect", 2))
	c := cfg.FindController("TriplePlay Connect")
	require.NotNil(t, c)
	assert.Equal(t, config.ControllerGuitar, c.Type)
	assert.Equal(t, 2, c.FirstChannel)

	// saving the same port again replaces the entry
	require.NoError(t, addGuitarPort(cfg, "TriplePlay Connect", 0))
	assert.Len(t, cfg.Controllers, 2)
	assert.Equal(t, 0, cfg.FindController("TriplePlay Connect").FirstChannel)

	assert.Error(t, addGuitarPort(cfg, "TriplePlay Connect", 11))
	assert.Error(t, addGuitarPort(cfg, "TriplePlay Connect", -1))
}

func TestPrintPortsMarksKnownControllers(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, addGuitarPort(cfg, "TriplePlay Connect", 0))

	var buf bytes.Buffer
	printPorts(&buf, cfg, []string{"Launchpad X LPX MIDI", "TriplePlay Connect", "IAC Bus 1"}, []string{"Launchpad X LPX MIDI"})

	out := buf.String()
	assert.Contains(t, out, "0: Launchpad X LPX MIDI  [launchpad-x]")
	assert.Contains(t, out, "1: TriplePlay Connect  [guitar]")
	assert.Contains(t, out, "2: IAC Bus 1\n")
}

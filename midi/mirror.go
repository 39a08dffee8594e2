package midi

import (
	"context"
	"sync"
	"time"

	"fret-focus/debug"
)

// LED refresh rate
const ledFPS = 30

// Mirror keeps a controller's LEDs in sync with the latest frame, sending
// only the pads that changed since the previous flush
type Mirror struct {
	mu         sync.Mutex
	controller Controller
	frame      []LEDUpdate
	prev       map[[2]int]LEDUpdate
	dirty      bool
}

func NewMirror() *Mirror {
	return &Mirror{prev: make(map[[2]int]LEDUpdate)}
}

// SetController swaps the output device; the next flush repaints everything
func (m *Mirror) SetController(c Controller) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.controller = c
	m.prev = make(map[[2]int]LEDUpdate)
	m.dirty = true
}

// Show queues a frame for the next flush
func (m *Mirror) Show(frame []LEDUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame = frame
	m.dirty = true
}

// Run flushes at a fixed rate until ctx is done (blocking - run in goroutine)
func (m *Mirror) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / ledFPS)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Flush()
		}
	}
}

// Flush sends the pending frame if anything changed
func (m *Mirror) Flush() {
	m.mu.Lock()
	if !m.dirty || m.controller == nil {
		m.mu.Unlock()
		return
	}
	m.dirty = false
	ctrl := m.controller
	updates := m.diff()
	m.mu.Unlock()

	if len(updates) == 0 {
		return
	}
	debug.LogEvery(10, "led", "flush: batch=%d", len(updates))
	if err := ctrl.SetLEDBatch(updates); err != nil {
		debug.Log("led", "send failed: %v", err)
	}
}

// diff must be called with mu held
func (m *Mirror) diff() []LEDUpdate {
	next := make(map[[2]int]LEDUpdate, len(m.frame))
	var updates []LEDUpdate

	for _, led := range m.frame {
		key := [2]int{led.Row, led.Col}
		next[key] = led

		// Only send if changed
		if prev, ok := m.prev[key]; !ok || prev != led {
			updates = append(updates, led)
		}
	}

	// Clear LEDs that are no longer present
	for key := range m.prev {
		if _, ok := next[key]; !ok {
			updates = append(updates, LEDUpdate{Row: key[0], Col: key[1]})
		}
	}

	m.prev = next
	return updates
}

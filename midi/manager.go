package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"fret-focus/debug"
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// GuitarPort names an input port (case-insensitive substring) that carries a
// mono-mode MIDI guitar
type GuitarPort struct {
	Match        string
	FirstChannel int
}

// DeviceManager handles hot-plug detection of MIDI controllers
type DeviceManager struct {
	controllers map[string]Controller
	channels    map[string]int // guitar id -> first channel
	guitars     []GuitarPort
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
}

// NewDeviceManager creates a new device manager
func NewDeviceManager(guitars ...GuitarPort) *DeviceManager {
	return &DeviceManager{
		controllers: make(map[string]Controller),
		channels:    make(map[string]int),
		guitars:     guitars,
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// FirstChannel returns the high-E channel configured for a guitar
func (dm *DeviceManager) FirstChannel(id string) int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.channels[id]
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

// ListPorts returns port names, giving up after timeout (CoreMIDI can hang)
func ListPorts(timeout time.Duration) (ins, outs []string, ok bool) {
	inPorts, outPorts, ok := getPorts(timeout)
	for _, p := range inPorts {
		ins = append(ins, p.String())
	}
	for _, p := range outPorts {
		outs = append(outs, p.String())
	}
	return ins, outs, ok
}

func getPorts(timeout time.Duration) ([]drivers.In, []drivers.Out, bool) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	select {
	case result := <-ch:
		return result.inPorts, result.outPorts, true
	case <-time.After(timeout):
		return nil, nil, false
	}
}

func (dm *DeviceManager) scan() {
	inPorts, outPorts, ok := getPorts(3 * time.Second)
	if !ok {
		// CoreMIDI is hung - skip this scan
		// User needs to run: sudo killall coreaudiod midiserver
		debug.Log("midi", "port scan timed out")
		return
	}

	// Build map of what we see now
	seenIDs := make(map[string]bool)

	for i, inPort := range inPorts {
		id := inPort.String()
		name := strings.ToLower(id)

		launchpad := isLaunchpad(name)
		guitar, isGuitar := dm.matchGuitar(name)
		if !launchpad && !isGuitar {
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		var ctrl Controller
		var err error
		if launchpad {
			// Find matching output port
			var outPort drivers.Out
			for j, op := range outPorts {
				if strings.ToLower(op.String()) == name {
					outPort = outPorts[j]
					break
				}
			}
			ctrl, err = NewLaunchpadController(id, inPorts[i], outPort)
		} else {
			ctrl, err = NewGuitarController(id, inPorts[i])
		}
		if err != nil {
			debug.Log("midi", "open %s: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = ctrl
		if isGuitar {
			dm.channels[id] = guitar.FirstChannel
		}
		dm.mu.Unlock()

		debug.Log("midi", "connected %s (%s)", id, ctrl.Type())
		dm.events <- DeviceEvent{
			Type:       DeviceConnected,
			Controller: ctrl,
			ID:         id,
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		delete(dm.channels, id)
		debug.Log("midi", "disconnected %s", id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) matchGuitar(name string) (GuitarPort, bool) {
	for _, g := range dm.guitars {
		if g.Match != "" && strings.Contains(name, strings.ToLower(g.Match)) {
			return g, true
		}
	}
	return GuitarPort{}, false
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}

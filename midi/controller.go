package midi

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerLaunchpad
	ControllerGuitar
)

func (t ControllerType) String() string {
	switch t {
	case ControllerLaunchpad:
		return "launchpad"
	case ControllerGuitar:
		return "guitar"
	}
	return "unknown"
}

// PadEvent is sent when a pad/button is pressed on a grid controller
type PadEvent struct {
	Row, Col int
	Velocity uint8
}

// NoteEvent is sent when a string is plucked on a MIDI guitar
type NoteEvent struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
}

// LEDUpdate sets one pad colour
type LEDUpdate struct {
	Row, Col int
	Color    [3]uint8
	Channel  uint8 // ChannelStatic, ChannelFlash or ChannelPulse
}

// Controller is a connected MIDI device
type Controller interface {
	ID() string
	Type() ControllerType

	// SetLEDBatch is a no-op for devices without lights
	SetLEDBatch(updates []LEDUpdate) error

	Close() error
}

// PadSource is a controller with a pad grid (Launchpad)
type PadSource interface {
	PadEvents() <-chan PadEvent
}

// NoteSource is a controller that plays notes (MIDI guitar)
type NoteSource interface {
	NoteEvents() <-chan NoteEvent
}

// Channel modes for LED updates
const (
	ChannelStatic uint8 = 0 // solid color
	ChannelFlash  uint8 = 1 // flashing A/B alternating
	ChannelPulse  uint8 = 2 // pulsing (fades)
)

package core

import "fmt"

// Command is a discrete input event consumed by the simulation.
// Input sources (keyboard, window, pilots) translate their raw events
// into commands; the simulation never sees key codes.
type Command int

const (
	CommandNone        Command = iota
	CommandFlap                // Space, Up, W - propel the body upward
	CommandTogglePause         // P, Esc - pause or resume
	CommandRestart             // R - reinitialize the world
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandFlap:
		return "flap"
	case CommandTogglePause:
		return "pause"
	case CommandRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// ParseCommand is the inverse of Command.String.
func ParseCommand(s string) (Command, error) {
	switch s {
	case "none":
		return CommandNone, nil
	case "flap":
		return CommandFlap, nil
	case "pause":
		return CommandTogglePause, nil
	case "restart":
		return CommandRestart, nil
	}
	return CommandNone, fmt.Errorf("core: unknown command %q", s)
}

package commands

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers into a dispatcher or scheduler.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

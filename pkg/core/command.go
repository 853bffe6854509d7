package core

import "github.com/go-loom/loom/pkg/platform"

// Command is an opaque message a widget submits during event handling to
// communicate outside the tree. The framework does not interpret the
// payload.
type Command struct {
	// Selector names the action, e.g. "file.open".
	Selector string
	// Payload carries optional user-defined arguments.
	Payload any
}

// TargetedCommand is a command addressed to a window.
type TargetedCommand struct {
	Target  platform.WindowID
	Command Command
}

// CommandQueue is the ordered, per-pass queue of submitted commands. The
// host drains it strictly after all event handling for an event completes
// and strictly before the following update pass.
type CommandQueue struct {
	items []TargetedCommand
}

// Push appends a command; submission order is preserved.
func (q *CommandQueue) Push(target platform.WindowID, cmd Command) {
	q.items = append(q.items, TargetedCommand{Target: target, Command: cmd})
}

// Drain removes and returns all queued commands in submission order.
func (q *CommandQueue) Drain() []TargetedCommand {
	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int {
	return len(q.items)
}

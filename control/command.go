// Package control defines lightweight command messages used by the UI and
// the ticker goroutine to request actions from the application command
// loop. The command-loop centralizes all session mutations to avoid races
// and to simplify synchronization.
package control

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdToggleRun CommandType = iota
	CmdToggleBreak
	CmdFastForward
	CmdRewind
	CmdReset
	CmdTick
)

// Command is the message sent to AppManager.commandLoop. The optional Reply
// channel can be used by the commandLoop to confirm completion back to the
// sender (useful for keeping UI state in sync).
type Command struct {
	Type  CommandType
	Reply chan error // optional reply channel
}

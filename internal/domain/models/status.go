package models

// TerminalStatus is the terminal's lifecycle state. It drives default
// screen selection in Terminal.SetStatus.
type TerminalStatus int

const (
	StatusOffline TerminalStatus = iota
	StatusConnected
	StatusInService
	StatusOutOfService
	StatusProcessingCard
)

func (s TerminalStatus) String() string {
	switch s {
	case StatusOffline:
		return "Offline"
	case StatusConnected:
		return "Connected"
	case StatusInService:
		return "InService"
	case StatusOutOfService:
		return "OutOfService"
	case StatusProcessingCard:
		return "ProcessingCard"
	default:
		return "Unknown"
	}
}

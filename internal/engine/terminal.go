// Package engine is the terminal's single-threaded core: the state
// interpreter, host message dispatcher, and buffer/FDK/opcode model.
// Every exported method on Terminal is meant to be called from one driver
// thread, run to completion before the next call begins; nothing here
// uses a goroutine or a mutex.
package engine

import (
	"atmterm/internal/domain/models"
	"atmterm/internal/domain/ports"
)

const lunoSettingsKey = "host.luno"

// Capabilities is the collaborator set a Terminal is constructed with.
// None of these may be nil.
type Capabilities struct {
	Screens  ports.Screens
	States   ports.States
	FITs     ports.FITs
	Crypto   ports.Crypto
	Display  ports.Display
	Hardware ports.Hardware
	Settings ports.Settings
	Logger   ports.Logger
}

// Terminal is the ATM core: the state interpreter, host message
// dispatcher, and the buffer/FDK/opcode/counter model they share. It has
// no public fields; every entry point is one of four: ReadCard,
// ProcessPinpadButtonPressed and ProcessFDKButtonPressed below, and
// ProcessHostMessage in dispatcher.go.
type Terminal struct {
	caps Capabilities

	status     models.TerminalStatus
	configID   string
	hostConfig *models.HostConfig
	counters   models.SupplyCounters

	card *models.Card

	buffers *BufferSet
	fdks    *FDKSet
	mcn     *MCNCounter

	currentState   string
	buttonsPressed []string

	interactiveTransaction bool
	transactionRequest     *models.TransactionRequest
}

// NewTerminal wires a Terminal from its collaborators and brings it to its
// boot-time state: buffers cleared, FDKs cleared, config ID restored from
// settings, and supply counters set to their static defaults.
func NewTerminal(caps Capabilities) *Terminal {
	t := &Terminal{
		caps:       caps,
		hostConfig: models.NewHostConfig(),
		buffers:    NewBufferSet(),
		fdks:       NewFDKSet(),
	}
	t.mcn = NewMCNCounter(caps.Settings)
	t.InitCounters()
	return t
}

const defaultLuno = "009"

func (t *Terminal) lunoOrDefault() string {
	if v, ok := t.caps.Settings.Get(lunoSettingsKey); ok {
		return v
	}
	return defaultLuno
}

// Card returns the currently-read card, or nil if none is present.
func (t *Terminal) Card() *models.Card { return t.card }

// Buffers exposes the terminal's buffer set for inspection.
func (t *Terminal) Buffers() *BufferSet { return t.buffers }

// FDKs exposes the active-FDK set for inspection.
func (t *Terminal) FDKs() *FDKSet { return t.fdks }

// CurrentState returns the state number the interpreter last settled on.
func (t *Terminal) CurrentState() string { return t.currentState }

// HostConfig returns the terminal's enhanced configuration.
func (t *Terminal) HostConfig() *models.HostConfig { return t.hostConfig }

// TransactionRequest returns the most recently assembled transaction
// request, or nil if none has been built since the last time it was taken.
func (t *Terminal) TransactionRequest() *models.TransactionRequest { return t.transactionRequest }

// TakeTransactionRequest returns and clears the most recently assembled
// transaction request.
func (t *Terminal) TakeTransactionRequest() *models.TransactionRequest {
	req := t.transactionRequest
	t.transactionRequest = nil
	return req
}

// ReadCard is a public entry point: parses a Track-2 swipe, and on
// success drives the interpreter from the current state so a state
// awaiting a card read can proceed. A parse failure takes the terminal
// out of service.
func (t *Terminal) ReadCard(track2 string) {
	card, err := models.ParseCard(track2)
	if err != nil {
		t.caps.Logger.Error("read card: %v", err)
		t.SetStatus(models.StatusOutOfService)
		return
	}
	t.card = card
	t.drive(t.currentState)
}

// ProcessPinpadButtonPressed is a public entry point: queues a digit or
// "enter" and drives the interpreter.
func (t *Terminal) ProcessPinpadButtonPressed(key string) {
	t.buttonsPressed = append(t.buttonsPressed, key)
	t.drive(t.currentState)
}

// ProcessFDKButtonPressed is a public entry point: queues an FDK letter
// press and drives the interpreter.
func (t *Terminal) ProcessFDKButtonPressed(letter byte) {
	t.buttonsPressed = append(t.buttonsPressed, string(upperLetter(letter)))
	t.drive(t.currentState)
}

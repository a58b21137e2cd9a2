package engine

import (
	"testing"

	"atmterm/internal/domain/models"
)

func cardReadPINAmountStates() *fakeStates {
	s := newFakeStates()
	s.table["000"] = &models.State{
		Number:       "000",
		ScreenNumber: "100",
		Kind:         models.CardRead{GoodReadNextState: "001"},
	}
	s.table["001"] = &models.State{
		Number:       "001",
		ScreenNumber: "101",
		Kind:         models.PINEntry{RemotePinCheckNextState: "002"},
	}
	s.table["002"] = &models.State{
		Number:       "002",
		ScreenNumber: "102",
		Kind: models.AmountEntry{FDKNextStates: map[byte]string{
			'A': "003", 'B': "004", 'C': "255", 'D': "255",
		}},
	}
	return s
}

func TestTerminalCardReadToPINEntry(t *testing.T) {
	term, disp := newTestTerminal(cardReadPINAmountStates())
	term.currentState = "000"

	term.ReadCard(";4000000000000000=25121011234567890")

	if term.CurrentState() != "001" {
		t.Fatalf("CurrentState() = %q, want %q", term.CurrentState(), "001")
	}
	if disp.screenNumber != "101" {
		t.Errorf("screenNumber = %q, want %q", disp.screenNumber, "101")
	}
	if term.Card() == nil || term.Card().Number != "4000000000000000" {
		t.Errorf("Card() = %+v", term.Card())
	}
}

func TestTerminalCardReadParseFailureGoesOutOfService(t *testing.T) {
	term, _ := newTestTerminal(cardReadPINAmountStates())
	term.currentState = "000"

	term.ReadCard("not-a-track2")

	if term.Status() != models.StatusOutOfService {
		t.Errorf("Status() = %v, want OutOfService", term.Status())
	}
	if term.Card() != nil {
		t.Error("expected no card on parse failure")
	}
}

func TestTerminalPINEntryHappyPath(t *testing.T) {
	term, disp := newTestTerminal(cardReadPINAmountStates())
	term.currentState = "000"
	term.ReadCard(";4000000000000000=25121011234567890")

	for _, digit := range []string{"1", "1", "1", "1"} {
		term.ProcessPinpadButtonPressed(digit)
	}

	if term.Buffers().PIN != "1111" {
		t.Errorf("PIN = %q, want 1111", term.Buffers().PIN)
	}
	if term.CurrentState() != "002" {
		t.Fatalf("CurrentState() = %q, want %q", term.CurrentState(), "002")
	}
	if disp.screenNumber != "102" {
		t.Errorf("screenNumber = %q, want %q", disp.screenNumber, "102")
	}
}

func TestTerminalAmountEntryDigitShifting(t *testing.T) {
	term, _ := newTestTerminal(cardReadPINAmountStates())
	term.currentState = "000"
	term.ReadCard(";4000000000000000=25121011234567890")
	for _, digit := range []string{"1", "1", "1", "1"} {
		term.ProcessPinpadButtonPressed(digit)
	}
	if term.CurrentState() != "002" {
		t.Fatalf("setup failed: CurrentState() = %q", term.CurrentState())
	}

	for _, digit := range []string{"1", "0", "0"} {
		term.ProcessPinpadButtonPressed(digit)
	}

	if got := term.Buffers().Amount; got != "000000000100" {
		t.Errorf("Amount = %q, want %q", got, "000000000100")
	}
	if term.CurrentState() != "002" {
		t.Errorf("CurrentState() = %q, want to stay at 002", term.CurrentState())
	}
}

func TestTerminalAmountEntryFDKExit(t *testing.T) {
	term, _ := newTestTerminal(cardReadPINAmountStates())
	term.currentState = "000"
	term.ReadCard(";4000000000000000=25121011234567890")
	for _, digit := range []string{"1", "1", "1", "1"} {
		term.ProcessPinpadButtonPressed(digit)
	}

	term.ProcessFDKButtonPressed('A')

	if term.CurrentState() != "003" {
		t.Errorf("CurrentState() = %q, want %q", term.CurrentState(), "003")
	}
}

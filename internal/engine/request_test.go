package engine

import (
	"testing"
	"time"

	"atmterm/internal/domain/models"
)

func TestTimeVariantNumber(t *testing.T) {
	now := time.Date(2026, 8, 6, 13, 45, 0, 0, time.UTC)
	if got := timeVariantNumber(now); got != "20260806" {
		t.Errorf("timeVariantNumber() = %q, want 20260806", got)
	}
}

func TestAssembleTransactionRequestFlags(t *testing.T) {
	term, _ := newTestTerminal(newFakeStates())
	term.card = &models.Card{Number: "4000000000000000", Track2: ";4000000000000000=25121011234567890"}
	term.buffers.PIN = "1234"
	term.buffers.Amount = "000000000100"
	term.buffers.B = "bufferB"
	term.buffers.Opcode.LoadFromState("01")

	req := term.assembleTransactionRequest(models.TransactionRequestState{
		SendTrack2:        "001",
		SendOperationCode: "001",
		SendAmountData:    "001",
		SendPinBuffer:     "001",
		SendBufferBC:      "001",
	})

	if req.Track2 == nil || *req.Track2 != term.card.Track2 {
		t.Errorf("Track2 = %v", req.Track2)
	}
	if req.OperationCode == nil || *req.OperationCode != "01      " {
		t.Errorf("OperationCode = %v", req.OperationCode)
	}
	if req.AmountData == nil || *req.AmountData != "000000000100" {
		t.Errorf("AmountData = %v", req.AmountData)
	}
	if req.PinBlock == nil || *req.PinBlock != "PINBLOCK:1234:4000000000000000" {
		t.Errorf("PinBlock = %v", req.PinBlock)
	}
	if req.BufferB == nil || *req.BufferB != "bufferB" {
		t.Errorf("BufferB = %v", req.BufferB)
	}
	if req.BufferC != nil {
		t.Errorf("BufferC = %v, want nil", req.BufferC)
	}
}

func TestAssembleTransactionRequestOmitsUnflaggedFields(t *testing.T) {
	term, _ := newTestTerminal(newFakeStates())
	term.card = &models.Card{Number: "4000000000000000"}

	req := term.assembleTransactionRequest(models.TransactionRequestState{
		SendTrack2:        "000",
		SendOperationCode: "000",
		SendAmountData:    "000",
		SendPinBuffer:     "000",
		SendBufferBC:      "000",
	})

	if req.Track2 != nil || req.OperationCode != nil || req.AmountData != nil || req.PinBlock != nil {
		t.Errorf("expected all optional fields omitted, got %+v", req)
	}
	if req.BufferB != nil || req.BufferC != nil {
		t.Errorf("expected no buffers sent, got B=%v C=%v", req.BufferB, req.BufferC)
	}
}

func TestAssembleTransactionRequestMissingPINOmitsBlock(t *testing.T) {
	term, _ := newTestTerminal(newFakeStates())
	term.card = &models.Card{Number: "4000000000000000"}
	// PIN buffer left empty.

	req := term.assembleTransactionRequest(models.TransactionRequestState{SendPinBuffer: "001"})
	if req.PinBlock != nil {
		t.Errorf("PinBlock = %v, want nil when PIN buffer is empty", req.PinBlock)
	}
}

func TestAssembleTransactionRequestDefaultsLunoWhenUnset(t *testing.T) {
	term, _ := newTestTerminal(newFakeStates())

	req := term.assembleTransactionRequest(models.TransactionRequestState{})
	if req.Luno != "009" {
		t.Errorf("Luno = %q, want 009 when host.luno was never set", req.Luno)
	}
}

func TestAssembleTransactionRequestSendsBothBuffers(t *testing.T) {
	term, _ := newTestTerminal(newFakeStates())
	term.buffers.B = "bVal"
	term.buffers.C = "cVal"

	req := term.assembleTransactionRequest(models.TransactionRequestState{SendBufferBC: "003"})
	if req.BufferB == nil || *req.BufferB != "bVal" {
		t.Errorf("BufferB = %v", req.BufferB)
	}
	if req.BufferC == nil || *req.BufferC != "cVal" {
		t.Errorf("BufferC = %v", req.BufferC)
	}
}

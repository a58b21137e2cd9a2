package engine

import "strings"

// BufferKind names the buffers BufferSet.Get can read.
type BufferKind string

const (
	KindPIN    BufferKind = "pin"
	KindB      BufferKind = "B"
	KindC      BufferKind = "C"
	KindOpcode BufferKind = "opcode"
	KindAmount BufferKind = "amount"
)

// BufferSet holds PIN, B, C, Amount, FDK-buffer storage and the mutation
// rules around it. Every setter that could exceed a documented cap is a
// no-op on overflow rather than a truncation or an error.
type BufferSet struct {
	PIN       string
	B         string
	C         string
	Amount    string
	FDKBuffer string
	Opcode    *OpcodeBuffer
}

// NewBufferSet returns a BufferSet in its boot-time state.
func NewBufferSet() *BufferSet {
	bs := &BufferSet{Opcode: NewOpcodeBuffer()}
	bs.InitBuffers()
	return bs
}

// InitBuffers clears PIN, B, C, FDKBuffer, resets Amount to twelve ASCII
// zeros, and re-initializes Opcode. Called at boot, on Go in-service, on Go
// out-of-service, and on state A entry.
func (bs *BufferSet) InitBuffers() {
	bs.PIN = ""
	bs.B = ""
	bs.C = ""
	bs.FDKBuffer = ""
	bs.Amount = strings.Repeat("0", 12)
	bs.Opcode.Init()
}

// Get returns the current value of the named buffer.
func (bs *BufferSet) Get(kind BufferKind) string {
	switch kind {
	case KindPIN:
		return bs.PIN
	case KindB:
		return bs.B
	case KindC:
		return bs.C
	case KindOpcode:
		return bs.Opcode.Get()
	case KindAmount:
		return bs.Amount
	default:
		return ""
	}
}

// SetAmount implements the right-shift/append rule: digits enter from the
// right, existing digits shift left, and the result is always exactly 12
// characters, left-padded with '0'.
func (bs *BufferSet) SetAmount(digits string) {
	combined := bs.Amount + digits
	switch {
	case len(combined) > 12:
		combined = combined[len(combined)-12:]
	case len(combined) < 12:
		combined = strings.Repeat("0", 12-len(combined)) + combined
	}
	bs.Amount = combined
}

// AppendPIN appends digits to PIN unless doing so would exceed max. Returns
// whether the digits were applied.
func (bs *BufferSet) AppendPIN(digits string, max int) bool {
	if len(bs.PIN)+len(digits) > max {
		return false
	}
	bs.PIN += digits
	return true
}

// SetB replaces B unless s exceeds the 32-character cap.
func (bs *BufferSet) SetB(s string) bool {
	if len(s) > 32 {
		return false
	}
	bs.B = s
	return true
}

// AppendB appends to B unless doing so would exceed the 32-character cap.
func (bs *BufferSet) AppendB(s string) bool {
	if len(bs.B)+len(s) > 32 {
		return false
	}
	bs.B += s
	return true
}

// ClearB empties B.
func (bs *BufferSet) ClearB() { bs.B = "" }

// SetC replaces C unless s exceeds the 32-character cap.
func (bs *BufferSet) SetC(s string) bool {
	if len(s) > 32 {
		return false
	}
	bs.C = s
	return true
}

// AppendC appends to C unless doing so would exceed the 32-character cap.
func (bs *BufferSet) AppendC(s string) bool {
	if len(bs.C)+len(s) > 32 {
		return false
	}
	bs.C += s
	return true
}

// ClearC empties C.
func (bs *BufferSet) ClearC() { bs.C = "" }

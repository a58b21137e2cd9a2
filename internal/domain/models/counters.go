package models

import (
	"math/big"
	"strings"
)

// SupplyCounters are fixed-width decimal strings. Widths never shrink;
// arithmetic on any field is modulo-width with zero-pad left.
type SupplyCounters struct {
	TSN                    string // 4
	TransactionCount       string // 7
	NotesInCassettes       string // 20
	NotesRejected          string // 20
	NotesDispensed         string // 20
	LastTrxnNotesDispensed string // 20
	CardCaptured           string // 5
	EnvelopesDeposited     string // 5
	CameraFilmRemaining    string // 5
	LastEnvelopeSerial     string // 5
}

// DefaultSupplyCounters returns the static, all-zero default counter set
// installed by Terminal.InitCounters.
func DefaultSupplyCounters() SupplyCounters {
	return SupplyCounters{
		TSN:                    zeroPad("", 4),
		TransactionCount:       zeroPad("", 7),
		NotesInCassettes:       zeroPad("", 20),
		NotesRejected:          zeroPad("", 20),
		NotesDispensed:         zeroPad("", 20),
		LastTrxnNotesDispensed: zeroPad("", 20),
		CardCaptured:           zeroPad("", 5),
		EnvelopesDeposited:     zeroPad("", 5),
		CameraFilmRemaining:    zeroPad("", 5),
		LastEnvelopeSerial:     zeroPad("", 5),
	}
}

// AddNotesDispensed increments NotesDispensed by n, modulo its fixed width,
// and re-pads left with zeros. n is non-negative; the field's width never
// shrinks, and on overflow its value wraps past zero.
func (c *SupplyCounters) AddNotesDispensed(n int) {
	c.NotesDispensed = addModWidth(c.NotesDispensed, n, 20)
}

// addModWidth adds delta to current (a decimal string, possibly wider than
// an int64 for the 20-digit fields) and truncates the result to its low
// width digits, left-zero-padded. That truncation is the "modulo-width"
// rule, equivalent to arithmetic mod 10^width without depending on an
// integer type wide enough to hold 10^20.
func addModWidth(current string, delta int, width int) string {
	v := new(big.Int)
	if _, ok := v.SetString(current, 10); !ok {
		v.SetInt64(0)
	}
	v.Add(v, big.NewInt(int64(delta)))
	if v.Sign() < 0 {
		mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(width)), nil)
		v.Mod(v, mod)
	}
	return zeroPad(v.String(), width)
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}

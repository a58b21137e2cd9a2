// Package fit implements atmterm/internal/domain/ports.FITs: card-number
// range lookup for institution id and PIN-length policy, loaded from the
// same XML-tagged wire style statetable uses.
package fit

import (
	"encoding/xml"
	"math/big"
	"sync"

	"atmterm/internal/domain/ports"
)

type wireRange struct {
	Low         string `xml:"LOW,attr"`
	High        string `xml:"HIGH,attr"`
	Institution int    `xml:"INSTITUTION,attr"`
	MaxPIN      int    `xml:"MAX_PIN,attr"`
}

type wireTable struct {
	XMLName xml.Name    `xml:"FITTable"`
	Ranges  []wireRange `xml:"Range"`
}

type entry struct {
	low, high   *big.Int
	width       int
	institution int
	maxPIN      int
}

// Table is an in-memory FIT: an ordered list of PAN-prefix ranges.
type Table struct {
	mu      sync.RWMutex
	entries []entry
	logger  ports.Logger
}

// NewTable returns an empty Table.
func NewTable(logger ports.Logger) *Table {
	return &Table{logger: logger}
}

// Add implements ports.FITs.
func (t *Table) Add(data []byte) bool {
	var wire wireTable
	if err := xml.Unmarshal(data, &wire); err != nil {
		t.logger.Error("fit: parse: %v", err)
		return false
	}

	parsed := make([]entry, 0, len(wire.Ranges))
	for _, r := range wire.Ranges {
		if len(r.Low) != len(r.High) {
			t.logger.Error("fit: range %s..%s: mismatched widths", r.Low, r.High)
			return false
		}
		low, ok := new(big.Int).SetString(r.Low, 10)
		if !ok {
			t.logger.Error("fit: range low %q not numeric", r.Low)
			return false
		}
		high, ok := new(big.Int).SetString(r.High, 10)
		if !ok {
			t.logger.Error("fit: range high %q not numeric", r.High)
			return false
		}
		parsed = append(parsed, entry{
			low: low, high: high, width: len(r.Low),
			institution: r.Institution, maxPIN: r.MaxPIN,
		})
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = parsed
	return true
}

func (t *Table) lookup(pan string) (entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, e := range t.entries {
		if len(pan) < e.width {
			continue
		}
		prefix, ok := new(big.Int).SetString(pan[:e.width], 10)
		if !ok {
			continue
		}
		if prefix.Cmp(e.low) >= 0 && prefix.Cmp(e.high) <= 0 {
			return e, true
		}
	}
	return entry{}, false
}

// GetInstitutionByCardNumber implements ports.FITs.
func (t *Table) GetInstitutionByCardNumber(pan string) (int, bool) {
	e, ok := t.lookup(pan)
	if !ok {
		return 0, false
	}
	return e.institution, true
}

// GetMaxPINLength implements ports.FITs.
func (t *Table) GetMaxPINLength(pan string) (int, bool) {
	e, ok := t.lookup(pan)
	if !ok || e.maxPIN <= 0 {
		return 0, false
	}
	return e.maxPIN, true
}

package engine

import "testing"

func TestMCNCounterFirstEmissionWithNoStoredValue(t *testing.T) {
	m := NewMCNCounter(newFakeSettings())
	if got := m.Next(); got != 0x31 {
		t.Errorf("Next() = %#x, want 0x31", got)
	}
}

func TestMCNCounterAdvancesAndPersists(t *testing.T) {
	settings := newFakeSettings()
	m := NewMCNCounter(settings)

	first := m.Next()
	second := m.Next()
	if second != first+1 {
		t.Errorf("Next() second call = %#x, want %#x", second, first+1)
	}
	stored, ok := settings.Get(mcnSettingsKey)
	if !ok || len(stored) != 1 || stored[0] != second {
		t.Errorf("expected settings to persist %#x, got %q", second, stored)
	}
}

func TestMCNCounterWrapsAtUpperBound(t *testing.T) {
	settings := newFakeSettings()
	settings.Set(mcnSettingsKey, string(rune(0x7E)))
	m := NewMCNCounter(settings)

	if got := m.Next(); got != 0x31 {
		t.Errorf("Next() after 0x7E = %#x, want 0x31", got)
	}
}

func TestMCNCounterTreatsOutOfRangeStoredValueAsUnset(t *testing.T) {
	settings := newFakeSettings()
	settings.Set(mcnSettingsKey, string(rune(0x20)))
	m := NewMCNCounter(settings)

	if got := m.Next(); got != 0x31 {
		t.Errorf("Next() with out-of-range stored value = %#x, want 0x31", got)
	}
}

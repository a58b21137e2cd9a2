package engine

import "atmterm/internal/domain/models"

const configIDSettingsKey = "config_id"

// SetStatus transitions the terminal's lifecycle status. Going
// offline or out of service also forces the display back to the
// configured initial screen.
func (t *Terminal) SetStatus(s models.TerminalStatus) {
	t.status = s
	if s == models.StatusOffline || s == models.StatusOutOfService {
		screen := t.hostConfig.InitialScreenNumber
		if screen == "" {
			screen = "001"
		}
		t.caps.Display.SetScreenByNumber(screen)
	}
}

// Status returns the terminal's current lifecycle status.
func (t *Terminal) Status() models.TerminalStatus { return t.status }

// SetConfigID stores the host-assigned configuration ID and persists it.
func (t *Terminal) SetConfigID(id string) {
	t.configID = id
	if err := t.caps.Settings.Set(configIDSettingsKey, id); err != nil {
		t.caps.Logger.Warn("set config id: %v", err)
	}
}

// ConfigID returns the current configuration ID.
func (t *Terminal) ConfigID() string { return t.configID }

// InitCounters is the boot-time step that restores the configuration ID from
// settings (default "0000" if unset) and resets supply counters to their
// static defaults.
func (t *Terminal) InitCounters() {
	if v, ok := t.caps.Settings.Get(configIDSettingsKey); ok && v != "" {
		t.configID = v
	} else {
		t.configID = "0000"
	}
	t.counters = models.DefaultSupplyCounters()
}

// SupplyCounters returns a copy of the current supply counters.
func (t *Terminal) SupplyCounters() models.SupplyCounters { return t.counters }

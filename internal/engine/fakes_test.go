package engine

import "atmterm/internal/domain/models"

// fakeLogger discards everything; tests that only care about behavior, not
// log output, use it to satisfy ports.Logger.
type fakeLogger struct{}

func (fakeLogger) Debug(msg string, args ...interface{}) {}
func (fakeLogger) Info(msg string, args ...interface{})  {}
func (fakeLogger) Warn(msg string, args ...interface{})  {}
func (fakeLogger) Error(msg string, args ...interface{}) {}
func (fakeLogger) Fatal(msg string, args ...interface{}) {}
func (fakeLogger) Printf(format string, args ...interface{}) {}

// fakeSettings is an in-memory ports.Settings, mirroring the driver
// package's fake_driver.go style of one trivial fake per collaborator.
type fakeSettings struct {
	values map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]string)}
}

func (f *fakeSettings) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeSettings) Set(key, value string) error {
	f.values[key] = value
	return nil
}

// fakeStates is an in-memory ports.States backed by a plain map, loaded
// directly in test code rather than through the XML wire format.
type fakeStates struct {
	table map[string]*models.State
}

func newFakeStates() *fakeStates { return &fakeStates{table: make(map[string]*models.State)} }

func (f *fakeStates) Add(stateData []byte) bool { return true }

func (f *fakeStates) Get(number string) (*models.State, bool) {
	s, ok := f.table[number]
	return s, ok
}

// fakeScreens is a no-op ports.Screens.
type fakeScreens struct{}

func (fakeScreens) Add(screenData []byte) bool { return true }

func (fakeScreens) ParseDynamicScreenData(raw []byte) (*models.Screen, error) {
	return &models.Screen{Raw: raw}, nil
}

func (fakeScreens) ParseScreenDisplayUpdate(raw []byte) (*models.ScreenDisplayUpdate, error) {
	return &models.ScreenDisplayUpdate{Raw: raw}, nil
}

// fakeFITs is a one-entry ports.FITs: every PAN resolves to institution 0
// with a four-digit max PIN length, unless overridden.
type fakeFITs struct {
	institution int
	maxPIN      int
	found       bool
}

func newFakeFITs() *fakeFITs { return &fakeFITs{maxPIN: 4, found: true} }

func (f *fakeFITs) Add(data []byte) bool { return true }

func (f *fakeFITs) GetInstitutionByCardNumber(pan string) (int, bool) {
	return f.institution, f.found
}

func (f *fakeFITs) GetMaxPINLength(pan string) (int, bool) {
	return f.maxPIN, f.found
}

// fakeCrypto is a ports.Crypto that returns a deterministic, recognizable
// pin block instead of doing any real encryption.
type fakeCrypto struct{}

func (fakeCrypto) GetEncryptedPIN(clearPIN, pan string) (string, error) {
	return "PINBLOCK:" + clearPIN + ":" + pan, nil
}

func (fakeCrypto) SetCommsKey(data []byte, length int) bool { return true }

// fakeDisplay is a ports.Display that just remembers the last screen
// number/text it was asked to show.
type fakeDisplay struct {
	screenNumber string
	screen       *models.Screen
	inserted     []string
}

func (f *fakeDisplay) SetScreen(screen *models.Screen) { f.screen = screen }

func (f *fakeDisplay) SetScreenByNumber(number string) { f.screenNumber = number }

func (f *fakeDisplay) InsertText(s string, maskChar *byte) {
	f.inserted = append(f.inserted, s)
}

// fakeHardware is a ports.Hardware reporting static values.
type fakeHardware struct{}

func (fakeHardware) GetHardwareFitness() string { return "0000000000" }
func (fakeHardware) GetSuppliesStatus() string  { return "0000000000" }
func (fakeHardware) GetReleaseNumber() string   { return "0001" }
func (fakeHardware) GetHardwareID() string      { return "TESTHW0001" }

// newTestTerminal wires a Terminal from the fakes above, for interpreter
// and dispatcher tests that need a full Capabilities set.
func newTestTerminal(states *fakeStates) (*Terminal, *fakeDisplay) {
	disp := &fakeDisplay{}
	term := NewTerminal(Capabilities{
		Screens:  fakeScreens{},
		States:   states,
		FITs:     newFakeFITs(),
		Crypto:   fakeCrypto{},
		Display:  disp,
		Hardware: fakeHardware{},
		Settings: newFakeSettings(),
		Logger:   fakeLogger{},
	})
	return term, disp
}

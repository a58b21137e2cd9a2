// Package ports declares the capability set the engine's Terminal depends
// on — its collaborators. Every interface here is owned and accessed
// exclusively by the single driver thread; none of them are expected to
// be safe for concurrent use by the core itself, though a given
// implementation may add its own locking for other callers (a GUI thread
// reading Display state, for instance).
package ports

import "atmterm/internal/domain/models"

// Screens stores parsed screen data and classifies inbound dynamic-screen
// payloads. Screen text composition and rendering are out of scope for the
// core; this interface only ever carries opaque *models.Screen values.
type Screens interface {
	Add(screenData []byte) bool
	ParseDynamicScreenData(raw []byte) (*models.Screen, error)
	ParseScreenDisplayUpdate(raw []byte) (*models.ScreenDisplayUpdate, error)
}

// States stores the configurable state table and resolves a state number to
// its typed State. Add is responsible for validating kind-specific fields
// at load time; Get never does that validation again.
type States interface {
	Add(stateData []byte) bool
	Get(number string) (*models.State, bool)
}

// FITs is the Financial Institution Table: card-number-range lookup for
// institution id and PIN-length policy.
type FITs interface {
	Add(data []byte) bool
	GetInstitutionByCardNumber(pan string) (int, bool)
	GetMaxPINLength(pan string) (int, bool)
}

// Crypto builds PIN blocks and manages comms keys. PIN block construction
// and key storage internals are out of scope for the core; this is the
// seam where a production deployment plugs in an HSM.
type Crypto interface {
	GetEncryptedPIN(clearPIN, pan string) (string, error)
	SetCommsKey(data []byte, length int) bool
}

// Display renders the current screen and inserts keyed/masked text.
// maskChar is nil when text should be echoed as keyed.
type Display interface {
	SetScreen(screen *models.Screen)
	SetScreenByNumber(number string)
	InsertText(s string, maskChar *byte)
}

// Hardware reports device status the terminal forwards verbatim in
// Terminal State replies.
type Hardware interface {
	GetHardwareFitness() string
	GetSuppliesStatus() string
	GetReleaseNumber() string
	GetHardwareID() string
}

// Settings is a small key/value store. The core reads and writes exactly
// three keys: host.luno, message_coordination_number, and config_id.
type Settings interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

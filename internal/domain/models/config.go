package models

// HostConfig is populated by Enhanced Configuration Data Load.
// Params is a slot map for additional 3-digit-ID parameters. The dispatcher
// never writes to it: unknown IDs are logged and ignored, not stored.
type HostConfig struct {
	InitialScreenNumber   string
	HardwareConfiguration string
	SensorStatus          string
	Params                map[string]string
}

// NewHostConfig returns a HostConfig with the documented defaults.
func NewHostConfig() *HostConfig {
	return &HostConfig{
		InitialScreenNumber: "001",
		Params:              make(map[string]string),
	}
}

// The recognized Enhanced Configuration Data parameter IDs, each named for
// the HostConfig field it populates.
const (
	EnhancedConfigIDInitialScreen = "000"
	EnhancedConfigIDHardwareConf  = "010"
	EnhancedConfigIDSensorStatus  = "020"
)

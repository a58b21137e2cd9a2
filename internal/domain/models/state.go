package models

// State is one row of the configurable state table. The interpreter
// (the engine's drive/dispatch loop) never reaches into a state by field name; it
// type-switches on Kind and reads the matching typed struct. The State
// Table collaborator (ports.States) is responsible for validating fields
// when a table is loaded, not per access.
type State struct {
	Number      string
	Type        byte
	Description string

	// ScreenNumber is shared by the kinds that display a fixed screen on
	// entry (A, B, E, F, I, X, Y). Kinds that display something else
	// (J's receipt screen, '/'s please-wait screen) carry their own field
	// on Kind instead.
	ScreenNumber string

	// Extension is the state's optional extension-state indirection,
	// present on D, X, Y, and '/'. A state with no extension behavior
	// carries Extension == nil (the wire table encodes that as sentinels
	// '255'/'000', translated to nil by whatever loads the table).
	Extension *ExtensionState

	Kind StateKind
}

// ExtensionState is the small indirection table referenced by D, X, Y, and
// '/'. Entries are keyed by the 2..9 FDK index (see engine.fdkExtensionIndex)
// or, for '/', the fixed index 8.
type ExtensionState struct {
	ID      string
	Entries map[int]string
}

// StateKind is the tagged-variant payload distinguishing the dozen state
// kinds a terminal can occupy. Each concrete type below owns exactly the
// fields its kind needs; the interpreter's type switch is exhaustive over
// them.
type StateKind interface {
	isStateKind()
}

// CardRead is kind 'A'.
type CardRead struct {
	GoodReadNextState string
}

func (CardRead) isStateKind() {}

// PINEntry is kind 'B'.
type PINEntry struct {
	RemotePinCheckNextState string
}

func (PINEntry) isStateKind() {}

// OpcodeFromState is kind 'D'.
type OpcodeFromState struct {
	OpcodeTemplate string // up to 8 chars, installed into the opcode buffer verbatim
	NextState      string
}

func (OpcodeFromState) isStateKind() {}

// FourFDKSelection is kind 'E'.
type FourFDKSelection struct {
	// FDKNextStates maps 'A'..'D' to their next-state number. A mapping of
	// "255" means that FDK is inactive.
	FDKNextStates  map[byte]string
	BufferLocation int
}

func (FourFDKSelection) isStateKind() {}

// AmountEntry is kind 'F'.
type AmountEntry struct {
	FDKNextStates map[byte]string // 'A'..'D'
}

func (AmountEntry) isStateKind() {}

// InformationEntry is kind 'H'.
type InformationEntry struct {
	FDKNextStates           map[byte]string // 'A'..'D'
	BufferAndDisplayParams  string          // 3 chars; [2] selects buffer/mode
}

func (InformationEntry) isStateKind() {}

// TransactionRequestState is kind 'I'. Its fields are the transaction
// request assembly flags: each is the literal 3-digit flag value from the
// wire state table.
type TransactionRequestState struct {
	SendTrack2        string
	SendOperationCode string
	SendAmountData    string
	SendPinBuffer     string
	SendBufferBC      string
}

func (TransactionRequestState) isStateKind() {}

// Close is kind 'J'.
type Close struct {
	ReceiptDeliveredScreen string
}

func (Close) isStateKind() {}

// FITExitSelection is kind 'K'.
type FITExitSelection struct {
	StateExits []string // indexed by institution id
}

func (FITExitSelection) isStateKind() {}

// LookupByFDKBuffer is kind 'W'.
type LookupByFDKBuffer struct {
	States map[byte]string // keyed by FDK letter
}

func (LookupByFDKBuffer) isStateKind() {}

// StoreAndActivate is kind 'X'.
type StoreAndActivate struct {
	FDKActiveMask string
	BufferID      string // 3 chars: [1] selects target buffer, [2] gives zero-pad count
	FDKNextState  string
}

func (StoreAndActivate) isStateKind() {}

// StoreFDKToOpcode is kind 'Y'.
type StoreFDKToOpcode struct {
	FDKActiveMask   string
	BufferPositions string // opcode index, as a decimal string
	FDKNextState    string
}

func (StoreFDKToOpcode) isStateKind() {}

// ICCBeginInit is kind '+'.
type ICCBeginInit struct {
	IccInitNotStartedNextState string
}

func (ICCBeginInit) isStateKind() {}

// ICCCompleteAppInit is kind '/'.
type ICCCompleteAppInit struct {
	PleaseWaitScreenNumber string
}

func (ICCCompleteAppInit) isStateKind() {}

// ICCReinit is kind ';'.
type ICCReinit struct {
	ProcessingNotPerformedNextState string
}

func (ICCReinit) isStateKind() {}

// ICCSetData is kind '?'.
type ICCSetData struct {
	NextState string
}

func (ICCSetData) isStateKind() {}

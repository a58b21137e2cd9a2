package models

// MessageClass is the normalized top-level classification of an inbound
// host message, decided before it reaches the core.
type MessageClass int

const (
	ClassUnknown MessageClass = iota
	ClassTerminalCommand
	ClassDataCommand
	ClassCustomizationCommand
	ClassTransactionReplyCommand
	ClassEMVConfiguration
)

// TerminalCommandCode enumerates Terminal Command message subtypes.
type TerminalCommandCode int

const (
	CommandUnknown TerminalCommandCode = iota
	CommandGoInService
	CommandGoOutOfService
	CommandSendConfigurationInformation
	CommandSendConfigurationID
	CommandSendSupplyCounters
)

// DataCommandIdentifier enumerates Data/Customization Command message
// identifiers accepted by the dispatcher.
type DataCommandIdentifier int

const (
	IdentifierUnknown DataCommandIdentifier = iota
	IdentifierScreenDataLoad
	IdentifierStateTablesLoad
	IdentifierFITDataLoad
	IdentifierConfigurationIDNumberLoad
	IdentifierEnhancedConfigurationDataLoad
	IdentifierInteractiveTransactionResponse
	IdentifierExtendedEncryptionKeyInformation
)

// KeyModifier enumerates the Extended Encryption Key Information modifiers.
type KeyModifier int

const (
	KeyModifierUnknown KeyModifier = iota
	KeyModifierDecipherNewCommsKeyWithCurrentMasterKey
)

// EnhancedConfigParam is one {id, value} pair of an Enhanced Configuration
// Data Load payload.
type EnhancedConfigParam struct {
	ID    string
	Value string
}

// HostMessage is the normalized inbound message the dispatcher
// classifies and routes. Exactly one of the Class-matching fields below is
// populated, mirroring the tagged-variant treatment of State.
type HostMessage struct {
	Class MessageClass

	TerminalCommand  *TerminalCommandPayload
	DataCommand      *DataCommandPayload
	TransactionReply *TransactionReplyPayload
	// EMVConfiguration carries no fields: it is accepted and acknowledged
	// unconditionally.
}

// TerminalCommandPayload carries a Terminal Command's code.
type TerminalCommandPayload struct {
	Code TerminalCommandCode
}

// DataCommandPayload carries a Data/Customization Command's identifier and
// whichever of the identifier-specific fields apply.
type DataCommandPayload struct {
	Identifier DataCommandIdentifier

	ScreenData     []byte // Screen Data load
	StateData      []byte // State Tables load
	FITData        []byte // FIT Data load
	ConfigID       string // Configuration ID number load
	EnhancedParams []EnhancedConfigParam

	ActiveKeys    string // Interactive Transaction Response, optional
	DynamicScreen []byte // Interactive Transaction Response

	KeyModifier KeyModifier // Extended Encryption Key Information
	KeyData     []byte
	KeyLength   int
}

// TransactionReplyPayload carries a Transaction Reply Command's fields.
type TransactionReplyPayload struct {
	NextState           string
	ScreenDisplayUpdate []byte // optional, empty means absent
	NotesToDispense     string // optional, empty means absent
	PrinterData         string // optional, empty means absent
}

// StatusDescriptor is the single-character solicited-status code.
type StatusDescriptor byte

const (
	StatusDescriptorReady                 StatusDescriptor = '9'
	StatusDescriptorCommandReject         StatusDescriptor = 'A'
	StatusDescriptorSpecificCommandReject StatusDescriptor = 'C'
	StatusDescriptorTerminalState         StatusDescriptor = 'F'
)

// SolicitedStatusReply is the outbound envelope {messageId: "ReadyState",
// data: {...}}.
type SolicitedStatusReply struct {
	LunoATM             string
	StatusDescriptor    StatusDescriptor
	SubStatusDescriptor byte // '2' for the supply-counters terminal-state reply, else 0

	// Terminal-state fields, populated only for the corresponding replies.
	ConfigID              string
	HardwareFitness       string
	HardwareConfiguration string
	SuppliesStatus        string
	SensorStatus          string
	ReleaseNumber         string
	NdcSoftwareID         string
	SupplyCounters        *SupplyCounters
}

// MessageID returns the fixed envelope identifier for a solicited-status
// reply.
func (SolicitedStatusReply) MessageID() string { return "ReadyState" }

// TransactionRequest is the outbound payload assembled from a
// TransactionRequestState and the current buffers: envelope
// {messageId: "TransactionRequest", data: {...}}.
type TransactionRequest struct {
	Luno                      string
	TopOfReceipt              string
	MessageCoordinationNumber byte
	TimeVariantNumber         string

	Track2        *string
	OperationCode *string
	AmountData    *string
	PinBlock      *string
	BufferB       *string
	BufferC       *string
}

// MessageID returns the fixed envelope identifier for a transaction request.
func (TransactionRequest) MessageID() string { return "TransactionRequest" }

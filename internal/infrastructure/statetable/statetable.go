// Package statetable implements atmterm/internal/domain/ports.States: an
// XML-tagged wire format decoded with encoding/xml. Add performs all
// kind-specific field validation once, at load time; Get never
// re-validates.
package statetable

import (
	"encoding/xml"
	"fmt"
	"strings"
	"sync"

	"atmterm/internal/domain/models"
	"atmterm/internal/domain/ports"
)

type wireExtensionEntry struct {
	Index int    `xml:"INDEX,attr"`
	Value string `xml:"VALUE,attr"`
}

type wireExtension struct {
	ID      string               `xml:"ID,attr"`
	Entries []wireExtensionEntry `xml:"Entry"`
}

type wireState struct {
	Number string `xml:"NUMBER,attr"`
	Type   string `xml:"TYPE,attr"`
	Desc   string `xml:"DESC,attr"`
	Screen string `xml:"SCREEN,attr"`

	GoodRead       string `xml:"GOOD_READ,attr"`
	RemotePinCheck string `xml:"REMOTE_PIN_CHECK,attr"`

	OpcodeTemplate string `xml:"OPCODE_TEMPLATE,attr"`
	NextState      string `xml:"NEXT_STATE,attr"`

	FDKA                   string `xml:"FDK_A,attr"`
	FDKB                   string `xml:"FDK_B,attr"`
	FDKC                   string `xml:"FDK_C,attr"`
	FDKD                   string `xml:"FDK_D,attr"`
	BufferLocation         int    `xml:"BUFFER_LOCATION,attr"`
	BufferAndDisplayParams string `xml:"BUFFER_PARAMS,attr"`

	SendTrack2        string `xml:"SEND_TRACK2,attr"`
	SendOperationCode string `xml:"SEND_OPCODE,attr"`
	SendAmountData    string `xml:"SEND_AMOUNT,attr"`
	SendPinBuffer     string `xml:"SEND_PIN,attr"`
	SendBufferBC      string `xml:"SEND_BUFFER_BC,attr"`

	ReceiptDeliveredScreen string `xml:"RECEIPT_SCREEN,attr"`

	StateExits string `xml:"STATE_EXITS,attr"`

	FDKStates string `xml:"FDK_STATES,attr"`

	FDKActiveMask   string `xml:"FDK_MASK,attr"`
	BufferID        string `xml:"BUFFER_ID,attr"`
	FDKNextState    string `xml:"FDK_NEXT,attr"`
	BufferPositions string `xml:"BUFFER_POS,attr"`

	IccInitNotStarted      string `xml:"ICC_INIT_NOT_STARTED,attr"`
	PleaseWaitScreen       string `xml:"WAIT_SCREEN,attr"`
	ProcessingNotPerformed string `xml:"PROCESSING_NOT_PERFORMED,attr"`

	Extension *wireExtension `xml:"Extension"`
}

type wireStateTable struct {
	XMLName xml.Name    `xml:"StateTable"`
	States  []wireState `xml:"State"`
}

// Store is an in-memory, XML-loaded state table.
type Store struct {
	mu     sync.RWMutex
	states map[string]*models.State
	logger ports.Logger
}

// NewStore returns an empty Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{states: make(map[string]*models.State), logger: logger}
}

// Add implements ports.States: decodes an XML state table document,
// validates each state in turn, and replaces the store's whole table only if
// every state passes; on any failure the previous table stays in place.
func (s *Store) Add(stateData []byte) bool {
	var wire wireStateTable
	if err := xml.Unmarshal(stateData, &wire); err != nil {
		s.logger.Error("statetable: parse: %v", err)
		return false
	}

	parsed := make(map[string]*models.State, len(wire.States))
	for _, ws := range wire.States {
		state, err := convertState(ws)
		if err != nil {
			s.logger.Error("statetable: state %q: %v", ws.Number, err)
			return false
		}
		parsed[state.Number] = state
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = parsed
	return true
}

// Get implements ports.States.
func (s *Store) Get(number string) (*models.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[number]
	return st, ok
}

func convertState(ws wireState) (*models.State, error) {
	if ws.Number == "" {
		return nil, fmt.Errorf("missing NUMBER")
	}
	if len(ws.Type) != 1 {
		return nil, fmt.Errorf("TYPE must be a single character, got %q", ws.Type)
	}

	state := &models.State{
		Number:       ws.Number,
		Type:         ws.Type[0],
		Description:  ws.Desc,
		ScreenNumber: ws.Screen,
	}

	if ws.Extension != nil {
		ext := &models.ExtensionState{ID: ws.Extension.ID, Entries: make(map[int]string)}
		for _, e := range ws.Extension.Entries {
			ext.Entries[e.Index] = e.Value
		}
		state.Extension = ext
	}

	switch state.Type {
	case 'A':
		if ws.GoodRead == "" {
			return nil, fmt.Errorf("kind A requires GOOD_READ")
		}
		state.Kind = models.CardRead{GoodReadNextState: ws.GoodRead}

	case 'B':
		if ws.RemotePinCheck == "" {
			return nil, fmt.Errorf("kind B requires REMOTE_PIN_CHECK")
		}
		state.Kind = models.PINEntry{RemotePinCheckNextState: ws.RemotePinCheck}

	case 'D':
		if ws.NextState == "" {
			return nil, fmt.Errorf("kind D requires NEXT_STATE")
		}
		state.Kind = models.OpcodeFromState{OpcodeTemplate: ws.OpcodeTemplate, NextState: ws.NextState}

	case 'E':
		state.Kind = models.FourFDKSelection{
			FDKNextStates:  fdkMapFromFields(ws.FDKA, ws.FDKB, ws.FDKC, ws.FDKD),
			BufferLocation: ws.BufferLocation,
		}

	case 'F':
		state.Kind = models.AmountEntry{FDKNextStates: fdkMapFromFields(ws.FDKA, ws.FDKB, ws.FDKC, ws.FDKD)}

	case 'H':
		if len(ws.BufferAndDisplayParams) < 3 {
			return nil, fmt.Errorf("kind H requires a 3-character BUFFER_PARAMS, got %q", ws.BufferAndDisplayParams)
		}
		state.Kind = models.InformationEntry{
			FDKNextStates:          fdkMapFromFields(ws.FDKA, ws.FDKB, ws.FDKC, ws.FDKD),
			BufferAndDisplayParams: ws.BufferAndDisplayParams,
		}

	case 'I':
		state.Kind = models.TransactionRequestState{
			SendTrack2:        ws.SendTrack2,
			SendOperationCode: ws.SendOperationCode,
			SendAmountData:    ws.SendAmountData,
			SendPinBuffer:     ws.SendPinBuffer,
			SendBufferBC:      ws.SendBufferBC,
		}

	case 'J':
		if ws.ReceiptDeliveredScreen == "" {
			return nil, fmt.Errorf("kind J requires RECEIPT_SCREEN")
		}
		state.Kind = models.Close{ReceiptDeliveredScreen: ws.ReceiptDeliveredScreen}

	case 'K':
		if ws.StateExits == "" {
			return nil, fmt.Errorf("kind K requires STATE_EXITS")
		}
		state.Kind = models.FITExitSelection{StateExits: strings.Split(ws.StateExits, ",")}

	case 'W':
		states, err := parseFDKStates(ws.FDKStates)
		if err != nil {
			return nil, fmt.Errorf("kind W: %w", err)
		}
		state.Kind = models.LookupByFDKBuffer{States: states}

	case 'X':
		if ws.FDKNextState == "" {
			return nil, fmt.Errorf("kind X requires FDK_NEXT")
		}
		state.Kind = models.StoreAndActivate{
			FDKActiveMask: ws.FDKActiveMask,
			BufferID:      ws.BufferID,
			FDKNextState:  ws.FDKNextState,
		}

	case 'Y':
		if ws.FDKNextState == "" {
			return nil, fmt.Errorf("kind Y requires FDK_NEXT")
		}
		state.Kind = models.StoreFDKToOpcode{
			FDKActiveMask:   ws.FDKActiveMask,
			BufferPositions: ws.BufferPositions,
			FDKNextState:    ws.FDKNextState,
		}

	case '+':
		if ws.IccInitNotStarted == "" {
			return nil, fmt.Errorf("kind + requires ICC_INIT_NOT_STARTED")
		}
		state.Kind = models.ICCBeginInit{IccInitNotStartedNextState: ws.IccInitNotStarted}

	case '/':
		state.Kind = models.ICCCompleteAppInit{PleaseWaitScreenNumber: ws.PleaseWaitScreen}

	case ';':
		if ws.ProcessingNotPerformed == "" {
			return nil, fmt.Errorf("kind ; requires PROCESSING_NOT_PERFORMED")
		}
		state.Kind = models.ICCReinit{ProcessingNotPerformedNextState: ws.ProcessingNotPerformed}

	case '?':
		if ws.NextState == "" {
			return nil, fmt.Errorf("kind ? requires NEXT_STATE")
		}
		state.Kind = models.ICCSetData{NextState: ws.NextState}

	default:
		return nil, fmt.Errorf("unrecognized TYPE %q", ws.Type)
	}

	return state, nil
}

func fdkMapFromFields(a, b, c, d string) map[byte]string {
	m := make(map[byte]string, 4)
	if a != "" {
		m['A'] = a
	}
	if b != "" {
		m['B'] = b
	}
	if c != "" {
		m['C'] = c
	}
	if d != "" {
		m['D'] = d
	}
	return m
}

// parseFDKStates parses "A:001,B:002" into a letter->state map.
func parseFDKStates(raw string) (map[byte]string, error) {
	m := make(map[byte]string)
	if raw == "" {
		return m, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 || len(kv[0]) != 1 {
			return nil, fmt.Errorf("malformed entry %q", pair)
		}
		letter := strings.ToUpper(kv[0])[0]
		m[letter] = kv[1]
	}
	return m, nil
}

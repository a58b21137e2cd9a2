package engine

import (
	"strconv"
	"strings"

	"atmterm/internal/domain/models"
)

// maxStateTransitions bounds a single drive pass: a state table that cycles
// without ever awaiting input is a configuration error, not an infinite
// loop in the running terminal.
const maxStateTransitions = 20

// fdkExtensionIndex maps an FDK letter to its slot in a state's
// ExtensionState.Entries, for kind X (Store and Activate).
var fdkExtensionIndex = map[byte]int{
	'A': 2, 'B': 3, 'C': 4, 'D': 5, 'F': 6, 'G': 7, 'H': 8, 'I': 9,
}

// drive runs the interpreter from start until a handler has no next state
// to offer (awaiting operator or host input) or the transition cap trips.
// On every transition the pending input queue is cleared; a handler that
// stays in place keeps whatever input it did not consume.
func (t *Terminal) drive(start string) {
	current := start
	for i := 0; i < maxStateTransitions; i++ {
		state, ok := t.caps.States.Get(current)
		if !ok {
			t.caps.Logger.Error("drive: state %q not found", current)
			t.currentState = current
			return
		}
		next, has := t.dispatch(state)
		t.currentState = current
		if !has {
			return
		}
		t.buttonsPressed = nil
		current = next
	}
	t.caps.Logger.Error("drive: exceeded %d transitions starting from state %q", maxStateTransitions, start)
}

func (t *Terminal) dispatch(state *models.State) (string, bool) {
	switch k := state.Kind.(type) {
	case models.CardRead:
		return t.handleCardRead(state, k)
	case models.PINEntry:
		return t.handlePINEntry(state, k)
	case models.OpcodeFromState:
		return t.handleOpcodeFromState(state, k)
	case models.FourFDKSelection:
		return t.handleFourFDKSelection(state, k)
	case models.AmountEntry:
		return t.handleAmountEntry(state, k)
	case models.InformationEntry:
		return t.handleInformationEntry(state, k)
	case models.TransactionRequestState:
		return t.handleTransactionRequest(state, k)
	case models.Close:
		return t.handleClose(state, k)
	case models.FITExitSelection:
		return t.handleFITExitSelection(state, k)
	case models.LookupByFDKBuffer:
		return t.handleLookupByFDKBuffer(state, k)
	case models.StoreAndActivate:
		return t.handleStoreAndActivate(state, k)
	case models.StoreFDKToOpcode:
		return t.handleStoreFDKToOpcode(state, k)
	case models.ICCBeginInit:
		return t.handleICCBeginInit(state, k)
	case models.ICCCompleteAppInit:
		return t.handleICCCompleteAppInit(state, k)
	case models.ICCReinit:
		return t.handleICCReinit(state, k)
	case models.ICCSetData:
		return t.handleICCSetData(state, k)
	default:
		t.caps.Logger.Error("drive: state %q has unrecognized kind %T", state.Number, state.Kind)
		return "", false
	}
}

// A — Card Read.
func (t *Terminal) handleCardRead(state *models.State, k models.CardRead) (string, bool) {
	t.buffers.InitBuffers()
	t.caps.Display.SetScreenByNumber(state.ScreenNumber)
	if t.card != nil {
		return k.GoodReadNextState, true
	}
	return "", false
}

// B — PIN Entry.
func (t *Terminal) handlePINEntry(state *models.State, k models.PINEntry) (string, bool) {
	t.caps.Display.SetScreenByNumber(state.ScreenNumber)
	t.fdks.SetMask("001", t.caps.Logger)

	max := 6
	if t.card != nil {
		if m, ok := t.caps.FITs.GetMaxPINLength(t.card.Number); ok {
			max = m
		}
	}

	sawEnter := false
	for len(t.buttonsPressed) > 0 {
		item := t.buttonsPressed[0]
		t.buttonsPressed = t.buttonsPressed[1:]
		if item == "enter" {
			sawEnter = true
			continue
		}
		t.buffers.AppendPIN(item, max)
	}

	if len(t.buffers.PIN) >= max || (len(t.buffers.PIN) >= 4 && sawEnter) {
		return k.RemotePinCheckNextState, true
	}
	return "", false
}

// D — Opcode From State. Template shaping (including any extension-state
// substitution) is already resolved by the State Table collaborator; the
// interpreter only installs the result.
func (t *Terminal) handleOpcodeFromState(state *models.State, k models.OpcodeFromState) (string, bool) {
	t.buffers.Opcode.LoadFromState(k.OpcodeTemplate)
	return k.NextState, true
}

// E — Four-FDK Selection.
func (t *Terminal) handleFourFDKSelection(state *models.State, k models.FourFDKSelection) (string, bool) {
	t.caps.Display.SetScreenByNumber(state.ScreenNumber)
	t.fdks.Clear()
	for _, letter := range [4]byte{'A', 'B', 'C', 'D'} {
		if ns, ok := k.FDKNextStates[letter]; ok && ns != "255" {
			t.fdks.Activate(letter)
		}
	}

	if len(t.buttonsPressed) == 0 {
		return "", false
	}
	letter, ok := singleFDKLetter(t.buttonsPressed[0])
	if !ok || !t.fdks.IsActive(letter) {
		return "", false
	}
	t.buttonsPressed = t.buttonsPressed[1:]

	pos := 7 - k.BufferLocation
	if k.BufferLocation < 0 || k.BufferLocation > 7 {
		t.caps.Logger.Error("state %s: buffer_location %d out of range", state.Number, k.BufferLocation)
	} else if err := t.buffers.Opcode.SetAt(pos, letter); err != nil {
		t.caps.Logger.Error("state %s: %v", state.Number, err)
	}
	return k.FDKNextStates[letter], true
}

// F — Amount Entry.
func (t *Terminal) handleAmountEntry(state *models.State, k models.AmountEntry) (string, bool) {
	t.caps.Display.SetScreenByNumber(state.ScreenNumber)
	t.fdks.SetMask("015", t.caps.Logger)

	if len(t.buttonsPressed) == 0 {
		return "", false
	}
	item := t.buttonsPressed[0]
	t.buttonsPressed = t.buttonsPressed[1:]

	if letter, ok := singleFDKLetter(item); ok && t.fdks.IsActive(letter) {
		if ns, exists := k.FDKNextStates[letter]; exists {
			return ns, true
		}
	}
	t.buffers.SetAmount(item)
	return "", false
}

// H — Information Entry. The FDK branch behaves as documented. The
// non-FDK branch is specified only as "clear the buffer"; this terminal
// treats that literally — it clears on entry rather than accumulating
// keystrokes, since accumulation is not described anywhere in this state's
// rule (see DESIGN.md).
func (t *Terminal) handleInformationEntry(state *models.State, k models.InformationEntry) (string, bool) {
	mask := []byte{'0'}
	for _, letter := range [4]byte{'A', 'B', 'C', 'D'} {
		if ns, ok := k.FDKNextStates[letter]; ok && ns != "255" {
			mask = append(mask, '1')
		} else {
			mask = append(mask, '0')
		}
	}
	// E..I stay inactive. At ten characters SetMask drops the leading
	// activator bit, so the four bits above land on A..D.
	mask = append(mask, '0', '0', '0', '0', '0')
	t.fdks.SetMask(string(mask), t.caps.Logger)

	if len(t.buttonsPressed) > 0 {
		if letter, ok := singleFDKLetter(t.buttonsPressed[0]); ok && t.fdks.IsActive(letter) {
			if ns, exists := k.FDKNextStates[letter]; exists {
				t.buttonsPressed = t.buttonsPressed[1:]
				return ns, true
			}
		}
	}

	param := byte('0')
	if len(k.BufferAndDisplayParams) >= 3 {
		param = k.BufferAndDisplayParams[2]
	}
	switch param {
	case '0', '1':
		t.buffers.ClearC()
	case '2', '3':
		t.buffers.ClearB()
	default:
		t.caps.Logger.Warn("state %s: unrecognized buffer_and_display_params %q", state.Number, k.BufferAndDisplayParams)
	}
	return "", false
}

// I — Transaction Request.
func (t *Terminal) handleTransactionRequest(state *models.State, k models.TransactionRequestState) (string, bool) {
	t.caps.Display.SetScreenByNumber(state.ScreenNumber)

	req := t.assembleTransactionRequest(k)
	if t.interactiveTransaction {
		var item string
		if len(t.buttonsPressed) > 0 {
			item = t.buttonsPressed[0]
			t.buttonsPressed = t.buttonsPressed[1:]
		}
		t.buffers.SetB(item)
		req.BufferB = &item
	}
	t.transactionRequest = req
	return "", false
}

// J — Close.
func (t *Terminal) handleClose(state *models.State, k models.Close) (string, bool) {
	t.caps.Display.SetScreenByNumber(k.ReceiptDeliveredScreen)
	t.fdks.SetMask("000", t.caps.Logger)
	t.card = nil
	return "", false
}

// K — FIT Exit Selection.
func (t *Terminal) handleFITExitSelection(state *models.State, k models.FITExitSelection) (string, bool) {
	if t.card == nil {
		return "", false
	}
	id, ok := t.caps.FITs.GetInstitutionByCardNumber(t.card.Number)
	if !ok {
		return "", false
	}
	if id < 0 || id >= len(k.StateExits) {
		t.caps.Logger.Error("state %s: institution id %d out of range", state.Number, id)
		return "", false
	}
	return k.StateExits[id], true
}

// W — Lookup By FDK Buffer.
func (t *Terminal) handleLookupByFDKBuffer(state *models.State, k models.LookupByFDKBuffer) (string, bool) {
	if t.buffers.FDKBuffer == "" {
		return "", false
	}
	if ns, ok := k.States[t.buffers.FDKBuffer[0]]; ok {
		return ns, true
	}
	return "", false
}

// X — Store And Activate.
func (t *Terminal) handleStoreAndActivate(state *models.State, k models.StoreAndActivate) (string, bool) {
	t.caps.Display.SetScreenByNumber(state.ScreenNumber)
	t.fdks.SetMask(k.FDKActiveMask, t.caps.Logger)

	if len(t.buttonsPressed) == 0 {
		return "", false
	}
	letter, ok := singleFDKLetter(t.buttonsPressed[0])
	if !ok || !t.fdks.IsActive(letter) {
		return "", false
	}
	t.buttonsPressed = t.buttonsPressed[1:]
	t.buffers.FDKBuffer = string(letter)

	if state.Extension != nil {
		idx, ok := fdkExtensionIndex[letter]
		entry, hasEntry := "", false
		if ok {
			entry, hasEntry = state.Extension.Entries[idx], true
		}
		if !ok || !hasEntry {
			t.caps.Logger.Error("state %s: no extension entry for FDK %c", state.Number, letter)
		} else {
			pad := 0
			if len(k.BufferID) >= 3 {
				if n, err := strconv.Atoi(string(k.BufferID[2])); err == nil {
					pad = n
				}
			}
			value := entry + strings.Repeat("0", pad)
			target := byte('0')
			if len(k.BufferID) >= 2 {
				target = k.BufferID[1]
			}
			switch target {
			case '1':
				t.buffers.SetB(value)
			case '2':
				t.buffers.SetC(value)
			case '3':
				t.buffers.SetAmount(value)
			default:
				t.caps.Logger.Error("state %s: unrecognized buffer_id %q", state.Number, k.BufferID)
			}
		}
	}
	return k.FDKNextState, true
}

// Y — Store FDK To Opcode.
func (t *Terminal) handleStoreFDKToOpcode(state *models.State, k models.StoreFDKToOpcode) (string, bool) {
	t.caps.Display.SetScreenByNumber(state.ScreenNumber)
	t.fdks.SetMask(k.FDKActiveMask, t.caps.Logger)

	if state.Extension != nil {
		// Extension-driven Y behavior is not exercised by any wired state
		// table in this terminal; see DESIGN.md Open Questions.
		t.caps.Logger.Warn("state %s: Y with extension state is unimplemented", state.Number)
		return "", false
	}

	if len(t.buttonsPressed) == 0 {
		return "", false
	}
	letter, ok := singleFDKLetter(t.buttonsPressed[0])
	if !ok || !t.fdks.IsActive(letter) {
		return "", false
	}
	t.buttonsPressed = t.buttonsPressed[1:]
	t.buffers.FDKBuffer = string(letter)

	pos, err := strconv.Atoi(k.BufferPositions)
	if err != nil {
		t.caps.Logger.Error("state %s: bad buffer_positions %q", state.Number, k.BufferPositions)
		return k.FDKNextState, true
	}
	if err := t.buffers.Opcode.SetAt(pos, letter); err != nil {
		t.caps.Logger.Error("state %s: %v", state.Number, err)
	}
	return k.FDKNextState, true
}

// '+' — ICC Begin Init.
func (t *Terminal) handleICCBeginInit(state *models.State, k models.ICCBeginInit) (string, bool) {
	return k.IccInitNotStartedNextState, true
}

// '/' — ICC Complete App Init.
func (t *Terminal) handleICCCompleteAppInit(state *models.State, k models.ICCCompleteAppInit) (string, bool) {
	t.caps.Display.SetScreenByNumber(k.PleaseWaitScreenNumber)
	if state.Extension == nil {
		return "", false
	}
	next, ok := state.Extension.Entries[8]
	if !ok || next == "" {
		return "", false
	}
	return next, true
}

// ';' — ICC Reinit.
func (t *Terminal) handleICCReinit(state *models.State, k models.ICCReinit) (string, bool) {
	return k.ProcessingNotPerformedNextState, true
}

// '?' — ICC Set Data.
func (t *Terminal) handleICCSetData(state *models.State, k models.ICCSetData) (string, bool) {
	return k.NextState, true
}

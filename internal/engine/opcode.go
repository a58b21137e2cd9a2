package engine

import "fmt"

// OpcodeBuffer is the fixed 8-slot operation-code buffer. Slots not
// explicitly written read back as ASCII space.
type OpcodeBuffer struct {
	slots [8]byte
}

// NewOpcodeBuffer returns an OpcodeBuffer initialized to all spaces.
func NewOpcodeBuffer() *OpcodeBuffer {
	o := &OpcodeBuffer{}
	o.Init()
	return o
}

// Init resets every slot to ASCII space.
func (o *OpcodeBuffer) Init() {
	for i := range o.slots {
		o.slots[i] = ' '
	}
}

// SetAt writes ch into slot i. i must be in [0, 7].
func (o *OpcodeBuffer) SetAt(i int, ch byte) error {
	if i < 0 || i > 7 {
		return fmt.Errorf("opcode: index %d out of range [0,7]", i)
	}
	o.slots[i] = ch
	return nil
}

// Get returns the buffer's current 8-character contents.
func (o *OpcodeBuffer) Get() string { return string(o.slots[:]) }

// LoadFromState installs a pre-shaped template (kind D, opcode-from-state).
// The template's exact shape is the State Table collaborator's responsibility;
// LoadFromState only installs it, left-aligned and space-padded to 8.
func (o *OpcodeBuffer) LoadFromState(template string) {
	for i := 0; i < 8; i++ {
		if i < len(template) {
			o.slots[i] = template[i]
		} else {
			o.slots[i] = ' '
		}
	}
}

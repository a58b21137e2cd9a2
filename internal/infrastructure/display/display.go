// Package display implements atmterm/internal/domain/ports.Display: it
// tracks the terminal's current screen and keyed/masked text, transliterating
// CP866-encoded screen bytes (the legacy host's native encoding) to UTF-8 via
// golang.org/x/text/encoding/charmap for anything that renders them.
package display

import (
	"sync"

	"golang.org/x/text/encoding/charmap"

	"atmterm/internal/domain/models"
)

// Adapter is a display surface: the active screen plus whatever text has
// been keyed or masked in since the screen was set.
type Adapter struct {
	mu     sync.Mutex
	screen *models.Screen
	text   []byte
}

// NewAdapter returns an empty Adapter.
func NewAdapter() *Adapter { return &Adapter{} }

// SetScreen installs screen as the active screen and clears keyed text.
func (a *Adapter) SetScreen(screen *models.Screen) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.screen = screen
	a.text = nil
}

// SetScreenByNumber installs a screen carrying only a Number, for when the
// raw screen bytes are not needed by the caller (the common case for the
// core, which never renders).
func (a *Adapter) SetScreenByNumber(number string) {
	a.SetScreen(&models.Screen{Number: number})
}

// InsertText appends s to the keyed-text buffer. maskChar, when non-nil,
// means s should be echoed as repetitions of that character rather than
// itself; InsertText always stores the real value, the decision of what to
// render belongs to the caller displaying it.
func (a *Adapter) InsertText(s string, maskChar *byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.text = append(a.text, []byte(s)...)
}

// Screen returns the active screen, or nil.
func (a *Adapter) Screen() *models.Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen
}

// RenderedText returns the active screen's raw bytes transliterated from
// CP866 to UTF-8, for a caller (an operator console) that wants to show it.
func (a *Adapter) RenderedText() (string, error) {
	a.mu.Lock()
	screen := a.screen
	a.mu.Unlock()
	if screen == nil || len(screen.Raw) == 0 {
		return "", nil
	}
	decoded, err := charmap.CodePage866.NewDecoder().Bytes(screen.Raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

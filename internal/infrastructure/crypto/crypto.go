// Package crypto implements atmterm/internal/domain/ports.Crypto: ISO-0 PIN
// block construction under a working key, and comms-key replacement under a
// master key. DES/3DES (crypto/des) is stdlib because golang.org/x/crypto
// carries no block-cipher implementation of its own (see DESIGN.md); key
// derivation for the working key from newly-loaded key material uses
// golang.org/x/crypto/hkdf, the pack's key-derivation primitive.
package crypto

import (
	"crypto/cipher"
	"crypto/des"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// Adapter holds the terminal's working PIN key and comms (master) key.
type Adapter struct {
	mu         sync.Mutex
	masterKey  []byte
	workingKey []byte
}

// NewAdapter returns an Adapter seeded with a fixed-length master key (16
// or 24 bytes for double/triple-length DES). A zero-length key leaves the
// adapter with no usable key: GetEncryptedPIN and SetCommsKey both fail.
func NewAdapter(masterKey []byte) *Adapter {
	return &Adapter{masterKey: masterKey}
}

// GetEncryptedPIN builds an ISO-0 PIN block for clearPIN against pan and
// encrypts it under the current working key (falling back to the master
// key if no working key has been set), returning the result as hex.
func (a *Adapter) GetEncryptedPIN(clearPIN, pan string) (string, error) {
	a.mu.Lock()
	key := a.workingKey
	if len(key) == 0 {
		key = a.masterKey
	}
	a.mu.Unlock()

	if len(key) == 0 {
		return "", fmt.Errorf("crypto: no key loaded")
	}

	block, err := iso0PinBlock(clearPIN, pan)
	if err != nil {
		return "", err
	}
	cipherBlock, err := tripleDESBlock(key)
	if err != nil {
		return "", err
	}
	out := make([]byte, len(block))
	cipherBlock.Encrypt(out, block)
	return hex.EncodeToString(out), nil
}

// SetCommsKey derives a new working key of length bytes from data under the
// current master key via HKDF, and installs it. Returns false on failure.
func (a *Adapter) SetCommsKey(data []byte, length int) bool {
	if length <= 0 {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.masterKey) == 0 {
		return false
	}

	reader := hkdf.New(sha256.New, a.masterKey, data, []byte("atmterm comms key"))
	derived := make([]byte, length)
	if _, err := io.ReadFull(reader, derived); err != nil {
		return false
	}
	a.workingKey = derived
	return true
}

// iso0PinBlock builds an ISO-0 format-0 PIN block: the clear PIN field
// (control nibble 0, length nibble, PIN digits, 'F' pad) XORed with the PAN
// field (four zero nibbles, the rightmost 12 PAN digits excluding the check
// digit, padded).
func iso0PinBlock(clearPIN, pan string) ([]byte, error) {
	if len(clearPIN) < 4 || len(clearPIN) > 12 {
		return nil, fmt.Errorf("crypto: pin length %d out of range", len(clearPIN))
	}
	pinField := fmt.Sprintf("0%X%s", len(clearPIN), clearPIN)
	for len(pinField) < 16 {
		pinField += "F"
	}

	digits := pan
	if len(digits) > 13 {
		digits = digits[len(digits)-13:]
	}
	digits = strings.TrimSuffix(digits, digits[len(digits)-1:]) // drop check digit
	panField := fmt.Sprintf("0000%s", digits)
	for len(panField) < 16 {
		panField += "0"
	}

	pinBytes, err := hex.DecodeString(pinField)
	if err != nil {
		return nil, fmt.Errorf("crypto: encode pin field: %w", err)
	}
	panBytes, err := hex.DecodeString(panField)
	if err != nil {
		return nil, fmt.Errorf("crypto: encode pan field: %w", err)
	}

	out := make([]byte, 8)
	for i := range out {
		out[i] = pinBytes[i] ^ panBytes[i]
	}
	return out, nil
}

func tripleDESBlock(key []byte) (cipher.Block, error) {
	switch len(key) {
	case 24:
		return des.NewTripleDESCipher(key)
	case 16:
		return des.NewTripleDESCipher(append(append([]byte{}, key...), key[:8]...))
	case 8:
		return des.NewCipher(key)
	default:
		return nil, fmt.Errorf("crypto: key length %d unsupported", len(key))
	}
}

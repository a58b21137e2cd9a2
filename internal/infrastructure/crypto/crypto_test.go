package crypto

import "testing"

func TestGetEncryptedPINWithMasterKey(t *testing.T) {
	key := []byte("0123456789ABCDEF") // 16 bytes, double-length DES
	a := NewAdapter(key)

	block, err := a.GetEncryptedPIN("1234", "4000000000000000")
	if err != nil {
		t.Fatalf("GetEncryptedPIN: %v", err)
	}
	if len(block) != 16 { // 8 bytes, hex-encoded
		t.Errorf("block length = %d, want 16 hex chars", len(block))
	}
}

func TestGetEncryptedPINNoKeyLoaded(t *testing.T) {
	a := NewAdapter(nil)
	if _, err := a.GetEncryptedPIN("1234", "4000000000000000"); err == nil {
		t.Error("expected error with no key loaded")
	}
}

func TestGetEncryptedPINRejectsOutOfRangePIN(t *testing.T) {
	a := NewAdapter([]byte("0123456789ABCDEF"))
	if _, err := a.GetEncryptedPIN("12", "4000000000000000"); err == nil {
		t.Error("expected error for a too-short PIN")
	}
}

func TestSetCommsKeyDerivesDeterministicWorkingKey(t *testing.T) {
	a := NewAdapter([]byte("0123456789ABCDEF"))
	if !a.SetCommsKey([]byte("new-key-material"), 16) {
		t.Fatal("SetCommsKey returned false")
	}

	before, err := a.GetEncryptedPIN("1234", "4000000000000000")
	if err != nil {
		t.Fatalf("GetEncryptedPIN after SetCommsKey: %v", err)
	}

	b := NewAdapter([]byte("0123456789ABCDEF"))
	if !b.SetCommsKey([]byte("new-key-material"), 16) {
		t.Fatal("SetCommsKey returned false")
	}
	after, err := b.GetEncryptedPIN("1234", "4000000000000000")
	if err != nil {
		t.Fatalf("GetEncryptedPIN on second adapter: %v", err)
	}

	if before != after {
		t.Errorf("expected deterministic derivation: %q != %q", before, after)
	}
}

func TestSetCommsKeyFailsWithNoMasterKey(t *testing.T) {
	a := NewAdapter(nil)
	if a.SetCommsKey([]byte("data"), 16) {
		t.Error("expected SetCommsKey to fail with no master key")
	}
}

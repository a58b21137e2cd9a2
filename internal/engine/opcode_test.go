package engine

import "testing"

func TestOpcodeBufferInit(t *testing.T) {
	o := NewOpcodeBuffer()
	if got := o.Get(); got != "        " {
		t.Errorf("Get() = %q, want eight spaces", got)
	}
}

func TestOpcodeBufferSetAt(t *testing.T) {
	o := NewOpcodeBuffer()
	if err := o.SetAt(0, 'A'); err != nil {
		t.Fatalf("SetAt(0, 'A') error: %v", err)
	}
	if err := o.SetAt(7, 'Z'); err != nil {
		t.Fatalf("SetAt(7, 'Z') error: %v", err)
	}
	if got := o.Get(); got != "A      Z" {
		t.Errorf("Get() = %q, want %q", got, "A      Z")
	}

	if err := o.SetAt(-1, 'X'); err == nil {
		t.Error("expected error for index -1")
	}
	if err := o.SetAt(8, 'X'); err == nil {
		t.Error("expected error for index 8")
	}
}

func TestOpcodeBufferLoadFromState(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{name: "short template is space-padded", template: "12", want: "12      "},
		{name: "exact-length template is installed verbatim", template: "ABCDEFGH", want: "ABCDEFGH"},
		{name: "oversize template is truncated to eight", template: "ABCDEFGHIJ", want: "ABCDEFGH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOpcodeBuffer()
			o.LoadFromState(tt.template)
			if got := o.Get(); got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

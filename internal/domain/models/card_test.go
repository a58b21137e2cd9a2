package models

import "testing"

func TestParseCard(t *testing.T) {
	tests := []struct {
		name        string
		track2      string
		wantNumber  string
		wantService string
		wantErr     bool
	}{
		{
			name:        "well-formed track with service code",
			track2:      ";4000000000000000=25121011234567890",
			wantNumber:  "4000000000000000",
			wantService: "101",
		},
		{
			name:    "missing leading semicolon",
			track2:  "4000000000000000=25121011234567890",
			wantErr: true,
		},
		{
			name:    "missing equals separator",
			track2:  ";4000000000000000251210112345678",
			wantErr: true,
		},
		{
			name:    "empty PAN",
			track2:  ";=25121011234567890",
			wantErr: true,
		},
		{
			name:       "post-equals region shorter than the service code window",
			track2:     ";4000000000000000=2512",
			wantNumber: "4000000000000000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := ParseCard(tt.track2)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard: %v", err)
			}
			if card.Number != tt.wantNumber {
				t.Errorf("Number = %q, want %q", card.Number, tt.wantNumber)
			}
			if tt.wantService != "" && card.ServiceCode != tt.wantService {
				t.Errorf("ServiceCode = %q, want %q", card.ServiceCode, tt.wantService)
			}
			if card.Track2 != tt.track2 {
				t.Errorf("Track2 = %q, want %q", card.Track2, tt.track2)
			}
		})
	}
}

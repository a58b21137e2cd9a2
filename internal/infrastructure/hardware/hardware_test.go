package hardware

import "testing"

func TestAdapterDefaults(t *testing.T) {
	a := NewAdapter("0099", "ATM0099")
	if a.GetHardwareFitness() != "0000000000" {
		t.Errorf("GetHardwareFitness() = %q", a.GetHardwareFitness())
	}
	if a.GetSuppliesStatus() != "0000000000" {
		t.Errorf("GetSuppliesStatus() = %q", a.GetSuppliesStatus())
	}
	if a.GetReleaseNumber() != "0099" {
		t.Errorf("GetReleaseNumber() = %q, want 0099", a.GetReleaseNumber())
	}
	if a.GetHardwareID() != "ATM0099" {
		t.Errorf("GetHardwareID() = %q, want ATM0099", a.GetHardwareID())
	}
}

func TestAdapterSetters(t *testing.T) {
	a := NewAdapter("0001", "ATM0001")
	a.SetFitness("1000000000")
	a.SetSuppliesStatus("0100000000")

	if a.GetHardwareFitness() != "1000000000" {
		t.Errorf("GetHardwareFitness() = %q", a.GetHardwareFitness())
	}
	if a.GetSuppliesStatus() != "0100000000" {
		t.Errorf("GetSuppliesStatus() = %q", a.GetSuppliesStatus())
	}
}

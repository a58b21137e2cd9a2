package engine

import (
	"strconv"
	"strings"

	"atmterm/internal/domain/models"
)

// ProcessHostMessage is the fourth public entry point: it
// classifies msg by its Class and routes it to a handler, which always
// synthesizes a SolicitedStatusReply.
func (t *Terminal) ProcessHostMessage(msg *models.HostMessage) *models.SolicitedStatusReply {
	if msg == nil {
		t.caps.Logger.Error("process host message: nil message")
		return t.reject()
	}
	switch msg.Class {
	case models.ClassTerminalCommand:
		return t.handleTerminalCommand(msg.TerminalCommand)
	case models.ClassDataCommand, models.ClassCustomizationCommand:
		return t.handleDataCommand(msg.DataCommand)
	case models.ClassTransactionReplyCommand:
		return t.handleTransactionReply(msg.TransactionReply)
	case models.ClassEMVConfiguration:
		// Accepted and acknowledged unconditionally; no semantic processing.
		return t.ready()
	default:
		t.caps.Logger.Warn("process host message: unrecognized class")
		return t.reject()
	}
}

func (t *Terminal) ready() *models.SolicitedStatusReply {
	return &models.SolicitedStatusReply{LunoATM: t.lunoOrDefault(), StatusDescriptor: models.StatusDescriptorReady}
}

func (t *Terminal) reject() *models.SolicitedStatusReply {
	return &models.SolicitedStatusReply{LunoATM: t.lunoOrDefault(), StatusDescriptor: models.StatusDescriptorCommandReject}
}

func (t *Terminal) specificReject() *models.SolicitedStatusReply {
	return &models.SolicitedStatusReply{LunoATM: t.lunoOrDefault(), StatusDescriptor: models.StatusDescriptorSpecificCommandReject}
}

func (t *Terminal) handleTerminalCommand(p *models.TerminalCommandPayload) *models.SolicitedStatusReply {
	if p == nil {
		return t.reject()
	}
	switch p.Code {
	case models.CommandGoInService:
		t.SetStatus(models.StatusInService)
		screen := t.hostConfig.InitialScreenNumber
		if screen == "" {
			screen = "000"
		}
		t.buffers.InitBuffers()
		t.fdks.Clear()
		t.drive(screen)
		return t.ready()
	case models.CommandGoOutOfService:
		t.SetStatus(models.StatusOutOfService)
		t.buffers.InitBuffers()
		t.fdks.Clear()
		t.card = nil
		return t.ready()
	case models.CommandSendConfigurationInformation:
		return t.terminalStateConfigInfo()
	case models.CommandSendConfigurationID:
		return t.terminalStateConfigID()
	case models.CommandSendSupplyCounters:
		return t.terminalStateCounters()
	default:
		t.caps.Logger.Warn("terminal command: unrecognized code")
		return t.reject()
	}
}

func (t *Terminal) terminalStateConfigInfo() *models.SolicitedStatusReply {
	return &models.SolicitedStatusReply{
		LunoATM:               t.lunoOrDefault(),
		StatusDescriptor:      models.StatusDescriptorTerminalState,
		ConfigID:              t.configID,
		HardwareFitness:       t.caps.Hardware.GetHardwareFitness(),
		HardwareConfiguration: t.hostConfig.HardwareConfiguration,
		SuppliesStatus:        t.caps.Hardware.GetSuppliesStatus(),
		SensorStatus:          t.hostConfig.SensorStatus,
		ReleaseNumber:         t.caps.Hardware.GetReleaseNumber(),
		NdcSoftwareID:         t.caps.Hardware.GetHardwareID(),
	}
}

func (t *Terminal) terminalStateConfigID() *models.SolicitedStatusReply {
	return &models.SolicitedStatusReply{
		LunoATM:          t.lunoOrDefault(),
		StatusDescriptor: models.StatusDescriptorTerminalState,
		ConfigID:         t.configID,
	}
}

func (t *Terminal) terminalStateCounters() *models.SolicitedStatusReply {
	counters := t.counters
	return &models.SolicitedStatusReply{
		LunoATM:             t.lunoOrDefault(),
		StatusDescriptor:    models.StatusDescriptorTerminalState,
		SubStatusDescriptor: '2',
		SupplyCounters:      &counters,
	}
}

func (t *Terminal) handleDataCommand(p *models.DataCommandPayload) *models.SolicitedStatusReply {
	if p == nil {
		return t.reject()
	}
	switch p.Identifier {
	case models.IdentifierScreenDataLoad:
		if t.caps.Screens.Add(p.ScreenData) {
			return t.ready()
		}
		return t.specificReject()
	case models.IdentifierStateTablesLoad:
		if t.caps.States.Add(p.StateData) {
			return t.ready()
		}
		return t.specificReject()
	case models.IdentifierFITDataLoad:
		if t.caps.FITs.Add(p.FITData) {
			return t.ready()
		}
		return t.specificReject()
	case models.IdentifierConfigurationIDNumberLoad:
		t.SetConfigID(p.ConfigID)
		return t.ready()
	case models.IdentifierEnhancedConfigurationDataLoad:
		t.applyEnhancedConfig(p.EnhancedParams)
		return t.ready()
	case models.IdentifierInteractiveTransactionResponse:
		t.interactiveTransaction = true
		if p.ActiveKeys != "" {
			t.fdks.SetMask(p.ActiveKeys, t.caps.Logger)
		}
		if len(p.DynamicScreen) > 0 {
			if screen, err := t.caps.Screens.ParseDynamicScreenData(p.DynamicScreen); err != nil {
				t.caps.Logger.Warn("interactive transaction response: %v", err)
			} else {
				t.caps.Display.SetScreen(screen)
			}
		}
		return t.ready()
	case models.IdentifierExtendedEncryptionKeyInformation:
		if p.KeyModifier == models.KeyModifierDecipherNewCommsKeyWithCurrentMasterKey && t.caps.Crypto.SetCommsKey(p.KeyData, p.KeyLength) {
			return t.ready()
		}
		return t.specificReject()
	default:
		t.caps.Logger.Warn("data command: unrecognized identifier")
		return t.reject()
	}
}

// zeroPad3 left-pads s with '0' to 3 characters, truncating from the left
// if it is already longer. initial_screen_number is always 3 digits.
func zeroPad3(s string) string {
	if len(s) >= 3 {
		return s[len(s)-3:]
	}
	return strings.Repeat("0", 3-len(s)) + s
}

func (t *Terminal) applyEnhancedConfig(params []models.EnhancedConfigParam) {
	for _, p := range params {
		switch p.ID {
		case models.EnhancedConfigIDInitialScreen:
			t.hostConfig.InitialScreenNumber = zeroPad3(p.Value)
		case models.EnhancedConfigIDHardwareConf:
			t.hostConfig.HardwareConfiguration = p.Value
		case models.EnhancedConfigIDSensorStatus:
			t.hostConfig.SensorStatus = p.Value
		default:
			t.caps.Logger.Info("enhanced config: unrecognized id %q ignored", p.ID)
		}
	}
}

func (t *Terminal) handleTransactionReply(p *models.TransactionReplyPayload) *models.SolicitedStatusReply {
	if p == nil {
		return t.reject()
	}
	t.drive(p.NextState)

	if len(p.ScreenDisplayUpdate) > 0 {
		if upd, err := t.caps.Screens.ParseScreenDisplayUpdate(p.ScreenDisplayUpdate); err != nil {
			t.caps.Logger.Warn("transaction reply: screen display update: %v", err)
		} else {
			t.caps.Display.SetScreen(&models.Screen{Raw: upd.Raw})
		}
	}
	if p.NotesToDispense != "" {
		if n, err := strconv.Atoi(p.NotesToDispense); err != nil {
			t.caps.Logger.Warn("transaction reply: bad notes_to_dispense %q", p.NotesToDispense)
		} else {
			t.counters.AddNotesDispensed(n)
		}
	}
	if p.PrinterData != "" {
		t.caps.Logger.Info("transaction reply: printer data %q", p.PrinterData)
	}
	return t.ready()
}

package hostlink

import (
	"fmt"
	"strconv"
	"strings"

	"atmterm/internal/domain/models"
)

// fieldSep is the NDC message field separator (ASCII Unit Separator),
// reused here for the simulator's own framed payloads.
const fieldSep = 0x1F

const (
	classTerminalCommand     = 0x01
	classDataCommand         = 0x02
	classCustomizationCmd    = 0x03
	classTransactionReplyCmd = 0x04
	classEMVConfiguration    = 0x05
)

// DecodeHostMessage parses one framed payload into a HostMessage.
func DecodeHostMessage(payload []byte) (*models.HostMessage, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("hostlink: empty message")
	}
	fields := strings.Split(string(payload[1:]), string(rune(fieldSep)))

	switch payload[0] {
	case classTerminalCommand:
		if len(fields) < 1 {
			return nil, fmt.Errorf("hostlink: terminal command missing code")
		}
		code, err := terminalCommandCode(fields[0])
		if err != nil {
			return nil, err
		}
		return &models.HostMessage{
			Class:           models.ClassTerminalCommand,
			TerminalCommand: &models.TerminalCommandPayload{Code: code},
		}, nil

	case classDataCommand, classCustomizationCmd:
		p, err := decodeDataCommand(fields)
		if err != nil {
			return nil, err
		}
		class := models.ClassDataCommand
		if payload[0] == classCustomizationCmd {
			class = models.ClassCustomizationCommand
		}
		return &models.HostMessage{Class: class, DataCommand: p}, nil

	case classTransactionReplyCmd:
		if len(fields) < 1 {
			return nil, fmt.Errorf("hostlink: transaction reply missing next state")
		}
		p := &models.TransactionReplyPayload{NextState: fields[0]}
		if len(fields) > 1 {
			p.NotesToDispense = fields[1]
		}
		if len(fields) > 2 {
			p.PrinterData = fields[2]
		}
		if len(fields) > 3 {
			p.ScreenDisplayUpdate = []byte(fields[3])
		}
		return &models.HostMessage{Class: models.ClassTransactionReplyCommand, TransactionReply: p}, nil

	case classEMVConfiguration:
		return &models.HostMessage{Class: models.ClassEMVConfiguration}, nil

	default:
		return &models.HostMessage{Class: models.ClassUnknown}, nil
	}
}

func terminalCommandCode(s string) (models.TerminalCommandCode, error) {
	switch s {
	case "in_service":
		return models.CommandGoInService, nil
	case "out_of_service":
		return models.CommandGoOutOfService, nil
	case "config_info":
		return models.CommandSendConfigurationInformation, nil
	case "config_id":
		return models.CommandSendConfigurationID, nil
	case "supply_counters":
		return models.CommandSendSupplyCounters, nil
	default:
		return models.CommandUnknown, fmt.Errorf("hostlink: unrecognized terminal command %q", s)
	}
}

func decodeDataCommand(fields []string) (*models.DataCommandPayload, error) {
	if len(fields) < 1 {
		return nil, fmt.Errorf("hostlink: data command missing identifier")
	}
	p := &models.DataCommandPayload{}
	switch fields[0] {
	case "screen_data":
		p.Identifier = models.IdentifierScreenDataLoad
		p.ScreenData = []byte(joinRest(fields))
	case "state_tables":
		p.Identifier = models.IdentifierStateTablesLoad
		p.StateData = []byte(joinRest(fields))
	case "fit_data":
		p.Identifier = models.IdentifierFITDataLoad
		p.FITData = []byte(joinRest(fields))
	case "config_id":
		p.Identifier = models.IdentifierConfigurationIDNumberLoad
		if len(fields) > 1 {
			p.ConfigID = fields[1]
		}
	case "enhanced_config":
		p.Identifier = models.IdentifierEnhancedConfigurationDataLoad
		for _, pair := range fields[1:] {
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) != 2 {
				continue
			}
			p.EnhancedParams = append(p.EnhancedParams, models.EnhancedConfigParam{ID: kv[0], Value: kv[1]})
		}
	case "interactive_transaction_response":
		p.Identifier = models.IdentifierInteractiveTransactionResponse
		if len(fields) > 1 {
			p.ActiveKeys = fields[1]
		}
		if len(fields) > 2 {
			p.DynamicScreen = []byte(fields[2])
		}
	case "extended_encryption_key":
		p.Identifier = models.IdentifierExtendedEncryptionKeyInformation
		if len(fields) > 1 && fields[1] == "decipher_with_master" {
			p.KeyModifier = models.KeyModifierDecipherNewCommsKeyWithCurrentMasterKey
		}
		if len(fields) > 2 {
			p.KeyData = []byte(fields[2])
		}
		if len(fields) > 3 {
			if n, err := strconv.Atoi(fields[3]); err == nil {
				p.KeyLength = n
			}
		}
	default:
		return nil, fmt.Errorf("hostlink: unrecognized data command identifier %q", fields[0])
	}
	return p, nil
}

func joinRest(fields []string) string {
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], string(rune(fieldSep)))
}

// EncodeSolicitedStatusReply renders a SolicitedStatusReply as a framed
// payload body (caller still has to pass it through WriteFrame).
func EncodeSolicitedStatusReply(r *models.SolicitedStatusReply) []byte {
	fields := []string{
		r.MessageID(),
		r.LunoATM,
		string(r.StatusDescriptor),
	}
	if r.SubStatusDescriptor != 0 {
		fields = append(fields, string(r.SubStatusDescriptor))
	}
	if r.ConfigID != "" {
		fields = append(fields, "config_id="+r.ConfigID)
	}
	if r.HardwareFitness != "" {
		fields = append(fields, "fitness="+r.HardwareFitness)
	}
	if r.SupplyCounters != nil {
		fields = append(fields, "counters="+r.SupplyCounters.NotesDispensed)
	}
	return []byte(strings.Join(fields, string(rune(fieldSep))))
}

// EncodeTransactionRequest renders a TransactionRequest as a framed
// payload body.
func EncodeTransactionRequest(r *models.TransactionRequest) []byte {
	fields := []string{
		r.MessageID(),
		r.Luno,
		r.TopOfReceipt,
		string(r.MessageCoordinationNumber),
		r.TimeVariantNumber,
	}
	if r.Track2 != nil {
		fields = append(fields, "track2="+*r.Track2)
	}
	if r.OperationCode != nil {
		fields = append(fields, "opcode="+*r.OperationCode)
	}
	if r.AmountData != nil {
		fields = append(fields, "amount="+*r.AmountData)
	}
	if r.PinBlock != nil {
		fields = append(fields, "pin_block="+*r.PinBlock)
	}
	if r.BufferB != nil {
		fields = append(fields, "buffer_b="+*r.BufferB)
	}
	if r.BufferC != nil {
		fields = append(fields, "buffer_c="+*r.BufferC)
	}
	return []byte(strings.Join(fields, string(rune(fieldSep))))
}

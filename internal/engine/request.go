package engine

import (
	"strings"
	"time"

	"atmterm/internal/domain/models"
)

// assembleTransactionRequest builds the outbound TransactionRequest
// from the current buffers and the Transaction Request state's flags.
// Each optional field is populated only when its flag says to.
func (t *Terminal) assembleTransactionRequest(k models.TransactionRequestState) *models.TransactionRequest {
	req := &models.TransactionRequest{
		Luno:                      t.lunoOrDefault(),
		TopOfReceipt:              "1",
		MessageCoordinationNumber: t.mcn.Next(),
		TimeVariantNumber:         timeVariantNumber(time.Now()),
	}

	if k.SendTrack2 == "001" && t.card != nil {
		track2 := t.card.Track2
		req.Track2 = &track2
	}
	if k.SendOperationCode == "001" {
		opcode := t.buffers.Opcode.Get()
		req.OperationCode = &opcode
	}
	if k.SendAmountData == "001" {
		amount := t.buffers.Amount
		req.AmountData = &amount
	}

	switch k.SendPinBuffer {
	case "001", "129":
		if t.buffers.PIN == "" || t.card == nil || t.card.Number == "" {
			t.caps.Logger.Warn("transaction request: missing PIN or card, omitting PIN block")
		} else if block, err := t.caps.Crypto.GetEncryptedPIN(t.buffers.PIN, t.card.Number); err != nil {
			t.caps.Logger.Warn("transaction request: pin block failed: %v", err)
		} else {
			req.PinBlock = &block
		}
	}

	switch k.SendBufferBC {
	case "001":
		b := t.buffers.B
		req.BufferB = &b
	case "002":
		c := t.buffers.C
		req.BufferC = &c
	case "003":
		b, c := t.buffers.B, t.buffers.C
		req.BufferB = &b
		req.BufferC = &c
	case "000":
	default:
		t.caps.Logger.Warn("transaction request: extension-driven send_buffer_B_buffer_C %q not supported", k.SendBufferBC)
	}

	return req
}

// timeVariantNumber returns the 8 leading numeric characters of now's ISO
// timestamp, i.e. its YYYYMMDD date portion.
func timeVariantNumber(now time.Time) string {
	iso := now.Format("2006-01-02T15:04:05Z07:00")
	var digits strings.Builder
	for _, r := range iso {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			if digits.Len() == 8 {
				break
			}
		}
	}
	for digits.Len() < 8 {
		digits.WriteByte('0')
	}
	return digits.String()
}

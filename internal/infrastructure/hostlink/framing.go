// Package hostlink is the wire layer between a physical host link and the
// core: STX/ETX/LRC framing over a byte stream plus a small tagged codec
// for HostMessage and the two reply envelopes. None of this lives in
// internal/engine — framing and transport are explicitly a cmd/ concern,
// kept out of the single-threaded core.
package hostlink

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	stx = 0x02
	etx = 0x03
)

// WriteFrame writes data as {STX, length (uint16 little-endian), data, ETX,
// LRC}, LRC being the XOR of every byte from STX through ETX inclusive.
func WriteFrame(w io.Writer, data []byte) error {
	packet := make([]byte, 0, len(data)+5)
	packet = append(packet, stx)
	lenBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBuf, uint16(len(data)))
	packet = append(packet, lenBuf...)
	packet = append(packet, data...)
	packet = append(packet, etx)

	lrc := byte(0)
	for _, b := range packet {
		lrc ^= b
	}
	packet = append(packet, lrc)

	_, err := w.Write(packet)
	return err
}

// ReadFrame reads and validates one STX/ETX/LRC-framed packet, returning its
// payload.
func ReadFrame(r io.Reader) ([]byte, error) {
	header := make([]byte, 3)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if header[0] != stx {
		return nil, errors.New("hostlink: frame missing STX")
	}
	length := binary.LittleEndian.Uint16(header[1:3])

	body := make([]byte, int(length)+2) // payload + ETX + LRC
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	payload := body[:length]
	if body[length] != etx {
		return nil, errors.New("hostlink: frame missing ETX")
	}

	lrc := byte(0)
	for _, b := range header {
		lrc ^= b
	}
	for _, b := range body[:length+1] {
		lrc ^= b
	}
	if body[length+1] != lrc {
		return nil, errors.New("hostlink: LRC mismatch")
	}
	return payload, nil
}

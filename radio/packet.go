package radio

import (
	"encoding/binary"
	"fmt"
	"math"

	"phototaxis.dev/fsm"
)

// Size is the fixed wire size of a PeerReport, in bytes.
const Size = 32

// PeerReport is the fixed-size packet exchanged between paired vehicles.
// Layout (little-endian, packed):
//
//	offset  field        type
//	0       PrevLeft     float32
//	4       PrevRight    float32
//	8       CurrLeft     float32
//	12      CurrRight    float32
//	16      PrevState    uint8
//	17..32  padding      zero on send, ignored on receive
type PeerReport struct {
	PrevLeft, PrevRight float32
	CurrLeft, CurrRight float32
	PrevState           fsm.StateKind
}

// MarshalBinary encodes r into a fresh 32-byte packet.
func (r PeerReport) MarshalBinary() ([]byte, error) {
	buf := make([]byte, Size)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(r.PrevLeft))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(r.PrevRight))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(r.CurrLeft))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(r.CurrRight))
	buf[16] = byte(r.PrevState)
	// buf[17:32] stays zero, satisfying "must be zero on send".
	return buf, nil
}

// UnmarshalBinary decodes a 32-byte packet into r, ignoring the padding
// bytes entirely.
func (r *PeerReport) UnmarshalBinary(buf []byte) error {
	if len(buf) != Size {
		return fmt.Errorf("radio: PeerReport: want %d bytes, got %d", Size, len(buf))
	}
	r.PrevLeft = math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))
	r.PrevRight = math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))
	r.CurrLeft = math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12]))
	r.CurrRight = math.Float32frombits(binary.LittleEndian.Uint32(buf[12:16]))
	r.PrevState = fsm.StateKind(buf[16])
	return nil
}

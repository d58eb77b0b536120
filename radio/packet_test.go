package radio

import (
	"encoding/binary"
	"math"
	"testing"

	"phototaxis.dev/fsm"
)

func TestPeerReportRoundTrip(t *testing.T) {
	want := PeerReport{
		PrevLeft:  0.25,
		PrevRight: 0.75,
		CurrLeft:  0.1,
		CurrRight: 0.9,
		PrevState: fsm.Aggressive,
	}
	buf, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(buf) != Size {
		t.Fatalf("len(buf) = %d, want %d", len(buf), Size)
	}

	var got PeerReport
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestPeerReportByteOffsets(t *testing.T) {
	r := PeerReport{PrevLeft: 1, PrevRight: 2, CurrLeft: 3, CurrRight: 4, PrevState: fsm.Love}
	buf, err := r.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	checkFloat := func(off int, want float32) {
		t.Helper()
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
		if got != want {
			t.Errorf("offset %d = %v, want %v", off, got, want)
		}
	}
	checkFloat(0, 1)
	checkFloat(4, 2)
	checkFloat(8, 3)
	checkFloat(12, 4)
	if buf[16] != byte(fsm.Love) {
		t.Errorf("offset 16 = %d, want %d", buf[16], byte(fsm.Love))
	}
}

func TestPeerReportPaddingZeroOnSendIgnoredOnReceive(t *testing.T) {
	r := PeerReport{}
	buf, err := r.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	for i := 17; i < Size; i++ {
		if buf[i] != 0 {
			t.Fatalf("padding byte %d = %d, want 0", i, buf[i])
		}
	}

	// Garbage padding on receive must not affect decoding.
	for i := 17; i < Size; i++ {
		buf[i] = 0xFF
	}
	var got PeerReport
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != r {
		t.Fatalf("garbage padding changed decode: got %+v, want %+v", got, r)
	}
}

func TestPeerReportUnmarshalWrongSize(t *testing.T) {
	var r PeerReport
	if err := r.UnmarshalBinary(make([]byte, Size-1)); err == nil {
		t.Fatal("expected error for undersized buffer")
	}
	if err := r.UnmarshalBinary(make([]byte, Size+1)); err == nil {
		t.Fatal("expected error for oversized buffer")
	}
}

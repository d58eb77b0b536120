// Package telemetry records per-tick debug traces as a stream of CBOR
// values, for post-hoc inspection of a run without attaching a debugger.
package telemetry

import (
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"

	"phototaxis.dev/fsm"
)

// Event is one recorded tick: the state machine's position, the light
// reading that drove it, and the sampling probabilities actually used
// once peer influence (if any) had been applied.
type Event struct {
	Time          time.Time               `cbor:"time"`
	State         fsm.StateKind           `cbor:"state"`
	LightLeft     float64                 `cbor:"light_left"`
	LightRight    float64                 `cbor:"light_right"`
	Probabilities [fsm.NumStates]float64 `cbor:"probabilities,omitempty"`
}

// Recorder writes a stream of Events to an underlying io.Writer as
// consecutive CBOR-encoded values (readable back with cbor.NewDecoder
// and repeated Decode calls).
type Recorder struct {
	enc *cbor.Encoder
}

// NewRecorder wraps w. Passing a disabled scheduler.Config.Debug should
// result in the caller never constructing a Recorder at all, rather
// than constructing one and discarding events.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: cbor.NewEncoder(w)}
}

// Record encodes ev to the underlying stream.
func (r *Recorder) Record(ev Event) error {
	return r.enc.Encode(ev)
}

// Reader decodes a stream of Events previously written by a Recorder.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

// Next decodes the next Event, returning io.EOF once the stream is
// exhausted.
func (r *Reader) Next() (Event, error) {
	var ev Event
	if err := r.dec.Decode(&ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

package radio

import "fmt"

// Device is the transport a Service drives: one physical or simulated
// half-duplex link carrying fixed 32-byte PeerReport frames. Readable
// reports whether a full frame is currently available without blocking.
type Device interface {
	Readable() (bool, error)
	Read(buf []byte) (int, error)
	Write(buf []byte) (int, error)
}

// Service owns the two mailboxes used to hand PeerReports between the
// FSM task and the radio task, plus the Device that moves them over
// the wire. Each tick services at most one direction, favoring drains
// over sends.
type Service struct {
	dev Device
	in  *Mailbox[PeerReport]
	out *Mailbox[PeerReport]
}

// NewService returns a Service driving dev, with empty in/out mailboxes.
func NewService(dev Device) *Service {
	return &Service{
		dev: dev,
		in:  NewMailbox[PeerReport](),
		out: NewMailbox[PeerReport](),
	}
}

// TryQueueSend enqueues report for transmission. It returns false,
// leaving the outgoing queue unchanged, if the queue is already full.
func (s *Service) TryQueueSend(report PeerReport) bool {
	return s.out.TryPut(report)
}

// TryReceive dequeues the oldest report received from the peer. It
// returns (zero, false) if none is queued.
func (s *Service) TryReceive() (PeerReport, bool) {
	return s.in.TryGet()
}

// ServiceTick drives one iteration of the radio task: if a full incoming
// frame is available, it is read and decoded into the incoming mailbox;
// otherwise, if an outgoing report is queued, it is sent. At most one of
// the two happens per call.
//
// A short write never retries a partial frame: the whole report is
// requeued at the tail of the outgoing mailbox and the next call starts
// over with a fresh, full-size write.
func (s *Service) ServiceTick() error {
	readable, err := s.dev.Readable()
	if err != nil {
		return fmt.Errorf("radio: checking readable: %w", err)
	}
	if readable {
		return s.readFrame()
	}

	report, ok := s.out.TryGet()
	if !ok {
		return nil
	}
	buf, err := report.MarshalBinary()
	if err != nil {
		return fmt.Errorf("radio: marshaling outgoing report: %w", err)
	}
	n, err := s.dev.Write(buf)
	if err != nil {
		return fmt.Errorf("radio: writing frame: %w", err)
	}
	if n != Size {
		s.out.TryPut(report) // mailbox full: this requeue is dropped, same as a fresh send would be
	}
	return nil
}

func (s *Service) readFrame() error {
	buf := make([]byte, Size)
	n, err := s.dev.Read(buf)
	if err != nil {
		return fmt.Errorf("radio: reading frame: %w", err)
	}
	if n != Size {
		return fmt.Errorf("radio: short frame: want %d bytes, got %d", Size, n)
	}
	var report PeerReport
	if err := report.UnmarshalBinary(buf); err != nil {
		return fmt.Errorf("radio: decoding frame: %w", err)
	}
	s.in.TryPut(report) // mailbox full: this freshly-read report is silently dropped
	return nil
}

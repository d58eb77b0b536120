package hbridge

import (
	"testing"

	"periph.io/x/conn/v3/gpio"

	"phototaxis.dev/motor"
)

type recordingPin struct{ level gpio.Level }

func (p *recordingPin) Out(l gpio.Level) error {
	p.level = l
	return nil
}

func TestSetLeftDirectionTruthTable(t *testing.T) {
	in1, in2 := &recordingPin{}, &recordingPin{}
	setLeftDirection(in1, in2, motor.Forward)
	if in1.level != gpio.High || in2.level != gpio.Low {
		t.Fatalf("Forward: in1=%v in2=%v, want High,Low", in1.level, in2.level)
	}

	setLeftDirection(in1, in2, motor.Reverse)
	if in1.level != gpio.Low || in2.level != gpio.High {
		t.Fatalf("Reverse: in1=%v in2=%v, want Low,High", in1.level, in2.level)
	}

	setLeftDirection(in1, in2, motor.Stop)
	if in1.level != gpio.Low || in2.level != gpio.Low {
		t.Fatalf("Stop: in1=%v in2=%v, want Low,Low", in1.level, in2.level)
	}
}

func TestSetRightDirectionIsMirroredFromLeft(t *testing.T) {
	in3, in4 := &recordingPin{}, &recordingPin{}
	setRightDirection(in3, in4, motor.Forward)
	if in3.level != gpio.Low || in4.level != gpio.High {
		t.Fatalf("Forward: in3=%v in4=%v, want Low,High", in3.level, in4.level)
	}

	setRightDirection(in3, in4, motor.Reverse)
	if in3.level != gpio.High || in4.level != gpio.Low {
		t.Fatalf("Reverse: in3=%v in4=%v, want High,Low", in3.level, in4.level)
	}

	setRightDirection(in3, in4, motor.Stop)
	if in3.level != gpio.Low || in4.level != gpio.Low {
		t.Fatalf("Stop: in3=%v in4=%v, want Low,Low", in3.level, in4.level)
	}
}

package fsm

import "testing"

func TestStateKindWireValues(t *testing.T) {
	cases := []struct {
		k    StateKind
		want uint8
	}{
		{Idle, 0},
		{Coward, 1},
		{Aggressive, 2},
		{Love, 3},
		{Explorer, 4},
	}
	for _, c := range cases {
		if uint8(c.k) != c.want {
			t.Errorf("%s: got wire value %d, want %d", c.k, uint8(c.k), c.want)
		}
	}
}

func TestValid(t *testing.T) {
	for k := StateKind(0); k < NumStates; k++ {
		if !k.Valid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if StateKind(NumStates).Valid() {
		t.Errorf("StateKind(%d) should be invalid", NumStates)
	}
	if StateKind(255).Valid() {
		t.Errorf("StateKind(255) should be invalid")
	}
}

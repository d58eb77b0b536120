package radio

import "testing"

func TestMailboxTryGetEmpty(t *testing.T) {
	m := NewMailbox[int]()
	if _, ok := m.TryGet(); ok {
		t.Fatal("TryGet on empty mailbox should return false")
	}
}

func TestMailboxFIFOOrder(t *testing.T) {
	m := NewMailbox[int]()
	for i := 0; i < 5; i++ {
		if !m.TryPut(i) {
			t.Fatalf("TryPut(%d) failed unexpectedly", i)
		}
	}
	for i := 0; i < 5; i++ {
		v, ok := m.TryGet()
		if !ok || v != i {
			t.Fatalf("TryGet() = %v, %v; want %v, true", v, ok, i)
		}
	}
}

func TestMailboxDiscardsWhenFull(t *testing.T) {
	m := NewMailbox[int]()
	for i := 0; i < Capacity; i++ {
		if !m.TryPut(i) {
			t.Fatalf("TryPut(%d) failed before reaching capacity", i)
		}
	}
	if m.Len() != Capacity {
		t.Fatalf("Len() = %d, want %d", m.Len(), Capacity)
	}
	if m.TryPut(999) {
		t.Fatal("TryPut on a full mailbox should return false")
	}
	if m.Len() != Capacity {
		t.Fatalf("a rejected TryPut must not change Len(): got %d", m.Len())
	}

	// Nothing beyond the first Capacity values should ever be observed.
	for i := 0; i < Capacity; i++ {
		v, ok := m.TryGet()
		if !ok || v != i {
			t.Fatalf("TryGet() = %v, %v; want %v, true", v, ok, i)
		}
	}
	if _, ok := m.TryGet(); ok {
		t.Fatal("mailbox should be empty after draining exactly Capacity items")
	}
}

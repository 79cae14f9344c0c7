package events

import "testing"

func TestBusEmitDeliversToListeners(t *testing.T) {
	b := NewBus()
	var got []string
	b.On("ready", func(e Event) { got = append(got, e.Payload["value"].(string)) })
	b.Emit("ready", map[string]interface{}{"value": "hello"})
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("got %v, want [hello]", got)
	}
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	calls := 0
	off := b.On("change", func(e Event) { calls++ })
	b.Emit("change", nil)
	off()
	b.Emit("change", nil)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestBusOnlyMatchingNameFires(t *testing.T) {
	b := NewBus()
	fired := false
	b.On("focus", func(e Event) { fired = true })
	b.Emit("blur", nil)
	if fired {
		t.Fatalf("listener for focus fired on blur emit")
	}
}

func TestBusMultipleListenersSameEvent(t *testing.T) {
	b := NewBus()
	a, c := 0, 0
	b.On("input", func(e Event) { a++ })
	b.On("input", func(e Event) { c++ })
	b.Emit("input", nil)
	if a != 1 || c != 1 {
		t.Fatalf("a=%d c=%d, want 1,1", a, c)
	}
}

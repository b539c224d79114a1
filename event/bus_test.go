package event

import (
	"errors"
	"testing"
)

var testTopic = NewTopic[string]("click")

func TestSameHandlerTwice(t *testing.T) {
	bus := NewBus()
	calls := 0
	handler := func(string) { calls++ }

	first := Subscribe(bus, testTopic, handler)
	Subscribe(bus, testTopic, handler)

	if err := Publish(bus, testTopic, "a"); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 invocations, got %d", calls)
	}

	Unsubscribe(bus, testTopic, first)
	calls = 0
	Publish(bus, testTopic, "b")
	if calls != 1 {
		t.Errorf("Expected 1 invocation after one unsubscribe, got %d", calls)
	}
}

func TestRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 1; i <= 4; i++ {
		Subscribe(bus, testTopic, func(string) { order = append(order, i) })
	}

	Publish(bus, testTopic, "x")

	want := []int{1, 2, 3, 4}
	if len(order) != len(want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, order)
			break
		}
	}
}

func TestPayloadDelivered(t *testing.T) {
	bus := NewBus()
	var got string
	Subscribe(bus, testTopic, func(s string) { got = s })
	Publish(bus, testTopic, "payload")
	if got != "payload" {
		t.Errorf("Expected payload, got %q", got)
	}
}

func TestUnsubscribeUnknownIsNoop(t *testing.T) {
	bus := NewBus()
	other := NewBus()
	sub := Subscribe(other, testTopic, func(string) {})

	Unsubscribe(bus, testTopic, sub)
	Unsubscribe(bus, testTopic, Subscription{})
	Subscription{}.Cancel()

	if Count(other, testTopic) != 1 {
		t.Error("Expected foreign subscription to survive")
	}

	sub.Cancel()
	sub.Cancel()
	if Count(other, testTopic) != 0 {
		t.Errorf("Expected 0 registrations, got %d", Count(other, testTopic))
	}
	if sub.Active() {
		t.Error("Expected cancelled subscription to be inactive")
	}
}

func TestTopicsAreIsolated(t *testing.T) {
	bus := NewBus()
	hover := NewTopic[string]("hover")
	clicks, hovers := 0, 0
	Subscribe(bus, testTopic, func(string) { clicks++ })
	Subscribe(bus, hover, func(string) { hovers++ })

	Publish(bus, hover, "h")
	if clicks != 0 || hovers != 1 {
		t.Errorf("Expected only hover to fire, got clicks=%d hovers=%d", clicks, hovers)
	}
}

func TestSameNameDifferentPayload(t *testing.T) {
	bus := NewBus()
	numbers := NewTopic[int]("click")
	var got []string
	ints := 0
	Subscribe(bus, testTopic, func(s string) { got = append(got, s) })
	Subscribe(bus, numbers, func(int) { ints++ })

	Publish(bus, numbers, 7)
	if len(got) != 0 {
		t.Errorf("Expected string handler untouched by int topic, got %v", got)
	}
	if ints != 1 {
		t.Errorf("Expected 1 int delivery, got %d", ints)
	}
	if Count(bus, testTopic) != 1 || Count(bus, numbers) != 1 {
		t.Errorf("Expected one registration per topic, got %d and %d", Count(bus, testTopic), Count(bus, numbers))
	}

	sub := Subscribe(bus, numbers, func(int) {})
	Unsubscribe(bus, testTopic, sub)
	if Count(bus, numbers) != 2 {
		t.Errorf("Expected unsubscribe through the string topic to be ignored, got %d", Count(bus, numbers))
	}
}

// TestPanicIsolated verifies a panicking handler does not stop later handlers
func TestPanicIsolated(t *testing.T) {
	bus := NewBus()
	ran := false
	Subscribe(bus, testTopic, func(string) { panic("boom") })
	Subscribe(bus, testTopic, func(string) { ran = true })

	err := Publish(bus, testTopic, "x")
	if !ran {
		t.Error("Expected second handler to run")
	}
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected PanicError, got %v", err)
	}
	if pe.Topic != "click" || pe.Value != "boom" {
		t.Errorf("Expected click/boom, got %s/%v", pe.Topic, pe.Value)
	}
}

// TestUnsubscribeDuringPublish verifies a one-shot handler does not disturb the in-flight publish
func TestUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	var order []string
	var oneShot Subscription
	oneShot = Subscribe(bus, testTopic, func(string) {
		order = append(order, "once")
		oneShot.Cancel()
	})
	Subscribe(bus, testTopic, func(string) { order = append(order, "always") })

	Publish(bus, testTopic, "1")
	Publish(bus, testTopic, "2")

	want := []string{"once", "always", "always"}
	if len(order) != len(want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, order)
			break
		}
	}
}

func TestSubscribeDuringPublishWaitsForNext(t *testing.T) {
	bus := NewBus()
	late := 0
	Subscribe(bus, testTopic, func(string) {
		Subscribe(bus, testTopic, func(string) { late++ })
	})

	Publish(bus, testTopic, "1")
	if late != 0 {
		t.Errorf("Expected late handler to miss in-flight publish, got %d", late)
	}
	Publish(bus, testTopic, "2")
	if late != 1 {
		t.Errorf("Expected late handler to fire once, got %d", late)
	}
}

func TestZeroBusAndClear(t *testing.T) {
	var bus Bus
	Subscribe(&bus, testTopic, func(string) {})
	if Count(&bus, testTopic) != 1 {
		t.Error("Expected zero-value bus to accept subscriptions")
	}
	bus.Clear()
	if Count(&bus, testTopic) != 0 {
		t.Error("Expected Clear to drop registrations")
	}
	if err := Publish(&bus, testTopic, "x"); err != nil {
		t.Errorf("Expected empty publish to succeed, got %v", err)
	}
}

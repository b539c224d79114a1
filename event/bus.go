// Package event is a synchronous publish/subscribe bus with typed topics.
//
// Architecture:
//   - Single-threaded dispatch, no locking
//   - Multiple registrations per topic, invoked in registration order
//   - Every Subscribe call is an independent registration, identified by its Subscription
//   - Publish walks a snapshot, so (un)subscribing from a handler only affects later publishes
//   - A panicking handler is isolated; the remaining handlers still run
//   - Topics are keyed by name and payload type; equal names with different payloads never share handlers
package event

import (
	"errors"
	"fmt"
	"log"
	"slices"
)

// Handler receives the payload of one publish
type Handler[P any] func(payload P)

type registration struct {
	id uint64
	fn func(payload any)
}

// Bus holds the registrations of every topic. The zero value is ready to use
type Bus struct {
	topics map[topicKey][]registration
	nextID uint64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{topics: make(map[topicKey][]registration)}
}

// Subscription identifies one registration on a bus
type Subscription struct {
	bus   *Bus
	topic topicKey
	id    uint64
}

// Cancel removes the registration. Cancelling twice is a no-op
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	s.bus.remove(s.topic, s.id)
}

// Active reports whether the registration is still on its bus
func (s Subscription) Active() bool {
	if s.bus == nil {
		return false
	}
	for _, r := range s.bus.topics[s.topic] {
		if r.id == s.id {
			return true
		}
	}
	return false
}

// PanicError reports a handler that panicked during Publish
type PanicError struct {
	Topic string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler on %q panicked: %v", e.Topic, e.Value)
}

// Subscribe registers fn for every future publish on topic
func Subscribe[P any](b *Bus, topic Topic[P], fn Handler[P]) Subscription {
	if b.topics == nil {
		b.topics = make(map[topicKey][]registration)
	}
	b.nextID++
	id := b.nextID
	key := topic.key()
	b.topics[key] = append(b.topics[key], registration{
		id: id,
		fn: func(payload any) {
			// A nil interface payload asserts to the zero P
			v, _ := payload.(P)
			fn(v)
		},
	})
	return Subscription{bus: b, topic: key, id: id}
}

// Unsubscribe removes sub from topic. Subscriptions of other topics or buses,
// and subscriptions already removed, are ignored
func Unsubscribe[P any](b *Bus, topic Topic[P], sub Subscription) {
	if sub.bus != b || sub.topic != topic.key() {
		return
	}
	b.remove(sub.topic, sub.id)
}

// Publish invokes every handler currently subscribed to topic, in order.
// The returned error joins a PanicError for each handler that panicked
func Publish[P any](b *Bus, topic Topic[P], payload P) error {
	regs := b.topics[topic.key()]
	if len(regs) == 0 {
		return nil
	}
	snapshot := slices.Clone(regs)

	var errs []error
	for _, r := range snapshot {
		if err := invoke(topic.name, r, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Count returns the number of registrations on topic
func Count[P any](b *Bus, topic Topic[P]) int {
	return len(b.topics[topic.key()])
}

// Clear drops every registration on every topic
func (b *Bus) Clear() {
	b.topics = make(map[topicKey][]registration)
}

func (b *Bus) remove(topic topicKey, id uint64) {
	regs := b.topics[topic]
	for i, r := range regs {
		if r.id == id {
			// Fresh slice: an in-flight Publish keeps iterating its own snapshot
			b.topics[topic] = slices.Delete(slices.Clone(regs), i, i+1)
			if len(b.topics[topic]) == 0 {
				delete(b.topics, topic)
			}
			return
		}
	}
}

func invoke(topic string, r registration, payload any) (err error) {
	defer func() {
		if v := recover(); v != nil {
			log.Printf("[event] handler %d on %q panicked: %v", r.id, topic, v)
			err = &PanicError{Topic: topic, Value: v}
		}
	}()
	r.fn(payload)
	return nil
}

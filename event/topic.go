package event

import "reflect"

// Topic names a channel of the bus and fixes its payload type,
// so a handler for Topic[P] can only ever receive a P
type Topic[P any] struct {
	name string
}

// NewTopic declares a topic. Two topics with the same name and payload type are the same topic;
// the same name with another payload type is a different topic
func NewTopic[P any](name string) Topic[P] {
	return Topic[P]{name: name}
}

// Name returns the topic name
func (t Topic[P]) Name() string {
	return t.name
}

func (t Topic[P]) String() string {
	return t.name
}

type topicKey struct {
	name    string
	payload reflect.Type
}

func (t Topic[P]) key() topicKey {
	return topicKey{name: t.name, payload: reflect.TypeFor[P]()}
}

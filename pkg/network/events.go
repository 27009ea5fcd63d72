// pkg/network/events.go
package network

// RawEvent is an event as reported by the node, with one entry per attribute.
type RawEvent struct {
	Type       string         `json:"type"`
	Attributes []RawAttribute `json:"attributes"`
}

// RawAttribute is a single key/value pair of a RawEvent.
type RawAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// EventAttribute holds every value emitted under one key, in emission order.
type EventAttribute struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// Event is a typed event whose attribute keys may repeat.
type Event struct {
	Type       string           `json:"type"`
	Attributes []EventAttribute `json:"attributes"`
}

// Values returns the values recorded under key.
func (e Event) Values(key string) ([]string, bool) {
	for _, attr := range e.Attributes {
		if attr.Key == key {
			return attr.Values, true
		}
	}
	return nil, false
}

// Events is an ordered list of events, at most one entry per type.
type Events []Event

// Find returns the event of the given type.
func (e Events) Find(eventType string) (Event, bool) {
	for _, ev := range e {
		if ev.Type == eventType {
			return ev, true
		}
	}
	return Event{}, false
}

// Values returns the values of key within the event of the given type.
func (e Events) Values(eventType, key string) ([]string, bool) {
	ev, ok := e.Find(eventType)
	if !ok {
		return nil, false
	}
	return ev.Values(key)
}

// GroupEvents folds raw events into Events. Events of the same type are merged
// and repeated keys accumulate their values; first-seen order is kept for
// types, keys and values.
func GroupEvents(raw []RawEvent) Events {
	var out Events
	typeIdx := make(map[string]int)

	for _, re := range raw {
		i, ok := typeIdx[re.Type]
		if !ok {
			i = len(out)
			typeIdx[re.Type] = i
			out = append(out, Event{Type: re.Type})
		}

		for _, attr := range re.Attributes {
			out[i].Attributes = appendValue(out[i].Attributes, attr.Key, attr.Value)
		}
	}

	return out
}

func appendValue(attrs []EventAttribute, key, value string) []EventAttribute {
	for i := range attrs {
		if attrs[i].Key == key {
			attrs[i].Values = append(attrs[i].Values, value)
			return attrs
		}
	}
	return append(attrs, EventAttribute{Key: key, Values: []string{value}})
}

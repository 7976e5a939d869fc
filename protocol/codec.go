package protocol

import (
	"fmt"
	"sort"
)

// Codec turns messages into frames and back. Binary reports whether frames
// must travel as websocket binary messages rather than text.
type Codec interface {
	Name() string
	Marshal(m *Message) ([]byte, error)
	Unmarshal(data []byte, m *Message) error
	Binary() bool
}

// DefaultCodec is used when neither peer asks for anything else.
const DefaultCodec = "json"

var codecs = map[string]Codec{}

func register(c Codec) {
	codecs[c.Name()] = c
}

func init() {
	register(JSONCodec{})
	register(MsgpackCodec{})
	register(ProtoCodec{})
}

// CodecByName looks up a registered codec. An empty name selects the
// default.
func CodecByName(name string) (Codec, error) {
	if name == "" {
		name = DefaultCodec
	}
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (have %v)", name, CodecNames())
	}
	return c, nil
}

// CodecNames lists the registered codecs in sorted order.
func CodecNames() []string {
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Decode unmarshals and validates a frame in one go.
func Decode(c Codec, data []byte) (Message, error) {
	var m Message
	if err := c.Unmarshal(data, &m); err != nil {
		return Message{}, err
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/errors"
)

// Decode parses and validates one inbound frame. Only client message types
// are accepted.
func Decode(data []byte) (*Message, error) {
	if len(data) > MaxMessageSize {
		return nil, errors.New("E060").WithDetail(fmt.Sprintf("frame of %d bytes exceeds %d", len(data), MaxMessageSize))
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("E060").WithDetail("not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("E060").WithDetail("not a JSON object")
	}
	typ := root.Get("type")
	if typ.Type != gjson.String {
		return nil, errors.New("E060").WithDetail("missing \"type\"")
	}
	if t := Type(typ.String()); !t.Inbound() {
		return nil, errors.New("E061").WithDetail(fmt.Sprintf("%q", t))
	}

	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.New("E060").Wrap(err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Encode validates m and renders it as JSON.
func Encode(m *Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

package snaptree

import (
	"bytes"

	"github.com/goccy/go-yaml"
	segjson "github.com/segmentio/encoding/json"

	"github.com/snaptree/go-snaptree/decode"
)

// FromJSON constructs a snapshot from JSON data. A nil registry binds the
// snapshot to decode.Default(). Integer literals become int64 content.
func FromJSON(data []byte, reg *decode.Registry) (*Snapshot, error) {
	v, err := unmarshalJSON(data)
	if err != nil {
		return nil, err
	}
	return New(v, reg)
}

// unmarshalJSON decodes with UseNumber so integer literals survive as
// json.Number for canonicalization instead of collapsing to float64.
func unmarshalJSON(data []byte) (any, error) {
	dec := segjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// FromYAML constructs a snapshot from YAML data.
func FromYAML(data []byte, reg *decode.Registry) (*Snapshot, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return New(v, reg)
}

// MarshalJSON encodes the snapshot content; null content encodes as "null".
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return segjson.Marshal(s.value)
}

// YAML encodes the snapshot content as YAML.
func (s *Snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s.value)
}

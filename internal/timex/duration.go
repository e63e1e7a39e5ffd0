// Package timex provides a time.Duration wrapper that can be read from JSON
// or YAML either as a Go duration string ("30m", "720h") or as integer
// nanoseconds.
package timex

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidDuration = errors.New("invalid duration")

// Duration is a JSON-friendly time.Duration.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return ErrInvalidDuration
	}
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return ErrInvalidDuration
	}
	if ns, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
		d.Duration = time.Duration(ns)
		return nil
	}
	parsed, err := time.ParseDuration(n.Value)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

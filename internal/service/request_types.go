package service

import (
	"encoding/json"
	"fmt"
	"time"
)

// Optional is a request field that tells apart "absent", "null" and a value.
// Set is true whenever the key appeared in the JSON body.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Present wraps v as an explicitly supplied value.
func Present[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns an explicitly supplied null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value, o.Null = zero, true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// ptr returns nil unless a non-null value was supplied.
func (o Optional[T]) ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// naive timestamps carry no zone and are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp accepts RFC 3339 times and zone-less ISO 8601 times.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (ts *Timestamp) timePtr() *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.Time
	return &t
}

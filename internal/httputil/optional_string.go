package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString is a JSON PATCH field (RFC 7396) that tells "absent" apart
// from "null":
//   - Present=false: the field was not in the body
//   - Present=true, Value=nil: the field was null
//   - Present=true, Value!=nil: the field was a string, possibly ""
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only called for fields present in the body.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// OrEmpty returns the value, or "" when absent or null.
func (o OptionalString) OrEmpty() string {
	if o.Value == nil {
		return ""
	}
	return *o.Value
}

//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Scalar is a free-form value the backend may send as a string or a number,
// such as a salary. It always encodes as a string.
type Scalar string

// String returns the value as text.
func (s Scalar) String() string {
	return string(s)
}

// MarshalJSON encodes the value as a JSON string.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("invalid value: %w", err)
		}
		*s = Scalar(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid value %s: %w", string(data), err)
	}
	*s = Scalar(n.String())
	return nil
}

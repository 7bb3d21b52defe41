package types

import (
	"encoding/json"
	"fmt"
)

// FlexString is a string that can be unmarshaled from either a JSON string or a JSON number.
// Numeric form fields keep their raw text so parsing and validation happen in one place.
type FlexString string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	return fmt.Errorf("FlexString: unexpected type, expected string or number")
}

// String converts FlexString back to string.
func (f FlexString) String() string {
	return string(f)
}

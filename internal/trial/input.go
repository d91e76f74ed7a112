package trial

import (
	"fmt"
	"slices"
)

type InputMode string

const (
	InputKey  InputMode = "key"
	InputForm InputMode = "form"
)

// KeySpace is the space bar as reported by the browser's KeyboardEvent.key.
const KeySpace = " "

// InputRequirement describes the input events a screen accepts.
type InputRequirement struct {
	Mode     InputMode `json:"mode"`
	Keys     []string  `json:"keys,omitempty"`
	Field    string    `json:"field,omitempty"`
	Required bool      `json:"required,omitempty"`
	Options  []string  `json:"options,omitempty"`
}

// Validate reports why in does not satisfy r, or nil when it does.
func (r InputRequirement) Validate(in Input) error {
	switch r.Mode {
	case InputKey:
		if !slices.Contains(r.Keys, in.Key) {
			return fmt.Errorf("key %q is not accepted on this screen", in.Key)
		}
	case InputForm:
		value, ok := in.Responses[r.Field]
		if !ok {
			return fmt.Errorf("field '%s' is missing", r.Field)
		}
		if r.Required && value == "" {
			return fmt.Errorf("field '%s' is required", r.Field)
		}
		if len(r.Options) > 0 && !slices.Contains(r.Options, value) {
			return fmt.Errorf("field '%s' must be one of the listed options", r.Field)
		}
	default:
		return fmt.Errorf("unknown input mode %q", r.Mode)
	}
	return nil
}

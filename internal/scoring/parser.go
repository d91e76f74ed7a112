package scoring

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/SAP-F-2025/comprehension-service/internal/errors"
)

// ParseResponses decodes a survey-style responses string such as
// {"critical-response":"basket"} into a field payload. Non-string values are
// kept in their JSON text form.
func ParseResponses(raw string) (map[string]string, error) {
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode responses: %w", err)
	}

	payload := make(map[string]string, len(decoded))
	for key, value := range decoded {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			payload[key] = s
			continue
		}
		payload[key] = string(value)
	}
	return payload, nil
}

// ParseFreeResponse extracts the raw answer stored under fieldKey. The value
// is returned as submitted; an empty string is a valid answer.
func ParseFreeResponse(payload map[string]string, fieldKey string) (string, error) {
	value, ok := payload[fieldKey]
	if !ok {
		return "", apperrors.NewMissingFieldError(fieldKey)
	}
	return value, nil
}

// Normalize lowercases s. Whitespace and punctuation are left alone.
func Normalize(s string) string {
	return strings.ToLower(s)
}

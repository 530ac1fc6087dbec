// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSON parses a model completion into out. Models occasionally wrap
// their JSON in a Markdown code fence despite instructions; the fence is
// stripped before unmarshaling. A decode failure here is a schema failure:
// the caller aborts the turn rather than guessing at the model's intent.
func DecodeJSON(raw string, out any) error {
	clean := StripFences(raw)
	if clean == "" {
		return fmt.Errorf("empty completion")
	}
	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("completion did not match schema: %w", err)
	}
	return nil
}

// StripFences removes a surrounding Markdown code fence (``` or ```json)
// from a completion, if present.
func StripFences(s string) string {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

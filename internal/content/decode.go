package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var ErrSchemaMismatch = errors.New("generated content does not match schema")

// decodeStrict accepts only a JSON object whose required fields are all strings.
func decodeStrict(text string, fields []string, out any) error {
	trimmed := strings.TrimSpace(text)
	if !gjson.Valid(trimmed) {
		return fmt.Errorf("%w: invalid json", ErrSchemaMismatch)
	}
	parsed := gjson.Parse(trimmed)
	if !parsed.IsObject() {
		return fmt.Errorf("%w: expected object", ErrSchemaMismatch)
	}
	for _, field := range fields {
		value := parsed.Get(field)
		if value.Type != gjson.String {
			return fmt.Errorf("%w: field %q missing or not a string", ErrSchemaMismatch, field)
		}
	}
	if err := json.Unmarshal([]byte(trimmed), out); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return nil
}

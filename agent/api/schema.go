package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalidBody = errors.New("invalid request body")

var chatSchema = map[string]any{
	"type":     "object",
	"required": []any{"query"},
	"properties": map[string]any{
		"query":     map[string]any{"type": "string", "minLength": 1},
		"context":   map[string]any{"type": "object"},
		"course_id": map[string]any{"type": "string"},
		"lesson_id": map[string]any{"type": "string"},
	},
}

var recommendationsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"course_id":   map[string]any{"type": "string"},
		"preferences": map[string]any{"type": []any{"object", "array", "string", "null"}},
	},
}

var explainSchema = map[string]any{
	"type":     "object",
	"required": []any{"topic"},
	"properties": map[string]any{
		"topic":      map[string]any{"type": "string", "minLength": 1},
		"context":    map[string]any{"type": "object"},
		"difficulty": map[string]any{"type": "string"},
	},
}

// validateBody checks a raw JSON body against a schema and joins every
// violation into one ErrInvalidBody error.
func validateBody(schema map[string]any, body []byte) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidBody, strings.Join(errs, "; "))
	}
	return nil
}

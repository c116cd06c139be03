package guide

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// envelopeSchema describes a guide as returned by the backend. The content
// field is either the item array itself or that array encoded as a string.
var envelopeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":         map[string]any{"type": []any{"string", "integer"}},
		"title":      map[string]any{"type": "string"},
		"guide_type": map[string]any{"type": "string", "enum": []any{"quiz", "flashcards", "study_guide"}},
		"course_id":  map[string]any{"type": []any{"string", "integer", "null"}},
		"created_at": map[string]any{"type": []any{"string", "null"}},
		"content":    map[string]any{"type": []any{"string", "array"}},
	},
	"required": []any{"guide_type", "content"},
}

var quizSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
			"options": map[string]any{
				"type":                 "object",
				"minProperties":        2,
				"additionalProperties": map[string]any{"type": "string"},
			},
			"correct_answer": map[string]any{"type": "string", "minLength": 1},
			"explanation":    map[string]any{"type": "string"},
		},
		"required": []any{"question", "options", "correct_answer"},
	},
}

var flashcardsSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"front": map[string]any{"type": "string", "minLength": 1},
			"back":  map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"front", "back"},
	},
}

type compiledSchemas struct {
	envelope   *jsonschema.Schema
	quiz       *jsonschema.Schema
	flashcards *jsonschema.Schema
}

var (
	schemasOnce sync.Once
	schemas     compiledSchemas
	schemasErr  error
)

func loadSchemas() (compiledSchemas, error) {
	schemasOnce.Do(func() {
		c := jsonschema.NewCompiler()
		defs := map[string]map[string]any{
			"envelope":   envelopeSchema,
			"quiz":       quizSchema,
			"flashcards": flashcardsSchema,
		}
		for name, def := range defs {
			parsed, err := toJSONValue(def)
			if err != nil {
				schemasErr = fmt.Errorf("parse %s schema: %w", name, err)
				return
			}
			if err := c.AddResource(schemaURL(name), parsed); err != nil {
				schemasErr = fmt.Errorf("add %s schema: %w", name, err)
				return
			}
		}
		var err error
		if schemas.envelope, err = c.Compile(schemaURL("envelope")); err != nil {
			schemasErr = fmt.Errorf("compile envelope schema: %w", err)
			return
		}
		if schemas.quiz, err = c.Compile(schemaURL("quiz")); err != nil {
			schemasErr = fmt.Errorf("compile quiz schema: %w", err)
			return
		}
		if schemas.flashcards, err = c.Compile(schemaURL("flashcards")); err != nil {
			schemasErr = fmt.Errorf("compile flashcards schema: %w", err)
		}
	})
	return schemas, schemasErr
}

func schemaURL(name string) string {
	return fmt.Sprintf("schema://studydesk/%s.json", name)
}

// toJSONValue round-trips v through encoding/json so the compiler and
// validator see plain JSON values.
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

var questionItem = map[string]any{
	"type":     "object",
	"required": []any{"question", "options"},
	"properties": map[string]any{
		"question":         map[string]any{"type": "string", "minLength": 1},
		"options":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 4, "maxItems": 4},
		"answer":           map[string]any{"type": "string"},
		"correct_answer":   map[string]any{"type": "string"},
		"concept":          map[string]any{"type": "string"},
		"concept_tested":   map[string]any{"type": "string"},
		"difficulty":       map[string]any{"type": "string"},
		"explanation":      map[string]any{"type": "string"},
		"is_reinforcement": map[string]any{"type": "boolean"},
	},
	"allOf": []any{
		map[string]any{"anyOf": []any{
			map[string]any{"required": []any{"answer"}},
			map[string]any{"required": []any{"correct_answer"}},
		}},
		map[string]any{"anyOf": []any{
			map[string]any{"required": []any{"concept"}},
			map[string]any{"required": []any{"concept_tested"}},
		}},
	},
}

// QuizSchema accepts the bare question array of a diagnostic quiz and the
// titled object of a final quiz.
var QuizSchema = &Schema{
	Name: "quiz",
	Definition: map[string]any{
		"anyOf": []any{
			map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    questionItem,
			},
			map[string]any{
				"type":     "object",
				"required": []any{"questions"},
				"properties": map[string]any{
					"title":       map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    questionItem,
					},
				},
			},
		},
	},
}

// LearningPathSchema describes one guidance entry per weak concept.
var LearningPathSchema = &Schema{
	Name: "learning_path",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"concept", "explanation"},
			"properties": map[string]any{
				"concept":     map[string]any{"type": "string", "minLength": 1},
				"explanation": map[string]any{"type": "string"},
				"resource":    map[string]any{"type": "string"},
			},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse validates raw JSON against schema. Failures are returned
// as *MalformedResponse.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &MalformedResponse{Raw: string(raw), Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return &MalformedResponse{Raw: string(raw), Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &MalformedResponse{Raw: string(raw), Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// choicesSchema describes the four-option choice map shared by choices and
// explanations.
func choicesSchema(required bool) map[string]any {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"A": map[string]any{"type": "string"},
			"B": map[string]any{"type": "string"},
			"C": map[string]any{"type": "string"},
			"D": map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	}
	if required {
		s["required"] = []any{"A", "B", "C", "D"}
	}
	return s
}

// cardsSchema validates the card catalog file: an array of cards, each with
// exactly four choices and a correct key naming one of them.
var cardsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":     map[string]any{"type": "string", "minLength": 1},
			"kind":   map[string]any{"type": "string"},
			"deckId": map[string]any{"type": "string", "minLength": 1},
			"promptLine": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"question":     map[string]any{"type": "string"},
			"choices":      choicesSchema(true),
			"correct":      map[string]any{"enum": []any{"A", "B", "C", "D"}},
			"explanations": choicesSchema(false),
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"difficulty": map[string]any{"type": "integer", "minimum": 1},
		},
		"required":             []any{"id", "kind", "deckId", "promptLine", "choices", "correct"},
		"additionalProperties": true,
	},
}

// decksSchema validates the deck catalog file: an object keyed by deck id.
var decksSchema = map[string]any{
	"type": "object",
	"additionalProperties": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"deckName":      map[string]any{"type": "string", "minLength": 1},
			"chapter":       map[string]any{"type": "integer", "minimum": 1},
			"section":       map[string]any{"type": "string", "minLength": 1},
			"order":         map[string]any{"type": "integer"},
			"mode":          map[string]any{"enum": []any{"match"}},
			"sourceChapter": map[string]any{"type": "integer"},
		},
		"required":             []any{"deckName", "chapter", "section", "order"},
		"additionalProperties": false,
	},
}

// validateSchema checks raw JSON against a schema definition.
// The jsonschema library expects a parsed JSON value (any), not raw bytes.
func validateSchema(name string, definition map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	defBytes, err := json.Marshal(definition)
	if err != nil {
		return fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidateCardsJSON validates raw card-catalog JSON against the card schema.
// Used by the check command on externally curated data files.
func ValidateCardsJSON(raw []byte) error {
	return validateSchema("cards", cardsSchema, raw)
}

// ValidateDecksJSON validates raw deck-catalog JSON against the deck schema.
func ValidateDecksJSON(raw []byte) error {
	return validateSchema("decks", decksSchema, raw)
}

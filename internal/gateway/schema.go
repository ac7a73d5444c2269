package gateway

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionPayloadSchema is the contract the service's next-question
// response must satisfy before we attempt to normalize it. Option text is
// left untyped because the service sends strings or bare numbers.
const questionPayloadSchema = `{
	"type": "object",
	"required": ["_id", "text", "options"],
	"properties": {
		"_id": {"type": "string", "minLength": 1},
		"text": {"type": "string", "minLength": 1},
		"options": {
			"type": "array",
			"minItems": 2,
			"items": {
				"type": "object",
				"required": ["_id", "text"],
				"properties": {
					"_id": {"type": "string", "minLength": 1},
					"isCorrect": {"type": "boolean"}
				}
			}
		},
		"journeyItemId": {"type": "string"},
		"progress": {
			"type": "object",
			"properties": {
				"journeyItems": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["_id"],
						"properties": {
							"_id": {"type": "string", "minLength": 1},
							"isCompleted": {"type": "boolean"}
						}
					}
				}
			}
		}
	}
}`

var (
	payloadSchemaOnce sync.Once
	payloadSchema     *jsonschema.Schema
	payloadSchemaErr  error
)

func compiledPayloadSchema() (*jsonschema.Schema, error) {
	payloadSchemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(questionPayloadSchema), &parsed); err != nil {
			payloadSchemaErr = fmt.Errorf("parse payload schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://next-question.json", parsed); err != nil {
			payloadSchemaErr = fmt.Errorf("add payload schema: %w", err)
			return
		}
		payloadSchema, payloadSchemaErr = c.Compile("schema://next-question.json")
	})
	return payloadSchema, payloadSchemaErr
}

func validatePayload(raw []byte) error {
	schema, err := compiledPayloadSchema()
	if err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("gateway: invalid JSON from service: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("gateway: question payload rejected: %w", err)
	}
	return nil
}

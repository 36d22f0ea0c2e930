package content

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// payloadSchema constrains the structured payloads carried by rich content
// blocks (diagram and table data). Payloads are optional; when present they
// must be a JSON object tagged with a kind.
const payloadSchema = `{
	"type": "object",
	"required": ["kind"],
	"properties": {
		"kind": {"type": "string", "minLength": 1},
		"rows": {
			"type": "array",
			"items": {"type": "array", "items": {"type": "string"}}
		},
		"nodes": {"type": "array"},
		"edges": {"type": "array"}
	}
}`

var payloadSchemaLoader = gojsonschema.NewStringLoader(payloadSchema)

// checkPayload validates a raw structured payload against the payload schema
// and returns it as bytes. An invalid payload is an error for the caller to
// log; it never aborts the transform.
func checkPayload(raw string) ([]byte, error) {
	result, err := gojsonschema.Validate(payloadSchemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return nil, fmt.Errorf("payload schema: %s", errs[0])
		}
		return nil, fmt.Errorf("payload schema: invalid")
	}
	return []byte(raw), nil
}

package nativechange

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrHeatmapSchema is returned when a heatmap document does not match the
// published contract.
var ErrHeatmapSchema = errors.New("heatmap document violates schema")

// heatmapSchema is the JSON Schema for the persisted heatmap artifact:
// addon names mapping to {"<source>-<target>": number} objects.
const heatmapSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "patternProperties": {
      "^[0-9]+\\.[0-9]+-[0-9]+\\.[0-9]+$": {"type": "number"}
    },
    "additionalProperties": false
  }
}`

// ValidateHeatmapDocument checks raw JSON bytes against the heatmap matrix
// contract before they are handed to a renderer. All schema violations are
// reported at once.
func ValidateHeatmapDocument(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(heatmapSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate heatmap: %w", err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		details = append(details, verr.String())
	}

	return fmt.Errorf("%w: %s", ErrHeatmapSchema, strings.Join(details, "; "))
}

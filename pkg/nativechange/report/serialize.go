package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/oca-tools/addonscope/pkg/nativechange"
)

// Document is the structured payload emitted for machine consumption: one
// entry per analyzed addon, wrapped with the process name the downstream
// tooling dispatches on.
type Document struct {
	Process string                          `json:"process" yaml:"process"`
	Results map[string]*nativechange.Result `json:"results" yaml:"results"`
}

// NewDocument wraps per-addon analysis results for serialization.
func NewDocument(results map[string]*nativechange.Result) *Document {
	return &Document{Process: "analyze", Results: results}
}

// WriteJSON emits the document as indented JSON.
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode analysis document: %w", err)
	}

	return nil
}

// WriteYAML emits the document as YAML.
func (d *Document) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()

	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode analysis document: %w", err)
	}

	return nil
}

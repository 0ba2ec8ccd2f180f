package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas keyed by Schema.Name. Every prompt in
// the tutor uses its own name, so the name is a safe cache key.
var compiled = struct {
	sync.RWMutex
	byName map[string]*jsonschema.Schema
}{byName: make(map[string]*jsonschema.Schema)}

// Validate checks a structured reply against schema. A nil schema accepts
// anything. Every failure is an *ErrInvalidResponse so the retry layer
// asks the model once more.
func Validate(schema *Schema, raw []byte) error {
	if schema == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalidReply(raw, fmt.Errorf("reply is not JSON: %w", err))
	}
	s, err := compileSchema(schema)
	if err != nil {
		return invalidReply(raw, err)
	}
	if err := s.Validate(doc); err != nil {
		return invalidReply(raw, fmt.Errorf("reply does not match %s: %w", schema.Name, err))
	}
	return nil
}

func invalidReply(raw []byte, err error) error {
	return &ErrInvalidResponse{Content: json.RawMessage(raw), Err: err}
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	compiled.RLock()
	s, ok := compiled.byName[schema.Name]
	compiled.RUnlock()
	if ok {
		return s, nil
	}

	// The compiler wants the decoded form it produces itself, with
	// json.Number for numeric bounds.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}

	url := "arbor://schemas/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	s, err = c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}

	compiled.Lock()
	compiled.byName[schema.Name] = s
	compiled.Unlock()
	return s, nil
}

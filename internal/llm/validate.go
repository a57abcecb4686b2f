package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemas holds compiled schemas keyed by Schema.Name.
var schemas = struct {
	sync.RWMutex
	byName map[string]*jsonschema.Schema
}{byName: make(map[string]*jsonschema.Schema)}

// decodeOutput turns raw model text into Response content. Free text is
// wrapped as a JSON string. Structured output has any markdown fence
// removed and must satisfy the schema.
func decodeOutput(text string, schema *Schema) (json.RawMessage, error) {
	if schema == nil {
		return TextContent(text), nil
	}
	raw := json.RawMessage(stripFence(text))
	if err := validateResponse(schema, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// stripFence removes a surrounding ```json ... ``` block, which some
// models add even when asked for bare JSON.
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// validateResponse checks raw against schema. A nil schema accepts anything.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(err error) error {
		return &ErrInvalidResponse{Schema: schema.Name, Content: raw, Err: err}
	}

	if len(raw) == 0 {
		return invalid(errors.New("empty response"))
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return invalid(fmt.Errorf("not JSON: %w", err))
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return invalid(err)
	}
	if err := compiled.Validate(doc); err != nil {
		return invalid(err)
	}
	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	schemas.RLock()
	c, ok := schemas.byName[schema.Name]
	schemas.RUnlock()
	if ok {
		return c, nil
	}

	// The compiler wants a decoded JSON document, not Go maps with typed
	// slices, so round-trip the definition.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %s: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", schema.Name, err)
	}

	url := "mem://promptcoach/" + schema.Name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", schema.Name, err)
	}
	c, err = compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", schema.Name, err)
	}

	schemas.Lock()
	schemas.byName[schema.Name] = c
	schemas.Unlock()
	return c, nil
}

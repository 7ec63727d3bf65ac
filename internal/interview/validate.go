package interview

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// decodeResponse checks raw against schema and decodes it into out. Every
// failure is reported as *ErrInvalidResponse carrying the raw body.
func decodeResponse(schema *Schema, raw []byte, out any) error {
	invalid := func(err error) error {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}

	// jsonschema's decoder keeps numbers as json.Number so integer checks
	// on question_number are exact.
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("invalid JSON: %w", err))
	}

	if schema != nil {
		compiled, err := schema.compile()
		if err != nil {
			return invalid(fmt.Errorf("compile schema %q: %w", schema.Name, err))
		}
		if err := compiled.Validate(doc); err != nil {
			return invalid(fmt.Errorf("reply does not match %s: %w", schema.Name, err))
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return invalid(fmt.Errorf("decode: %w", err))
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// AddResource wants decoded JSON, not Go literals with typed slices.
		def, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = fmt.Errorf("marshal definition: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
		if err != nil {
			s.err = fmt.Errorf("parse definition: %w", err)
			return
		}

		url := "schema://" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			s.err = fmt.Errorf("add resource: %w", err)
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.compiled, s.err
}

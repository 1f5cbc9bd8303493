package ocr

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lgarreta/ecuapassdocs/internal/common"
)

// BuildResultJSONSchema returns the JSON schema of the top-level shape the
// engine requires from a cached analysis result.
func BuildResultJSONSchema() map[string]any {
	point := map[string]any{
		"type":     "object",
		"required": []string{"x", "y"},
		"properties": map[string]any{
			"x": map[string]any{"type": "number"},
			"y": map[string]any{"type": "number"},
		},
	}
	polygon := map[string]any{"type": "array", "items": point}
	line := map[string]any{
		"type":     "object",
		"required": []string{"content", "polygon"},
		"properties": map[string]any{
			"content": map[string]any{"type": "string"},
			"polygon": polygon,
		},
	}
	field := map[string]any{
		"type":     "object",
		"required": []string{"value_type"},
		"properties": map[string]any{
			"value_type": map[string]any{"type": "string"},
			"content":    map[string]any{"type": []string{"string", "null"}},
			"bounding_regions": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type":       "object",
					"properties": map[string]any{"polygon": polygon},
				},
			},
		},
	}
	return map[string]any{
		"type":     "object",
		"required": []string{"pages", "documents"},
		"properties": map[string]any{
			"pages": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":       "object",
					"required":   []string{"lines"},
					"properties": map[string]any{"lines": map[string]any{"type": "array", "items": line}},
				},
			},
			"documents": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []string{"fields"},
					"properties": map[string]any{
						"fields": map[string]any{"type": "object", "additionalProperties": field},
					},
				},
			},
		},
	}
}

var (
	resultSchemaOnce sync.Once
	resultSchema     *jsonschema.Schema
	resultSchemaErr  error
)

// ValidateRaw checks raw against the input contract.
func ValidateRaw(raw []byte) error {
	resultSchemaOnce.Do(func() {
		resultSchema, resultSchemaErr = common.CompileSchema("analysis-result.json", BuildResultJSONSchema())
	})
	if resultSchemaErr != nil {
		return resultSchemaErr
	}
	if err := common.ValidateJSON(resultSchema, raw); err != nil {
		return common.NewInputContractError("invalid analysis result", err)
	}
	return nil
}

type rawResult struct {
	Pages []struct {
		Lines []Line `json:"lines"`
	} `json:"pages"`
	Documents []struct {
		Fields *FieldSet `json:"fields"`
	} `json:"documents"`
}

// Decode validates and decodes a cached analysis result. Only the first page's
// lines and the first document's fields are kept.
func Decode(r io.Reader) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read analysis result: %w", err)
	}
	if err := ValidateRaw(raw); err != nil {
		return nil, err
	}
	var rr rawResult
	if err := json.Unmarshal(raw, &rr); err != nil {
		return nil, common.NewInputContractError("decode analysis result", err)
	}
	if len(rr.Pages) == 0 || len(rr.Documents) == 0 || rr.Documents[0].Fields == nil {
		return nil, common.NewInputContractError("missing pages[0].lines or documents[0].fields", nil)
	}
	return &Result{
		Lines:  rr.Pages[0].Lines,
		Fields: rr.Documents[0].Fields,
	}, nil
}

// DecodeFile decodes the analysis result stored at path.
func DecodeFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open analysis result: %w", err)
	}
	defer f.Close()
	res, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// internal/engine/extract/schema.go
package extract

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"quote-engine/internal/catalog"
)

// buildSchema compiles the JSON Schema the model's reply must satisfy. The
// class enum is generated from the live catalog so a repriced tariff file
// automatically tightens the contract.
func buildSchema(cat *catalog.Catalog) (*gojsonschema.Schema, error) {
	classIDs := cat.ClassIDs()
	enum := make([]interface{}, 0, len(classIDs))
	for _, id := range classIDs {
		enum = append(enum, id)
	}

	raw := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []interface{}{"greeting", "items"},
		"properties": map[string]interface{}{
			"greeting": map[string]interface{}{"type": "boolean"},
			"items": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []interface{}{"class", "quantity"},
					"properties": map[string]interface{}{
						"class": map[string]interface{}{
							"type": "string",
							"enum": enum,
						},
						"quantity": map[string]interface{}{
							"type":    "integer",
							"minimum": 1,
						},
						"attributes": map[string]interface{}{
							"type": "object",
							"additionalProperties": map[string]interface{}{
								"type": "string",
							},
						},
					},
				},
			},
		},
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal extraction schema: %w", err)
	}
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(doc))
}

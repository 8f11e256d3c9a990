// internal/engine/extract/models.go
package extract

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

// generateResponse is the subset of the generateContent response we read.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// extractionPayload is the contract the model must return. Greeting and items
// are mutually exclusive in practice, but the schema only enforces shape; the
// mapper treats greeting=true as authoritative.
type extractionPayload struct {
	Greeting bool      `json:"greeting"`
	Items    []rawItem `json:"items"`
}

type rawItem struct {
	Class      string            `json:"class"`
	Quantity   int               `json:"quantity"`
	Attributes map[string]string `json:"attributes"`
}

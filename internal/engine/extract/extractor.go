// Package extract calls the generative text-understanding service to parse a
// free-form customer message into catalog items. Every failure mode returns a
// typed error the resolver uses to route the request to the lexical fallback;
// this package never terminates a quote on its own.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"quote-engine/internal/catalog"
	apperrors "quote-engine/internal/common/errors"
	"quote-engine/internal/common/httpclient"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/models"
)

const serviceName = "genai"

// Extractor is the interpretive extraction client.
type Extractor struct {
	cfg    Config
	cat    *catalog.Catalog
	client *httpclient.Client
	logger logger.Logger
	schema *gojsonschema.Schema
}

// New builds an Extractor. Fails only on a schema compile error, which means
// a broken catalog, not a broken environment.
func New(cfg Config, cat *catalog.Catalog, log logger.Logger) (*Extractor, error) {
	schema, err := buildSchema(cat)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		cfg:    cfg,
		cat:    cat,
		client: httpclient.NewClient(cfg.Timeout),
		logger: log.With(map[string]interface{}{"component": "extractor"}),
		schema: schema,
	}, nil
}

// Extract parses the customer message into items. A greeting-only message
// yields a single item carrying the greeting sentinel class. No retry is
// attempted on failure; the call either succeeds within its timeout or the
// caller falls back.
func (e *Extractor) Extract(ctx context.Context, text string) ([]models.ExtractedItem, error) {
	if !e.cfg.Enabled() {
		return nil, apperrors.NewConfigurationError("genai api key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	reply, err := e.generate(ctx, buildPrompt(e.cat, text))
	if err != nil {
		return nil, err
	}

	payload, err := e.parseReply(reply)
	if err != nil {
		return nil, err
	}

	if payload.Greeting {
		return []models.ExtractedItem{{ClassID: models.GreetingClass, Quantity: 1}}, nil
	}

	items := make([]models.ExtractedItem, 0, len(payload.Items))
	for _, raw := range payload.Items {
		items = append(items, e.toItem(raw))
	}
	return items, nil
}

func (e *Extractor) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:      0,
			ResponseMIMEType: "application/json",
		},
	})
	if err != nil {
		return "", apperrors.NewExternalServiceError(serviceName, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimSuffix(e.cfg.BaseURL, "/"), e.cfg.Model, e.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewExternalServiceError(serviceName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apperrors.NewTimeoutError(serviceName, err)
		}
		return "", apperrors.NewUpstreamUnavailableError(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		e.logger.Warn("genai returned non-200", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(snippet),
		})
		return "", apperrors.NewUpstreamUnavailableError(serviceName,
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", apperrors.NewMalformedUpstreamResponseError(serviceName, err.Error())
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.NewMalformedUpstreamResponseError(serviceName, "no candidates in response")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// parseReply validates the model's reply against the extraction schema and
// decodes it. Markdown fences are tolerated; anything else off-contract is a
// malformed-response error.
func (e *Extractor) parseReply(reply string) (*extractionPayload, error) {
	cleaned := stripFences(reply)

	result, err := e.schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, apperrors.NewMalformedUpstreamResponseError(serviceName, err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		e.logger.Warn("genai reply failed schema validation", map[string]interface{}{
			"errors": details,
		})
		return nil, apperrors.NewMalformedUpstreamResponseError(serviceName, strings.Join(details, "; "))
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, apperrors.NewMalformedUpstreamResponseError(serviceName, err.Error())
	}
	return &payload, nil
}

// toItem converts a validated raw item, recomputing missing attributes from
// the catalog. The model's own notion of completeness is never trusted.
func (e *Extractor) toItem(raw rawItem) models.ExtractedItem {
	item := models.ExtractedItem{
		ClassID:    raw.Class,
		Quantity:   raw.Quantity,
		Attributes: raw.Attributes,
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	entry, ok := e.cat.Entry(raw.Class)
	if !ok {
		return item
	}
	for _, required := range entry.RequiredAttributes() {
		if _, present := item.Attribute(required); !present {
			item.MissingAttributes = append(item.MissingAttributes, required)
		}
	}
	return item
}

// stripFences removes a markdown code fence around the reply, with or without
// a language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Package vision fetches advisory labels for customer-supplied photo URLs.
// Labels are informational only: they are attached to the response so a
// human can sanity-check the request, and nothing downstream prices on them.
// Every failure mode returns no labels.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"quote-engine/internal/common/config"
	"quote-engine/internal/common/httpclient"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/models"
)

// Config holds the image-labeling service settings.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxResults int
}

func FromAppConfig(cfg *config.Config) Config {
	return Config{
		BaseURL:    cfg.Vision.BaseURL,
		APIKey:     cfg.Vision.APIKey,
		Timeout:    time.Duration(cfg.Vision.Timeout) * time.Millisecond,
		MaxResults: cfg.Vision.MaxResults,
	}
}

func (c Config) Enabled() bool {
	return c.APIKey != ""
}

// Labeler is the image-labeling client.
type Labeler struct {
	cfg    Config
	client *httpclient.Client
	logger logger.Logger
}

func New(cfg Config, log logger.Logger) *Labeler {
	return &Labeler{
		cfg:    cfg,
		client: httpclient.NewClient(cfg.Timeout),
		logger: log.With(map[string]interface{}{"component": "vision"}),
	}
}

type annotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

type imageRequest struct {
	Image    imageSource `json:"image"`
	Features []feature   `json:"features"`
}

type imageSource struct {
	Source struct {
		ImageURI string `json:"imageUri"`
	} `json:"source"`
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

type annotateResponse struct {
	Responses []struct {
		LabelAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score"`
		} `json:"labelAnnotations"`
	} `json:"responses"`
}

// Label fetches labels for one image URL. Returns nil on any failure,
// including the service not being configured; the quote proceeds either way.
func (l *Labeler) Label(ctx context.Context, imageURL string) []models.ImageLabel {
	if !l.cfg.Enabled() || strings.TrimSpace(imageURL) == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	ir := imageRequest{
		Features: []feature{{Type: "LABEL_DETECTION", MaxResults: l.cfg.MaxResults}},
	}
	ir.Image.Source.ImageURI = imageURL

	body, err := json.Marshal(annotateRequest{Requests: []imageRequest{ir}})
	if err != nil {
		return nil
	}

	endpoint := fmt.Sprintf("%s/v1/images:annotate?key=%s",
		strings.TrimSuffix(l.cfg.BaseURL, "/"), l.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.WithError(err).Warn("image labeling request failed", nil)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("image labeling returned non-200", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil
	}

	var out annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		l.logger.WithError(err).Warn("image labeling payload unreadable", nil)
		return nil
	}
	if len(out.Responses) == 0 {
		return nil
	}

	labels := make([]models.ImageLabel, 0, len(out.Responses[0].LabelAnnotations))
	for _, ann := range out.Responses[0].LabelAnnotations {
		labels = append(labels, models.ImageLabel{
			Description: ann.Description,
			Score:       ann.Score,
		})
	}
	return labels
}

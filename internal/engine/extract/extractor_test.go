package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-engine/internal/catalog"
	apperrors "quote-engine/internal/common/errors"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/models"
)

func newTestExtractor(t *testing.T, upstream http.HandlerFunc) (*Extractor, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	ex, err := New(Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		Timeout: 2 * time.Second,
	}, catalog.Default(), logger.NewTestLogger(t))
	require.NoError(t, err)
	return ex, srv
}

func genaiReply(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestExtractor_Extract(t *testing.T) {
	ex, _ := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "generateContent")
		w.Write(genaiReply(t, `{"greeting": false, "items": [
			{"class": "armario", "quantity": 1, "attributes": {"door_mechanism": "sliding", "door_count": "4"}},
			{"class": "silla", "quantity": 2}
		]}`))
	})

	items, err := ex.Extract(context.Background(), "armario de 4 puertas correderas y dos sillas")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "armario", items[0].ClassID)
	assert.True(t, items[0].Complete())

	assert.Equal(t, "silla", items[1].ClassID)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestExtractor_GreetingSentinel(t *testing.T) {
	ex, _ := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(genaiReply(t, `{"greeting": true, "items": []}`))
	})

	items, err := ex.Extract(context.Background(), "hola buenas")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.GreetingClass, items[0].ClassID)
}

func TestExtractor_MissingAttributesRecomputed(t *testing.T) {
	// The model omits required attributes; the extractor flags them itself.
	ex, _ := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(genaiReply(t, `{"greeting": false, "items": [
			{"class": "armario", "quantity": 1, "attributes": {"door_mechanism": "unknown"}}
		]}`))
	})

	items, err := ex.Extract(context.Background(), "quiero un armario")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].Complete())
	assert.ElementsMatch(t,
		[]string{catalog.AttrDoorMechanism, catalog.AttrDoorCount},
		items[0].MissingAttributes)
}

func TestExtractor_FencedReplyTolerated(t *testing.T) {
	ex, _ := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(genaiReply(t, "```json\n{\"greeting\": false, \"items\": [{\"class\": \"sofa\", \"quantity\": 1}]}\n```"))
	})

	items, err := ex.Extract(context.Background(), "un sofa")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "sofa", items[0].ClassID)
}

func TestExtractor_UpstreamErrorTriggersFallback(t *testing.T) {
	ex, _ := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := ex.Extract(context.Background(), "un sofa")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUpstreamUnavailable))
	assert.True(t, apperrors.IsFallbackTrigger(err))
}

func TestExtractor_UnknownClassRejectedBySchema(t *testing.T) {
	ex, _ := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(genaiReply(t, `{"greeting": false, "items": [{"class": "spaceship", "quantity": 1}]}`))
	})

	_, err := ex.Extract(context.Background(), "un cohete")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeMalformedUpstreamResponse))
	assert.True(t, apperrors.IsFallbackTrigger(err))
}

func TestExtractor_NonJSONReplyIsMalformed(t *testing.T) {
	ex, _ := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(genaiReply(t, "Sure! I found a wardrobe in your message."))
	})

	_, err := ex.Extract(context.Background(), "un armario")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeMalformedUpstreamResponse))
}

func TestExtractor_DisabledWithoutKey(t *testing.T) {
	ex, err := New(Config{BaseURL: "http://unused", Timeout: time.Second},
		catalog.Default(), logger.NewNoOpLogger())
	require.NoError(t, err)

	assert.False(t, ex.cfg.Enabled())
	_, err = ex.Extract(context.Background(), "un armario")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConfigurationError))
}

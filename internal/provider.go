package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ModelNone is the model identity reported when no provider is configured.
const ModelNone = "none"

// embeddingBackend is one concrete provider wire protocol. Backends return
// hard errors; the Gateway absorbs them into nil vectors.
type embeddingBackend interface {
	embedBatch(ctx context.Context, texts []string) ([][]float32, error)
	maxBatch() int
	modelID() string
}

// Gateway is the single entry point for embeddings. At most one backend is
// active per engine instance. Any transport error, non-success status, or
// malformed response degrades to a nil vector for the affected items; the
// Gateway never returns an error, which is what lets save and recall keep
// working keyword-only when the provider is down or unconfigured.
type Gateway struct {
	backend embeddingBackend
}

// NewGateway wraps a backend; nil means embeddings are disabled.
func NewGateway(backend embeddingBackend) *Gateway {
	return &Gateway{backend: backend}
}

// Active reports whether an embedding provider is configured.
func (g *Gateway) Active() bool {
	return g != nil && g.backend != nil
}

// ModelID reports a stable identity for the active backend and its output
// dimensionality, e.g. "openai:1536". It changes if and only if switching
// provider or dimensions, which is exactly when cached vectors stop being
// comparable.
func (g *Gateway) ModelID() string {
	if !g.Active() {
		return ModelNone
	}
	return g.backend.modelID()
}

// Embed returns the vector for text, or nil on any failure.
func (g *Gateway) Embed(ctx context.Context, text string) []float32 {
	vecs := g.EmbedBatch(ctx, []string{text})
	return vecs[0]
}

// EmbedBatch embeds texts preserving input order and length, nil per failed
// item. Inputs beyond the backend's per-request maximum are split into
// sequential sub-batches; one failing sub-batch does not poison the rest.
func (g *Gateway) EmbedBatch(ctx context.Context, texts []string) [][]float32 {
	out := make([][]float32, len(texts))
	if !g.Active() || len(texts) == 0 {
		return out
	}

	size := g.backend.maxBatch()
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}

		vecs, err := g.backend.embedBatch(ctx, texts[start:end])
		if err != nil {
			continue
		}
		for i, v := range vecs {
			if start+i >= end {
				break
			}
			out[start+i] = v
		}
	}
	return out
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// postJSON posts body to url and decodes the response into out. Non-2xx
// responses become errors carrying a snippet of the body.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("provider error %d: %s", resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// --- OpenAI backend ---

const (
	openaiDefaultBaseURL = "https://api.openai.com/v1"
	openaiDefaultModel   = "text-embedding-3-small"
	openaiDefaultDims    = 1536
	openaiMaxBatch       = 2048
)

type openaiBackend struct {
	baseURL string
	apiKey  string
	model   string
	dims    int
	client  *http.Client
}

type openaiEmbedRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type openaiEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

func newOpenAIBackend(apiKey, baseURL, model string, dims int) *openaiBackend {
	if baseURL == "" {
		baseURL = openaiDefaultBaseURL
	}
	if model == "" {
		model = openaiDefaultModel
	}
	if dims == 0 {
		dims = openaiDefaultDims
	}
	return &openaiBackend{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		dims:    dims,
		client:  newHTTPClient(),
	}
}

func (b *openaiBackend) modelID() string { return fmt.Sprintf("openai:%d", b.dims) }
func (b *openaiBackend) maxBatch() int   { return openaiMaxBatch }

func (b *openaiBackend) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var result openaiEmbedResponse
	err := postJSON(ctx, b.client, b.baseURL+"/embeddings",
		map[string]string{"Authorization": "Bearer " + b.apiKey},
		openaiEmbedRequest{Model: b.model, Input: texts, Dimensions: b.dims},
		&result,
	)
	if err != nil {
		return nil, err
	}

	vecs := make([][]float32, len(texts))
	for _, d := range result.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			continue
		}
		vecs[d.Index] = d.Embedding
	}
	return vecs, nil
}

// --- Gemini backend ---

const (
	geminiDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel   = "text-embedding-004"
	geminiDefaultDims    = 768
	geminiMaxBatch       = 100
)

type geminiBackend struct {
	baseURL string
	apiKey  string
	model   string
	dims    int
	client  *http.Client
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiEmbedRequest struct {
	Content geminiContent `json:"content"`
}

type geminiEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

type geminiBatchRequest struct {
	Requests []geminiBatchItem `json:"requests"`
}

type geminiBatchItem struct {
	Model   string        `json:"model"`
	Content geminiContent `json:"content"`
}

type geminiBatchResponse struct {
	Embeddings []struct {
		Values []float32 `json:"values"`
	} `json:"embeddings"`
}

func newGeminiBackend(apiKey, baseURL, model string, dims int) *geminiBackend {
	if baseURL == "" {
		baseURL = geminiDefaultBaseURL
	}
	if model == "" {
		model = geminiDefaultModel
	}
	if dims == 0 {
		dims = geminiDefaultDims
	}
	return &geminiBackend{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		dims:    dims,
		client:  newHTTPClient(),
	}
}

func (b *geminiBackend) modelID() string { return fmt.Sprintf("gemini:%d", b.dims) }
func (b *geminiBackend) maxBatch() int   { return geminiMaxBatch }

func (b *geminiBackend) headers() map[string]string {
	return map[string]string{"x-goog-api-key": b.apiKey}
}

func (b *geminiBackend) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 1 {
		var result geminiEmbedResponse
		url := fmt.Sprintf("%s/models/%s:embedContent", b.baseURL, b.model)
		req := geminiEmbedRequest{Content: geminiContent{Parts: []geminiPart{{Text: texts[0]}}}}
		if err := postJSON(ctx, b.client, url, b.headers(), req, &result); err != nil {
			return nil, err
		}
		if len(result.Embedding.Values) == 0 {
			return nil, fmt.Errorf("empty embedding response")
		}
		return [][]float32{result.Embedding.Values}, nil
	}

	req := geminiBatchRequest{Requests: make([]geminiBatchItem, len(texts))}
	for i, t := range texts {
		req.Requests[i] = geminiBatchItem{
			Model:   "models/" + b.model,
			Content: geminiContent{Parts: []geminiPart{{Text: t}}},
		}
	}

	var result geminiBatchResponse
	url := fmt.Sprintf("%s/models/%s:batchEmbedContents", b.baseURL, b.model)
	if err := postJSON(ctx, b.client, url, b.headers(), req, &result); err != nil {
		return nil, err
	}

	vecs := make([][]float32, len(texts))
	for i, e := range result.Embeddings {
		if i >= len(texts) {
			break
		}
		if len(e.Values) > 0 {
			vecs[i] = e.Values
		}
	}
	return vecs, nil
}
